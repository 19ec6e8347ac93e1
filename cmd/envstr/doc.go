// Copyright 2025 by Harald Albrecht
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

/*
envstr converts whitespace-separated “key value” tables and JSON objects into
environment variable assignments “KEY=value”, such as for feeding them into
“.env” files or shell scripts.

	$ envstr -s '{"KEY1":true,"KEY2":false}' --json --quotes
	KEY1="true"
	KEY2="false"

Each flag can alternatively be set using an environment variable
“ENVSTR_<FLAG>”, or in a configuration file passed using --config.

# Usage

	envstr [flags] [-]

	Flags:
	  -c, --caps             capitalize keys
	      --config string    configuration file (JSON, YAML, or TOML) with flag values
	  -e, --exclude string   don't convert these keys: key3,key4
	  -x, --export           prefix assignments with 'export'
	  -h, --help             help for envstr
	  -i, --include string   only convert these keys: key1,key2
	  -j, --json             convert a JSON object instead of a table
	  -k, --key string       convert the JSON object at the specified dot path
	  -n, --newline string   line separator, with escape sequences such as '\n' (default "\\n")
	  -q, --quotes           put double quotes around values
	  -s, --string string    text to convert
	      --stdin            read the text to convert from stdin; same as '-'
	  -v, --version          version for envstr
*/
package main
