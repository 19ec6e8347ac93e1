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

// interpolate replaces “{{key}}” placeholders in texts with parameter values,
// optionally piping the values through formatters, such as in
// “{{name|trim|upper}}”.
//
// The text to interpolate comes either from a string, stdin, or from an input
// file or directory tree. Interpolated strings and stdin go to stdout, while
// interpolated files are written to the output directory. Warnings about
// missing parameters go to stderr.
//
//	$ interpolate -s 'Hello, {{name|upper}}!' -p name=world
//	Hello, WORLD!
//
// Parameters can be passed as a JSON object or as comma-separated “key=value”
// pairs using --params, and from JSON, YAML, and .env files using
// --params-file. With --env, environment variables are used for parameters not
// explicitly given.
//
// Each flag can alternatively be set using an environment variable
// “INTERPOLATE_<FLAG>”, such as INTERPOLATE_MAX_DEPTH, or in a configuration
// file passed using --config.
//
// # Usage
//
//	interpolate [flags] [-]
//
//	Flags:
//	      --close string          closing placeholder delimiter (default "}}")
//	      --concurrency int       maximum number of files to interpolate in parallel; defaults to the number of CPUs
//	      --config string         configuration file (JSON, YAML, or TOML) with flag values
//	      --continue-on-error     continue interpolating the remaining files after errors
//	      --copy-unmatched        copy input files not matching --src verbatim
//	      --debug                 enable debug logging
//	  -d, --default string        default value for missing parameters when replacing missing
//	      --delimiter string      delimiter between parameter key and formatter names (default "|")
//	  -e, --env                   also interpolate environment variables
//	  -f, --format                apply formatters (default true)
//	  -h, --help                  help for interpolate
//	  -i, --input string          file or directory to read from
//	      --max-depth int         maximum nesting depth of parameters referencing other parameters (default 32)
//	      --open string           opening placeholder delimiter (default "{{")
//	      --manifest string       write a JSON manifest with the SHA256 digests of the interpolated files
//	  -o, --output string         directory to write the interpolated files to
//	  -p, --params string         parameters as JSON object, or as key=value pairs: key1=1,key2=2
//	      --params-file strings   JSON, YAML, or .env parameters file; later files override earlier ones
//	  -r, --replace-missing       replace placeholders of missing parameters with the default value
//	      --src string            double-star glob pattern selecting the input files to interpolate, such as '**/*.yaml'
//	  -s, --string string         text to interpolate
//	      --stdin                 read the text to interpolate from stdin; same as '-'
//	  -t, --throw                 fail on missing parameters
//	      --validate              only check for unknown formatters, without interpolating
//	  -v, --version               version for interpolate
//	  -w, --warn                  warn about missing parameters and failing formatters (default true)
package main
