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

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thediveo/interpol/envstr"
	"github.com/thediveo/interpol/internal/cli"
)

const (
	stringFlag  = "string"
	stdinFlag   = "stdin"
	jsonFlag    = "json"
	keyFlag     = "key"
	quotesFlag  = "quotes"
	newlineFlag = "newline"
	includeFlag = "include"
	excludeFlag = "exclude"
	capsFlag    = "caps"
	exportFlag  = "export"
)

// envPrefix is the prefix of environment variables that set flags.
const envPrefix = "ENVSTR"

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:          "envstr [flags] [-]",
		Short:        "envstr converts tables and JSON objects into environment variable assignments",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := cli.Config(cmd, envPrefix)
			if err != nil {
				return err
			}
			useStdin := v.GetBool(stdinFlag)
			if len(args) == 1 {
				if args[0] != "-" {
					return fmt.Errorf("unexpected argument %q", args[0])
				}
				useStdin = true
			}
			var text string
			switch {
			case useStdin:
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("cannot read from stdin, reason: %w", err)
				}
				text = string(in)
			case v.IsSet(stringFlag):
				text = v.GetString(stringFlag)
			default:
				return cmd.Help()
			}
			out, err := convert(newConverter(v), text, v.GetBool(jsonFlag))
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}

	flags := rootCmd.Flags()
	flags.StringP(stringFlag, "s", "", "text to convert")
	flags.Bool(stdinFlag, false, "read the text to convert from stdin; same as '-'")
	flags.BoolP(jsonFlag, "j", false, "convert a JSON object instead of a table")
	flags.StringP(keyFlag, "k", "", "convert the JSON object at the specified dot path")
	flags.BoolP(quotesFlag, "q", false, "put double quotes around values")
	flags.StringP(newlineFlag, "n", `\n`, "line separator, with escape sequences such as '\\n'")
	flags.StringP(includeFlag, "i", "", "only convert these keys: key1,key2")
	flags.StringP(excludeFlag, "e", "", "don't convert these keys: key3,key4")
	flags.BoolP(capsFlag, "c", false, "capitalize keys")
	flags.BoolP(exportFlag, "x", false, "prefix assignments with 'export'")
	flags.String(cli.ConfigFlag, "", "configuration file (JSON, YAML, or TOML) with flag values")

	rootCmd.Example = `  envstr -s '{"KEY1":true,"KEY2":false}' --json --quotes
  printf 'FOO bar\nBAZ 42' | envstr - --export`
	rootCmd.Version = cli.Version(`":latest"`)
	return rootCmd
}

// newConverter returns a Converter configured from the flags.
func newConverter(v *viper.Viper) *envstr.Converter {
	opts := []envstr.Option{
		envstr.WithNewline(cli.Unescape(v.GetString(newlineFlag))),
		envstr.WithInclude(v.GetString(includeFlag)),
		envstr.WithExclude(v.GetString(excludeFlag)),
		envstr.WithKey(v.GetString(keyFlag)),
	}
	if v.GetBool(quotesFlag) {
		opts = append(opts, envstr.WithQuotes())
	}
	if v.GetBool(capsFlag) {
		opts = append(opts, envstr.WithCaps())
	}
	if v.GetBool(exportFlag) {
		opts = append(opts, envstr.WithExport())
	}
	return envstr.New(opts...)
}

func convert(conv *envstr.Converter, text string, isJSON bool) (string, error) {
	if isJSON {
		return conv.JSON(text)
	}
	return conv.Table(text), nil
}
