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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thediveo/interpol"
	"github.com/thediveo/interpol/internal/cli"
	"github.com/thediveo/interpol/interpolate"
)

const (
	inputFlag           = "input"
	outputFlag          = "output"
	srcFlag             = "src"
	stringFlag          = "string"
	stdinFlag           = "stdin"
	envFlag             = "env"
	paramsFlag          = "params"
	paramsFileFlag      = "params-file"
	warnFlag            = "warn"
	throwFlag           = "throw"
	defaultFlag         = "default"
	replaceMissingFlag  = "replace-missing"
	formatFlag          = "format"
	delimiterFlag       = "delimiter"
	openFlag            = "open"
	closeFlag           = "close"
	maxDepthFlag        = "max-depth"
	validateFlag        = "validate"
	concurrencyFlag     = "concurrency"
	continueOnErrorFlag = "continue-on-error"
	copyUnmatchedFlag   = "copy-unmatched"
	manifestFlag        = "manifest"
	debugFlag           = "debug"
)

// envPrefix is the prefix of environment variables that set flags.
const envPrefix = "INTERPOLATE"

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:          "interpolate [flags] [-]",
		Short:        "interpolate {{key}} placeholders in strings, files, and directory trees",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := cli.Config(cmd, envPrefix)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			if v.GetBool(debugFlag) {
				log.SetLevel(log.DebugLevel)
			}
			useStdin := v.GetBool(stdinFlag)
			if len(args) == 1 {
				if args[0] != "-" {
					return fmt.Errorf("unexpected argument %q", args[0])
				}
				useStdin = true
			}
			input := v.GetString(inputFlag)
			useString := v.IsSet(stringFlag)
			if !useStdin && !useString && input == "" {
				return cmd.Help()
			}

			ip, err := newInterpolator(v)
			if err != nil {
				return err
			}

			switch {
			case useStdin:
				text, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("cannot read from stdin, reason: %w", err)
				}
				return interpolateText(cmd.OutOrStdout(), ip, string(text), v.GetBool(validateFlag))
			case useString:
				return interpolateText(cmd.OutOrStdout(), ip, v.GetString(stringFlag), v.GetBool(validateFlag))
			}
			tree := interpol.Tree{
				Input:           input,
				Output:          v.GetString(outputFlag),
				Src:             v.GetString(srcFlag),
				Concurrency:     v.GetInt(concurrencyFlag),
				ContinueOnError: v.GetBool(continueOnErrorFlag),
				CopyUnmatched:   v.GetBool(copyUnmatchedFlag),
				Manifest:        v.GetString(manifestFlag),
			}
			if v.GetBool(validateFlag) {
				return interpol.ValidateTree(ip, tree)
			}
			if tree.Output == "" {
				return errors.New("missing --output directory for --input")
			}
			_, err = interpol.InterpolateTree(context.Background(), ip, tree)
			return err
		},
	}

	flags := rootCmd.Flags()
	flags.StringP(inputFlag, "i", "", "file or directory to read from")
	flags.StringP(outputFlag, "o", "", "directory to write the interpolated files to")
	flags.String(srcFlag, "", "double-star glob pattern selecting the input files to interpolate, such as '**/*.yaml'")
	flags.StringP(stringFlag, "s", "", "text to interpolate")
	flags.Bool(stdinFlag, false, "read the text to interpolate from stdin; same as '-'")
	flags.BoolP(envFlag, "e", false, "also interpolate environment variables")
	flags.StringP(paramsFlag, "p", "", "parameters as JSON object, or as key=value pairs: key1=1,key2=2")
	flags.StringSlice(paramsFileFlag, nil, "JSON, YAML, or .env parameters file; later files override earlier ones")
	flags.BoolP(warnFlag, "w", true, "warn about missing parameters and failing formatters")
	flags.BoolP(throwFlag, "t", false, "fail on missing parameters")
	flags.StringP(defaultFlag, "d", "", "default value for missing parameters when replacing missing")
	flags.BoolP(replaceMissingFlag, "r", false, "replace placeholders of missing parameters with the default value")
	flags.BoolP(formatFlag, "f", true, "apply formatters")
	flags.String(delimiterFlag, interpolate.DefaultFormatterDelimiter, "delimiter between parameter key and formatter names")
	flags.String(openFlag, interpolate.DefaultOpen, "opening placeholder delimiter")
	flags.String(closeFlag, interpolate.DefaultClose, "closing placeholder delimiter")
	flags.Int(maxDepthFlag, interpolate.DefaultMaxDepth, "maximum nesting depth of parameters referencing other parameters")
	flags.Bool(validateFlag, false, "only check for unknown formatters, without interpolating")
	flags.Int(concurrencyFlag, 0, "maximum number of files to interpolate in parallel; defaults to the number of CPUs")
	flags.Bool(continueOnErrorFlag, false, "continue interpolating the remaining files after errors")
	flags.Bool(copyUnmatchedFlag, false, "copy input files not matching --src verbatim")
	flags.String(manifestFlag, "", "write a JSON manifest with the SHA256 digests of the interpolated files")
	flags.String(cli.ConfigFlag, "", "configuration file (JSON, YAML, or TOML) with flag values")
	flags.Bool(debugFlag, false, "enable debug logging")

	rootCmd.Example = `  interpolate -s 'Hello, {{name|upper}}!' -p name=world
  interpolate -i ./deploy -o ./build/deploy --src '**/*.{yml,yaml}' --env
  cat template.txt | interpolate - --params-file values.yaml`
	rootCmd.Version = cli.Version(`":latest"`)
	return rootCmd
}

// newInterpolator returns an Interpolator configured from the flags.
func newInterpolator(v *viper.Viper) (*interpolate.Interpolator, error) {
	params := interpolate.Params{}
	for _, path := range v.GetStringSlice(paramsFileFlag) {
		fileParams, err := interpolate.LoadParamsFile(path)
		if err != nil {
			return nil, err
		}
		params = params.Merge(fileParams)
	}
	params = params.Merge(interpolate.ParseParams(v.GetString(paramsFlag)))

	report := interpolate.Silent
	switch {
	case v.GetBool(throwFlag):
		report = interpolate.Throw
	case v.GetBool(warnFlag):
		report = interpolate.Warn
	}
	substitute := interpolate.KeepLiteral
	if v.GetBool(replaceMissingFlag) {
		substitute = interpolate.UseDefault
	}
	opts := []interpolate.Option{
		interpolate.WithReport(report),
		interpolate.WithSubstitute(substitute),
		interpolate.WithDefault(v.GetString(defaultFlag)),
		interpolate.WithFormatting(v.GetBool(formatFlag)),
		interpolate.WithFormatterDelimiter(v.GetString(delimiterFlag)),
		interpolate.WithDelimiters(v.GetString(openFlag), v.GetString(closeFlag)),
		interpolate.WithMaxDepth(v.GetInt(maxDepthFlag)),
	}
	if v.GetBool(envFlag) {
		opts = append(opts, interpolate.WithEnvironment(os.Environ))
	}
	return interpolate.New(params, opts...)
}

// interpolateText writes the interpolated text, or only validates it.
func interpolateText(w io.Writer, ip *interpolate.Interpolator, text string, validate bool) error {
	if validate {
		return ip.Validate(text)
	}
	result, err := ip.String(text)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, result)
	return err
}
