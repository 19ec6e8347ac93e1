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

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigFlag is the name of the flag for specifying a configuration file.
const ConfigFlag = "config"

// Config binds the flags of a command into a viper configuration, so that
// each flag can also be set through an environment variable with the
// specified prefix or through a configuration file. Flags take precedence
// over environment variables, which in turn take precedence over the
// configuration file.
func Config(cmd *cobra.Command, envPrefix string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("cannot bind flags, reason: %w", err)
	}
	if cfgfile, _ := cmd.Flags().GetString(ConfigFlag); cfgfile != "" {
		v.SetConfigFile(cfgfile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read configuration file, reason: %w", err)
		}
	}
	return v, nil
}

// Unescape decodes the common backslash escape sequences “\n”, “\r”, “\t”,
// and “\\” in the specified text.
func Unescape(text string) string {
	return unescaper.Replace(text)
}

var unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r", `\t`, "\t")
