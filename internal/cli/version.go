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

// Package cli contains the bits and pieces shared by the command line tools,
// such as determining their version and binding their flags into a
// configuration.
package cli

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/exp/slices"
)

func buildInfo(info *debug.BuildInfo, key string) string {
	idx := slices.IndexFunc(info.Settings,
		func(setting debug.BuildSetting) bool {
			return setting.Key == key
		})
	if idx < 0 {
		return ""
	}
	return info.Settings[idx].Value
}

// Version returns the VCS commit or module version the running binary was
// built from, or the fallback when unknown.
func Version(fallback string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallback
	}
	return version(info, fallback)
}

func version(info *debug.BuildInfo, fallback string) string {
	if commit := buildInfo(info, "vcs.revision"); commit != "" {
		modified := ""
		if buildInfo(info, "vcs.modified") == "true" {
			modified = " (modified)"
		}
		if len(commit) > 8 {
			commit = commit[:8]
		}
		return fmt.Sprintf("commit %s%s", commit, modified)
	}
	if modver := info.Main.Version; modver != "" && modver != "(devel)" {
		return modver
	}
	return fallback
}
