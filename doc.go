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

// Package interpol interpolates “{{key}}” placeholders in the text files of whole
// directory trees, writing the results into a mirrored output tree.
//
// The actual text interpolation is done by the [interpolate] package; see there
// for details about placeholders, formatters, and parameters. This package only
// adds walking input trees, selecting the files to interpolate using
// double-star glob patterns, and processing multiple files in parallel.
//
//	ip, _ := interpolate.New(params)
//	results, err := interpol.InterpolateTree(ctx, ip, interpol.Tree{
//		Input:  "templates",
//		Output: "out",
//		Src:    "**/*.yaml",
//	})
//
// [interpolate]: github.com/thediveo/interpol/interpolate
package interpol
