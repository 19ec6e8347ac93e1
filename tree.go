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

package interpol

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/docker/go-units"
	"github.com/otiai10/copy"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"

	"github.com/thediveo/interpol/interpolate"
)

// Tree describes an input file or directory tree to interpolate into an output
// directory.
type Tree struct {
	Input           string // input file or directory
	Output          string // output directory
	Src             string // double-star glob of files to interpolate; empty matches all
	Concurrency     int    // maximum number of files processed in parallel; defaults to GOMAXPROCS
	ContinueOnError bool   // process all files even when some fail
	CopyUnmatched   bool   // copy files not matching Src verbatim
	Manifest        string // optional path of the manifest file to write
}

// Result describes the outcome of interpolating a single file.
type Result struct {
	Path   string // slash-separated path relative to the input directory
	Size   int64  // size of the interpolated file
	Digest string // hex encoded SHA256 digest of the interpolated file
	Err    error
}

// Results of interpolating the files of a tree, in lexical order of paths.
type Results []Result

// Failed returns only the failed results.
func (r Results) Failed() Results {
	failed := Results{}
	for _, result := range r {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}

// InterpolateTree interpolates the files of the input tree that match the
// source glob pattern, writing them into the output directory at the same
// relative paths. If the input is a single file, it gets written into the
// output directory using its base name.
//
// Unless [Tree.ContinueOnError] is set, the first failing file cancels
// processing the remaining files and its error gets returned. Otherwise, all
// files are processed and all errors are returned combined.
func InterpolateTree(ctx context.Context, ip *interpolate.Interpolator, tree Tree) (Results, error) {
	if tree.Output == "" {
		return nil, errors.New("missing output directory")
	}
	if tree.Src != "" && !doublestar.ValidatePattern(tree.Src) {
		return nil, fmt.Errorf("invalid source pattern %q", tree.Src)
	}
	stat, err := os.Stat(tree.Input)
	if err != nil {
		return nil, fmt.Errorf("cannot access input, reason: %w", err)
	}
	var results Results
	if !stat.IsDir() {
		log.Info(fmt.Sprintf("📄  interpolating file %q", tree.Input))
		results, err = interpolateFiles(ctx, ip,
			os.DirFS(filepath.Dir(tree.Input)), []string{filepath.Base(tree.Input)}, tree)
	} else {
		log.Info(fmt.Sprintf("🌳  interpolating tree %q into %q", tree.Input, tree.Output))
		fsys := os.DirFS(tree.Input)
		var paths []string
		if paths, err = matchingFiles(fsys, tree.Src); err != nil {
			return nil, err
		}
		if tree.CopyUnmatched {
			if err := copyUnmatched(tree); err != nil {
				return nil, err
			}
		}
		results, err = interpolateFiles(ctx, ip, fsys, paths, tree)
	}
	if err != nil || tree.Manifest == "" {
		return results, err
	}
	return results, NewManifest(results).WriteFile(tree.Manifest)
}

// matchingFiles returns the slash-separated paths of the regular files in fsys
// that match the double-star glob pattern.
func matchingFiles(fsys fs.FS, pattern string) ([]string, error) {
	paths := []string{}
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !matches(pattern, path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan input tree, reason: %w", err)
	}
	return paths, nil
}

// matches reports whether path matches the already validated pattern; an
// empty pattern matches all paths.
func matches(pattern, path string) bool {
	if pattern == "" {
		return true
	}
	ok, _ := doublestar.Match(pattern, path)
	return ok
}

// copyUnmatched copies the input tree into the output directory, skipping all
// files that will be interpolated.
func copyUnmatched(tree Tree) error {
	log.Info("🚚  copying unmatched files...")
	err := copy.Copy(tree.Input, tree.Output, copy.Options{
		Skip: func(info os.FileInfo, src, dest string) (bool, error) {
			if info.IsDir() {
				return false, nil
			}
			rel, err := filepath.Rel(tree.Input, src)
			if err != nil {
				return false, err
			}
			return matches(tree.Src, filepath.ToSlash(rel)), nil
		},
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Skip
		},
	})
	if err != nil {
		return fmt.Errorf("cannot copy unmatched files, reason: %w", err)
	}
	return nil
}

// interpolateFiles interpolates the specified files in parallel.
func interpolateFiles(
	ctx context.Context,
	ip *interpolate.Interpolator,
	fsys fs.FS,
	paths []string,
	tree Tree,
) (Results, error) {
	limit := tree.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make(Results, len(paths))
	var (
		mu      sync.Mutex
		allErrs error
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[idx] = Result{Path: path, Err: err}
				return err
			}
			result := interpolateFile(ip, fsys, path, tree.Output)
			results[idx] = result
			err := result.Err
			if err == nil {
				return nil
			}
			if !tree.ContinueOnError {
				return err
			}
			mu.Lock()
			allErrs = multierr.Append(allErrs, err)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if allErrs != nil {
		return results, allErrs
	}
	log.Info(fmt.Sprintf("✅  ...%d files successfully interpolated", len(paths)))
	return results, nil
}

// interpolateFile interpolates a single file from fsys and writes the result
// into the output directory, keeping the file permissions.
func interpolateFile(ip *interpolate.Interpolator, fsys fs.FS, name string, output string) Result {
	result := Result{Path: name}
	result.Digest, result.Err = func() (string, error) {
		stat, err := fs.Stat(fsys, name)
		if err != nil {
			return "", fmt.Errorf("cannot stat %q, reason: %w", name, err)
		}
		text, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", fmt.Errorf("cannot read %q, reason: %w", name, err)
		}
		interpolated, err := ip.String(string(text))
		if err != nil {
			return "", fmt.Errorf("cannot interpolate %q, reason: %w", name, err)
		}
		dest := filepath.Join(output, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return "", fmt.Errorf("cannot create output directory for %q, reason: %w", name, err)
		}
		perm := stat.Mode().Perm()
		f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
		if err != nil {
			return "", fmt.Errorf("cannot create %q, reason: %w", name, err)
		}
		digest, err := digestStream(name, strings.NewReader(interpolated), f)
		if err == nil {
			if err = f.Chmod(perm); err != nil {
				err = fmt.Errorf("cannot set permissions of %q, reason: %w", name, err)
			}
		}
		if err = closeWritten(name, f, err); err != nil {
			return "", err
		}
		result.Size = int64(len(interpolated))
		return digest, nil
	}()
	if result.Err == nil {
		log.Info(fmt.Sprintf("   📝  %s (%s)", name, units.HumanSize(float64(result.Size))))
	}
	return result
}

// ValidateTree checks the placeholders in the files of the input tree that
// match the source glob pattern for unknown formatters, without resolving
// any parameters. It returns the problems of all files combined.
func ValidateTree(ip *interpolate.Interpolator, tree Tree) error {
	stat, err := os.Stat(tree.Input)
	if err != nil {
		return fmt.Errorf("cannot access input, reason: %w", err)
	}
	fsys := os.DirFS(tree.Input)
	paths := []string{}
	if stat.IsDir() {
		if tree.Src != "" && !doublestar.ValidatePattern(tree.Src) {
			return fmt.Errorf("invalid source pattern %q", tree.Src)
		}
		if paths, err = matchingFiles(fsys, tree.Src); err != nil {
			return err
		}
	} else {
		fsys = os.DirFS(filepath.Dir(tree.Input))
		paths = append(paths, filepath.Base(tree.Input))
	}
	return validateFiles(ip, fsys, paths)
}

func validateFiles(ip *interpolate.Interpolator, fsys fs.FS, paths []string) error {
	var errs error
	for _, name := range paths {
		text, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("cannot read %q, reason: %w", name, err))
			continue
		}
		if err := ip.Validate(string(text)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid placeholders in %q, reason: %w", name, err))
		}
	}
	return errs
}
