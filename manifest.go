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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Manifest maps the slash-separated paths of interpolated files to the hex
// encoded SHA256 digests of their interpolated contents.
type Manifest map[string]string

// NewManifest returns the manifest of the successfully interpolated files.
func NewManifest(results Results) Manifest {
	m := Manifest{}
	for _, result := range results {
		if result.Err != nil || result.Digest == "" {
			continue
		}
		m[result.Path] = result.Digest
	}
	return m
}

// digestStream copies a stream from the specified reader to the specified
// writer, returning the stream's content digest.
func digestStream(name string, r io.Reader, w io.Writer) (string, error) {
	digester := sha256.New()
	w = io.MultiWriter(digester, w)
	if _, err := io.Copy(w, r); err != nil {
		return "", fmt.Errorf("cannot write %q, reason: %w", name, err)
	}
	digest := hex.EncodeToString(digester.Sum(nil))
	log.Debug(fmt.Sprintf("      🧮  digest(ed) %q: %s", name, digest))
	return digest, nil
}

// Write the manifest in JSON format, consisting of a version and the digests
// of the files.
func (m Manifest) Write(w io.Writer) error {
	b, err := json.Marshal(struct {
		Version string            `json:"version"`
		Files   map[string]string `json:"files"`
	}{
		Version: "1",
		Files:   m,
	})
	if err != nil {
		return fmt.Errorf("cannot generate manifest JSON, reason: %w", err)
	}
	_, err = w.Write(b)
	if err != nil {
		return fmt.Errorf("cannot write manifest, reason: %w", err)
	}
	return nil
}

// WriteFile writes the manifest into the file at the specified path, creating
// intermediate directories as necessary.
func (m Manifest) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create manifest directory, reason: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create manifest, reason: %w", err)
	}
	if err := closeWritten(path, f, m.Write(f)); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("🧾  manifest with %d digests written to %q", len(m), path))
	return nil
}

// closeWritten closes a file that has just been written to, passing on the
// write error err, if any. Otherwise, it returns the error of closing the file,
// as closing might still fail to flush the written data.
func closeWritten(name string, c io.Closer, err error) error {
	if cerr := c.Close(); cerr != nil && err == nil {
		return fmt.Errorf("cannot close %q, reason: %w", name, cerr)
	}
	return err
}
