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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/once"
	. "github.com/thediveo/success"
)

var _ = Describe("manifests", func() {

	BeforeEach(func() {
		GrabLog(log.DebugLevel)
	})

	It("digests streams", func() {
		var w bytes.Buffer
		Expect(digestStream("foo", strings.NewReader("FOO"), &w)).To(Equal(sha256hex("FOO")))
		Expect(w.String()).To(Equal("FOO"))
		Expect(digestStream("foo", strings.NewReader("FOO"), &badWriter{})).Error().To(
			MatchError(ContainSubstring(`cannot write "foo"`)))
	})

	It("contains only successfully interpolated files", func() {
		Expect(NewManifest(Results{
			{Path: "a", Digest: "1"},
			{Path: "b", Err: errors.New("D'OH!")},
			{Path: "c"},
		})).To(Equal(Manifest{"a": "1"}))
	})

	It("generates manifest JSON", func() {
		w := &bytes.Buffer{}
		Expect(Manifest{"a.yaml": "1234"}.Write(w)).To(Succeed())
		Expect(w.String()).To(MatchJSON(`{
	"version": "1",
	"files": {
		"a.yaml": "1234"
	}
}`))
	})

	It("reports errors when it cannot write manifest data", func() {
		Expect(Manifest{}.Write(&badWriter{})).To(
			MatchError(ContainSubstring("cannot write manifest")))
	})

	It("overwrites existing manifest files", func() {
		tmpManifest := Successful(os.CreateTemp("", "manifest-*.json"))
		tmpPath := tmpManifest.Name()
		closeOnce := Once(func() {
			tmpManifest.Close()
		}).Do
		DeferCleanup(func() {
			closeOnce()
			Expect(os.Remove(tmpPath)).To(Succeed())
		})
		Expect(tmpManifest.WriteString("garbage garbage garbage garbage")).To(BeNumerically(">", 0))
		closeOnce()

		Expect(Manifest{"a": "1"}.WriteFile(tmpPath)).To(Succeed())
		Expect(os.ReadFile(tmpPath)).To(MatchJSON(`{"version":"1","files":{"a":"1"}}`))
	})

	It("reports errors when it cannot create manifest files", func() {
		blocker := filepath.Join(GinkgoT().TempDir(), "file")
		Expect(os.WriteFile(blocker, nil, 0644)).To(Succeed())
		Expect(Manifest{}.WriteFile(filepath.Join(blocker, "manifest.json"))).To(
			MatchError(ContainSubstring("cannot create manifest directory")))
		Expect(Manifest{}.WriteFile(GinkgoT().TempDir())).To(
			MatchError(ContainSubstring("cannot create manifest")))
	})

	It("reports failing to close written files", func() {
		f := Successful(os.Create(filepath.Join(GinkgoT().TempDir(), "out.yaml")))
		Expect(f.Close()).To(Succeed())
		Expect(closeWritten("out.yaml", f, nil)).To(
			MatchError(ContainSubstring(`cannot close "out.yaml"`)))
		Expect(closeWritten("out.yaml", f, errors.New("D'OH!"))).To(
			MatchError("D'OH!"))

		f = Successful(os.Create(filepath.Join(GinkgoT().TempDir(), "out.yaml")))
		Expect(closeWritten("out.yaml", f, nil)).To(Succeed())
	})

})
