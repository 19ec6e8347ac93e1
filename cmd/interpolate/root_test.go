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
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/thediveo/interpol/test/grab"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func sha256hex(s string) string {
	digest := sha256.Sum256([]byte(s))
	return hex.EncodeToString(digest[:])
}

var _ = Describe("interpolate command", func() {

	var stdout, stderr strings.Builder

	BeforeEach(func() {
		stdout.Reset()
		stderr.Reset()
		DeferCleanup(grab.Log(GinkgoWriter, log.InfoLevel))
	})

	// run the interpolate command with the specified args and stdin.
	run := func(stdin string, args ...string) error {
		rootCmd := newRootCmd()
		rootCmd.SilenceErrors = true
		rootCmd.SetArgs(args)
		rootCmd.SetIn(strings.NewReader(stdin))
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(&stderr)
		return rootCmd.Execute()
	}

	writeFile := func(dir, name, contents string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(contents), 0644)).To(Succeed())
		return path
	}

	It("exits on errors", func() {
		oldOsExit := osExit
		defer func() { osExit = oldOsExit }()
		osExit = func(code int) { panic(code) }
		oldArgs := os.Args
		defer func() { os.Args = oldArgs }()
		os.Args = []string{"interpolate", "--nonsense"}
		Expect(main).To(PanicWith(1))
	})

	It("shows help without any input", func() {
		Expect(run("")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("Usage:"))
	})

	It("rejects unexpected arguments", func() {
		Expect(run("", "foo")).To(MatchError(`unexpected argument "foo"`))
		Expect(run("", "-", "-")).To(HaveOccurred())
	})

	It("interpolates strings", func() {
		Expect(run("", "-s", "Hello, {{name|upper}}!", "-p", "name=world")).To(Succeed())
		Expect(stdout.String()).To(Equal("Hello, WORLD!"))
	})

	It("interpolates stdin", func() {
		Expect(run("{{a}}\n{{b.c}}\n", "-", "--params", `{"a": 42, "b": {"c": "foo"}}`)).To(Succeed())
		Expect(stdout.String()).To(Equal("42\nfoo\n"))
		stdout.Reset()
		Expect(run("{{a}}", "--stdin", "-p", "a=1")).To(Succeed())
		Expect(stdout.String()).To(Equal("1"))
	})

	When("parameters are missing", func() {

		It("warns", func() {
			Expect(run("", "-s", "{{missing}}")).To(Succeed())
			Expect(stdout.String()).To(Equal("{{missing}}"))
			Expect(stderr.String()).To(ContainSubstring("interpolate param key not found: missing"))
		})

		It("replaces silently", func() {
			Expect(run("", "-s", "<{{missing}}>", "-r", "-d", "n/a", "--warn=false")).To(Succeed())
			Expect(stdout.String()).To(Equal("<n/a>"))
			Expect(stderr.String()).To(BeEmpty())
		})

		It("fails", func() {
			Expect(run("", "-s", "{{missing}}", "--throw")).To(
				MatchError("interpolate param key not found: missing"))
			Expect(stdout.String()).To(BeEmpty())
		})

	})

	It("uses custom delimiters and optionally doesn't format", func() {
		Expect(run("", "-s", "<%a:upper%> {{a}}", "-p", "a=foo",
			"--open", "<%", "--close", "%>", "--delimiter", ":")).To(Succeed())
		Expect(stdout.String()).To(Equal("FOO {{a}}"))
		stdout.Reset()
		Expect(run("", "-s", "{{a|upper}}", "-p", "a=foo", "--format=false")).To(Succeed())
		Expect(stdout.String()).To(Equal("foo"))
	})

	It("rejects invalid options", func() {
		Expect(run("", "-s", "{{a}}", "--max-depth", "0")).To(
			MatchError(ContainSubstring("must be positive")))
	})

	It("merges parameters from files, flags, and the environment", func() {
		dir := GinkgoT().TempDir()
		first := writeFile(dir, "first.yaml", "a: first\nb: first\nc: first\n")
		second := writeFile(dir, "second.env", "b=second\nc=second\n")
		GinkgoT().Setenv("INTERPOL_TEST_D", "env")
		Expect(run("", "-s", "{{a}} {{b}} {{c}} {{INTERPOL_TEST_D}}",
			"--params-file", first, "--params-file", second, "-p", "c=flag", "--env")).To(Succeed())
		Expect(stdout.String()).To(Equal("first second flag env"))

		Expect(run("", "-s", "{{a}}", "--params-file", filepath.Join(dir, "nada.json"))).To(
			MatchError(ContainSubstring("cannot read parameters file")))
	})

	It("takes flags from environment variables and configuration files", func() {
		cfg := writeFile(GinkgoT().TempDir(), "interpolate.yaml",
			"string: '{{a|upper}}'\nparams: a=config\n")
		GinkgoT().Setenv("INTERPOLATE_PARAMS", "a=env")
		Expect(run("", "--config", cfg)).To(Succeed())
		Expect(stdout.String()).To(Equal("ENV"))
	})

	It("validates", func() {
		Expect(run("", "-s", "{{a|upper}}", "--validate")).To(Succeed())
		Expect(stdout.String()).To(BeEmpty())
		Expect(run("", "-s", "{{a|nope}}", "--validate")).To(
			MatchError(ContainSubstring("formatter: nope")))
	})

	When("interpolating trees", func() {

		var input, output string

		BeforeEach(func() {
			input = GinkgoT().TempDir()
			output = filepath.Join(GinkgoT().TempDir(), "out")
			Expect(os.MkdirAll(filepath.Join(input, "sub"), 0755)).To(Succeed())
			writeFile(input, "a.txt", "{{a}}")
			writeFile(input, "sub/b.yaml", "b: {{a|upper}}\n")
		})

		It("interpolates matching files", func() {
			Expect(run("", "-i", input, "-o", output, "--src", "**/*.yaml", "-p", "a=foo",
				"--copy-unmatched", "--concurrency", "1",
				"--manifest", filepath.Join(output, "manifest.json"))).To(Succeed())
			Expect(os.ReadFile(filepath.Join(output, "manifest.json"))).To(
				MatchJSON(`{"version": "1", "files": {"sub/b.yaml": "` + sha256hex("b: FOO\n") + `"}}`))
			Expect(os.ReadFile(filepath.Join(output, "sub", "b.yaml"))).To(Equal([]byte("b: FOO\n")))
			Expect(os.ReadFile(filepath.Join(output, "a.txt"))).To(Equal([]byte("{{a}}")))
		})

		It("needs an output directory", func() {
			Expect(run("", "-i", input)).To(MatchError(ContainSubstring("missing --output")))
		})

		It("validates files", func() {
			writeFile(input, "c.txt", "{{c|nope}}")
			Expect(run("", "-i", input, "--src", "*.txt", "--validate")).To(
				MatchError(ContainSubstring(`invalid placeholders in "c.txt"`)))
			Expect(output).NotTo(BeADirectory())
		})

		It("continues on errors", func() {
			writeFile(input, "c.txt", "{{missing}}")
			Expect(run("", "-i", input, "-o", output, "--throw", "--continue-on-error", "-p", "a=foo")).To(
				MatchError(ContainSubstring(`cannot interpolate "c.txt"`)))
			Expect(os.ReadFile(filepath.Join(output, "a.txt"))).To(Equal([]byte("foo")))
		})

	})

	It("has a version", func() {
		Expect(newRootCmd().Version).NotTo(BeEmpty())
	})

})
