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
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("envstr command", func() {

	var stdout strings.Builder

	BeforeEach(func() {
		stdout.Reset()
	})

	run := func(stdin string, args ...string) error {
		rootCmd := newRootCmd()
		rootCmd.SilenceErrors = true
		rootCmd.SetArgs(args)
		rootCmd.SetIn(strings.NewReader(stdin))
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(GinkgoWriter)
		return rootCmd.Execute()
	}

	It("exits on errors", func() {
		oldOsExit := osExit
		defer func() { osExit = oldOsExit }()
		osExit = func(code int) { panic(code) }
		oldArgs := os.Args
		defer func() { os.Args = oldArgs }()
		os.Args = []string{"envstr", "--nonsense"}
		Expect(main).To(PanicWith(1))
	})

	It("shows help without any input", func() {
		Expect(run("")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring("Usage:"))
		Expect(run("", "foo")).To(MatchError(`unexpected argument "foo"`))
	})

	It("converts tables", func() {
		Expect(run("", "-s", "FOO bar baz\nbar 42", "--caps", "--export")).To(Succeed())
		Expect(stdout.String()).To(Equal("export FOO=bar baz\nexport BAR=42"))
	})

	It("converts tables from stdin with custom newlines", func() {
		Expect(run("A 1;B 2;C 3", "-", "-n", ";", "-e", "B")).To(Succeed())
		Expect(stdout.String()).To(Equal("A=1;C=3"))
		stdout.Reset()
		Expect(run("A 1\r\nB 2", "--stdin", "--newline", `\r\n`, "-q")).To(Succeed())
		Expect(stdout.String()).To(Equal("A=\"1\"\r\nB=\"2\""))
	})

	It("converts JSON", func() {
		Expect(run("", "-s", `{"KEY1":true,"KEY2":false}`, "--json", "--quotes")).To(Succeed())
		Expect(stdout.String()).To(Equal("KEY1=\"true\"\nKEY2=\"false\""))
		stdout.Reset()
		Expect(run("", "-j", "-s", `{"a": {"B": 1, "C": 2}}`, "-k", "a", "-i", "C")).To(Succeed())
		Expect(stdout.String()).To(Equal("C=2"))
	})

	It("reports invalid JSON", func() {
		Expect(run("", "-j", "-s", `{`)).To(
			MatchError(ContainSubstring("envstr json str is not valid json")))
	})

	It("takes flags from environment variables", func() {
		GinkgoT().Setenv("ENVSTR_EXPORT", "true")
		Expect(run("", "-s", "A 1")).To(Succeed())
		Expect(stdout.String()).To(Equal("export A=1"))
	})

})
