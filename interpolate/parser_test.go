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

package interpolate

import (
	"github.com/thediveo/interpol/format"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("scanning for placeholders", func() {

	s := newScanner(DefaultOpen, DefaultClose, DefaultFormatterDelimiter)

	It("returns an empty line unmodified", func() {
		Expect(s.parse("", 0)).To(BeEmpty())
	})

	It("returns a plain line unmodified", func() {
		Expect(s.parse("foo {-} {bar} }}{{ baz\n", 0)).To(HaveExactElements(
			PlainText("foo {-} {bar} }}{{ baz\n")))
	})

	It("parses a placeholder", func() {
		Expect(s.parse("foo{{bar}}baz", 42)).To(HaveExactElements(
			PlainText("foo"),
			Placeholder{Raw: "{{bar}}", Key: "bar", Position: format.Position{Line: 42, Column: 3}},
			PlainText("baz"),
		))
	})

	It("parses adjacent placeholders at the beginning and end", func() {
		Expect(s.parse("{{a}}{{b}}", 0)).To(HaveExactElements(
			Placeholder{Raw: "{{a}}", Key: "a"},
			Placeholder{Raw: "{{b}}", Key: "b", Position: format.Position{Column: 5}},
		))
	})

	It("parses keys and formatter names", func() {
		Expect(s.parse("{{ user.name | Trim|UPPER }}", 0)).To(HaveExactElements(
			Placeholder{
				Raw:        "{{ user.name | Trim|UPPER }}",
				Key:        "user.name",
				Formatters: []string{"Trim", "UPPER"},
			}))
	})

	It("counts columns in characters", func() {
		Expect(s.parse("äö {{a}}", 0)).To(HaveExactElements(
			PlainText("äö "),
			Placeholder{Raw: "{{a}}", Key: "a", Position: format.Position{Column: 3}},
		))
	})

	DescribeTable("not matching across delimiters",
		func(line string, expected ...Segment) {
			Expect(s.parse(line, 0)).To(Equal(Segments(expected)))
		},
		Entry("empty body", "{{}}", PlainText("{{}}")),
		Entry("nested braces", "{{{a}}}",
			PlainText("{"), Placeholder{Raw: "{{a}}", Key: "a", Position: format.Position{Column: 1}}, PlainText("}")),
		Entry("brace in body", "{{a}b}}", PlainText("{{a}b}}")),
		Entry("unterminated", "{{a", PlainText("{{a")),
		Entry("single closing brace", "{{a}", PlainText("{{a}")),
	)

	It("supports other delimiters", func() {
		s := newScanner("${", "}", ":")
		Expect(s.parse("$${a:upper}}", 0)).To(HaveExactElements(
			PlainText("$"),
			Placeholder{Raw: "${a:upper}", Key: "a", Formatters: []string{"upper"}, Position: format.Position{Column: 1}},
			PlainText("}"),
		))
	})

	It("detects placeholders only within lines", func() {
		Expect(s.contains("foo {{bar}}")).To(BeTrue())
		Expect(s.contains("foo\n{{bar}}\n")).To(BeTrue())
		Expect(s.contains("foo {{bar\n}}")).To(BeFalse())
		Expect(s.contains("")).To(BeFalse())
	})

})
