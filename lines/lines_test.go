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

package lines

import (
	"errors"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("lines", func() {

	DescribeTable("splitting",
		func(text string, expected []string) {
			Expect(Split(text)).To(Equal(expected))
		},
		Entry("empty text", "", []string{""}),
		Entry("no terminator", "foo", []string{"foo"}),
		Entry("trailing terminator", "foo\n", []string{"foo\n", ""}),
		Entry("mixed terminators", "a\r\nb\rc\nd", []string{"a\r\n", "b\r", "c\n", "d"}),
		Entry("empty lines", "\n\n", []string{"\n", "\n", ""}),
		Entry("CR then LF separately", "a\r\r\nb", []string{"a\r", "\r\n", "b"}),
	)

	It("maps lines with their indices and reproduces untouched text", func() {
		text := "one\r\ntwo\rthree\nfour\n"
		var indices []int
		Expect(Map(text, func(line string, index int) string {
			indices = append(indices, index)
			return line
		})).To(Equal(text))
		Expect(indices).To(HaveExactElements(0, 1, 2, 3, 4))
	})

	It("calls once for an empty text", func() {
		calls := 0
		Expect(Map("", func(line string, index int) string {
			calls++
			Expect(line).To(BeEmpty())
			Expect(index).To(BeZero())
			return "x"
		})).To(Equal("x"))
		Expect(calls).To(Equal(1))
	})

	It("transforms lines", func() {
		Expect(Map("a\nb", func(line string, index int) string {
			return fmt.Sprintf("%d:%s", index, strings.ToUpper(line))
		})).To(Equal("0:A\n1:B"))
	})

	It("stops at the first error", func() {
		calls := 0
		Expect(MapErr("a\nb\nc", func(line string, index int) (string, error) {
			calls++
			if index == 1 {
				return "", errors.New("D'OH!")
			}
			return line, nil
		})).Error().To(MatchError("D'OH!"))
		Expect(calls).To(Equal(2))
	})

	DescribeTable("terminators",
		func(line, expected string) {
			Expect(Terminator(line)).To(Equal(expected))
		},
		Entry(nil, "foo", ""),
		Entry(nil, "foo\n", "\n"),
		Entry(nil, "foo\r", "\r"),
		Entry(nil, "foo\r\n", "\r\n"),
		Entry(nil, "", ""),
	)

})
