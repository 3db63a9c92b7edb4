/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package system

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/sets"
)

// sequenceSource returns each letter in turn repeated n times.
func sequenceSource(letters ...string) NameSource {
	i := 0
	return func(n int) string {
		letter := letters[i%len(letters)]
		i++
		return strings.Repeat(letter, n)
	}
}

var _ = Describe("Temporary interface names", func() {
	It("should use the default source", func() {
		name, err := NewNameGenerator().Generate(sets.New[string]())
		Expect(err).ToNot(HaveOccurred())
		Expect(name).To(HavePrefix(TempInterfacePrefix))
		Expect(name).To(HaveLen(len(TempInterfacePrefix) + tempInterfaceLength))
	})

	It("should skip names that are already taken", func() {
		gen := &NameGenerator{Source: sequenceSource("a", "b")}
		taken := sets.New("eth0", "tmp_aaaaaaaaaaaaaaa")

		name, err := gen.Generate(taken)
		Expect(err).ToNot(HaveOccurred())
		Expect(name).To(Equal("tmp_bbbbbbbbbbbbbbb"))
	})

	It("should give up when every name is taken", func() {
		gen := &NameGenerator{Source: sequenceSource("a")}
		taken := sets.New("tmp_aaaaaaaaaaaaaaa")

		_, err := gen.Generate(taken)
		Expect(err).To(HaveOccurred())
	})
})
