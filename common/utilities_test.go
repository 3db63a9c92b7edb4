/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package common

import (
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Common utils", func() {
	Describe("ListDelta utility", func() {
		Context("with two lists", func() {
			It("should calculate the difference", func() {
				empty := make([]string, 0)
				type args struct {
					a []string
					b []string
				}
				tests := []struct {
					name        string
					args        args
					wantAdded   []string
					wantRemoved []string
					wantSame    []string
				}{
					{name: "add_first",
						args: args{a: []string{},
							b: []string{"1"}},
						wantAdded:   []string{"1"},
						wantRemoved: empty,
						wantSame:    empty},
					{name: "add_multiple",
						args: args{a: []string{"2"},
							b: []string{"1", "2", "3", "4"}},
						wantAdded:   []string{"1", "3", "4"},
						wantRemoved: empty,
						wantSame:    []string{"2"}},
					{name: "remove_multiple",
						args: args{a: []string{"1", "2", "3", "4"},
							b: []string{"2"}},
						wantAdded:   empty,
						wantRemoved: []string{"1", "3", "4"},
						wantSame:    []string{"2"}},
					{name: "identical",
						args: args{a: []string{"1"},
							b: []string{"1"}},
						wantAdded:   empty,
						wantRemoved: empty,
						wantSame:    []string{"1"}},
				}

				for _, tt := range tests {
					gotAdded, gotRemoved, gotSame := ListDelta(tt.args.a, tt.args.b)
					Expect(reflect.DeepEqual(gotAdded, tt.wantAdded)).To(BeTrue(), tt.name)
					Expect(reflect.DeepEqual(gotRemoved, tt.wantRemoved)).To(BeTrue(), tt.name)
					Expect(reflect.DeepEqual(gotSame, tt.wantSame)).To(BeTrue(), tt.name)
				}
			})
		})
	})

	Describe("FindDuplicates utility", func() {
		It("should report each duplicate once", func() {
			Expect(FindDuplicates([]string{"a", "b", "a", "a", "b"})).To(Equal([]string{"a", "b"}))
			Expect(FindDuplicates([]string{"a"})).To(BeEmpty())
		})
	})
})
