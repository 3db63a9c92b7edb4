/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
)

var _ = Describe("Result output", func() {
	results := []common.ReconcileResult{
		{Kind: v1.KindProfile, Name: "base", Reason: common.ResourceUnchanged},
		{Kind: v1.KindSystem, Name: "node1", Reason: common.ResourceUpdated,
			Attributes: []string{"hostname", "gateway"}, Delta: "-hostname: a\n+hostname: b\n"},
	}

	It("should print one line per entity", func() {
		var out bytes.Buffer
		printResults(&out, results, false)

		lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
		Expect(lines).To(HaveLen(3))
		Expect(string(lines[1])).To(MatchRegexp(`^profile\s+base\s+Unchanged\s+-$`))
		Expect(string(lines[2])).To(MatchRegexp(`^system\s+node1\s+Updated\s+hostname,gateway$`))
	})

	It("should append deltas on request", func() {
		var out bytes.Buffer
		printResults(&out, results, true)

		Expect(out.String()).To(ContainSubstring("system \"node1\":\n-hostname: a\n+hostname: b"))
	})
})
