/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
)

// printResults writes one line per entity and, when requested, the delta of
// every entity that changed.
func printResults(out io.Writer, results []common.ReconcileResult, showDelta bool) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tNAME\tRESULT\tATTRIBUTES")

	for _, r := range results {
		attributes := strings.Join(r.Attributes, ",")
		if attributes == "" {
			attributes = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Kind, r.Name, r.Reason, attributes)
	}

	_ = w.Flush()

	if !showDelta {
		return
	}

	for _, r := range results {
		if r.Delta == "" {
			continue
		}
		_, _ = fmt.Fprintf(out, "\n%s %q:\n%s\n", r.Kind, r.Name, strings.TrimSuffix(r.Delta, "\n"))
	}
}
