/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wind-river/cobbler-deployment-manager/controllers"
)

func DiffCmdRun(cmd *cobra.Command, args []string) {
	deployment, _ := loadManifest(cmd)

	if prune, _ := cmd.Flags().GetBool(PruneArg); prune {
		setPrune()
	}

	mgr, err := newManager(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(4)
	}

	results, err := controllers.NewDeploymentReconciler(mgr).Diff(context.Background(), deployment)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to compare manifest: %s\n", err.Error())
		os.Exit(4)
	}

	printResults(cmd.OutOrStdout(), results, true)
}

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show what apply would change",
	Long: `The diff subcommand compares a manifest with the server and reports
the entities that would be created, updated or removed without changing
anything.`,
	Run: DiffCmdRun,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringP(ManifestFileArg, "f", "", "The manifest to compare")
	diffCmd.Flags().Bool(PruneArg, false, "Include profiles and systems that are not declared")
}
