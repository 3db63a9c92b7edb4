/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	perrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/build"
	"github.com/wind-river/cobbler-deployment-manager/controllers"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

const (
	WatchArg = "watch"
	PruneArg = "prune"
)

var logApply = logf.Log.WithName("apply")

func loadManifest(cmd *cobra.Command) (*v1.Deployment, string) {
	path, err := cmd.Flags().GetString(ManifestFileArg)
	if err != nil || path == "" {
		_, _ = fmt.Fprintf(os.Stderr, "a manifest file must be specified with --%s\n", ManifestFileArg)
		os.Exit(2)
	}

	deployment, err := build.LoadManifest(path)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to load manifest: %s\n", err.Error())
		os.Exit(3)
	}

	return deployment, path
}

func applyOnce(ctx context.Context, cmd *cobra.Command, deployment *v1.Deployment) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}

	results, err := controllers.NewDeploymentReconciler(mgr).Reconcile(ctx, deployment)
	printResults(cmd.OutOrStdout(), results, false)

	return err
}

// watchManifest applies the manifest again whenever the file is written.
// The directory is watched rather than the file so that editors which
// replace the file on save are handled.
func watchManifest(ctx context.Context, cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return perrors.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return perrors.Wrapf(err, "failed to resolve %q", path)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return perrors.Wrapf(err, "failed to watch %q", path)
	}

	logApply.Info("watching manifest for changes", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			deployment, err := build.LoadManifest(abs)
			if err != nil {
				logApply.Error(err, "ignoring invalid manifest", "path", abs)
				continue
			}

			if err := applyOnce(ctx, cmd, deployment); err != nil {
				logApply.Error(err, "reconciliation pass failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logApply.Error(err, "file watcher error")
		}
	}
}

func ApplyCmdRun(cmd *cobra.Command, args []string) {
	deployment, path := loadManifest(cmd)

	if prune, _ := cmd.Flags().GetBool(PruneArg); prune {
		setPrune()
	}

	ctx := signals.SetupSignalHandler()

	err := applyOnce(ctx, cmd, deployment)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to apply manifest: %s\n", err.Error())
	}

	if watch, _ := cmd.Flags().GetBool(WatchArg); watch {
		if err := watchManifest(ctx, cmd, path); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(5)
		}
		return
	}

	if err != nil {
		os.Exit(4)
	}
}

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile the server with a manifest",
	Long: `The apply subcommand reads a YAML or TOML manifest and brings every
declared profile and system in line with it.  Profiles are applied parents
first, followed by systems.  Entities declared with "ensure: absent" are
removed.  A failed entity does not stop the remaining entities from being
reconciled.`,
	Run: ApplyCmdRun,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringP(ManifestFileArg, "f", "", "The manifest to apply")
	applyCmd.Flags().Bool(DryRunArg, false, "Log the commands instead of running them")
	applyCmd.Flags().BoolP(WatchArg, "w", false, "Apply the manifest again whenever it changes")
	applyCmd.Flags().Bool(PruneArg, false, "Remove profiles and systems that are not declared")
}
