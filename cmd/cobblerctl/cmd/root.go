/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	utils "github.com/wind-river/cobbler-deployment-manager/common"
	cobblerManager "github.com/wind-river/cobbler-deployment-manager/controllers/manager"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const (
	ConfigFileArg    = "config"
	CobblerBinaryArg = "cobbler-binary"
	CobblerAPIArg    = "cobbler-api"
	ManifestFileArg  = "filename"
	DryRunArg        = "dry-run"
)

var zapOptions = zap.Options{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cobblerctl",
	Short: "A utility to reconcile Cobbler profiles and systems.",
	Long: `This tool reconciles a declared set of Cobbler profiles and systems
against a running Cobbler server.  The current state is read through the
XML-RPC API and every change is applied with the cobbler command line tool
followed by a sync.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// setup loads the configuration and installs the logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	logf.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	path, _ := cmd.Flags().GetString(ConfigFileArg)
	if err := utils.ReadConfig(path); err != nil {
		return err
	}

	binary, _ := cmd.Flags().GetString(CobblerBinaryArg)
	api, _ := cmd.Flags().GetString(CobblerAPIArg)
	utils.SetCobblerSettings(binary, api)

	return nil
}

// newManager builds the client manager from the loaded configuration.
func newManager(cmd *cobra.Command) (cobblerManager.CobblerManager, error) {
	options, err := cobblerManager.GetClientOptions()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Lookup(DryRunArg) != nil {
		options.DryRun, _ = cmd.Flags().GetBool(DryRunArg)
	}

	return cobblerManager.NewPlatformManager(options), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	zapFlags := goflag.NewFlagSet("zap", goflag.ExitOnError)
	zapOptions.BindFlags(zapFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(zapFlags)

	rootCmd.PersistentFlags().String(ConfigFileArg, "", fmt.Sprintf("Configuration file (default %s)", utils.DefaultConfigFilepath))
	rootCmd.PersistentFlags().String(CobblerBinaryArg, "", "Path of the cobbler command line tool")
	rootCmd.PersistentFlags().String(CobblerAPIArg, "", "URL of the cobbler XML-RPC API")
}
