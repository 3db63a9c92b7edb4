/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/wind-river/cobbler-deployment-manager/build"
)

const (
	OutputFileNameArg = "output-file"
	NoNetbootArg      = "no-netboot"
)

func BuildCmdRun(cmd *cobra.Command, args []string) {
	var outputFile *os.File

	if outputFilename, err := cmd.Flags().GetString(OutputFileNameArg); err == nil {
		outputFile, err = os.Create(outputFilename)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to open output file: %s\n",
				err.Error())
			os.Exit(1)
		}
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "failed to get %q argument\n",
			OutputFileNameArg)
		os.Exit(2)
	}

	mgr, err := newManager(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(30)
	}

	client, err := mgr.GetQueryClient()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to create query client: %s\n", err.Error())
		os.Exit(31)
	}

	builder := build.NewDeploymentBuilder(client, os.Stdout)

	if noNetboot, _ := cmd.Flags().GetBool(NoNetbootArg); noNetboot {
		builder.AddSystemFilters([]build.SystemFilter{build.NewNetbootFilter()})
	}

	deployment, err := builder.Build(context.Background())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to build deployment details: %s\n", err.Error())
		os.Exit(40)
	}

	yamlBuf, err := build.ToYAML(deployment)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to convert deployment struct to YAML: %s\n", err.Error())
		os.Exit(41)
	}

	_, err = fmt.Fprintf(outputFile, "# Generated: %s\n# Tool version: %s\n",
		time.Now().Format(time.UnixDate),
		VersionToString())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write to output file: %s\n", err.Error())
		os.Exit(42)
	}

	_, err = fmt.Fprintf(outputFile, "%s", yamlBuf)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to write to output file: %s\n", err.Error())
		os.Exit(42)
	}

	err = outputFile.Close()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to close output file: %s\n", err.Error())
		os.Exit(43)
	}

	fmt.Printf("done.\n")
}

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "The build subcommand extracts the configuration from a running server",
	Long: `The build subcommand extracts every profile and system from a running
Cobbler server and writes them as a manifest that apply accepts.  Values that
are inherited or equal to the defaults are left out.`,
	Run: BuildCmdRun,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP(OutputFileNameArg, "o", "deployment-config.yaml", "A destination path used for output.")
	buildCmd.Flags().Bool(NoNetbootArg, false, "Leave the network boot flag of systems undeclared")
}
