/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package manager

import (
	"context"
	"os/exec"
	"sync"

	perrors "github.com/pkg/errors"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
)

// ExecRunner runs commands with the provisioning server command line tool.
type ExecRunner struct {
	Binary string
}

// NewExecRunner returns a runner for the specified binary.
func NewExecRunner(binary string) *ExecRunner {
	return &ExecRunner{Binary: binary}
}

// Run implements the CommandRunner interface.  The tool reports most errors
// on stdout so stdout and stderr are combined.
func (r *ExecRunner) Run(ctx context.Context, command common.Command) (string, error) {
	cmd := exec.CommandContext(ctx, r.Binary, command.Args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(output), common.NewRemoteCommandError(command.Args, string(output), exitErr.ExitCode())
		}

		err = perrors.Wrapf(err, "failed to run %s", r.Binary)
		return string(output), err
	}

	return string(output), nil
}

// DryRunRunner records commands instead of running them.
type DryRunRunner struct {
	lock     sync.Mutex
	commands []common.Command
}

// NewDryRunRunner returns an empty recording runner.
func NewDryRunRunner() *DryRunRunner {
	return &DryRunRunner{}
}

// Run implements the CommandRunner interface.
func (r *DryRunRunner) Run(_ context.Context, command common.Command) (string, error) {
	r.lock.Lock()
	defer func() { r.lock.Unlock() }()

	log.Info("dry-run", "command", command.String())
	r.commands = append(r.commands, command)

	return "", nil
}

// Commands returns the commands recorded so far.
func (r *DryRunRunner) Commands() []common.Command {
	r.lock.Lock()
	defer func() { r.lock.Unlock() }()

	return append([]common.Command{}, r.commands...)
}
