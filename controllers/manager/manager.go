/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package manager

import (
	"sync"

	perrors "github.com/pkg/errors"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	"github.com/wind-river/cobbler-deployment-manager/platform"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

var log = logf.Log.WithName("manager")

const (
	// Defines HTTP and HTTPS URL prefixes.
	HTTPSPrefix = "https://"
	HTTPPrefix  = "http://"
)

// CobblerManager provides the reconcilers with access to both surfaces of the
// provisioning server: the bulk query endpoint and the command line tool.
type CobblerManager interface {
	GetQueryClient() (platform.Querier, error)
	GetCommandRunner() (common.CommandRunner, error)
	ResetClients()
	IsDryRun() bool
}

// PlatformManager is the default CobblerManager implementation.  Clients are
// built lazily on first use and cached until reset.
type PlatformManager struct {
	lock    sync.Mutex
	options ClientOptions
	querier platform.Querier
	runner  common.CommandRunner
}

// NewPlatformManager returns a manager for the specified client options.
func NewPlatformManager(options ClientOptions) CobblerManager {
	return &PlatformManager{options: options}
}

// BaseError defines a common Error implementation for all manager errors
// that derive from this structure.
type BaseError struct {
	message string
}

// Error implements the Error interface for all structures that derive from
// BaseError.
func (in BaseError) Error() string {
	return in.message
}

// ClientError defines an error to be used on an semantic error encountered
// while attempting to build a client object.
type ClientError struct {
	BaseError
}

// NewClientError defines a wrapper to correctly instantiate a manager client
// error.
func NewClientError(msg string) error {
	return perrors.WithStack(ClientError{BaseError{msg}})
}

// IsClientError returns true if the root cause of the error is a ClientError.
func IsClientError(err error) bool {
	_, ok := perrors.Cause(err).(ClientError)
	return ok
}

// GetQueryClient returns the query client, building it if necessary.
func (m *PlatformManager) GetQueryClient() (platform.Querier, error) {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	if m.querier == nil {
		client, err := BuildQueryClient(m.options)
		if err != nil {
			return nil, err
		}
		m.querier = client
	}

	return m.querier, nil
}

// GetCommandRunner returns the command runner, building it if necessary.  A
// dry-run manager never returns a runner that executes commands.
func (m *PlatformManager) GetCommandRunner() (common.CommandRunner, error) {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	if m.runner == nil {
		runner, err := BuildCommandRunner(m.options)
		if err != nil {
			return nil, err
		}
		m.runner = runner
	}

	return m.runner, nil
}

// ResetClients discards the cached clients so that they are rebuilt from the
// current options on next use.
func (m *PlatformManager) ResetClients() {
	m.lock.Lock()
	defer func() { m.lock.Unlock() }()

	m.querier = nil
	m.runner = nil
}

// IsDryRun returns whether mutating commands are only recorded.
func (m *PlatformManager) IsDryRun() bool {
	return m.options.DryRun
}
