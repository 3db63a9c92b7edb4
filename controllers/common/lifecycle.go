/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package common

import (
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
)

// EntityState is the lifecycle state of a single entity within a
// reconciliation pass.
type EntityState string

// Defines the entity lifecycle states.  Creating, Updating and Destroying
// are only observed while commands are running or after a command failed
// part way through an operation.
const (
	StateAbsent     EntityState = "Absent"
	StateCreating   EntityState = "Creating"
	StatePresent    EntityState = "Present"
	StateUpdating   EntityState = "Updating"
	StateDestroying EntityState = "Destroying"
)

// ReconcileResult records the outcome of reconciling a single entity.
type ReconcileResult struct {
	Kind   v1.Kind
	Name   string
	Reason string
	State  EntityState

	// Attributes lists the attributes that were written.
	Attributes []string

	// Delta is the rendered difference between the observed and the
	// declared state before any command was issued.
	Delta string

	Err error
}

// Failed returns true if the entity could not be reconciled.
func (in ReconcileResult) Failed() bool {
	return in.Err != nil
}
