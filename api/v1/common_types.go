/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

// Kind identifies the type of a Cobbler object.  The value is used verbatim
// as the object argument of the cobbler command line tool.
type Kind string

// Defines the supported object kinds.
const (
	KindProfile Kind = "profile"
	KindSystem  Kind = "system"
)

// EnsureState defines whether an entity should exist on the provisioning
// server.
type EnsureState string

// Defines the valid values for the EnsureState type.
const (
	EnsurePresent EnsureState = "present"
	EnsureAbsent  EnsureState = "absent"
)

// Defines well-known Cobbler attribute values.
const (
	// InheritValue is the Cobbler placeholder for a value inherited from the
	// parent object.
	InheritValue = "<<inherit>>"

	DefaultPowerType = "ipmitool"
	DefaultVirtType  = "qemu"
)

// IsAbsent returns true if the entity must be removed.  An empty value is
// treated as present.
func (in EnsureState) IsAbsent() bool {
	return in == EnsureAbsent
}

// Deployment defines the full set of declared entities for a single
// provisioning server.
type Deployment struct {
	// Profiles defines the list of declared profiles.
	// +optional
	Profiles []Profile `json:"profiles,omitempty"`

	// Systems defines the list of declared systems.
	// +optional
	Systems []System `json:"systems,omitempty"`
}
