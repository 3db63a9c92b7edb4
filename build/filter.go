/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package build

import (
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// ProfileFilter defines an interface from which concrete profile filters can
// be defined.  The purpose of a profile filter is to remove attributes that
// the server reports but that should not be declared in a manifest.
type ProfileFilter interface {
	Filter(profile *v1.Profile, deployment *v1.Deployment) error
}

// SystemFilter defines an interface from which concrete system filters can
// be defined.
type SystemFilter interface {
	Filter(system *v1.System, deployment *v1.Deployment) error
}

func isInherited(value *string) bool {
	return value != nil && *value == v1.InheritValue
}

func isInheritedQuantity(value *intstr.IntOrString) bool {
	return value != nil && value.Type == intstr.String && value.StrVal == v1.InheritValue
}

// InheritedProfileFilter defines a profile filter which removes attributes
// that are inherited from the distribution or parent profile.  A child
// profile never declares a distribution.
type InheritedProfileFilter struct {
}

func NewInheritedProfileFilter() *InheritedProfileFilter {
	return &InheritedProfileFilter{}
}

func (in *InheritedProfileFilter) Filter(profile *v1.Profile, deployment *v1.Deployment) error {
	if isInherited(profile.Kickstart) {
		profile.Kickstart = nil
	}

	if profile.Parent != nil {
		profile.Distro = nil
	}

	return nil
}

// InheritedSystemFilter defines a system filter which removes attributes
// that are inherited from the system profile.
type InheritedSystemFilter struct {
}

func NewInheritedSystemFilter() *InheritedSystemFilter {
	return &InheritedSystemFilter{}
}

func (in *InheritedSystemFilter) Filter(system *v1.System, deployment *v1.Deployment) error {
	if isInherited(system.Kickstart) {
		system.Kickstart = nil
	}

	if isInherited(system.VirtPath) {
		system.VirtPath = nil
	}

	if isInheritedQuantity(system.VirtRAM) {
		system.VirtRAM = nil
	}

	if isInheritedQuantity(system.VirtFileSize) {
		system.VirtFileSize = nil
	}

	return nil
}

// SystemDefaultsFilter defines a system filter which removes attributes that
// are equal to the values applied when nothing is declared.
type SystemDefaultsFilter struct {
}

func NewSystemDefaultsFilter() *SystemDefaultsFilter {
	return &SystemDefaultsFilter{}
}

func (in *SystemDefaultsFilter) Filter(system *v1.System, deployment *v1.Deployment) error {
	defaults := v1.DefaultSystemSpec

	if system.PowerType != nil && *system.PowerType == *defaults.PowerType {
		system.PowerType = nil
	}

	if system.VirtType != nil && *system.VirtType == *defaults.VirtType {
		system.VirtType = nil
	}

	return nil
}

// ManagementFilter defines a system filter which removes the interface
// management attribute since it is maintained by the server.
type ManagementFilter struct {
}

func NewManagementFilter() *ManagementFilter {
	return &ManagementFilter{}
}

func (in *ManagementFilter) Filter(system *v1.System, deployment *v1.Deployment) error {
	for _, settings := range system.Interfaces {
		delete(settings, v1.ManagementSetting)
	}

	return nil
}

// NetbootFilter defines a system filter which leaves the network boot flag
// undeclared.  The server clears the flag once a system has installed so
// declaring the current value would re-arm the installation on every apply.
type NetbootFilter struct {
}

func NewNetbootFilter() *NetbootFilter {
	return &NetbootFilter{}
}

func (in *NetbootFilter) Filter(system *v1.System, deployment *v1.Deployment) error {
	system.NetbootEnabled = nil
	return nil
}
