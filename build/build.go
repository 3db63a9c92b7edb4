/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package build

import (
	"context"
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	perrors "github.com/pkg/errors"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/platform"
	"k8s.io/apimachinery/pkg/util/intstr"
)

const yamlSeparator = "---\n"

// Builder is the deployment builder interface which exists to allow easier
// mocking for unit test development.
type Builder interface {
	Build(ctx context.Context) (*v1.Deployment, error)
	AddSystemFilters(filters []SystemFilter)
	AddProfileFilters(filters []ProfileFilter)
}

// DeploymentBuilder is the concrete implementation of the builder interface
// which is capable of building a full deployment model based on a running
// provisioning server.
type DeploymentBuilder struct {
	client         platform.Querier
	progressWriter io.Writer
	systemFilters  []SystemFilter
	profileFilters []ProfileFilter
}

var defaultProfileFilters = []ProfileFilter{
	NewInheritedProfileFilter(),
}

var defaultSystemFilters = []SystemFilter{
	NewInheritedSystemFilter(),
	NewSystemDefaultsFilter(),
	NewManagementFilter(),
}

// NewDeploymentBuilder returns an instantiation of a deployment builder
// structure.
func NewDeploymentBuilder(client platform.Querier, progressWriter io.Writer) *DeploymentBuilder {
	return &DeploymentBuilder{
		client:         client,
		progressWriter: progressWriter,
		systemFilters:  append([]SystemFilter{}, defaultSystemFilters...),
		profileFilters: append([]ProfileFilter{}, defaultProfileFilters...),
	}
}

// progressUpdate is a utility method to write a progress log to the provided
// i/o writer interface.
func (db *DeploymentBuilder) progressUpdate(messagefmt string, args ...interface{}) {
	if db.progressWriter == nil {
		return
	}
	_, _ = fmt.Fprintf(db.progressWriter, messagefmt, args...)
	// Suppress errors
}

// AddSystemFilters adds a list of system filters to the set already present
// on the deployment builder (if any).
func (db *DeploymentBuilder) AddSystemFilters(filters []SystemFilter) {
	db.systemFilters = append(db.systemFilters, filters...)
}

// AddProfileFilters adds a list of profile filters to the set already present
// on the deployment builder (if any).
func (db *DeploymentBuilder) AddProfileFilters(filters []ProfileFilter) {
	db.profileFilters = append(db.profileFilters, filters...)
}

// Build is the main method which produces a deployment object based on a
// running provisioning server.
func (db *DeploymentBuilder) Build(ctx context.Context) (*v1.Deployment, error) {
	deployment := v1.Deployment{}
	inventory := platform.Inventory{}

	db.progressUpdate("reading profiles and systems\n")

	err := inventory.PopulateInventory(ctx, db.client)
	if err != nil {
		return nil, err
	}

	db.progressUpdate("building profile configurations\n")

	for _, info := range inventory.Profiles {
		deployment.Profiles = append(deployment.Profiles, NewProfile(info))
	}

	for i := range deployment.Profiles {
		err = db.filterProfile(&deployment.Profiles[i], &deployment)
		if err != nil {
			return nil, err
		}
	}

	db.progressUpdate("building system configurations\n")

	for _, info := range inventory.Systems {
		deployment.Systems = append(deployment.Systems, NewSystem(info))
	}

	for i := range deployment.Systems {
		err = db.filterSystem(&deployment.Systems[i], &deployment)
		if err != nil {
			return nil, err
		}
	}

	db.progressUpdate("built %d profiles and %d systems\n",
		len(deployment.Profiles), len(deployment.Systems))

	return &deployment, nil
}

func (db *DeploymentBuilder) filterProfile(profile *v1.Profile, deployment *v1.Deployment) error {
	for _, f := range db.profileFilters {
		if err := f.Filter(profile, deployment); err != nil {
			return err
		}
	}
	return nil
}

func (db *DeploymentBuilder) filterSystem(system *v1.System, deployment *v1.Deployment) error {
	for _, f := range db.systemFilters {
		if err := f.Filter(system, deployment); err != nil {
			return err
		}
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalQuantity(value string) *intstr.IntOrString {
	if value == "" {
		return nil
	}
	result := intstr.Parse(value)
	return &result
}

// NewProfile converts an observed profile to a declared profile.
func NewProfile(info platform.ProfileInfo) v1.Profile {
	info = info.DeepCopy()

	return v1.Profile{
		Name:   info.Name,
		Ensure: v1.EnsurePresent,
		ProfileSpec: v1.ProfileSpec{
			Distro:            optionalString(info.Distro),
			Parent:            optionalString(info.Parent),
			Kickstart:         optionalString(info.Kickstart),
			KernelOptions:     info.KernelOptions,
			KernelOptionsPost: info.KernelOptionsPost,
			NameServers:       info.NameServers,
			Repos:             info.Repos,
		},
	}
}

// NewSystem converts an observed system to a declared system.
func NewSystem(info platform.SystemInfo) v1.System {
	info = info.DeepCopy()
	netboot := info.NetbootEnabled

	system := v1.System{
		Name:   info.Name,
		Ensure: v1.EnsurePresent,
		SystemSpec: v1.SystemSpec{
			Profile:        info.Profile,
			Hostname:       optionalString(info.Hostname),
			Gateway:        optionalString(info.Gateway),
			Comment:        optionalString(info.Comment),
			Kickstart:      optionalString(info.Kickstart),
			PowerType:      optionalString(info.PowerType),
			VirtCPUs:       optionalQuantity(info.VirtCPUs),
			VirtFileSize:   optionalQuantity(info.VirtFileSize),
			VirtPath:       optionalString(info.VirtPath),
			VirtRAM:        optionalQuantity(info.VirtRAM),
			VirtType:       optionalString(info.VirtType),
			NetbootEnabled: &netboot,
		},
	}

	if len(info.KernelOptions) > 0 {
		system.KernelOptions = info.KernelOptions
	}

	if len(info.Interfaces) > 0 {
		system.Interfaces = info.Interfaces
	}

	return system
}

// ToYAML renders the deployment as a manifest that can be applied again.
func ToYAML(d *v1.Deployment) (string, error) {
	buf, err := yaml.Marshal(d)
	if err != nil {
		err = perrors.Wrap(err, "failed to render deployment to YAML")
		return "", err
	}

	return yamlSeparator + string(buf), nil
}
