/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package profile

import (
	"strings"

	perrors "github.com/pkg/errors"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	utils "github.com/wind-river/cobbler-deployment-manager/common"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	"github.com/wind-river/cobbler-deployment-manager/platform"
)

// Defines the managed profile attributes.
const (
	AttrDistro            = "distro"
	AttrParent            = "parent"
	AttrKickstart         = "kickstart"
	AttrNameServers       = "nameservers"
	AttrRepos             = "repos"
	AttrKernelOptions     = "kopts"
	AttrKernelOptionsPost = "ks_opts_post"
)

// Attributes lists the managed attributes in the order they are reconciled.
var Attributes = []string{
	AttrDistro,
	AttrParent,
	AttrKickstart,
	AttrNameServers,
	AttrRepos,
	AttrKernelOptions,
	AttrKernelOptionsPost,
}

// commandAttributes maps each attribute to its command line name.
var commandAttributes = map[string]string{
	AttrDistro:            "distro",
	AttrParent:            "parent",
	AttrKickstart:         "kickstart",
	AttrNameServers:       "name_servers",
	AttrRepos:             "repos",
	AttrKernelOptions:     "kopts",
	AttrKernelOptionsPost: "kopts_post",
}

// attributeReconcilers maps attributes to the sub-reconciler that controls
// them.  Attributes not listed are controlled by the profile reconciler.
var attributeReconcilers = map[string]utils.ReconcilerName{
	AttrNameServers:       utils.ProfileLists,
	AttrRepos:             utils.ProfileLists,
	AttrKernelOptions:     utils.ProfileKernelOptions,
	AttrKernelOptionsPost: utils.ProfileKernelOptions,
}

// IsAttributeEnabled returns whether the attribute is currently reconciled.
func IsAttributeEnabled(attribute string) bool {
	if name, ok := attributeReconcilers[attribute]; ok {
		return utils.IsReconcilerEnabled(name)
	}
	return true
}

// IsDeclared returns whether the attribute was set on the declared profile.
// Undeclared attributes are left to the server, usually inherited from the
// distribution or the parent profile.
func IsDeclared(attribute string, spec *v1.ProfileSpec) bool {
	switch attribute {
	case AttrDistro:
		return spec.Distro != nil
	case AttrParent:
		return spec.Parent != nil
	case AttrKickstart:
		return spec.Kickstart != nil
	case AttrNameServers:
		return spec.NameServers != nil
	case AttrRepos:
		return spec.Repos != nil
	case AttrKernelOptions:
		return spec.KernelOptions != nil
	case AttrKernelOptionsPost:
		return spec.KernelOptionsPost != nil
	}
	return false
}

// AttributeDiffers returns whether a declared attribute differs from its
// observed value.
func AttributeDiffers(attribute string, observed *platform.ProfileInfo, spec *v1.ProfileSpec) bool {
	if !IsDeclared(attribute, spec) {
		return false
	}

	switch attribute {
	case AttrDistro:
		return *spec.Distro != observed.Distro
	case AttrParent:
		return *spec.Parent != observed.Parent
	case AttrKickstart:
		return *spec.Kickstart != observed.Kickstart
	case AttrNameServers:
		return !common.StringListsEqual(observed.NameServers, spec.NameServers)
	case AttrRepos:
		return !common.StringListsEqual(observed.Repos, spec.Repos)
	case AttrKernelOptions:
		return !common.OptionMapsEqual(observed.KernelOptions, spec.KernelOptions)
	case AttrKernelOptionsPost:
		return !common.OptionMapsEqual(observed.KernelOptionsPost, spec.KernelOptionsPost)
	}

	return false
}

// attributeValue renders the declared value of an attribute as a single
// command line argument value.
func attributeValue(attribute string, spec *v1.ProfileSpec) string {
	switch attribute {
	case AttrDistro:
		return *spec.Distro
	case AttrParent:
		return *spec.Parent
	case AttrKickstart:
		return *spec.Kickstart
	case AttrNameServers:
		return strings.Join(spec.NameServers, " ")
	case AttrRepos:
		return strings.Join(spec.Repos, " ")
	case AttrKernelOptions:
		return common.JoinOptions(spec.KernelOptions)
	case AttrKernelOptionsPost:
		return common.JoinOptions(spec.KernelOptionsPost)
	}
	return ""
}

// PlanAttribute builds the commands required to write one declared
// attribute.  The commands do not include a trailing sync.
func PlanAttribute(name string, attribute string, spec *v1.ProfileSpec) ([]common.Command, error) {
	flag, ok := commandAttributes[attribute]
	if !ok {
		return nil, perrors.Errorf("unknown profile attribute %q", attribute)
	}

	if !IsDeclared(attribute, spec) {
		return nil, perrors.Errorf("profile attribute %q is not declared", attribute)
	}

	value := attributeValue(attribute, spec)
	cmd := common.EditCommand(v1.KindProfile, name, common.Argument(flag, value))

	return []common.Command{cmd}, nil
}

// PlanAdd builds the command that creates a profile with the minimum set of
// attributes the server requires.
func PlanAdd(name string, spec *v1.ProfileSpec) common.Command {
	args := make([]string, 0)

	if spec.Distro != nil && *spec.Distro != "" {
		args = append(args, common.Argument(commandAttributes[AttrDistro], *spec.Distro))
	}

	if parent := spec.ParentName(); parent != "" {
		args = append(args, common.Argument(commandAttributes[AttrParent], parent))
	}

	return common.AddCommand(v1.KindProfile, name, args...)
}

// ApplyAttribute returns a copy of the observed state with the declared
// value of one attribute written into it.
func ApplyAttribute(observed platform.ProfileInfo, attribute string, spec *v1.ProfileSpec) platform.ProfileInfo {
	result := observed.DeepCopy()

	switch attribute {
	case AttrDistro:
		result.Distro = *spec.Distro
	case AttrParent:
		result.Parent = *spec.Parent
	case AttrKickstart:
		result.Kickstart = *spec.Kickstart
	case AttrNameServers:
		result.NameServers = append([]string(nil), spec.NameServers...)
	case AttrRepos:
		result.Repos = append([]string(nil), spec.Repos...)
	case AttrKernelOptions:
		result.KernelOptions = spec.KernelOptions.DeepCopy()
	case AttrKernelOptionsPost:
		result.KernelOptionsPost = spec.KernelOptionsPost.DeepCopy()
	}

	return result
}
