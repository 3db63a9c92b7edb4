/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package system

import (
	"strconv"

	perrors "github.com/pkg/errors"
	"github.com/samber/lo"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	utils "github.com/wind-river/cobbler-deployment-manager/common"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	"github.com/wind-river/cobbler-deployment-manager/platform"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Defines the managed system attributes.
const (
	AttrProfile        = "profile"
	AttrHostname       = "hostname"
	AttrGateway        = "gateway"
	AttrComment        = "comment"
	AttrKickstart      = "kickstart"
	AttrPowerType      = "power_type"
	AttrVirtCPUs       = "virt_cpus"
	AttrVirtFileSize   = "virt_file_size"
	AttrVirtPath       = "virt_path"
	AttrVirtRAM        = "virt_ram"
	AttrVirtType       = "virt_type"
	AttrNetbootEnabled = "netboot_enabled"
	AttrKernelOptions  = "kernel_options"
	AttrInterfaces     = "interfaces"
)

// Attributes lists the managed attributes in the order they are reconciled.
// Interfaces come last because the interface protocol ends with a sync.
var Attributes = []string{
	AttrProfile,
	AttrHostname,
	AttrGateway,
	AttrComment,
	AttrKickstart,
	AttrPowerType,
	AttrVirtCPUs,
	AttrVirtFileSize,
	AttrVirtPath,
	AttrVirtRAM,
	AttrVirtType,
	AttrNetbootEnabled,
	AttrKernelOptions,
	AttrInterfaces,
}

// Interface command line attributes.
const (
	interfaceArgument       = "interface"
	deleteInterfaceArgument = "delete_interface"
	staticArgument          = "static"
)

// attributeReconcilers maps attributes to the sub-reconciler that controls
// them.  Attributes not listed are controlled by the system reconciler.
var attributeReconcilers = map[string]utils.ReconcilerName{
	AttrPowerType:      utils.SystemPower,
	AttrVirtCPUs:       utils.SystemVirt,
	AttrVirtFileSize:   utils.SystemVirt,
	AttrVirtPath:       utils.SystemVirt,
	AttrVirtRAM:        utils.SystemVirt,
	AttrVirtType:       utils.SystemVirt,
	AttrNetbootEnabled: utils.SystemNetboot,
	AttrKernelOptions:  utils.SystemKernelOptions,
	AttrInterfaces:     utils.SystemInterfaces,
}

// IsAttributeEnabled returns whether the attribute is currently reconciled.
func IsAttributeEnabled(attribute string) bool {
	if name, ok := attributeReconcilers[attribute]; ok {
		return utils.IsReconcilerEnabled(name)
	}
	return true
}

func stringValue(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return *value, true
}

func quantityValue(value *intstr.IntOrString) (string, bool) {
	if value == nil {
		return "", false
	}
	return value.String(), true
}

func defaulted(value *string, fallback string) (string, bool) {
	if value == nil {
		return "", false
	}
	if *value == "" {
		return fallback, true
	}
	return *value, true
}

// scalarValue returns the declared value of a scalar attribute in the form
// written on the command line, and whether the attribute was declared.
func scalarValue(attribute string, spec *v1.SystemSpec) (string, bool) {
	switch attribute {
	case AttrProfile:
		return spec.Profile, spec.Profile != ""
	case AttrHostname:
		return stringValue(spec.Hostname)
	case AttrGateway:
		return stringValue(spec.Gateway)
	case AttrComment:
		return stringValue(spec.Comment)
	case AttrKickstart:
		return stringValue(spec.Kickstart)
	case AttrPowerType:
		return defaulted(spec.PowerType, v1.DefaultPowerType)
	case AttrVirtCPUs:
		return quantityValue(spec.VirtCPUs)
	case AttrVirtFileSize:
		return quantityValue(spec.VirtFileSize)
	case AttrVirtPath:
		return stringValue(spec.VirtPath)
	case AttrVirtRAM:
		return quantityValue(spec.VirtRAM)
	case AttrVirtType:
		return defaulted(spec.VirtType, v1.DefaultVirtType)
	case AttrNetbootEnabled:
		if spec.NetbootEnabled == nil {
			return "", false
		}
		return strconv.FormatBool(*spec.NetbootEnabled), true
	}
	return "", false
}

// observedValue returns the observed value of a scalar attribute.
func observedValue(attribute string, observed *platform.SystemInfo) string {
	switch attribute {
	case AttrProfile:
		return observed.Profile
	case AttrHostname:
		return observed.Hostname
	case AttrGateway:
		return observed.Gateway
	case AttrComment:
		return observed.Comment
	case AttrKickstart:
		return observed.Kickstart
	case AttrPowerType:
		return observed.PowerType
	case AttrVirtCPUs:
		return observed.VirtCPUs
	case AttrVirtFileSize:
		return observed.VirtFileSize
	case AttrVirtPath:
		return observed.VirtPath
	case AttrVirtRAM:
		return observed.VirtRAM
	case AttrVirtType:
		return observed.VirtType
	case AttrNetbootEnabled:
		return strconv.FormatBool(observed.NetbootEnabled)
	}
	return ""
}

// IsDeclared returns whether the attribute was set on the declared system.
func IsDeclared(attribute string, spec *v1.SystemSpec) bool {
	switch attribute {
	case AttrKernelOptions:
		return spec.KernelOptions != nil
	case AttrInterfaces:
		return spec.Interfaces != nil
	}
	_, ok := scalarValue(attribute, spec)
	return ok
}

// AttributeDiffers returns whether a declared attribute differs from its
// observed value.
func AttributeDiffers(attribute string, observed *platform.SystemInfo, spec *v1.SystemSpec) bool {
	switch attribute {
	case AttrKernelOptions:
		return spec.KernelOptions != nil && !common.OptionMapsEqual(observed.KernelOptions, spec.KernelOptions)
	case AttrInterfaces:
		return spec.Interfaces != nil && !common.InterfaceSetsEqual(observed.Interfaces, spec.Interfaces)
	}

	value, ok := scalarValue(attribute, spec)
	if !ok {
		return false
	}

	return value != observedValue(attribute, observed)
}

// PlanAttribute builds the commands required to write one declared
// attribute of an existing system.  Scalar and option attributes produce a
// single edit without a trailing sync.  Interfaces produce the full
// replacement protocol which ends with a sync.
func PlanAttribute(name string, attribute string, observed *platform.SystemInfo, spec *v1.SystemSpec, names *NameGenerator) ([]common.Command, error) {
	switch attribute {
	case AttrKernelOptions:
		if spec.KernelOptions == nil {
			break
		}
		arg := common.Argument("kopts", common.JoinOptions(spec.KernelOptions))
		return []common.Command{common.EditCommand(v1.KindSystem, name, arg)}, nil

	case AttrInterfaces:
		if spec.Interfaces == nil {
			break
		}
		return PlanInterfaces(name, observed.Interfaces, spec.Interfaces, names)

	default:
		value, ok := scalarValue(attribute, spec)
		if !ok {
			break
		}
		arg := common.Argument(attribute, value)
		return []common.Command{common.EditCommand(v1.KindSystem, name, arg)}, nil
	}

	if lo.Contains(Attributes, attribute) {
		return nil, perrors.Errorf("system attribute %q is not declared", attribute)
	}

	return nil, perrors.Errorf("unknown system attribute %q", attribute)
}

// PlanInterfaces builds the command sequence that replaces every interface
// of a system.  The server refuses to remove the last interface of a system
// so a temporary interface is added first and removed last:
//
//  1. add a temporary interface
//  2. delete each observed interface, each followed by a sync
//  3. write every attribute of every desired interface
//  4. delete the temporary interface
//  5. sync
func PlanInterfaces(name string, observed, desired v1.InterfaceSet, names *NameGenerator) ([]common.Command, error) {
	if names == nil {
		names = NewNameGenerator()
	}

	taken := sets.New(observed.Names()...).Insert(desired.Names()...)
	temp, err := names.Generate(taken)
	if err != nil {
		return nil, err
	}

	tempArg := common.Argument(interfaceArgument, temp)
	commands := []common.Command{
		common.EditCommand(v1.KindSystem, name, tempArg, common.Argument(staticArgument, "true")),
	}

	for _, ifname := range observed.Names() {
		commands = append(commands,
			common.EditCommand(v1.KindSystem, name,
				common.Argument(interfaceArgument, ifname),
				common.Switch(deleteInterfaceArgument)),
			common.SyncCommand())
	}

	for _, ifname := range desired.Names() {
		settings := desired[ifname]
		ifArg := common.Argument(interfaceArgument, ifname)

		if len(settings) == 0 {
			// Naming the interface is enough for the server to create it.
			commands = append(commands, common.EditCommand(v1.KindSystem, name, ifArg))
			continue
		}

		for _, key := range settings.Keys() {
			value := v1.FormatSetting(settings[key])
			commands = append(commands,
				common.EditCommand(v1.KindSystem, name, ifArg, common.Argument(key, value)))
		}
	}

	commands = append(commands,
		common.EditCommand(v1.KindSystem, name, tempArg, common.Switch(deleteInterfaceArgument)),
		common.SyncCommand())

	return commands, nil
}

// PlanAdd builds the command that creates a system with the minimum set of
// attributes the server requires.  Network boot is enabled unless it was
// declared otherwise.
func PlanAdd(name string, spec *v1.SystemSpec) common.Command {
	netboot := "true"
	if spec.NetbootEnabled != nil {
		netboot = strconv.FormatBool(*spec.NetbootEnabled)
	}

	return common.AddCommand(v1.KindSystem, name,
		common.Argument(AttrProfile, spec.Profile),
		common.Argument(AttrNetbootEnabled, netboot))
}

// ApplyAttribute returns a copy of the observed state with the declared
// value of one attribute written into it.
func ApplyAttribute(observed platform.SystemInfo, attribute string, spec *v1.SystemSpec) platform.SystemInfo {
	result := observed.DeepCopy()

	switch attribute {
	case AttrKernelOptions:
		result.KernelOptions = spec.KernelOptions.DeepCopy()
		return result
	case AttrInterfaces:
		result.Interfaces = spec.Interfaces.DeepCopy()
		return result
	}

	value, ok := scalarValue(attribute, spec)
	if !ok {
		return result
	}

	switch attribute {
	case AttrProfile:
		result.Profile = value
	case AttrHostname:
		result.Hostname = value
	case AttrGateway:
		result.Gateway = value
	case AttrComment:
		result.Comment = value
	case AttrKickstart:
		result.Kickstart = value
	case AttrPowerType:
		result.PowerType = value
	case AttrVirtCPUs:
		result.VirtCPUs = value
	case AttrVirtFileSize:
		result.VirtFileSize = value
	case AttrVirtPath:
		result.VirtPath = value
	case AttrVirtRAM:
		result.VirtRAM = value
	case AttrVirtType:
		result.VirtType = value
	case AttrNetbootEnabled:
		result.NetbootEnabled = *spec.NetbootEnabled
	}

	return result
}
