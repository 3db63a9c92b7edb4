/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

import (
	"k8s.io/apimachinery/pkg/util/intstr"
)

// SystemSpec defines the desired state of a Cobbler system.
type SystemSpec struct {
	// Profile defines the name of the profile that the system is linked to.
	Profile string `json:"profile"`

	// Hostname defines the hostname of the system.
	// +optional
	Hostname *string `json:"hostname,omitempty"`

	// Gateway defines the IPv4 address of the default gateway.
	// +optional
	Gateway *string `json:"gateway,omitempty"`

	// Comment defines a free form description of the system.
	// +optional
	Comment *string `json:"comment,omitempty"`

	// Kickstart defines the path to the kickstart template used by this
	// system.
	// +optional
	Kickstart *string `json:"kickstart,omitempty"`

	// KernelOptions defines the kernel command line options used during
	// installation.
	// +optional
	KernelOptions OptionMap `json:"kernel_options,omitempty"`

	// PowerType defines the power management driver.
	// +optional
	PowerType *string `json:"power_type,omitempty"`

	// VirtCPUs defines the number of virtual CPUs assigned by koan.
	// +optional
	VirtCPUs *intstr.IntOrString `json:"virt_cpus,omitempty"`

	// VirtFileSize defines the size of the virtual disk image in GB.  Human
	// readable sizes (e.g., 20GiB) are accepted.
	// +optional
	VirtFileSize *intstr.IntOrString `json:"virt_file_size,omitempty"`

	// VirtPath defines the location of the virtual disk image.
	// +optional
	VirtPath *string `json:"virt_path,omitempty"`

	// VirtRAM defines the amount of memory of a virtual system in MB.  Human
	// readable sizes (e.g., 2GiB) are accepted.
	// +optional
	VirtRAM *intstr.IntOrString `json:"virt_ram,omitempty"`

	// VirtType defines the virtualization technology used by koan.
	// +optional
	VirtType *string `json:"virt_type,omitempty"`

	// NetbootEnabled defines whether the system is allowed to reinstall
	// over the network on its next boot.
	// +optional
	NetbootEnabled *bool `json:"netboot_enabled,omitempty"`

	// Interfaces defines the full set of network interfaces of the system.
	// Whenever the set differs from the current set all interfaces are
	// re-created.
	// +optional
	Interfaces InterfaceSet `json:"interfaces,omitempty"`
}

// System defines a single declared system.
type System struct {
	// Name uniquely identifies the system.  It cannot be changed after the
	// system has been created.
	Name string `json:"name"`

	// Ensure defines whether the system must exist.
	// +optional
	Ensure EnsureState `json:"ensure,omitempty"`

	SystemSpec `json:",inline"`
}

// DeepCopy returns an independent copy of the spec.
func (in *SystemSpec) DeepCopy() *SystemSpec {
	if in == nil {
		return nil
	}

	out := *in
	out.Hostname = copyString(in.Hostname)
	out.Gateway = copyString(in.Gateway)
	out.Comment = copyString(in.Comment)
	out.Kickstart = copyString(in.Kickstart)
	out.KernelOptions = in.KernelOptions.DeepCopy()
	out.PowerType = copyString(in.PowerType)
	out.VirtCPUs = copyIntOrString(in.VirtCPUs)
	out.VirtFileSize = copyIntOrString(in.VirtFileSize)
	out.VirtPath = copyString(in.VirtPath)
	out.VirtRAM = copyIntOrString(in.VirtRAM)
	out.VirtType = copyString(in.VirtType)
	out.Interfaces = in.Interfaces.DeepCopy()
	if in.NetbootEnabled != nil {
		value := *in.NetbootEnabled
		out.NetbootEnabled = &value
	}

	return &out
}

func copyIntOrString(in *intstr.IntOrString) *intstr.IntOrString {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
