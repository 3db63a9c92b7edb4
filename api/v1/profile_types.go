/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

// ProfileSpec defines the desired state of a Cobbler profile.  Attributes
// that are left unset are not managed and are left to be inherited from the
// distribution or parent profile.
type ProfileSpec struct {
	// Distro defines the distribution that this profile is based on.  It is
	// required unless a parent profile is specified.
	// +optional
	Distro *string `json:"distro,omitempty"`

	// Parent defines the name of the profile that this profile is based on.
	// +optional
	Parent *string `json:"parent,omitempty"`

	// Kickstart defines the path to the kickstart template used by this
	// profile.
	// +optional
	Kickstart *string `json:"kickstart,omitempty"`

	// KernelOptions defines the kernel command line options used during
	// installation.
	// +optional
	KernelOptions OptionMap `json:"kopts,omitempty"`

	// KernelOptionsPost defines the kernel command line options used after
	// installation.
	// +optional
	KernelOptionsPost OptionMap `json:"ks_opts_post,omitempty"`

	// NameServers defines the ordered list of DNS servers.  The list always
	// replaces the current list.
	// +optional
	NameServers []string `json:"nameservers,omitempty"`

	// Repos defines the ordered list of repositories added to the profile.
	// The list always replaces the current list.
	// +optional
	Repos []string `json:"repos,omitempty"`
}

// Profile defines a single declared profile.
type Profile struct {
	// Name uniquely identifies the profile.  It cannot be changed after the
	// profile has been created.
	Name string `json:"name"`

	// Ensure defines whether the profile must exist.
	// +optional
	Ensure EnsureState `json:"ensure,omitempty"`

	ProfileSpec `json:",inline"`
}

// ParentName returns the name of the parent profile or an empty string if
// the profile is not based on another profile.
func (in *ProfileSpec) ParentName() string {
	if in.Parent == nil {
		return ""
	}
	return *in.Parent
}

// DeepCopy returns an independent copy of the spec.
func (in *ProfileSpec) DeepCopy() *ProfileSpec {
	if in == nil {
		return nil
	}

	out := *in
	out.Distro = copyString(in.Distro)
	out.Parent = copyString(in.Parent)
	out.Kickstart = copyString(in.Kickstart)
	out.KernelOptions = in.KernelOptions.DeepCopy()
	out.KernelOptionsPost = in.KernelOptionsPost.DeepCopy()
	out.NameServers = copyStrings(in.NameServers)
	out.Repos = copyStrings(in.Repos)

	return &out
}

func copyString(in *string) *string {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
