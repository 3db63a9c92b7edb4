/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package platform

import (
	"context"

	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
)

// ProfileInfo defines the observed state of a single profile.  It is a value
// type; reconcilers replace it wholesale after each successful mutation.
type ProfileInfo struct {
	Name              string       `json:"name"`
	Distro            string       `json:"distro,omitempty"`
	Parent            string       `json:"parent,omitempty"`
	Kickstart         string       `json:"kickstart,omitempty"`
	KernelOptions     v1.OptionMap `json:"kopts,omitempty"`
	KernelOptionsPost v1.OptionMap `json:"ks_opts_post,omitempty"`
	NameServers       []string     `json:"nameservers,omitempty"`
	Repos             []string     `json:"repos,omitempty"`
}

// SystemInfo defines the observed state of a single system.  Numeric virt
// attributes are kept in their string form so that they compare uniformly
// against declared values.
type SystemInfo struct {
	Name           string          `json:"name"`
	Profile        string          `json:"profile"`
	Hostname       string          `json:"hostname,omitempty"`
	Gateway        string          `json:"gateway,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	Kickstart      string          `json:"kickstart,omitempty"`
	KernelOptions  v1.OptionMap    `json:"kernel_options,omitempty"`
	PowerType      string          `json:"power_type,omitempty"`
	VirtCPUs       string          `json:"virt_cpus,omitempty"`
	VirtFileSize   string          `json:"virt_file_size,omitempty"`
	VirtPath       string          `json:"virt_path,omitempty"`
	VirtRAM        string          `json:"virt_ram,omitempty"`
	VirtType       string          `json:"virt_type,omitempty"`
	NetbootEnabled bool            `json:"netboot_enabled"`
	Interfaces     v1.InterfaceSet `json:"interfaces,omitempty"`
}

// Inventory defines the entities that are collected thru the query API in a
// single reconciliation pass.  It is populated once per pass and acts as a
// cache of data that can be passed around rather than having to re-read data
// that is required by multiple reconcilers.
type Inventory struct {
	Profiles []ProfileInfo
	Systems  []SystemInfo
}

// PopulateInventory reads every profile and system from the server.
func (in *Inventory) PopulateInventory(ctx context.Context, client Querier) error {
	var err error

	in.Profiles, err = ListProfiles(ctx, client)
	if err != nil {
		return err
	}

	in.Systems, err = ListSystems(ctx, client)
	if err != nil {
		return err
	}

	return nil
}

// FindProfile looks up a profile by name.
func (in *Inventory) FindProfile(name string) (*ProfileInfo, bool) {
	for i := range in.Profiles {
		if in.Profiles[i].Name == name {
			return &in.Profiles[i], true
		}
	}
	return nil, false
}

// FindSystem looks up a system by name.
func (in *Inventory) FindSystem(name string) (*SystemInfo, bool) {
	for i := range in.Systems {
		if in.Systems[i].Name == name {
			return &in.Systems[i], true
		}
	}
	return nil, false
}

// DeepCopy returns a copy of the observed state that shares no memory with
// the original.
func (in ProfileInfo) DeepCopy() ProfileInfo {
	out := in
	out.KernelOptions = in.KernelOptions.DeepCopy()
	out.KernelOptionsPost = in.KernelOptionsPost.DeepCopy()
	if in.NameServers != nil {
		out.NameServers = append([]string{}, in.NameServers...)
	}
	if in.Repos != nil {
		out.Repos = append([]string{}, in.Repos...)
	}
	return out
}

// DeepCopy returns a copy of the observed state that shares no memory with
// the original.
func (in SystemInfo) DeepCopy() SystemInfo {
	out := in
	out.KernelOptions = in.KernelOptions.DeepCopy()
	out.Interfaces = in.Interfaces.DeepCopy()
	return out
}
