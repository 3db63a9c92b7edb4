/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package platform

import (
	"context"
	"sort"
	"strconv"
	"strings"

	perrors "github.com/pkg/errors"
	"github.com/samber/lo"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
)

// ListProfiles queries the server for all profiles and normalizes each
// record.  The result is sorted by name.
func ListProfiles(ctx context.Context, client Querier) ([]ProfileInfo, error) {
	records, err := client.Query(ctx, v1.KindProfile)
	if err != nil {
		err = perrors.Wrap(err, "failed to list profiles")
		return nil, err
	}

	result := make([]ProfileInfo, 0, len(records))
	for _, record := range records {
		info := NewProfileInfo(record)
		if info.Name == "" {
			logPlatform.Info("ignoring profile record without a name")
			continue
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// ListSystems queries the server for all systems and normalizes each record.
// The result is sorted by name.
func ListSystems(ctx context.Context, client Querier) ([]SystemInfo, error) {
	records, err := client.Query(ctx, v1.KindSystem)
	if err != nil {
		err = perrors.Wrap(err, "failed to list systems")
		return nil, err
	}

	result := make([]SystemInfo, 0, len(records))
	for _, record := range records {
		info := NewSystemInfo(record)
		if info.Name == "" {
			logPlatform.Info("ignoring system record without a name")
			continue
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// GetProfile re-reads a single profile.  The server has no single entity
// query so the full list is fetched and filtered.
func GetProfile(ctx context.Context, client Querier, name string) (*ProfileInfo, error) {
	profiles, err := ListProfiles(ctx, client)
	if err != nil {
		return nil, err
	}

	info, ok := lo.Find(profiles, func(p ProfileInfo) bool { return p.Name == name })
	if !ok {
		return nil, nil
	}

	return &info, nil
}

// GetSystem re-reads a single system.
func GetSystem(ctx context.Context, client Querier, name string) (*SystemInfo, error) {
	systems, err := ListSystems(ctx, client)
	if err != nil {
		return nil, err
	}

	info, ok := lo.Find(systems, func(s SystemInfo) bool { return s.Name == name })
	if !ok {
		return nil, nil
	}

	return &info, nil
}

// NewProfileInfo normalizes a raw profile record.
func NewProfileInfo(record Record) ProfileInfo {
	return ProfileInfo{
		Name:              record.Scalar("name"),
		Distro:            record.Scalar("distro"),
		Parent:            record.Scalar("parent"),
		Kickstart:         record.Scalar("kickstart"),
		KernelOptions:     record.Options("kernel_options"),
		KernelOptionsPost: record.Options("kernel_options_post"),
		NameServers:       record.List("name_servers"),
		Repos:             record.List("repos"),
	}
}

// NewSystemInfo normalizes a raw system record.
func NewSystemInfo(record Record) SystemInfo {
	return SystemInfo{
		Name:           record.Scalar("name"),
		Profile:        record.Scalar("profile"),
		Hostname:       record.Scalar("hostname"),
		Gateway:        record.Scalar("gateway"),
		Comment:        record.Scalar("comment"),
		Kickstart:      record.Scalar("kickstart"),
		KernelOptions:  record.Options("kernel_options"),
		PowerType:      record.Scalar("power_type"),
		VirtCPUs:       record.Scalar("virt_cpus"),
		VirtFileSize:   record.Scalar("virt_file_size"),
		VirtPath:       record.Scalar("virt_path"),
		VirtRAM:        record.Scalar("virt_ram"),
		VirtType:       record.Scalar("virt_type"),
		NetbootEnabled: record.Bool("netboot_enabled"),
		Interfaces:     record.Interfaces("interfaces"),
	}
}

// Scalar returns the string form of a scalar field.  Missing fields and
// numeric fields are handled uniformly.
func (in Record) Scalar(key string) string {
	return v1.FormatSetting(in[key])
}

// Bool returns the boolean value of a field.  The server reports booleans
// either natively or as strings depending on the field and its version.
func (in Record) Bool(key string) bool {
	switch v := in[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		result, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && result
	}
	return false
}

// List returns a list field.  The server may report an unset or inherited
// list as a string so those are split on whitespace; the inherit marker
// yields an empty list.
func (in Record) List(key string) []string {
	switch v := in[key].(type) {
	case []interface{}:
		if len(v) == 0 {
			return nil
		}
		return lo.Map(v, func(item interface{}, _ int) string {
			return v1.FormatSetting(item)
		})
	case string:
		if v == v1.InheritValue {
			return nil
		}
		fields := strings.Fields(v)
		if len(fields) == 0 {
			return nil
		}
		return fields
	}
	return nil
}

// Options returns an option map field.  Values that are empty strings or
// empty lists denote unset options and are dropped.  A repeated option is
// reported as a list and kept as one value per occurrence.  Options reported
// as a single string are split into tokens first.
func (in Record) Options(key string) v1.OptionMap {
	result := v1.OptionMap{}

	switch v := in[key].(type) {
	case map[string]interface{}:
		for name, value := range v {
			if v1.IsEmptySetting(value) {
				continue
			}
			if items, ok := value.([]interface{}); ok {
				result[name] = v1.ListOption(lo.Map(items, func(item interface{}, _ int) string {
					return v1.FormatSetting(item)
				})...)
				continue
			}
			result[name] = v1.ParseOptionValue(v1.FormatSetting(value))
		}

	case string:
		if v == v1.InheritValue {
			break
		}
		values := map[string][]string{}
		for _, token := range strings.Fields(v) {
			name, value, found := strings.Cut(token, "=")
			if !found {
				result[name] = v1.FlagOption()
			} else if value != "" {
				values[name] = append(values[name], value)
			}
		}
		for name, items := range values {
			result[name] = v1.ListOption(items...)
		}
	}

	return result
}

// Interfaces returns the per interface settings of a system.  Only settings
// with a value are retained.
func (in Record) Interfaces(key string) v1.InterfaceSet {
	result := v1.InterfaceSet{}

	interfaces, ok := in[key].(map[string]interface{})
	if !ok {
		return result
	}

	for name, raw := range interfaces {
		settings := v1.InterfaceSettings{}
		if values, ok := raw.(map[string]interface{}); ok {
			for setting, value := range values {
				if v1.IsEmptySetting(value) {
					continue
				}
				settings[setting] = value
			}
		}
		result[name] = settings
	}

	return result
}
