/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ManagementSetting is the interface attribute that Cobbler maintains on its
// own.  It is reported on every read regardless of what was written.
const ManagementSetting = "management"

// InterfaceSettings defines the attributes of a single network interface
// (e.g., mac_address, static, ip_address, netmask, dns_name).  The attribute
// names are the Cobbler API names with underscores.  Values may be strings,
// booleans, numbers, lists or null.
type InterfaceSettings map[string]interface{}

// Keys returns the attribute names in lexical order.
func (in InterfaceSettings) Keys() []string {
	keys := lo.Keys(in)
	sort.Strings(keys)
	return keys
}

// DeepCopy returns an independent copy of the settings.  List values are
// copied; scalar values are immutable.
func (in InterfaceSettings) DeepCopy() InterfaceSettings {
	if in == nil {
		return nil
	}

	out := make(InterfaceSettings, len(in))
	for k, v := range in {
		switch list := v.(type) {
		case []interface{}:
			out[k] = append([]interface{}{}, list...)
		case []string:
			out[k] = append([]string{}, list...)
		default:
			out[k] = v
		}
	}

	return out
}

// InterfaceSet defines the full set of network interfaces of a system keyed
// by interface name.
type InterfaceSet map[string]InterfaceSettings

// Names returns the interface names in lexical order.
func (in InterfaceSet) Names() []string {
	names := lo.Keys(in)
	sort.Strings(names)
	return names
}

// DeepCopy returns an independent copy of the interface set.
func (in InterfaceSet) DeepCopy() InterfaceSet {
	if in == nil {
		return nil
	}

	out := make(InterfaceSet, len(in))
	for name, settings := range in {
		out[name] = settings.DeepCopy()
	}

	return out
}

// FormatSetting converts an attribute value into the string form used both
// for comparisons and on the cobbler command line.  Lists are joined with
// single spaces and a nil value is rendered as an empty string.
func FormatSetting(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return strings.Join(v, " ")
	case []interface{}:
		return strings.Join(lo.Map(v, func(item interface{}, _ int) string {
			return FormatSetting(item)
		}), " ")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsEmptySetting returns true for the values Cobbler uses to represent an
// unset attribute: nil, an empty string, or an empty list.
func IsEmptySetting(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}
