/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

import (
	"encoding/json"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// FlagSentinel is the value used in manifests and returned by the Cobbler API
// to represent an option that has no value (i.e., a bare kernel flag).
const FlagSentinel = "~"

// OptionValue is the value of a single kernel or kickstart option.  An option
// is either a bare flag (e.g., "noacpi"), a key/value pair
// (e.g., "selinux=permissive"), or an option repeated with several values
// (e.g., "console=tty0 console=ttyS0,115200").
type OptionValue struct {
	// Flag is set if the option has no value.
	Flag bool

	// Value holds the option value if the option is not a flag.
	Value string

	// Values holds the values of a repeated option in command line order.
	Values []string
}

// FlagOption returns an OptionValue representing a bare flag.
func FlagOption() OptionValue {
	return OptionValue{Flag: true}
}

// StringOption returns an OptionValue representing a key/value option.
func StringOption(value string) OptionValue {
	return OptionValue{Value: value}
}

// ListOption returns an OptionValue for an option repeated once per value.
// A single value produces a plain key/value option.
func ListOption(values ...string) OptionValue {
	switch len(values) {
	case 0:
		return FlagOption()
	case 1:
		return ParseOptionValue(values[0])
	}
	return OptionValue{Values: append([]string(nil), values...)}
}

// ParseOptionValue converts the textual representation used by manifests and
// by the Cobbler API into an OptionValue.
func ParseOptionValue(value string) OptionValue {
	if value == FlagSentinel {
		return FlagOption()
	}
	return StringOption(value)
}

// IsFlag returns true if the option has no value.
func (in OptionValue) IsFlag() bool {
	return in.Flag
}

// IsList returns true if the option is repeated on the command line.
func (in OptionValue) IsList() bool {
	return len(in.Values) > 0
}

// Tokens returns the option values in the order they are written.  A flag
// has no values.
func (in OptionValue) Tokens() []string {
	switch {
	case in.Flag:
		return nil
	case in.IsList():
		return in.Values
	}
	return []string{in.Value}
}

// Equal returns true if both options have the same form and values.
func (in OptionValue) Equal(other OptionValue) bool {
	return in.Flag == other.Flag && slices.Equal(in.Tokens(), other.Tokens())
}

// String returns the textual representation of the option value.
func (in OptionValue) String() string {
	if in.Flag {
		return FlagSentinel
	}
	if in.IsList() {
		return "[" + strings.Join(in.Values, ", ") + "]"
	}
	return in.Value
}

// DeepCopy returns an independent copy of the option value.
func (in OptionValue) DeepCopy() OptionValue {
	out := in
	if in.Values != nil {
		out.Values = append([]string(nil), in.Values...)
	}
	return out
}

// MarshalJSON renders flags with the sentinel value and repeated options as
// a list so that exported manifests can be read back.
func (in OptionValue) MarshalJSON() ([]byte, error) {
	if in.IsList() {
		return json.Marshal(in.Values)
	}
	return json.Marshal(in.String())
}

// UnmarshalJSON accepts strings, numbers, booleans, lists and null.  A null
// value or the sentinel string both produce a flag.  A list produces a
// repeated option.
func (in *OptionValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*in = FlagOption()
	case string:
		*in = ParseOptionValue(v)
	case float64:
		*in = StringOption(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*in = StringOption(strconv.FormatBool(v))
	case []interface{}:
		*in = ListOption(lo.Map(v, func(item interface{}, _ int) string {
			return FormatSetting(item)
		})...)
	default:
		*in = StringOption(FormatSetting(v))
	}

	return nil
}

// OptionMap is a set of kernel or kickstart options keyed by option name.
// Ordering is not significant.
type OptionMap map[string]OptionValue

// Keys returns the option names in lexical order.
func (in OptionMap) Keys() []string {
	keys := lo.Keys(in)
	sort.Strings(keys)
	return keys
}

// DeepCopy returns an independent copy of the map.
func (in OptionMap) DeepCopy() OptionMap {
	if in == nil {
		return nil
	}

	out := make(OptionMap, len(in))
	for k, v := range in {
		out[k] = v.DeepCopy()
	}

	return out
}
