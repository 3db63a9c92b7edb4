/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package common

import (
	"slices"

	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"k8s.io/apimachinery/pkg/util/sets"
)

// OptionMapsEqual determines whether the observed option map is identical to
// the desired option map.  Both the set of option names and every option
// value must match.  A nil map is equivalent to an empty map.
func OptionMapsEqual(observed, desired v1.OptionMap) bool {
	if !sets.KeySet(observed).Equal(sets.KeySet(desired)) {
		// Something was added or removed.
		return false
	}

	for key, value := range desired {
		if !observed[key].Equal(value) {
			return false
		}
	}

	return true
}

// InterfaceSetsEqual determines whether the observed interfaces satisfy the
// desired interfaces.  The interface names must match exactly.  Within each
// interface only the attributes declared on the desired side and also
// reported on the observed side are compared, by their string form.
// Attributes that are only reported by the server never cause a difference.
//
// This is not a general equality.  It accommodates the way Cobbler reports
// interfaces: unset attributes are dropped on read and the "management"
// attribute is rewritten by the server.
func InterfaceSetsEqual(observed, desired v1.InterfaceSet) bool {
	if !sets.KeySet(observed).Equal(sets.KeySet(desired)) {
		// Interfaces were added or removed.
		return false
	}

	for name, settings := range desired {
		current := observed[name]

		wanted := settings
		if _, ok := current[v1.ManagementSetting]; ok {
			// The server owns this attribute; ignore what the user declared.
			wanted = settings.DeepCopy()
			delete(wanted, v1.ManagementSetting)
		}

		for key, value := range wanted {
			got, ok := current[key]
			if !ok {
				continue
			}

			if v1.FormatSetting(got) != v1.FormatSetting(value) {
				return false
			}
		}
	}

	return true
}

// StringListsEqual determines whether two ordered lists are identical.  A nil
// list is equivalent to an empty list.
func StringListsEqual(observed, desired []string) bool {
	return slices.Equal(observed, desired)
}
