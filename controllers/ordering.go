/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package controllers

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	"github.com/wind-river/cobbler-deployment-manager/platform"
	"k8s.io/apimachinery/pkg/util/sets"
)

// orderByParent sorts names so that every parent precedes its children.
// Parents outside of the set are ignored.  Siblings keep their relative
// order.  Names caught in a parent cycle are returned separately.
func orderByParent(names []string, parentOf func(string) string) (ordered []string, cyclic []string) {
	member := sets.New(names...)
	done := make(map[string]bool, len(names))
	ordered = make([]string, 0, len(names))

	for len(ordered) < len(names) {
		progress := false
		for _, name := range names {
			if done[name] {
				continue
			}

			parent := parentOf(name)
			if parent != "" && member.Has(parent) && !done[parent] {
				continue
			}

			done[name] = true
			ordered = append(ordered, name)
			progress = true
		}

		if !progress {
			break
		}
	}

	cyclic = lo.Filter(names, func(name string, _ int) bool { return !done[name] })

	return ordered, cyclic
}

// OrderProfiles returns the declared profiles sorted so that every parent is
// created before its children.  A parent cycle is a validation error.
func OrderProfiles(profiles []v1.Profile) ([]v1.Profile, error) {
	byName := lo.KeyBy(profiles, func(p v1.Profile) string { return p.Name })
	names := lo.Map(profiles, func(p v1.Profile, _ int) string { return p.Name })

	ordered, cyclic := orderByParent(names, func(name string) string {
		profile := byName[name]
		return profile.ParentName()
	})

	if len(cyclic) > 0 {
		msg := fmt.Sprintf("profiles have a parent cycle: %s", strings.Join(cyclic, ", "))
		return nil, common.NewValidationError(msg)
	}

	return lo.Map(ordered, func(name string, _ int) v1.Profile { return byName[name] }), nil
}

// OrderProfileRemovals sorts profiles that are about to be removed so that
// children are removed before their parents, based on the observed parent
// of each profile.
func OrderProfileRemovals(names []string, inventory *platform.Inventory) []string {
	ordered, cyclic := orderByParent(names, func(name string) string {
		if info, ok := inventory.FindProfile(name); ok {
			return info.Parent
		}
		return ""
	})

	return lo.Reverse(append(ordered, cyclic...))
}
