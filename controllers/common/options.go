/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package common

import (
	"strings"

	"github.com/samber/lo"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
)

// ExpandOptions converts an option map into command line tokens.  Flags
// produce a bare "key" token and every other option produces one "key=value"
// token per value.  Cobbler stores options as an unordered mapping so tokens
// are emitted in lexical key order to keep commands deterministic.
func ExpandOptions(options v1.OptionMap) []string {
	return lo.FlatMap(options.Keys(), func(key string, _ int) []string {
		value := options[key]
		if value.IsFlag() {
			return []string{key}
		}
		return lo.Map(value.Tokens(), func(token string, _ int) string {
			return key + "=" + token
		})
	})
}

// JoinOptions renders an option map as a single space separated argument
// value.
func JoinOptions(options v1.OptionMap) string {
	return strings.Join(ExpandOptions(options), " ")
}
