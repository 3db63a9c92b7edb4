/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package common

import (
	"encoding/json"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// GetDeltaString renders the difference between the current and the desired
// state of an entity.  Both values are converted to their JSON form first so
// that unset attributes and the option flag sentinel are rendered the same
// way as in a manifest.  Lines prefixed with "-" are current values and lines
// prefixed with "+" are desired values.
func GetDeltaString(desired interface{}, current interface{}) (string, error) {
	desiredData, err := toGeneric(desired)
	if err != nil {
		return "", err
	}

	currentData, err := toGeneric(current)
	if err != nil {
		return "", err
	}

	diff := cmp.Diff(currentData, desiredData)
	return strings.TrimSuffix(diff, "\n"), nil
}

func toGeneric(obj interface{}) (map[string]interface{}, error) {
	buf, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	err = json.Unmarshal(buf, &data)
	if err != nil {
		return nil, err
	}

	return data, nil
}
