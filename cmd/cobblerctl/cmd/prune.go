/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package cmd

import (
	utils "github.com/wind-river/cobbler-deployment-manager/common"
)

// setPrune enables the removal of undeclared entities for this run only.
func setPrune() {
	utils.SetReconcilerOption(utils.Profile, utils.DeleteAbsent, true)
	utils.SetReconcilerOption(utils.System, utils.DeleteAbsent, true)
}
