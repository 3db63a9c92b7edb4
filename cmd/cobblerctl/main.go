/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package main

import "github.com/wind-river/cobbler-deployment-manager/cmd/cobblerctl/cmd"

func main() {
	cmd.Execute()
}
