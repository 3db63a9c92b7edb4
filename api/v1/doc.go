/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

// Package v1 contains the declared resource definitions for the Cobbler
// deployment manager.
//
// The attribute names follow the Cobbler object model which is documented
// with the cobbler command line tool.  Two kinds of resources are managed:
// profiles and systems.  A system always references a profile and a profile
// references either a distribution or a parent profile.
//
// The API documentation contained within this package is intended to provide
// additional information related directly to the usage of the Deployment
// Manager.  There is only minimal information about the nature of each
// attribute to provide the reader with some context.
package v1
