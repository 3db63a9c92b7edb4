/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package system

import (
	perrors "github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/rand"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	// TempInterfacePrefix is the prefix of every temporary interface name.
	TempInterfacePrefix = "tmp_"

	// tempInterfaceLength is the number of random characters in a temporary
	// interface name.
	tempInterfaceLength = 15

	// maxNameAttempts bounds the number of names drawn before giving up.
	maxNameAttempts = 32
)

// NameSource returns a string of n random characters.  It only needs to
// avoid collisions; it is not used for anything security related.
type NameSource func(n int) string

// NameGenerator produces temporary interface names.
type NameGenerator struct {
	Source NameSource
}

// NewNameGenerator returns a generator drawing from the default random
// source.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{Source: rand.String}
}

// Generate returns a temporary interface name that is not in the taken set.
func (g *NameGenerator) Generate(taken sets.Set[string]) (string, error) {
	source := g.Source
	if source == nil {
		source = rand.String
	}

	for i := 0; i < maxNameAttempts; i++ {
		name := TempInterfacePrefix + source(tempInterfaceLength)
		if !taken.Has(name) {
			return name, nil
		}
	}

	return "", perrors.Errorf("unable to generate a unique interface name after %d attempts", maxNameAttempts)
}
