/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

import (
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	hostnameRegex = regexp.MustCompile(`^(\.[a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])$`)

	// Only the three leading octets are checked.
	gatewayRegex = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}`)
)

// IsValidHostname returns true if the value is an acceptable system hostname.
// An empty value is accepted and means that the hostname is cleared.
func IsValidHostname(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || hostnameRegex.MatchString(value)
}

// IsValidGateway returns true if the value is an acceptable gateway address.
// An empty value is accepted and means that the gateway is cleared.
func IsValidGateway(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || gatewayRegex.MatchString(value)
}

func validateName(name string, path *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	if name == "" {
		allErrs = append(allErrs, field.Required(path, "name must not be blank"))
	} else if strings.ContainsAny(name, " \t\n") {
		allErrs = append(allErrs, field.Invalid(path, name, "name must not contain whitespace characters"))
	}

	return allErrs
}

func validateEnsure(ensure EnsureState, path *field.Path) field.ErrorList {
	switch ensure {
	case "", EnsurePresent, EnsureAbsent:
		return nil
	}

	return field.ErrorList{field.NotSupported(path, ensure,
		[]string{string(EnsurePresent), string(EnsureAbsent)})}
}

func validateOptions(options OptionMap, path *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	for _, key := range options.Keys() {
		if key == "" || strings.ContainsAny(key, " \t=") {
			allErrs = append(allErrs, field.Invalid(path.Key(key), key,
				"option names must not be blank or contain whitespace or '='"))
		}
	}

	return allErrs
}

// ValidateProfile validates the attributes of a declared profile that are
// checked regardless of the operation being performed.
func ValidateProfile(in *Profile) field.ErrorList {
	allErrs := field.ErrorList{}

	allErrs = append(allErrs, validateName(in.Name, field.NewPath("name"))...)
	allErrs = append(allErrs, validateEnsure(in.Ensure, field.NewPath("ensure"))...)
	allErrs = append(allErrs, validateOptions(in.KernelOptions, field.NewPath("kopts"))...)
	allErrs = append(allErrs, validateOptions(in.KernelOptionsPost, field.NewPath("ks_opts_post"))...)

	return allErrs
}

// ValidateProfileCreate validates the preconditions for creating a profile.
// Cobbler requires a profile to be based on either a distribution or another
// profile.
func ValidateProfileCreate(in *Profile) field.ErrorList {
	allErrs := ValidateProfile(in)

	if (in.Distro == nil || *in.Distro == "") && in.ParentName() == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("distro"),
			"you must specify \"distro\" or \"parent\" for profile"))
	}

	return allErrs
}

// ValidateSystem validates the attributes of a declared system.
func ValidateSystem(in *System) field.ErrorList {
	allErrs := field.ErrorList{}

	allErrs = append(allErrs, validateName(in.Name, field.NewPath("name"))...)
	allErrs = append(allErrs, validateEnsure(in.Ensure, field.NewPath("ensure"))...)

	if in.Ensure.IsAbsent() {
		// Nothing else matters when the system is being removed.
		return allErrs
	}

	if in.Profile == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("profile"),
			"a system must be linked to a profile"))
	}

	if in.Hostname != nil && !IsValidHostname(*in.Hostname) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("hostname"),
			*in.Hostname, "not a valid hostname"))
	}

	if in.Gateway != nil && !IsValidGateway(*in.Gateway) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("gateway"),
			*in.Gateway, "not a valid IP address"))
	}

	allErrs = append(allErrs, validateOptions(in.KernelOptions, field.NewPath("kernel_options"))...)

	if in.Interfaces != nil {
		path := field.NewPath("interfaces")
		if len(in.Interfaces) == 0 {
			// Cobbler refuses to remove the last interface of a system.
			allErrs = append(allErrs, field.Invalid(path, in.Interfaces,
				"at least one interface must be declared"))
		}

		for _, name := range in.Interfaces.Names() {
			if name == "" || strings.ContainsAny(name, " \t") {
				allErrs = append(allErrs, field.Invalid(path.Key(name), name,
					"interface names must not be blank or contain whitespace"))
			}
		}
	}

	return allErrs
}
