/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package common

import (
	"fmt"
	"regexp"
	"strings"

	perrors "github.com/pkg/errors"
)

// Output fragments reported by cobbler when asked to remove an object that
// does not exist.
var notFoundMessages = []string{
	"unknown system name",
	"unknown profile name",
}

// extractFaultString extracts the fault message from an XML-RPC fault error.
// It searches for the faultString pattern and returns the extracted message,
// or the original error string if no pattern is found.
func extractFaultString(err error) string {
	var reason string
	if err != nil {
		reason = err.Error()
	}

	faultRe := regexp.MustCompile(`(?i)faultstring.*?:\s*"?(.*?)"?$`)
	if result := faultRe.FindStringSubmatch(reason); len(result) > 0 && result[1] != "" {
		return result[1]
	}

	return reason
}

// BaseError defines the common error reporting struct for all other errors
// defined in this package
type BaseError struct {
	message string
}

// Error implements the Error interface for all structures that are derived
// from this one.
func (in BaseError) Error() string {
	return in.message
}

// ValidationError defines a new error type used to differentiate data
// validation errors from other types of errors.  These are raised before any
// remote command is issued.
type ValidationError struct {
	BaseError
}

// RemoteCommandError defines an error to be used when the cobbler command
// line tool exits with a non-zero status.  Cobbler reports most errors on
// stdout so the combined output is retained.
type RemoteCommandError struct {
	BaseError
	Args     []string
	Output   string
	ExitCode int
}

// TransportError defines an error to be used when the query endpoint could
// not be reached or returned a protocol error.
type TransportError struct {
	BaseError
}

// NewValidationError defines a constructor for the ValidationError error type.
func NewValidationError(msg string) error {
	return ValidationError{BaseError{msg}}
}

// NewRemoteCommandError defines a constructor for the RemoteCommandError
// error type.
func NewRemoteCommandError(args []string, output string, exitCode int) error {
	msg := fmt.Sprintf("command %q failed with exit code %d", strings.Join(args, " "), exitCode)
	if output = strings.TrimSpace(output); output != "" {
		msg = fmt.Sprintf("%s: %s", msg, output)
	}
	return RemoteCommandError{
		BaseError: BaseError{msg},
		Args:      args,
		Output:    output,
		ExitCode:  exitCode,
	}
}

// NewTransportError defines a constructor for the TransportError error type.
func NewTransportError(endpoint string, in error) error {
	msg := fmt.Sprintf("failed to query %s: %s", endpoint, extractFaultString(in))
	return TransportError{BaseError{msg}}
}

// IsValidationError returns true if the root cause of the error is a
// ValidationError.
func IsValidationError(err error) bool {
	_, ok := perrors.Cause(err).(ValidationError)
	return ok
}

// IsRemoteCommandError returns true if the root cause of the error is a
// RemoteCommandError.
func IsRemoteCommandError(err error) bool {
	_, ok := perrors.Cause(err).(RemoteCommandError)
	return ok
}

// IsTransportError returns true if the root cause of the error is a
// TransportError.
func IsTransportError(err error) bool {
	_, ok := perrors.Cause(err).(TransportError)
	return ok
}

// IsNotFound returns true if the error was caused by a command referring to
// an object that does not exist on the server.
func IsNotFound(err error) bool {
	cmdErr, ok := perrors.Cause(err).(RemoteCommandError)
	if !ok {
		return false
	}

	for _, msg := range notFoundMessages {
		if strings.Contains(strings.ToLower(cmdErr.Output), msg) {
			return true
		}
	}

	return false
}
