/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package common

import (
	"github.com/go-logr/logr"
	perrors "github.com/pkg/errors"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Common reconcile outcome reasons
const (
	ResourceCreated   = "Created"
	ResourceUpdated   = "Updated"
	ResourceDeleted   = "Deleted"
	ResourceUnchanged = "Unchanged"
	ResourceDisabled  = "Disabled"
	ResourceFailed    = "Failed"
)

var logCommon = log.Log.WithName("common")

// ValidationErrorFromList converts a list of field errors into a
// ValidationError.  A nil error is returned if the list is empty.
func ValidationErrorFromList(kind v1.Kind, name string, errs field.ErrorList) error {
	if len(errs) == 0 {
		return nil
	}

	return NewValidationError(perrors.Wrapf(errs.ToAggregate(),
		"invalid %s %q", kind, name).Error())
}

// ErrorHandler is the common error reporting implementation used by all
// reconcilers.  It looks at the type of error that was caught and logs it
// with the appropriate context.
type ErrorHandler struct {
	logr.Logger
}

// NewErrorHandler returns an error handler for the specified logger.  The
// common package logger is used if the logger has no sink.
func NewErrorHandler(logger logr.Logger) *ErrorHandler {
	if logger.GetSink() == nil {
		logger = logCommon
	}
	return &ErrorHandler{Logger: logger}
}

// HandleReconcilerError reports an error raised while reconciling a single
// entity and returns it annotated with the entity identity.  None of these
// errors are retried; the entity is reconciled again on the next pass.
func (h *ErrorHandler) HandleReconcilerError(kind v1.Kind, name string, in error) error {
	if in == nil {
		return nil
	}

	// We use wrapped errors throughout the system so make sure we are looking
	// at the initial error before determining what actually went wrong.
	cause := perrors.Cause(in)

	switch cause.(type) {
	case ValidationError:
		// There is a problem with the data provided by the user.  Nothing
		// was sent to the server.
		h.Error(in, "validation error", "kind", kind, "name", name)

	case RemoteCommandError:
		// The server rejected a command.  Multi-step operations are not
		// rolled back so the entity may be partially updated.
		h.Error(in, "command error", "kind", kind, "name", name,
			"command", cause.(RemoteCommandError).Args)

	case TransportError:
		h.Error(in, "transport error", "kind", kind, "name", name)

	default:
		h.Error(in, "an unhandled error occurred", "kind", kind, "name", name)
	}

	return perrors.Wrapf(in, "%s %q", kind, name)
}
