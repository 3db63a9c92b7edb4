/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package profile

import (
	"context"

	"github.com/go-logr/logr"
	perrors "github.com/pkg/errors"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	cobblerManager "github.com/wind-river/cobbler-deployment-manager/controllers/manager"
	"github.com/wind-river/cobbler-deployment-manager/platform"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

var logProfile = log.Log.WithName("controller").WithName("profile")

// Entity tracks a single declared profile through one reconciliation pass.
// The observed state is replaced wholesale after every successful mutation
// and is never modified in place.
type Entity struct {
	Desired  v1.Profile
	observed *platform.ProfileInfo
	state    common.EntityState
}

// NewEntity returns an entity for a declared profile.  A nil observed state
// means the profile was not found on the server.
func NewEntity(desired v1.Profile, observed *platform.ProfileInfo) *Entity {
	e := &Entity{Desired: desired, state: common.StateAbsent}
	if observed != nil {
		e.setObserved(*observed)
	}
	return e
}

// Exists returns true if the profile was found on the server.
func (e *Entity) Exists() bool {
	return e.observed != nil
}

// State returns the current lifecycle state.
func (e *Entity) State() common.EntityState {
	return e.state
}

// Observed returns the current observed state; nil if the profile is absent.
func (e *Entity) Observed() *platform.ProfileInfo {
	if e.observed == nil {
		return nil
	}
	result := e.observed.DeepCopy()
	return &result
}

func (e *Entity) setObserved(observed platform.ProfileInfo) {
	e.observed = &observed
	e.state = common.StatePresent
}

func (e *Entity) clearObserved() {
	e.observed = nil
	e.state = common.StateAbsent
}

// ProfileReconciler reconciles declared profiles against the server.
type ProfileReconciler struct {
	cobblerManager.CobblerManager
	Log logr.Logger
}

// NewProfileReconciler returns a reconciler using the specified manager.
func NewProfileReconciler(mgr cobblerManager.CobblerManager) *ProfileReconciler {
	return &ProfileReconciler{CobblerManager: mgr, Log: logProfile}
}

func (r *ProfileReconciler) clients() (platform.Querier, common.CommandRunner, error) {
	querier, err := r.GetQueryClient()
	if err != nil {
		return nil, nil, err
	}

	runner, err := r.GetCommandRunner()
	if err != nil {
		return nil, nil, err
	}

	return querier, runner, nil
}

// Validate checks the declared profile.  Creation preconditions are only
// checked when the profile does not exist yet.
func (r *ProfileReconciler) Validate(e *Entity) error {
	errs := v1.ValidateProfile(&e.Desired)
	if !e.Exists() && !e.Desired.Ensure.IsAbsent() {
		errs = v1.ValidateProfileCreate(&e.Desired)
	}

	return common.ValidationErrorFromList(v1.KindProfile, e.Desired.Name, errs)
}

// Create adds the profile to the server.  A stale profile of the same name
// is removed first so that none of its attributes bleed through.  Only the
// declared attributes that differ from what the server set on its own are
// written afterwards.
func (r *ProfileReconciler) Create(ctx context.Context, e *Entity) ([]string, error) {
	name := e.Desired.Name
	spec := &e.Desired.ProfileSpec

	errs := v1.ValidateProfileCreate(&e.Desired)
	if err := common.ValidationErrorFromList(v1.KindProfile, name, errs); err != nil {
		return nil, err
	}

	querier, runner, err := r.clients()
	if err != nil {
		return nil, err
	}

	e.state = common.StateCreating

	remove := []common.Command{common.RemoveCommand(v1.KindProfile, name)}
	if err := common.ApplyCommands(ctx, runner, remove, r.Log); err != nil {
		// Usually there was nothing to remove.
		r.Log.V(1).Info("ignoring stale profile removal failure", "name", name, "error", err.Error())
	}

	r.Log.Info("creating profile", "name", name)

	err = common.ApplyCommands(ctx, runner, []common.Command{PlanAdd(name, spec)}, r.Log)
	if err != nil {
		return nil, err
	}

	current, err := platform.GetProfile(ctx, querier, name)
	if err != nil {
		return nil, err
	}

	if current == nil {
		// The server accepted the add but does not report the profile; fall
		// back to what was requested so every declared attribute is written.
		current = &platform.ProfileInfo{Name: name}
	}

	commands := make([]common.Command, 0)
	written := make([]string, 0)
	next := *current

	for _, attribute := range Attributes {
		if !AttributeDiffers(attribute, &next, spec) {
			continue
		}

		plan, err := PlanAttribute(name, attribute, spec)
		if err != nil {
			return nil, err
		}

		commands = append(commands, plan...)
		written = append(written, attribute)
		next = ApplyAttribute(next, attribute, spec)
	}

	err = common.ApplyCommands(ctx, runner, append(commands, common.SyncCommand()), r.Log)
	if err != nil {
		return written, err
	}

	e.setObserved(next)

	return written, nil
}

// UpdateAttribute writes one declared attribute if it differs from the
// observed state.  It returns whether any command was issued.
func (r *ProfileReconciler) UpdateAttribute(ctx context.Context, e *Entity, attribute string) (bool, error) {
	if !e.Exists() {
		return false, perrors.Errorf("profile %q does not exist", e.Desired.Name)
	}

	spec := &e.Desired.ProfileSpec
	if !AttributeDiffers(attribute, e.observed, spec) {
		return false, nil
	}

	plan, err := PlanAttribute(e.Desired.Name, attribute, spec)
	if err != nil {
		return false, err
	}

	_, runner, err := r.clients()
	if err != nil {
		return false, err
	}

	r.Log.Info("updating profile attribute", "name", e.Desired.Name, "attribute", attribute)

	e.state = common.StateUpdating

	err = common.ApplyCommands(ctx, runner, common.WithSync(plan), r.Log)
	if err != nil {
		return true, err
	}

	e.setObserved(ApplyAttribute(*e.observed, attribute, spec))

	return true, nil
}

// Update writes every enabled declared attribute that differs from the
// observed state and stops at the first failure.
func (r *ProfileReconciler) Update(ctx context.Context, e *Entity) ([]string, error) {
	if err := r.Validate(e); err != nil {
		return nil, err
	}

	written := make([]string, 0)
	for _, attribute := range Attributes {
		if !IsAttributeEnabled(attribute) {
			continue
		}

		changed, err := r.UpdateAttribute(ctx, e, attribute)
		if changed {
			written = append(written, attribute)
		}
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// Destroy removes the profile from the server.  A profile that is already
// gone is treated as removed.
func (r *ProfileReconciler) Destroy(ctx context.Context, e *Entity) error {
	_, runner, err := r.clients()
	if err != nil {
		return err
	}

	r.Log.Info("deleting profile", "name", e.Desired.Name)

	e.state = common.StateDestroying

	commands := []common.Command{common.RemoveCommand(v1.KindProfile, e.Desired.Name), common.SyncCommand()}
	err = common.ApplyCommands(ctx, runner, commands, r.Log)
	if err != nil {
		if !common.IsNotFound(err) {
			return err
		}
		r.Log.Info("profile was already removed", "name", e.Desired.Name)
		err = common.ApplyCommands(ctx, runner, []common.Command{common.SyncCommand()}, r.Log)
		if err != nil {
			e.clearObserved()
			return err
		}
	}

	e.clearObserved()

	return nil
}

// ReconcileResource brings one declared profile in line with its ensure
// value and reports the outcome.
func (r *ProfileReconciler) ReconcileResource(ctx context.Context, e *Entity) common.ReconcileResult {
	result := common.ReconcileResult{
		Kind:   v1.KindProfile,
		Name:   e.Desired.Name,
		Reason: common.ResourceUnchanged,
	}

	var err error

	if e.Desired.Ensure.IsAbsent() {
		if e.Exists() {
			err = r.Destroy(ctx, e)
			result.Reason = common.ResourceDeleted
		}

	} else if !e.Exists() {
		result.Attributes, err = r.Create(ctx, e)
		result.Reason = common.ResourceCreated

	} else {
		result.Delta = r.Delta(e)
		result.Attributes, err = r.Update(ctx, e)
		if len(result.Attributes) > 0 {
			result.Reason = common.ResourceUpdated
		}
	}

	result.State = e.State()
	if err != nil {
		result.Reason = common.ResourceFailed
		result.Err = common.NewErrorHandler(r.Log).HandleReconcilerError(v1.KindProfile, e.Desired.Name, err)
	}

	return result
}

// Pending returns the enabled attributes that differ from the observed
// state without issuing any command.
func (r *ProfileReconciler) Pending(e *Entity) []string {
	if !e.Exists() {
		return nil
	}

	result := make([]string, 0)
	for _, attribute := range Attributes {
		if IsAttributeEnabled(attribute) && AttributeDiffers(attribute, e.observed, &e.Desired.ProfileSpec) {
			result = append(result, attribute)
		}
	}

	return result
}

// Delta renders the declared attributes that differ from the observed
// state.
func (r *ProfileReconciler) Delta(e *Entity) string {
	if !e.Exists() {
		return ""
	}

	desired := *e.observed
	for _, attribute := range Attributes {
		if AttributeDiffers(attribute, e.observed, &e.Desired.ProfileSpec) {
			desired = ApplyAttribute(desired, attribute, &e.Desired.ProfileSpec)
		}
	}

	delta, err := common.GetDeltaString(desired, *e.observed)
	if err != nil {
		r.Log.Info("failed to render delta", "name", e.Desired.Name, "error", err.Error())
		return ""
	}

	if delta != "" {
		r.Log.Info("delta configuration", "name", e.Desired.Name, "delta", delta)
	}

	return delta
}
