/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package system

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

var logSystem = log.Log.WithName("controller").WithName("system")

// Entity tracks a single declared system through one reconciliation pass.
// The observed state is replaced wholesale after every successful mutation
// and is never modified in place.
type Entity struct {
	Desired  v1.System
	observed *platform.SystemInfo
	state    common.EntityState
}

// NewEntity returns an entity for a declared system.  A nil observed state
// means the system was not found on the server.
func NewEntity(desired v1.System, observed *platform.SystemInfo) *Entity {
	e := &Entity{Desired: desired, state: common.StateAbsent}
	if observed != nil {
		e.setObserved(*observed)
	}
	return e
}

// Exists returns true if the system was found on the server.
func (e *Entity) Exists() bool {
	return e.observed != nil
}

// State returns the current lifecycle state.
func (e *Entity) State() common.EntityState {
	return e.state
}

// Observed returns the current observed state; nil if the system is absent.
func (e *Entity) Observed() *platform.SystemInfo {
	if e.observed == nil {
		return nil
	}
	result := e.observed.DeepCopy()
	return &result
}

func (e *Entity) setObserved(observed platform.SystemInfo) {
	e.observed = &observed
	e.state = common.StatePresent
}

func (e *Entity) clearObserved() {
	e.observed = nil
	e.state = common.StateAbsent
}

// EffectiveSpec returns the declared spec merged with the system defaults
// and with human readable sizes converted to server units.
func EffectiveSpec(in *v1.SystemSpec) (*v1.SystemSpec, error) {
	spec := in.DeepCopy()

	if err := v1.MergeSystemDefaults(spec); err != nil {
		return nil, err
	}

	if err := v1.NormalizeSizes(spec); err != nil {
		return nil, err
	}

	return spec, nil
}

// SystemReconciler reconciles declared systems against the server.
type SystemReconciler struct {
	cobblerManager.CobblerManager
	Log   logr.Logger
	Names *NameGenerator
}

// NewSystemReconciler returns a reconciler using the specified manager.
func NewSystemReconciler(mgr cobblerManager.CobblerManager) *SystemReconciler {
	return &SystemReconciler{
		CobblerManager: mgr,
		Log:            logSystem,
		Names:          NewNameGenerator(),
	}
}

func (r *SystemReconciler) clients() (platform.Querier, common.CommandRunner, error) {
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

// Validate checks the declared system.
func (r *SystemReconciler) Validate(e *Entity) error {
	errs := v1.ValidateSystem(&e.Desired)
	return common.ValidationErrorFromList(v1.KindSystem, e.Desired.Name, errs)
}

func (r *SystemReconciler) spec(e *Entity) (*v1.SystemSpec, error) {
	spec, err := EffectiveSpec(&e.Desired.SystemSpec)
	if err != nil {
		return nil, common.NewValidationError(perrors.Wrapf(err,
			"system %q has invalid attributes", e.Desired.Name).Error())
	}
	return spec, nil
}

// Create adds the system to the server and then writes every declared
// attribute that differs from what the server set on its own.
func (r *SystemReconciler) Create(ctx context.Context, e *Entity) ([]string, error) {
	name := e.Desired.Name

	if err := r.Validate(e); err != nil {
		return nil, err
	}

	spec, err := r.spec(e)
	if err != nil {
		return nil, err
	}

	querier, runner, err := r.clients()
	if err != nil {
		return nil, err
	}

	r.Log.Info("creating system", "name", name, "profile", spec.Profile)

	e.state = common.StateCreating

	err = common.ApplyCommands(ctx, runner, []common.Command{PlanAdd(name, spec)}, r.Log)
	if err != nil {
		return nil, err
	}

	current, err := platform.GetSystem(ctx, querier, name)
	if err != nil {
		return nil, err
	}

	if current == nil {
		current = &platform.SystemInfo{Name: name, Profile: spec.Profile}
	}

	commands := make([]common.Command, 0)
	written := make([]string, 0)
	next := *current

	for _, attribute := range Attributes {
		if !AttributeDiffers(attribute, &next, spec) {
			continue
		}

		plan, err := PlanAttribute(name, attribute, &next, spec, r.Names)
		if err != nil {
			return nil, err
		}

		commands = append(commands, plan...)
		written = append(written, attribute)
		next = ApplyAttribute(next, attribute, spec)
	}

	// The interface protocol already ends with a sync.
	if len(commands) == 0 || !commands[len(commands)-1].IsSync() {
		commands = append(commands, common.SyncCommand())
	}

	err = common.ApplyCommands(ctx, runner, commands, r.Log)
	if err != nil {
		return written, err
	}

	e.setObserved(next)

	return written, nil
}

// UpdateAttribute writes one declared attribute if it differs from the
// observed state.  It returns whether any command was issued.
func (r *SystemReconciler) UpdateAttribute(ctx context.Context, e *Entity, attribute string) (bool, error) {
	if !e.Exists() {
		return false, perrors.Errorf("system %q does not exist", e.Desired.Name)
	}

	spec, err := r.spec(e)
	if err != nil {
		return false, err
	}

	if !AttributeDiffers(attribute, e.observed, spec) {
		return false, nil
	}

	plan, err := PlanAttribute(e.Desired.Name, attribute, e.observed, spec, r.Names)
	if err != nil {
		return false, err
	}

	_, runner, err := r.clients()
	if err != nil {
		return false, err
	}

	r.Log.Info("updating system attribute", "name", e.Desired.Name, "attribute", attribute)

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
func (r *SystemReconciler) Update(ctx context.Context, e *Entity) ([]string, error) {
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

// Destroy removes the system from the server.  A system that is already
// gone is treated as removed.
func (r *SystemReconciler) Destroy(ctx context.Context, e *Entity) error {
	_, runner, err := r.clients()
	if err != nil {
		return err
	}

	r.Log.Info("deleting system", "name", e.Desired.Name)

	e.state = common.StateDestroying

	commands := []common.Command{common.RemoveCommand(v1.KindSystem, e.Desired.Name), common.SyncCommand()}
	err = common.ApplyCommands(ctx, runner, commands, r.Log)
	if err != nil {
		if !common.IsNotFound(err) {
			return err
		}
		r.Log.Info("system was already removed", "name", e.Desired.Name)
		err = common.ApplyCommands(ctx, runner, []common.Command{common.SyncCommand()}, r.Log)
		if err != nil {
			e.clearObserved()
			return err
		}
	}

	e.clearObserved()

	return nil
}

// ReconcileResource brings one declared system in line with its ensure
// value and reports the outcome.
func (r *SystemReconciler) ReconcileResource(ctx context.Context, e *Entity) common.ReconcileResult {
	result := common.ReconcileResult{
		Kind:   v1.KindSystem,
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
		result.Err = common.NewErrorHandler(r.Log).HandleReconcilerError(v1.KindSystem, e.Desired.Name, err)
	}

	return result
}

// Pending returns the enabled attributes that differ from the observed
// state without issuing any command.
func (r *SystemReconciler) Pending(e *Entity) []string {
	if !e.Exists() {
		return nil
	}

	spec, err := EffectiveSpec(&e.Desired.SystemSpec)
	if err != nil {
		return nil
	}

	result := make([]string, 0)
	for _, attribute := range Attributes {
		if IsAttributeEnabled(attribute) && AttributeDiffers(attribute, e.observed, spec) {
			result = append(result, attribute)
		}
	}

	return result
}

// Delta renders the declared attributes that differ from the observed
// state.
func (r *SystemReconciler) Delta(e *Entity) string {
	if !e.Exists() {
		return ""
	}

	spec, err := EffectiveSpec(&e.Desired.SystemSpec)
	if err != nil {
		return ""
	}

	desired := *e.observed
	for _, attribute := range Attributes {
		if AttributeDiffers(attribute, e.observed, spec) {
			desired = ApplyAttribute(desired, attribute, spec)
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
