/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	perrors "github.com/pkg/errors"
	"github.com/samber/lo"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	utils "github.com/wind-river/cobbler-deployment-manager/common"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	cobblerManager "github.com/wind-river/cobbler-deployment-manager/controllers/manager"
	"github.com/wind-river/cobbler-deployment-manager/controllers/profile"
	"github.com/wind-river/cobbler-deployment-manager/controllers/system"
	"github.com/wind-river/cobbler-deployment-manager/platform"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

var logDeployment = log.Log.WithName("controller").WithName("deployment")

// DeploymentReconciler runs reconciliation passes over a full deployment.
// Entities are reconciled one at a time in dependency order: profiles
// (parents first), then systems, then removals (systems first, then child
// profiles before their parents).
type DeploymentReconciler struct {
	cobblerManager.CobblerManager
	Log      logr.Logger
	Profiles *profile.ProfileReconciler
	Systems  *system.SystemReconciler
}

// NewDeploymentReconciler returns a pass driver using the specified manager.
func NewDeploymentReconciler(mgr cobblerManager.CobblerManager) *DeploymentReconciler {
	return &DeploymentReconciler{
		CobblerManager: mgr,
		Log:            logDeployment,
		Profiles:       profile.NewProfileReconciler(mgr),
		Systems:        system.NewSystemReconciler(mgr),
	}
}

// pass holds the entities of one reconciliation pass in execution order.
type pass struct {
	inventory       platform.Inventory
	profiles        []*profile.Entity
	systems         []*system.Entity
	removedSystems  []*system.Entity
	removedProfiles []*profile.Entity
}

// ValidateDeployment checks the constraints that span entities.  Each
// entity is validated on its own when it is reconciled.
func ValidateDeployment(deployment *v1.Deployment) error {
	msgs := make([]string, 0)

	names := lo.Map(deployment.Profiles, func(p v1.Profile, _ int) string { return p.Name })
	if dups := utils.FindDuplicates(names); len(dups) > 0 {
		msgs = append(msgs, fmt.Sprintf("duplicate profile names: %s", strings.Join(dups, ", ")))
	}

	names = lo.Map(deployment.Systems, func(s v1.System, _ int) string { return s.Name })
	if dups := utils.FindDuplicates(names); len(dups) > 0 {
		msgs = append(msgs, fmt.Sprintf("duplicate system names: %s", strings.Join(dups, ", ")))
	}

	if len(msgs) > 0 {
		return common.NewValidationError(strings.Join(msgs, "; "))
	}

	return nil
}

// prepare reads the current state of the server once and matches it with
// the declared entities.
func (r *DeploymentReconciler) prepare(ctx context.Context, deployment *v1.Deployment) (*pass, error) {
	if err := ValidateDeployment(deployment); err != nil {
		return nil, err
	}

	present := lo.Filter(deployment.Profiles, func(p v1.Profile, _ int) bool { return !p.Ensure.IsAbsent() })
	absent := lo.Filter(deployment.Profiles, func(p v1.Profile, _ int) bool { return p.Ensure.IsAbsent() })

	ordered, err := OrderProfiles(present)
	if err != nil {
		return nil, err
	}

	querier, err := r.GetQueryClient()
	if err != nil {
		return nil, err
	}

	p := &pass{}
	if err := p.inventory.PopulateInventory(ctx, querier); err != nil {
		return nil, err
	}

	for _, desired := range ordered {
		observed, _ := p.inventory.FindProfile(desired.Name)
		p.profiles = append(p.profiles, profile.NewEntity(desired, observed))
	}

	for _, desired := range deployment.Systems {
		observed, _ := p.inventory.FindSystem(desired.Name)
		entity := system.NewEntity(desired, observed)
		if desired.Ensure.IsAbsent() {
			p.removedSystems = append(p.removedSystems, entity)
		} else {
			p.systems = append(p.systems, entity)
		}
	}

	if utils.GetReconcilerOptionBool(utils.System, utils.DeleteAbsent, false) {
		declared := lo.Map(deployment.Systems, func(s v1.System, _ int) string { return s.Name })
		observed := lo.Map(p.inventory.Systems, func(s platform.SystemInfo, _ int) string { return s.Name })
		undeclared, _, _ := utils.ListDelta(declared, observed)

		for _, name := range undeclared {
			info, _ := p.inventory.FindSystem(name)
			desired := v1.System{Name: name, Ensure: v1.EnsureAbsent}
			p.removedSystems = append(p.removedSystems, system.NewEntity(desired, info))
		}
	}

	removals := lo.Map(absent, func(p v1.Profile, _ int) string { return p.Name })

	if utils.GetReconcilerOptionBool(utils.Profile, utils.DeleteAbsent, false) {
		declared := lo.Map(deployment.Profiles, func(p v1.Profile, _ int) string { return p.Name })
		observed := lo.Map(p.inventory.Profiles, func(p platform.ProfileInfo, _ int) string { return p.Name })
		undeclared, _, _ := utils.ListDelta(declared, observed)
		removals = append(removals, undeclared...)
	}

	for _, name := range OrderProfileRemovals(removals, &p.inventory) {
		info, _ := p.inventory.FindProfile(name)
		desired := v1.Profile{Name: name, Ensure: v1.EnsureAbsent}
		p.removedProfiles = append(p.removedProfiles, profile.NewEntity(desired, info))
	}

	return p, nil
}

func disabled(kind v1.Kind, name string) common.ReconcileResult {
	return common.ReconcileResult{Kind: kind, Name: name, Reason: common.ResourceDisabled}
}

// Reconcile runs one reconciliation pass and returns the outcome of every
// entity.  A failed entity does not stop the pass; every failure is included
// in the returned aggregate error.
func (r *DeploymentReconciler) Reconcile(ctx context.Context, deployment *v1.Deployment) ([]common.ReconcileResult, error) {
	p, err := r.prepare(ctx, deployment)
	if err != nil {
		r.Log.Error(err, "failed to prepare reconciliation pass")
		return nil, perrors.Wrap(err, "failed to prepare reconciliation pass")
	}

	if r.IsDryRun() {
		r.Log.Info("dry-run enabled; commands will be logged but not executed")
	}

	results := make([]common.ReconcileResult, 0)

	reconcileProfiles := func(entities []*profile.Entity) {
		for _, e := range entities {
			if !utils.IsReconcilerEnabled(utils.Profile) {
				results = append(results, disabled(v1.KindProfile, e.Desired.Name))
				continue
			}
			results = append(results, r.Profiles.ReconcileResource(ctx, e))
		}
	}

	reconcileSystems := func(entities []*system.Entity) {
		for _, e := range entities {
			if !utils.IsReconcilerEnabled(utils.System) {
				results = append(results, disabled(v1.KindSystem, e.Desired.Name))
				continue
			}
			results = append(results, r.Systems.ReconcileResource(ctx, e))
		}
	}

	reconcileProfiles(p.profiles)
	reconcileSystems(p.systems)
	reconcileSystems(p.removedSystems)
	reconcileProfiles(p.removedProfiles)

	errs := make([]error, 0)
	for _, result := range results {
		if result.Failed() {
			errs = append(errs, result.Err)
		}
	}

	r.Log.Info("reconciliation pass complete", "entities", len(results), "failed", len(errs))

	return results, utilerrors.NewAggregate(errs)
}

// Diff reports what a reconciliation pass would do without issuing any
// command.
func (r *DeploymentReconciler) Diff(ctx context.Context, deployment *v1.Deployment) ([]common.ReconcileResult, error) {
	p, err := r.prepare(ctx, deployment)
	if err != nil {
		return nil, perrors.Wrap(err, "failed to prepare reconciliation pass")
	}

	results := make([]common.ReconcileResult, 0)

	for _, e := range p.profiles {
		results = append(results, diffResult(v1.KindProfile, e.Desired.Name, e.Exists(), false,
			func() []string { return r.Profiles.Pending(e) },
			func() string { return r.Profiles.Delta(e) }))
	}

	for _, e := range p.systems {
		results = append(results, diffResult(v1.KindSystem, e.Desired.Name, e.Exists(), false,
			func() []string { return r.Systems.Pending(e) },
			func() string { return r.Systems.Delta(e) }))
	}

	for _, e := range p.removedSystems {
		results = append(results, diffResult(v1.KindSystem, e.Desired.Name, e.Exists(), true, nil, nil))
	}

	for _, e := range p.removedProfiles {
		results = append(results, diffResult(v1.KindProfile, e.Desired.Name, e.Exists(), true, nil, nil))
	}

	return results, nil
}

func diffResult(kind v1.Kind, name string, exists, remove bool, pending func() []string, delta func() string) common.ReconcileResult {
	result := common.ReconcileResult{Kind: kind, Name: name, Reason: common.ResourceUnchanged}

	switch {
	case remove:
		if exists {
			result.Reason = common.ResourceDeleted
		}
	case !exists:
		result.Reason = common.ResourceCreated
	default:
		result.Attributes = pending()
		result.Delta = delta()
		if len(result.Attributes) > 0 {
			result.Reason = common.ResourceUpdated
		}
	}

	return result
}
