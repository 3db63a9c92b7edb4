/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package system

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	utils "github.com/wind-river/cobbler-deployment-manager/common"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	cobblerManager "github.com/wind-river/cobbler-deployment-manager/controllers/manager"
	"github.com/wind-river/cobbler-deployment-manager/platform"
)

var _ = Describe("System controller", func() {
	var mgr *cobblerManager.Dummymanager
	var server *cobblerManager.DummyServer
	var reconciler *SystemReconciler
	var desired v1.System
	ctx := context.TODO()

	observe := func(name string) *platform.SystemInfo {
		info, err := platform.GetSystem(ctx, server, name)
		Expect(err).ToNot(HaveOccurred())
		return info
	}

	create := func() {
		_, err := reconciler.Create(ctx, NewEntity(desired, nil))
		Expect(err).ToNot(HaveOccurred())
		server.ResetCommands()
	}

	BeforeEach(func() {
		mgr = cobblerManager.NewDummyManager()
		server = mgr.Server
		reconciler = NewSystemReconciler(mgr)
		reconciler.Names = &NameGenerator{Source: sequenceSource("x")}
		desired = v1.System{
			Name:   "s1",
			Ensure: v1.EnsurePresent,
			SystemSpec: v1.SystemSpec{
				Profile:  "p1",
				Hostname: strPtr("node1"),
				Interfaces: v1.InterfaceSet{
					"eth0": {
						"mac_address": "aa:bb:cc:dd:ee:00",
						"ip_address":  "10.10.10.5",
					},
				},
			},
		}
	})

	AfterEach(func() {
		utils.ResetConfig()
	})

	Context("when creating a system", func() {
		It("should add the system and write the differing attributes", func() {
			e := NewEntity(desired, nil)

			written, err := reconciler.Create(ctx, e)
			Expect(err).ToNot(HaveOccurred())
			Expect(written).To(Equal([]string{AttrHostname, AttrInterfaces}))
			Expect(server.CommandStrings()).To(Equal([]string{
				"system add --name=s1 --profile=p1 --netboot-enabled=true",
				"system edit --name=s1 --hostname=node1",
				"system edit --name=s1 --interface=tmp_xxxxxxxxxxxxxxx --static=true",
				"system edit --name=s1 --interface=eth0 --ip-address=10.10.10.5",
				"system edit --name=s1 --interface=eth0 --mac-address=aa:bb:cc:dd:ee:00",
				"system edit --name=s1 --interface=tmp_xxxxxxxxxxxxxxx --delete-interface",
				"sync",
			}))
			Expect(e.State()).To(Equal(common.StatePresent))
			Expect(e.Observed().Interfaces.Names()).To(Equal([]string{"eth0"}))

			record, ok := server.Record(v1.KindSystem, "s1")
			Expect(ok).To(BeTrue())
			Expect(record["netboot_enabled"]).To(Equal(true))
		})

		It("should sync even when nothing differs after the add", func() {
			desired.Hostname = nil
			desired.Interfaces = nil

			_, err := reconciler.Create(ctx, NewEntity(desired, nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(server.CommandStrings()).To(Equal([]string{
				"system add --name=s1 --profile=p1 --netboot-enabled=true",
				"sync",
			}))
		})

		It("should reject an invalid gateway before issuing commands", func() {
			desired.Gateway = strPtr("300.1.1.1")
			e := NewEntity(desired, nil)

			_, err := reconciler.Create(ctx, e)
			Expect(common.IsValidationError(err)).To(BeTrue())
			Expect(server.Commands()).To(BeEmpty())
			Expect(e.State()).To(Equal(common.StateAbsent))
		})

		It("should reject an empty interface set", func() {
			desired.Interfaces = v1.InterfaceSet{}

			_, err := reconciler.Create(ctx, NewEntity(desired, nil))
			Expect(common.IsValidationError(err)).To(BeTrue())
			Expect(server.Commands()).To(BeEmpty())
		})

		It("should converge with the server", func() {
			create()

			e := NewEntity(desired, observe("s1"))
			written, err := reconciler.Update(ctx, e)
			Expect(err).ToNot(HaveOccurred())
			Expect(written).To(BeEmpty())
			Expect(server.Commands()).To(BeEmpty())
		})
	})

	Context("when updating a system", func() {
		BeforeEach(func() {
			create()
		})

		It("should replace the interfaces when one is added", func() {
			desired.Interfaces["eth1"] = v1.InterfaceSettings{"static": true}
			e := NewEntity(desired, observe("s1"))

			written, err := reconciler.Update(ctx, e)
			Expect(err).ToNot(HaveOccurred())
			Expect(written).To(Equal([]string{AttrInterfaces}))
			Expect(server.CommandStrings()).To(Equal([]string{
				"system edit --name=s1 --interface=tmp_xxxxxxxxxxxxxxx --static=true",
				"system edit --name=s1 --interface=eth0 --delete-interface",
				"sync",
				"system edit --name=s1 --interface=eth0 --ip-address=10.10.10.5",
				"system edit --name=s1 --interface=eth0 --mac-address=aa:bb:cc:dd:ee:00",
				"system edit --name=s1 --interface=eth1 --static=true",
				"system edit --name=s1 --interface=tmp_xxxxxxxxxxxxxxx --delete-interface",
				"sync",
			}))
			Expect(observe("s1").Interfaces.Names()).To(Equal([]string{"eth0", "eth1"}))
		})

		It("should ignore a declared management value the server controls", func() {
			desired.Interfaces["eth0"]["management"] = true
			e := NewEntity(desired, observe("s1"))

			written, err := reconciler.Update(ctx, e)
			Expect(err).ToNot(HaveOccurred())
			Expect(written).To(BeEmpty())
		})

		It("should sync after each scalar attribute", func() {
			desired.Comment = strPtr("rack 4")
			desired.KernelOptions = v1.OptionMap{"nomodeset": v1.FlagOption()}
			e := NewEntity(desired, observe("s1"))

			written, err := reconciler.Update(ctx, e)
			Expect(err).ToNot(HaveOccurred())
			Expect(written).To(Equal([]string{AttrComment, AttrKernelOptions}))
			Expect(server.CommandStrings()).To(Equal([]string{
				"system edit --name=s1 --comment=rack 4",
				"sync",
				"system edit --name=s1 --kopts=nomodeset",
				"sync",
			}))
			Expect(e.Observed().Comment).To(Equal("rack 4"))
		})

		It("should skip attributes whose reconciler is disabled", func() {
			utils.SetReconcilerEnabled(utils.SystemInterfaces, false)
			desired.Interfaces["eth1"] = v1.InterfaceSettings{}
			e := NewEntity(desired, observe("s1"))

			written, err := reconciler.Update(ctx, e)
			Expect(err).ToNot(HaveOccurred())
			Expect(written).To(BeEmpty())
			Expect(server.Commands()).To(BeEmpty())
		})

		It("should keep the previous snapshot when a command fails", func() {
			server.Failures["--hostname"] = "invalid hostname"
			desired.Hostname = strPtr("node2")
			e := NewEntity(desired, observe("s1"))

			_, err := reconciler.Update(ctx, e)
			Expect(common.IsRemoteCommandError(err)).To(BeTrue())
			Expect(e.Observed().Hostname).To(Equal("node1"))
			Expect(e.State()).To(Equal(common.StateUpdating))
		})

		It("should report the delta and the updated attributes", func() {
			desired.Gateway = strPtr("10.10.10.1")
			e := NewEntity(desired, observe("s1"))

			result := reconciler.ReconcileResource(ctx, e)
			Expect(result.Failed()).To(BeFalse())
			Expect(result.Reason).To(Equal(common.ResourceUpdated))
			Expect(result.Attributes).To(Equal([]string{AttrGateway}))
			Expect(result.Delta).To(ContainSubstring("10.10.10.1"))
			Expect(result.State).To(Equal(common.StatePresent))
		})
	})

	Context("when deleting a system", func() {
		It("should remove and sync", func() {
			create()
			desired.Ensure = v1.EnsureAbsent
			e := NewEntity(desired, observe("s1"))

			result := reconciler.ReconcileResource(ctx, e)
			Expect(result.Reason).To(Equal(common.ResourceDeleted))
			Expect(result.State).To(Equal(common.StateAbsent))
			Expect(server.CommandStrings()).To(Equal([]string{"system remove --name=s1", "sync"}))
			Expect(observe("s1")).To(BeNil())
		})

		It("should tolerate a system that is already gone", func() {
			e := NewEntity(desired, &platform.SystemInfo{Name: "s1"})

			err := reconciler.Destroy(ctx, e)
			Expect(err).ToNot(HaveOccurred())
			Expect(e.Exists()).To(BeFalse())
		})

		It("should report a failed sync after the system was already gone", func() {
			server.Failures["sync"] = "sync failed"
			e := NewEntity(desired, &platform.SystemInfo{Name: "s1"})

			err := reconciler.Destroy(ctx, e)
			Expect(common.IsRemoteCommandError(err)).To(BeTrue())
			Expect(server.CommandStrings()).To(Equal([]string{"system remove --name=s1", "sync"}))
			Expect(e.Exists()).To(BeFalse())
		})

		It("should do nothing for an absent system that does not exist", func() {
			desired.Ensure = v1.EnsureAbsent

			result := reconciler.ReconcileResource(ctx, NewEntity(desired, nil))
			Expect(result.Reason).To(Equal(common.ResourceUnchanged))
			Expect(server.Commands()).To(BeEmpty())
		})
	})

	Context("when the server fails", func() {
		It("should report the failure with the entity name", func() {
			server.Failures["system add"] = "profile not found"

			result := reconciler.ReconcileResource(ctx, NewEntity(desired, nil))
			Expect(result.Failed()).To(BeTrue())
			Expect(result.Reason).To(Equal(common.ResourceFailed))
			Expect(result.State).To(Equal(common.StateCreating))
			Expect(result.Err.Error()).To(ContainSubstring(`system "s1"`))
		})
	})
})
