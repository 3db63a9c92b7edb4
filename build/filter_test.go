/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2022-2026 Wind River Systems, Inc. */

package build

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

func strPtr(s string) *string {
	return &s
}

var _ = Describe("Manifest filters", func() {
	var deployment *v1.Deployment

	BeforeEach(func() {
		deployment = &v1.Deployment{}
	})

	Describe("InheritedProfileFilter", func() {
		It("should drop inherited values and the distro of child profiles", func() {
			profile := &v1.Profile{
				Name: "child",
				ProfileSpec: v1.ProfileSpec{
					Distro:    strPtr("centos7-x86_64"),
					Parent:    strPtr("base"),
					Kickstart: strPtr(v1.InheritValue),
				},
			}

			Expect(NewInheritedProfileFilter().Filter(profile, deployment)).To(Succeed())
			Expect(profile.Distro).To(BeNil())
			Expect(profile.Kickstart).To(BeNil())
			Expect(*profile.Parent).To(Equal("base"))
		})

		It("should keep the distro of top level profiles", func() {
			profile := &v1.Profile{
				Name:        "base",
				ProfileSpec: v1.ProfileSpec{Distro: strPtr("centos7-x86_64")},
			}

			Expect(NewInheritedProfileFilter().Filter(profile, deployment)).To(Succeed())
			Expect(*profile.Distro).To(Equal("centos7-x86_64"))
		})
	})

	Describe("InheritedSystemFilter", func() {
		It("should drop every inherited value", func() {
			inherit := intstr.FromString(v1.InheritValue)
			size := intstr.FromInt(20)
			system := &v1.System{
				Name: "node1",
				SystemSpec: v1.SystemSpec{
					Kickstart:    strPtr(v1.InheritValue),
					VirtPath:     strPtr(v1.InheritValue),
					VirtRAM:      &inherit,
					VirtFileSize: &size,
				},
			}

			Expect(NewInheritedSystemFilter().Filter(system, deployment)).To(Succeed())
			Expect(system.Kickstart).To(BeNil())
			Expect(system.VirtPath).To(BeNil())
			Expect(system.VirtRAM).To(BeNil())
			Expect(*system.VirtFileSize).To(Equal(size))
		})
	})

	Describe("SystemDefaultsFilter", func() {
		It("should only drop default values", func() {
			system := &v1.System{
				Name: "node1",
				SystemSpec: v1.SystemSpec{
					PowerType: strPtr(v1.DefaultPowerType),
					VirtType:  strPtr("kvm"),
				},
			}

			Expect(NewSystemDefaultsFilter().Filter(system, deployment)).To(Succeed())
			Expect(system.PowerType).To(BeNil())
			Expect(*system.VirtType).To(Equal("kvm"))
		})
	})

	Describe("ManagementFilter", func() {
		It("should drop the management attribute of every interface", func() {
			system := &v1.System{
				Name: "node1",
				SystemSpec: v1.SystemSpec{
					Interfaces: v1.InterfaceSet{
						"eth0": {"management": true, "static": true},
						"eth1": {"management": false},
					},
				},
			}

			Expect(NewManagementFilter().Filter(system, deployment)).To(Succeed())
			Expect(system.Interfaces).To(Equal(v1.InterfaceSet{
				"eth0": {"static": true},
				"eth1": {},
			}))
		})
	})
})
