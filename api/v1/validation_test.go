/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/intstr"
)

func strPtr(s string) *string {
	return &s
}

var _ = Describe("Validation", func() {
	Describe("gateway addresses", func() {
		It("should accept a dotted quad", func() {
			Expect(IsValidGateway("10.8.16.51")).To(BeTrue())
		})
		It("should reject arbitrary text", func() {
			Expect(IsValidGateway("not-an-ip")).To(BeFalse())
		})
		It("should accept an empty value", func() {
			Expect(IsValidGateway("")).To(BeTrue())
		})
	})

	Describe("hostnames", func() {
		It("should accept simple labels", func() {
			Expect(IsValidHostname("node01")).To(BeTrue())
		})
		It("should reject labels with invalid characters", func() {
			Expect(IsValidHostname("node_01!")).To(BeFalse())
			Expect(IsValidHostname("-node")).To(BeFalse())
		})
	})

	Describe("systems", func() {
		var system System

		BeforeEach(func() {
			system = System{
				Name: "test.domain.com",
				SystemSpec: SystemSpec{
					Profile:  "CentOS-6.3-x86_64",
					Hostname: strPtr("test"),
					Gateway:  strPtr("10.8.16.51"),
					Interfaces: InterfaceSet{
						"eth0": {"mac_address": "90:B1:1C:06:BF:56"},
					},
				},
			}
		})

		It("should accept a complete declaration", func() {
			Expect(ValidateSystem(&system)).To(BeEmpty())
		})
		It("should reject an invalid gateway", func() {
			system.Gateway = strPtr("not-an-ip")
			errs := ValidateSystem(&system)
			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Field).To(Equal("gateway"))
		})
		It("should require a profile", func() {
			system.Profile = ""
			Expect(ValidateSystem(&system)).To(HaveLen(1))
		})
		It("should reject an empty interface set", func() {
			system.Interfaces = InterfaceSet{}
			Expect(ValidateSystem(&system)).To(HaveLen(1))
		})
		It("should only check the name of absent systems", func() {
			system.Ensure = EnsureAbsent
			system.Profile = ""
			system.Gateway = strPtr("not-an-ip")
			Expect(ValidateSystem(&system)).To(BeEmpty())
		})
		It("should reject an unknown ensure value", func() {
			system.Ensure = "maybe"
			Expect(ValidateSystem(&system)).To(HaveLen(1))
		})
	})

	Describe("profiles", func() {
		It("should require a distro or a parent at creation", func() {
			profile := Profile{Name: "p1"}
			Expect(ValidateProfile(&profile)).To(BeEmpty())
			Expect(ValidateProfileCreate(&profile)).To(HaveLen(1))

			profile.Parent = strPtr("base")
			Expect(ValidateProfileCreate(&profile)).To(BeEmpty())

			profile.Parent = nil
			profile.Distro = strPtr("CentOS-6.3-x86_64")
			Expect(ValidateProfileCreate(&profile)).To(BeEmpty())
		})
		It("should reject option names with whitespace", func() {
			profile := Profile{Name: "p1", ProfileSpec: ProfileSpec{
				KernelOptions: OptionMap{"bad key": FlagOption()},
			}}
			Expect(ValidateProfile(&profile)).To(HaveLen(1))
		})
	})
})

var _ = Describe("Defaults", func() {
	It("should fill undeclared attributes only", func() {
		ram := intstr.FromInt(2048)
		spec := SystemSpec{
			Profile:  "p1",
			VirtType: strPtr("kvm"),
			VirtRAM:  &ram,
		}
		Expect(MergeSystemDefaults(&spec)).To(Succeed())
		Expect(*spec.PowerType).To(Equal(DefaultPowerType))
		Expect(*spec.VirtPath).To(Equal(InheritValue))
		Expect(*spec.VirtType).To(Equal("kvm"))
		Expect(spec.VirtRAM.String()).To(Equal("2048"))
		Expect(spec.Hostname).To(BeNil())
	})

	It("should not share pointers with the defaults", func() {
		spec := SystemSpec{Profile: "p1"}
		Expect(MergeSystemDefaults(&spec)).To(Succeed())
		*spec.PowerType = "redfish"
		Expect(*DefaultSystemSpec.PowerType).To(Equal(DefaultPowerType))
	})

	It("should convert human readable sizes", func() {
		ram := intstr.FromString("2GiB")
		disk := intstr.FromString("512MiB")
		spec := SystemSpec{VirtRAM: &ram, VirtFileSize: &disk}
		Expect(NormalizeSizes(&spec)).To(Succeed())
		Expect(spec.VirtRAM.String()).To(Equal("2048"))
		Expect(spec.VirtFileSize.String()).To(Equal("0.5"))
	})

	It("should leave plain numbers and inherit untouched", func() {
		ram := intstr.FromString(InheritValue)
		disk := intstr.FromString("20")
		spec := SystemSpec{VirtRAM: &ram, VirtFileSize: &disk}
		Expect(NormalizeSizes(&spec)).To(Succeed())
		Expect(spec.VirtRAM.String()).To(Equal(InheritValue))
		Expect(spec.VirtFileSize.String()).To(Equal("20"))
	})

	It("should reject unparsable sizes", func() {
		ram := intstr.FromString("lots")
		spec := SystemSpec{VirtRAM: &ram}
		Expect(NormalizeSizes(&spec)).ToNot(Succeed())
	})
})
