/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

import (
	"encoding/json"

	"github.com/ghodss/yaml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Option values", func() {
	Context("when parsing the textual form", func() {
		It("should treat the sentinel as a flag", func() {
			Expect(ParseOptionValue("~")).To(Equal(FlagOption()))
			Expect(ParseOptionValue("~").IsFlag()).To(BeTrue())
		})
		It("should keep any other value", func() {
			v := ParseOptionValue("permissive")
			Expect(v.IsFlag()).To(BeFalse())
			Expect(v.String()).To(Equal("permissive"))
		})
	})

	Context("when decoding a manifest", func() {
		It("should decode flags, strings, numbers and nulls", func() {
			data := []byte(`
kssendmac: '~'
noacpi: null
selinux: permissive
console_rate: 115200
quiet: true
`)
			var options OptionMap
			Expect(yaml.Unmarshal(data, &options)).To(Succeed())
			Expect(options).To(Equal(OptionMap{
				"kssendmac":    FlagOption(),
				"noacpi":       FlagOption(),
				"selinux":      StringOption("permissive"),
				"console_rate": StringOption("115200"),
				"quiet":        StringOption("true"),
			}))
		})

		It("should render flags with the sentinel", func() {
			buf, err := json.Marshal(OptionMap{"noacpi": FlagOption(), "selinux": StringOption("permissive")})
			Expect(err).ToNot(HaveOccurred())
			Expect(string(buf)).To(Equal(`{"noacpi":"~","selinux":"permissive"}`))
		})
	})

	Context("when an option is repeated", func() {
		It("should decode a list into one value per occurrence", func() {
			var options OptionMap
			Expect(yaml.Unmarshal([]byte("console: [tty0, 'ttyS0,115200']\n"), &options)).To(Succeed())
			Expect(options["console"].IsList()).To(BeTrue())
			Expect(options["console"].Tokens()).To(Equal([]string{"tty0", "ttyS0,115200"}))
		})

		It("should render the values as a list", func() {
			buf, err := json.Marshal(OptionMap{"console": ListOption("tty0", "ttyS0,115200")})
			Expect(err).ToNot(HaveOccurred())
			Expect(string(buf)).To(Equal(`{"console":["tty0","ttyS0,115200"]}`))
		})

		It("should collapse a single value", func() {
			Expect(ListOption("tty0")).To(Equal(StringOption("tty0")))
			Expect(ListOption("~")).To(Equal(FlagOption()))
		})

		It("should compare values in order", func() {
			a := ListOption("tty0", "ttyS0")
			Expect(a.Equal(ListOption("tty0", "ttyS0"))).To(BeTrue())
			Expect(a.Equal(ListOption("ttyS0", "tty0"))).To(BeFalse())
			Expect(a.Equal(StringOption("tty0 ttyS0"))).To(BeFalse())
			Expect(FlagOption().Equal(StringOption(""))).To(BeFalse())
		})

		It("should copy the values independently", func() {
			options := OptionMap{"console": ListOption("tty0", "ttyS0")}
			dup := options.DeepCopy()
			dup["console"].Values[0] = "tty1"
			Expect(options["console"].Values[0]).To(Equal("tty0"))
		})
	})

	It("should list keys in lexical order", func() {
		options := OptionMap{"selinux": StringOption("permissive"), "noacpi": FlagOption(), "a": FlagOption()}
		Expect(options.Keys()).To(Equal([]string{"a", "noacpi", "selinux"}))
	})

	It("should deep copy maps", func() {
		options := OptionMap{"noacpi": FlagOption()}
		dup := options.DeepCopy()
		dup["selinux"] = StringOption("permissive")
		Expect(options).To(HaveLen(1))
		Expect(OptionMap(nil).DeepCopy()).To(BeNil())
	})
})

var _ = Describe("Interface settings", func() {
	It("should format values the way the command line expects", func() {
		Expect(FormatSetting(nil)).To(Equal(""))
		Expect(FormatSetting("eth0")).To(Equal("eth0"))
		Expect(FormatSetting(true)).To(Equal("true"))
		Expect(FormatSetting(int64(1500))).To(Equal("1500"))
		Expect(FormatSetting(float64(5))).To(Equal("5"))
		Expect(FormatSetting([]interface{}{"10.0.0.1", "10.0.0.2"})).To(Equal("10.0.0.1 10.0.0.2"))
		Expect(FormatSetting([]string{"a", "b"})).To(Equal("a b"))
	})

	It("should recognize unset values", func() {
		Expect(IsEmptySetting("")).To(BeTrue())
		Expect(IsEmptySetting([]interface{}{})).To(BeTrue())
		Expect(IsEmptySetting(nil)).To(BeTrue())
		Expect(IsEmptySetting(false)).To(BeFalse())
		Expect(IsEmptySetting("x")).To(BeFalse())
	})

	It("should copy interface sets independently", func() {
		set := InterfaceSet{"eth0": {"static": true, "dns": []interface{}{"a"}}}
		dup := set.DeepCopy()
		dup["eth0"]["static"] = false
		dup["eth1"] = InterfaceSettings{}
		Expect(set["eth0"]["static"]).To(BeTrue())
		Expect(set.Names()).To(Equal([]string{"eth0"}))
		Expect(dup.Names()).To(Equal([]string{"eth0", "eth1"}))
	})
})
