/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package v1

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/alecthomas/units"
	"github.com/imdario/mergo"
	perrors "github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/intstr"
)

var (
	defaultPowerType = DefaultPowerType
	defaultVirtPath  = InheritValue
	defaultVirtRAM   = intstr.FromString(InheritValue)
	defaultVirtType  = DefaultVirtType
)

// DefaultSystemSpec contains the values applied to any system attribute that
// was not declared.  Only the attributes that Cobbler itself would otherwise
// leave in an undefined state are listed here.
var DefaultSystemSpec = SystemSpec{
	PowerType: &defaultPowerType,
	VirtPath:  &defaultVirtPath,
	VirtRAM:   &defaultVirtRAM,
	VirtType:  &defaultVirtType,
}

// defaultsTransformer prevents mergo from dereferencing pointers that are
// already set.  Without it a declared IntOrString would have its zero valued
// fields filled from the default and change type.
type defaultsTransformer struct{}

func (t defaultsTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ.Kind() != reflect.Ptr {
		return nil
	}

	return func(dst, src reflect.Value) error {
		if dst.IsNil() && dst.CanSet() {
			dst.Set(src)
		}
		return nil
	}
}

// MergeSystemDefaults fills any undeclared attribute of the spec with the
// value from DefaultSystemSpec.
func MergeSystemDefaults(spec *SystemSpec) error {
	defaults := DefaultSystemSpec.DeepCopy()

	err := mergo.Merge(spec, *defaults, mergo.WithTransformers(defaultsTransformer{}))
	if err != nil {
		err = perrors.Wrap(err, "mergo.Merge failed to merge system defaults")
		return err
	}

	return nil
}

// NormalizeSizes converts human readable sizes to the units expected by
// Cobbler: virt_ram is expressed in MiB and virt_file_size in GiB.  Plain
// numbers and the inherit placeholder are left untouched.
func NormalizeSizes(spec *SystemSpec) (err error) {
	spec.VirtRAM, err = normalizeQuantity(spec.VirtRAM, units.Mebibyte)
	if err != nil {
		return perrors.Wrap(err, "invalid virt_ram")
	}

	spec.VirtFileSize, err = normalizeQuantity(spec.VirtFileSize, units.Gibibyte)
	if err != nil {
		return perrors.Wrap(err, "invalid virt_file_size")
	}

	return nil
}

func normalizeQuantity(in *intstr.IntOrString, unit units.Base2Bytes) (*intstr.IntOrString, error) {
	if in == nil || in.Type == intstr.Int {
		return in, nil
	}

	value := strings.TrimSpace(in.StrVal)
	if value == "" || value == InheritValue {
		return in, nil
	}

	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return in, nil
	}

	size, err := units.ParseBase2Bytes(value)
	if err != nil {
		return nil, err
	}

	scaled := float64(size) / float64(unit)
	out := intstr.FromString(strconv.FormatFloat(scaled, 'f', -1, 64))

	return &out, nil
}
