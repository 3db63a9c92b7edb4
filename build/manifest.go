/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	perrors "github.com/pkg/errors"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
)

// Format identifies the encoding of a manifest.
type Format string

// Defines the supported manifest formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath selects the manifest format from a file extension.  YAML is
// assumed for anything other than ".toml".
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ParseManifest decodes a manifest.  Both formats are decoded through the
// JSON field names of the declared types so that they accept the same keys.
func ParseManifest(data []byte, format Format) (*v1.Deployment, error) {
	deployment := v1.Deployment{}

	switch format {
	case FormatTOML:
		generic := make(map[string]interface{})
		if _, err := toml.Decode(string(data), &generic); err != nil {
			return nil, perrors.Wrap(err, "failed to decode TOML manifest")
		}

		buf, err := json.Marshal(generic)
		if err != nil {
			return nil, perrors.Wrap(err, "failed to convert TOML manifest")
		}

		if err := json.Unmarshal(buf, &deployment); err != nil {
			return nil, perrors.Wrap(err, "failed to decode TOML manifest")
		}

	default:
		// Leading document separators are accepted so that the output of
		// ToYAML can be applied as is.
		text := strings.TrimPrefix(strings.TrimSpace(string(data)), strings.TrimSpace(yamlSeparator))
		if err := yaml.Unmarshal([]byte(text), &deployment); err != nil {
			return nil, perrors.Wrap(err, "failed to decode YAML manifest")
		}
	}

	for i := range deployment.Profiles {
		if deployment.Profiles[i].Ensure == "" {
			deployment.Profiles[i].Ensure = v1.EnsurePresent
		}
	}

	for i := range deployment.Systems {
		if deployment.Systems[i].Ensure == "" {
			deployment.Systems[i].Ensure = v1.EnsurePresent
		}
	}

	return &deployment, nil
}

// LoadManifest reads and decodes a manifest file.
func LoadManifest(path string) (*v1.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrapf(err, "failed to read manifest %q", path)
	}

	return ParseManifest(data, FormatFromPath(path))
}
