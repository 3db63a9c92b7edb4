/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package common

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	perrors "github.com/pkg/errors"
	"github.com/spf13/viper"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

var log = logf.Log.WithName("config")

// ReconcilerPrefix defines the viper configuration prefix for all reconcilers
// and sub-reconcilers.
const ReconcilerPrefix = "reconcilers"

// ReconcilerName is the type alias that represents the path for a reconciler
// or sub-reconciler.
type ReconcilerName string

// Defines the current list of supported reconcilers and sub-reconcilers.
const (
	Profile              ReconcilerName = "profile"
	ProfileKernelOptions ReconcilerName = "profile.kernelOptions"
	ProfileLists         ReconcilerName = "profile.lists"
	System               ReconcilerName = "system"
	SystemInterfaces     ReconcilerName = "system.interfaces"
	SystemKernelOptions  ReconcilerName = "system.kernelOptions"
	SystemPower          ReconcilerName = "system.power"
	SystemVirt           ReconcilerName = "system.virt"
	SystemNetboot        ReconcilerName = "system.netboot"
)

// reconcilerDefaultStates is the default state of each reconciler.
var reconcilerDefaultStates = map[ReconcilerName]bool{
	Profile:              true,
	ProfileKernelOptions: true,
	ProfileLists:         true,
	System:               true,
	SystemInterfaces:     true,
	SystemKernelOptions:  true,
	SystemPower:          true,
	SystemVirt:           true,
	SystemNetboot:        true,
}

// OptionName is the type alias that represents the path for a reconciler
// or sub-reconciler.
type OptionName string

// Defines the current list of supported reconciler options.
const (
	DeleteAbsent OptionName = "deleteAbsent"
)

// reconcilerOptionDefaults is the default value for each reconciler option.
var reconcilerOptionDefaults = map[ReconcilerName]map[OptionName]interface{}{
	Profile: {
		DeleteAbsent: false,
	},
	System: {
		DeleteAbsent: false,
	},
}

// Defines the config attribute paths of the provisioning server settings.
const (
	CobblerBinaryPath = "cobbler.binary"
	CobblerAPIPath    = "cobbler.api"
)

// Defines the default provisioning server settings.
const (
	DefaultCobblerBinary = "/usr/bin/cobbler"
	DefaultCobblerAPI    = "http://127.0.0.1/cobbler_api"
)

// DefaultConfigFilepath is the absolute path of the default config file.
const DefaultConfigFilepath = "/etc/cobbler-deployment-manager/config.yaml"

var cfg *viper.Viper

// ReconcilerConfigPath returns the config attribute path which represents the
// top-level path for the specified reconciler.
func ReconcilerConfigPath(name ReconcilerName) string {
	return fmt.Sprintf("%s.%s", ReconcilerPrefix, name)
}

// ReconcilerStatePath returns the config attribute path which represents the
// current configured state of the reconciler.
func ReconcilerStatePath(name ReconcilerName) string {
	return fmt.Sprintf("%s.enabled", ReconcilerConfigPath(name))
}

// ReconcilerOptionPath returns the config attribute path which represents the
// option value of the specified reconciler option.
func ReconcilerOptionPath(name ReconcilerName, option OptionName) string {
	return fmt.Sprintf("%s.%s", ReconcilerConfigPath(name), option)
}

// ReadConfig is a utility which loads the configuration file into memory.  An
// empty path selects the default file.  A missing default file is not an
// error; the built-in defaults are used instead.
func ReadConfig(path string) (err error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilepath
	}

	path, err = homedir.Expand(path)
	if err != nil {
		return perrors.Wrapf(err, "failed to expand config path %q", path)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return perrors.Errorf("config file %q does not exist", path)
		}
		// The file is not present so use the defaults, and monitoring will
		// not be possible.
		return nil
	}

	cfg.SetConfigFile(path)

	err = cfg.ReadInConfig()
	if err == nil {
		cfg.WatchConfig()
		cfg.OnConfigChange(func(e fsnotify.Event) {
			log.Info("config file changed", "path", cfg.ConfigFileUsed(), "op", e.Op.String())
		})

		log.Info("config has been loaded from file.", "path", path)
	} else {
		err = perrors.Wrap(err, "failed to read config file")
	}

	return err
}

// IsReconcilerEnabled returns whether a specific reconciler is enabled or
// not.  A sub-reconciler is disabled whenever its parent is.
func IsReconcilerEnabled(name ReconcilerName) bool {
	if idx := strings.LastIndex(string(name), "."); idx > 0 {
		if !IsReconcilerEnabled(name[:idx]) {
			return false
		}
	}

	value := cfg.GetBool(ReconcilerStatePath(name))
	if !value {
		log.V(1).Info("reconciler is disabled", "name", string(name))
	}

	return value
}

// SetReconcilerEnabled overrides the configured state of a reconciler.
func SetReconcilerEnabled(name ReconcilerName, enabled bool) {
	cfg.Set(ReconcilerStatePath(name), enabled)
}

// GetReconcilerOption returns the value of the specified option as an Interface
// value; otherwise nil is returned if the option does not exist in the config.
func GetReconcilerOption(name ReconcilerName, option OptionName) interface{} {
	return cfg.Get(ReconcilerOptionPath(name, option))
}

// SetReconcilerOption overrides the configured value of a reconciler option.
func SetReconcilerOption(name ReconcilerName, option OptionName, value interface{}) {
	cfg.Set(ReconcilerOptionPath(name, option), value)
}

// GetReconcilerOptionBool returns the value of the specified option as a Bool
// value; otherwise the specified default value is returned if the option does
// not exist.
func GetReconcilerOptionBool(name ReconcilerName, option OptionName, defaultValue bool) bool {
	value := GetReconcilerOption(name, option)
	if value != nil {
		switch v := value.(type) {
		case bool:
			return v
		case string:
			// Values supplied through the environment are strings.
			return strings.EqualFold(v, "true")
		default:
			log.Info("unexpected option type",
				"option", option, "type", reflect.TypeOf(value))
		}
	}

	// Return the caller's default if not found.
	return defaultValue
}

// GetCobblerBinary returns the path of the provisioning server command line
// tool.
func GetCobblerBinary() string {
	return cfg.GetString(CobblerBinaryPath)
}

// GetCobblerAPI returns the URL of the provisioning server query endpoint.
func GetCobblerAPI() string {
	return cfg.GetString(CobblerAPIPath)
}

// SetCobblerSettings overrides the provisioning server settings.  Empty
// values leave the current setting unchanged.
func SetCobblerSettings(binary, api string) {
	if binary != "" {
		cfg.Set(CobblerBinaryPath, binary)
	}
	if api != "" {
		cfg.Set(CobblerAPIPath, api)
	}
}

// ResetConfig discards every loaded and overridden value and restores the
// built-in defaults.
func ResetConfig() {
	cfg = viper.New()

	// Setup default values for all reconciler states
	for key, value := range reconcilerDefaultStates {
		path := ReconcilerStatePath(key)
		cfg.SetDefault(path, value)
	}

	// Setup default values for all reconciler options.
	for key, options := range reconcilerOptionDefaults {
		for option, value := range options {
			path := ReconcilerOptionPath(key, option)
			cfg.SetDefault(path, value)
		}
	}

	cfg.SetDefault(CobblerBinaryPath, DefaultCobblerBinary)
	cfg.SetDefault(CobblerAPIPath, DefaultCobblerAPI)

	// Allow overrides such as COBBLER_API or RECONCILERS_SYSTEM_ENABLED.
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
}

func init() {
	ResetConfig()
}
