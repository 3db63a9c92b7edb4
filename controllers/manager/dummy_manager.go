/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Wind River Systems, Inc. */

package manager

import (
	"context"
	"fmt"
	"strings"
	"sync"

	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
	"github.com/wind-river/cobbler-deployment-manager/controllers/common"
	"github.com/wind-river/cobbler-deployment-manager/platform"
)

// Dummymanager for unit test
type Dummymanager struct {
	Server *DummyServer
	DryRun bool

	// Recorder receives the commands while DryRun is set.
	Recorder *DryRunRunner
}

// NewDummyManager returns a manager backed by an empty in-memory server.
func NewDummyManager() *Dummymanager {
	return &Dummymanager{Server: NewDummyServer(), Recorder: NewDryRunRunner()}
}

func (m *Dummymanager) GetQueryClient() (platform.Querier, error) {
	return m.Server, nil
}
func (m *Dummymanager) GetCommandRunner() (common.CommandRunner, error) {
	if m.DryRun {
		return m.Recorder, nil
	}
	return m.Server, nil
}
func (m *Dummymanager) ResetClients() {
}
func (m *Dummymanager) IsDryRun() bool {
	return m.DryRun
}

// DummyServer is an in-memory stand-in for the provisioning server for unit
// tests.  It serves both the query endpoint and the command surface, applies
// commands to its records the way the real server does, and refuses to leave
// a system without interfaces.
type DummyServer struct {
	lock     sync.Mutex
	records  map[v1.Kind]map[string]platform.Record
	commands []common.Command

	// Failures maps a command fragment to the output reported when a command
	// containing that fragment is run.  Matching commands fail with exit
	// code 1 and are not applied.
	Failures map[string]string

	// QueryError is returned by every query when set.
	QueryError error

	Queries int
}

// NewDummyServer returns an empty server.
func NewDummyServer() *DummyServer {
	return &DummyServer{
		records: map[v1.Kind]map[string]platform.Record{
			v1.KindProfile: {},
			v1.KindSystem:  {},
		},
		Failures: map[string]string{},
	}
}

// AddRecord stores a raw record as if the entity had been created earlier.
func (s *DummyServer) AddRecord(kind v1.Kind, record platform.Record) {
	s.lock.Lock()
	defer func() { s.lock.Unlock() }()

	name := fmt.Sprintf("%v", record["name"])
	s.records[kind][name] = copyValue(map[string]interface{}(record)).(map[string]interface{})
}

// Record returns a copy of a stored record.
func (s *DummyServer) Record(kind v1.Kind, name string) (platform.Record, bool) {
	s.lock.Lock()
	defer func() { s.lock.Unlock() }()

	record, ok := s.records[kind][name]
	if !ok {
		return nil, false
	}
	return copyValue(map[string]interface{}(record)).(map[string]interface{}), true
}

// Commands returns every command run so far.
func (s *DummyServer) Commands() []common.Command {
	s.lock.Lock()
	defer func() { s.lock.Unlock() }()

	return append([]common.Command{}, s.commands...)
}

// CommandStrings returns every command run so far in its shell form.
func (s *DummyServer) CommandStrings() []string {
	result := make([]string, 0)
	for _, c := range s.Commands() {
		result = append(result, c.String())
	}
	return result
}

// ResetCommands clears the command history.
func (s *DummyServer) ResetCommands() {
	s.lock.Lock()
	defer func() { s.lock.Unlock() }()

	s.commands = nil
}

// Query implements the platform.Querier interface.
func (s *DummyServer) Query(_ context.Context, kind v1.Kind) ([]platform.Record, error) {
	s.lock.Lock()
	defer func() { s.lock.Unlock() }()

	s.Queries++
	if s.QueryError != nil {
		return nil, s.QueryError
	}

	result := make([]platform.Record, 0, len(s.records[kind]))
	for _, record := range s.records[kind] {
		result = append(result, copyValue(map[string]interface{}(record)).(map[string]interface{}))
	}

	return result, nil
}

// Run implements the common.CommandRunner interface.
func (s *DummyServer) Run(_ context.Context, command common.Command) (string, error) {
	s.lock.Lock()
	defer func() { s.lock.Unlock() }()

	s.commands = append(s.commands, command)

	for fragment, output := range s.Failures {
		if strings.Contains(command.String(), fragment) {
			return output, common.NewRemoteCommandError(command.Args, output, 1)
		}
	}

	if command.IsSync() {
		return "", nil
	}

	if len(command.Args) < 3 || !strings.HasPrefix(command.Args[2], "--name=") {
		return s.fail(command, "usage: cobbler <kind> <verb> --name=<name>")
	}

	kind := v1.Kind(command.Args[0])
	verb := common.Verb(command.Args[1])
	name := strings.TrimPrefix(command.Args[2], "--name=")

	store, ok := s.records[kind]
	if !ok {
		return s.fail(command, fmt.Sprintf("unknown object type: %s", kind))
	}

	record, exists := store[name]

	switch verb {
	case common.VerbAdd:
		if exists {
			return s.fail(command, fmt.Sprintf("%s %s already exists", kind, name))
		}
		record = newRecord(kind, name)

	case common.VerbEdit:
		if !exists {
			return s.fail(command, fmt.Sprintf("unknown %s name", kind))
		}
		record = copyValue(map[string]interface{}(record)).(map[string]interface{})

	case common.VerbRemove:
		if !exists {
			return s.fail(command, fmt.Sprintf("unknown %s name", kind))
		}
		delete(store, name)
		return "", nil

	default:
		return s.fail(command, fmt.Sprintf("unknown verb: %s", verb))
	}

	if msg := applyArguments(kind, record, command.Args[3:]); msg != "" {
		return s.fail(command, msg)
	}

	store[name] = record

	return "", nil
}

func (s *DummyServer) fail(command common.Command, output string) (string, error) {
	return output, common.NewRemoteCommandError(command.Args, output, 1)
}

// newRecord returns the record the server creates for a new entity.
func newRecord(kind v1.Kind, name string) platform.Record {
	if kind == v1.KindProfile {
		return platform.Record{
			"name":                name,
			"distro":              "",
			"parent":              "",
			"kickstart":           "",
			"kernel_options":      map[string]interface{}{},
			"kernel_options_post": map[string]interface{}{},
			"name_servers":        []interface{}{},
			"repos":               []interface{}{},
		}
	}

	return platform.Record{
		"name":            name,
		"profile":         "",
		"hostname":        "",
		"gateway":         "",
		"comment":         "",
		"kickstart":       v1.InheritValue,
		"kernel_options":  map[string]interface{}{},
		"power_type":      v1.DefaultPowerType,
		"virt_cpus":       int64(1),
		"virt_file_size":  v1.InheritValue,
		"virt_path":       v1.InheritValue,
		"virt_ram":        v1.InheritValue,
		"virt_type":       v1.DefaultVirtType,
		"netboot_enabled": false,
		"interfaces":      map[string]interface{}{},
	}
}

// newInterface returns the settings the server creates for a new interface.
func newInterface() map[string]interface{} {
	return map[string]interface{}{
		"mac_address": "",
		"ip_address":  "",
		"netmask":     "",
		"dns_name":    "",
		"static":      false,
		"management":  false,
	}
}

// applyArguments applies "--key=value" arguments to a record.  Arguments
// that follow "--interface=<name>" apply to that interface.  A non-empty
// message is returned if the arguments are rejected.
func applyArguments(kind v1.Kind, record platform.Record, args []string) string {
	var current map[string]interface{}
	var currentName string

	for _, arg := range args {
		key, value, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		key = strings.ReplaceAll(key, "-", "_")

		if kind == v1.KindSystem && key == "interface" {
			interfaces := recordInterfaces(record)
			currentName = value
			if existing, ok := interfaces[value]; ok {
				current = existing.(map[string]interface{})
			} else {
				current = newInterface()
				interfaces[value] = current
			}
			continue
		}

		if current != nil {
			if key == "delete_interface" {
				interfaces := recordInterfaces(record)
				if len(interfaces) <= 1 {
					return "a system must have at least one interface"
				}
				delete(interfaces, currentName)
				current = nil
				continue
			}
			current[key] = parseScalar(value)
			continue
		}

		switch key {
		case "kopts":
			record["kernel_options"] = parseOptions(value)
		case "kopts_post":
			record["kernel_options_post"] = parseOptions(value)
		case "name_servers", "repos":
			list := make([]interface{}, 0)
			for _, item := range strings.Fields(value) {
				list = append(list, item)
			}
			record[key] = list
		case "netboot_enabled":
			record[key] = parseScalar(value) == true
		default:
			record[key] = value
		}
	}

	return ""
}

func recordInterfaces(record platform.Record) map[string]interface{} {
	interfaces, ok := record["interfaces"].(map[string]interface{})
	if !ok {
		interfaces = map[string]interface{}{}
		record["interfaces"] = interfaces
	}
	return interfaces
}

func parseScalar(value string) interface{} {
	switch value {
	case "true", "True":
		return true
	case "false", "False":
		return false
	}
	return value
}

func parseOptions(value string) map[string]interface{} {
	result := map[string]interface{}{}
	for _, token := range strings.Fields(value) {
		key, option, found := strings.Cut(token, "=")
		if !found {
			result[key] = v1.FlagSentinel
			continue
		}
		// Repeated options are reported as a list.
		switch current := result[key].(type) {
		case string:
			result[key] = []interface{}{current, option}
		case []interface{}:
			result[key] = append(current, option)
		default:
			result[key] = option
		}
	}
	return result
}

func copyValue(in interface{}) interface{} {
	switch v := in.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			out[key] = copyValue(value)
		}
		return out
	case platform.Record:
		return copyValue(map[string]interface{}(v))
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, value := range v {
			out[i] = copyValue(value)
		}
		return out
	}
	return in
}
