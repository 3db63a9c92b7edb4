/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2026 Wind River Systems, Inc. */

package common

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	v1 "github.com/wind-river/cobbler-deployment-manager/api/v1"
)

type recordingRunner struct {
	commands []Command
	failAt   int
}

func (r *recordingRunner) Run(_ context.Context, command Command) (string, error) {
	r.commands = append(r.commands, command)
	if r.failAt > 0 && len(r.commands) == r.failAt {
		return "boom", NewRemoteCommandError(command.Args, "boom", 1)
	}
	return "", nil
}

var _ = Describe("Commands", func() {
	It("should build object commands", func() {
		cmd := EditCommand(v1.KindSystem, "node01", Argument("power_type", "ipmitool"))
		Expect(cmd.Args).To(Equal([]string{"system", "edit", "--name=node01", "--power-type=ipmitool"}))
		Expect(cmd.String()).To(Equal("system edit --name=node01 --power-type=ipmitool"))
		Expect(cmd.IsSync()).To(BeFalse())

		Expect(AddCommand(v1.KindProfile, "p1").Args).To(Equal([]string{"profile", "add", "--name=p1"}))
		Expect(RemoveCommand(v1.KindProfile, "p1").Args).To(Equal([]string{"profile", "remove", "--name=p1"}))
		Expect(Switch("delete_interface")).To(Equal("--delete-interface"))
	})

	It("should terminate groups with a single sync", func() {
		group := []Command{EditCommand(v1.KindSystem, "n", "--comment=x")}
		group = WithSync(group)
		Expect(group).To(HaveLen(2))
		Expect(group[1].IsSync()).To(BeTrue())
		Expect(WithSync(group)).To(HaveLen(2))
		Expect(WithSync(nil)).To(BeEmpty())
	})

	It("should expand option maps", func() {
		options := v1.OptionMap{"noacpi": v1.FlagOption(), "selinux": v1.StringOption("permissive")}
		Expect(ExpandOptions(options)).To(Equal([]string{"noacpi", "selinux=permissive"}))
		Expect(JoinOptions(options)).To(Equal("noacpi selinux=permissive"))
		Expect(JoinOptions(v1.OptionMap{})).To(Equal(""))
	})

	It("should repeat the key for every value of a repeated option", func() {
		options := v1.OptionMap{"console": v1.ListOption("tty0", "ttyS0,115200"), "noacpi": v1.FlagOption()}
		Expect(ExpandOptions(options)).To(Equal([]string{"console=tty0", "console=ttyS0,115200", "noacpi"}))
		Expect(JoinOptions(options)).To(Equal("console=tty0 console=ttyS0,115200 noacpi"))
	})

	Context("when applying commands", func() {
		It("should run every command in order", func() {
			runner := &recordingRunner{}
			commands := []Command{EditCommand(v1.KindSystem, "n", "--comment=x"), SyncCommand()}
			Expect(ApplyCommands(context.TODO(), runner, commands, logr.Discard())).To(Succeed())
			Expect(runner.commands).To(Equal(commands))
		})

		It("should stop at the first failure", func() {
			runner := &recordingRunner{failAt: 1}
			commands := []Command{EditCommand(v1.KindSystem, "n", "--comment=x"), SyncCommand()}
			err := ApplyCommands(context.TODO(), runner, commands, logr.Discard())
			Expect(err).To(HaveOccurred())
			Expect(IsRemoteCommandError(err)).To(BeTrue())
			Expect(runner.commands).To(HaveLen(1))
		})
	})
})

var _ = Describe("Errors", func() {
	It("should classify wrapped errors", func() {
		err := NewValidationError("bad")
		Expect(IsValidationError(err)).To(BeTrue())
		Expect(IsRemoteCommandError(err)).To(BeFalse())
		Expect(IsTransportError(NewTransportError("http://127.0.0.1/cobbler_api", errors.New("refused")))).To(BeTrue())
	})

	It("should describe failed commands", func() {
		err := NewRemoteCommandError([]string{"system", "remove", "--name=n"}, "unknown system name\n", 1)
		Expect(err.Error()).To(Equal(`command "system remove --name=n" failed with exit code 1: unknown system name`))
		Expect(IsNotFound(err)).To(BeTrue())
		Expect(IsNotFound(NewRemoteCommandError(nil, "permission denied", 1))).To(BeFalse())
		Expect(IsNotFound(NewValidationError("unknown system name"))).To(BeFalse())
	})

	It("should extract XML-RPC fault strings", func() {
		err := NewTransportError("api", errors.New(`faultString: "unknown remote method"`))
		Expect(err.Error()).To(Equal("failed to query api: unknown remote method"))
	})

	It("should report errors with the entity identity", func() {
		sink := &DummyLogSink{}
		handler := NewErrorHandler(logr.New(sink))
		err := handler.HandleReconcilerError(v1.KindProfile, "p1", NewValidationError("bad"))
		Expect(err.Error()).To(Equal(`profile "p1": bad`))
		Expect(sink.errorCalled).To(BeTrue())
		Expect(sink.message).To(Equal("validation error"))
		Expect(handler.HandleReconcilerError(v1.KindProfile, "p1", nil)).To(Succeed())
	})
})

var _ = Describe("Delta", func() {
	It("should render changed attributes", func() {
		type info struct {
			Hostname string       `json:"hostname"`
			Options  v1.OptionMap `json:"kernel_options"`
		}
		current := info{Hostname: "a", Options: v1.OptionMap{"noacpi": v1.FlagOption()}}
		desired := info{Hostname: "b", Options: v1.OptionMap{"noacpi": v1.FlagOption()}}

		delta, err := GetDeltaString(desired, current)
		Expect(err).ToNot(HaveOccurred())
		Expect(delta).To(ContainSubstring(`-`))
		Expect(delta).To(ContainSubstring(`"a"`))
		Expect(delta).To(ContainSubstring(`"b"`))

		delta, err = GetDeltaString(current, current)
		Expect(err).ToNot(HaveOccurred())
		Expect(delta).To(BeEmpty())
	})
})

type DummyLogSink struct {
	errorCalled bool
	message     string
}

func (l *DummyLogSink) Init(info logr.RuntimeInfo) {
}

func (l *DummyLogSink) Enabled(level int) bool {
	return true
}
func (l *DummyLogSink) Info(level int, msg string, keysAndValues ...interface{}) {
	l.message = msg
}
func (l *DummyLogSink) Error(err error, msg string, keysAndValues ...interface{}) {
	l.errorCalled = true
	l.message = msg
}
func (l *DummyLogSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return l
}
func (l *DummyLogSink) WithName(name string) logr.LogSink {
	return l
}
