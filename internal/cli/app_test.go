// pattern: Functional Core
package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func newTestApp() (*App, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return NewApp("1.0.0", stdout, stderr), stdout, stderr
}

func TestApp_PrintHelp_ShowsCommandsAndGroups(t *testing.T) {
	app, _, _ := newTestApp()
	app.AddCommand(&Command{Name: "validate", Summary: "Check config"})
	app.AddGroup("layout", "Inspect the layout")

	buf := &bytes.Buffer{}
	app.PrintHelp(buf)
	output := buf.String()

	for _, want := range []string{"Usage: splitpane", "validate", "Command Groups", "layout", "(none)"} {
		if !strings.Contains(output, want) {
			t.Errorf("Help missing %q, got:\n%s", want, output)
		}
	}
}

func TestApp_Execute_NoArgs_ReturnsTrueForTUI(t *testing.T) {
	app, _, _ := newTestApp()
	launch, code := app.Execute(nil)
	if !launch || code != 0 {
		t.Errorf("Execute(nil) = (%v, %d), want (true, 0)", launch, code)
	}
}

func TestApp_Execute_UngroupedCommand_Dispatches(t *testing.T) {
	app, stdout, _ := newTestApp()
	called := false
	app.AddCommand(&Command{
		Name: "version",
		Run: func(args []string, out io.Writer) error {
			called = true
			_, _ = out.Write([]byte("ok"))
			return nil
		},
	})

	launch, code := app.Execute([]string{"version"})
	if launch || code != 0 {
		t.Errorf("Execute = (%v, %d), want (false, 0)", launch, code)
	}
	if !called {
		t.Error("Command Run was not called")
	}
	if stdout.String() != "ok" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "ok")
	}
}

func TestApp_Execute_GroupCommand_Dispatches(t *testing.T) {
	app, _, _ := newTestApp()
	group := app.AddGroup("layout", "Inspect the layout")

	var passedArgs []string
	group.AddCommand(&Command{
		Name: "drag",
		Run: func(args []string, _ io.Writer) error {
			passedArgs = args
			return nil
		},
	})

	if _, code := app.Execute([]string{"layout", "drag", "root", "10"}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if len(passedArgs) != 2 || passedArgs[0] != "root" || passedArgs[1] != "10" {
		t.Errorf("Command received args %v, want [root 10]", passedArgs)
	}
}

func TestApp_Execute_GroupHelp_PrintsGroupCommands(t *testing.T) {
	for _, arg := range []string{"help", "--help", "-h"} {
		t.Run(arg, func(t *testing.T) {
			app, _, stderr := newTestApp()
			group := app.AddGroup("layout", "Inspect the layout")
			group.AddCommand(&Command{Name: "tree", Summary: "Print the tree"})

			if _, code := app.Execute([]string{"layout", arg}); code != 0 {
				t.Errorf("exit code = %d, want 0", code)
			}
			if !strings.Contains(stderr.String(), "tree") {
				t.Errorf("group help missing 'tree', got: %s", stderr.String())
			}
		})
	}
}

func TestApp_Execute_CommandHelp_PrintsUsage(t *testing.T) {
	app, _, stderr := newTestApp()
	group := app.AddGroup("layout", "Inspect the layout")

	runCalled := false
	group.AddCommand(&Command{
		Name:  "drag",
		Usage: "Usage: splitpane layout drag <split-id> <delta>",
		Run: func(args []string, _ io.Writer) error {
			runCalled = true
			return nil
		},
	})

	app.Execute([]string{"layout", "drag", "--help"})

	if runCalled {
		t.Error("Command Run was called, should have printed usage instead")
	}
	if !strings.Contains(stderr.String(), "Usage: splitpane layout drag") {
		t.Errorf("usage output missing, got: %s", stderr.String())
	}
}

func TestApp_Execute_CommandError_ExitsWithCode1(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantUsage bool
	}{
		{"plain error", errors.New("boom"), false},
		{"usage error", ErrUsage, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, stderr := newTestApp()
			app.AddCommand(&Command{
				Name:  "fail",
				Usage: "Usage: splitpane fail",
				Run:   func([]string, io.Writer) error { return tt.err },
			})

			_, code := app.Execute([]string{"fail"})
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), "error:") {
				t.Errorf("stderr missing error, got: %s", stderr.String())
			}
			if got := strings.Contains(stderr.String(), "Usage: splitpane fail"); got != tt.wantUsage {
				t.Errorf("usage printed = %v, want %v", got, tt.wantUsage)
			}
		})
	}
}

func TestApp_Execute_UnknownCommand_ExitsWithCode1(t *testing.T) {
	app, _, stderr := newTestApp()
	launch, code := app.Execute([]string{"bogus"})
	if launch || code != 1 {
		t.Errorf("Execute = (%v, %d), want (false, 1)", launch, code)
	}
	if !strings.Contains(stderr.String(), "Usage: splitpane") {
		t.Error("unknown command should print top-level help")
	}
}

func TestApp_Execute_UnknownGroupCommand_ExitsWithCode1(t *testing.T) {
	app, _, _ := newTestApp()
	app.AddGroup("layout", "Inspect the layout")
	if _, code := app.Execute([]string{"layout", "bogus"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
