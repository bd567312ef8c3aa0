package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/taskflow/internal/cli"
)

func TestRunSingleShot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("TASKFLOW_FILE", "")
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "tasks.csv")
	flags := []string{"-file", path, "-no-color", "-log-level", "error"}

	steps := []struct {
		args []string
		code int
	}{
		{[]string{"add", "Buy milk", "-p", "2", "-t", "2025-12-01"}, cli.ExitOK},
		{[]string{"add", "Call mom"}, cli.ExitOK},
		{[]string{"done", "1"}, cli.ExitOK},
		{[]string{"remove", "2"}, cli.ExitOK},
		{[]string{"remove", "2"}, cli.ExitError},
		{[]string{"edit"}, cli.ExitUsage},
	}
	for _, st := range steps {
		if code := run(append(append([]string{}, flags...), st.args...)); code != st.code {
			t.Errorf("run %v: got %d, want %d", st.args, code, st.code)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read task file: %v", err)
	}
	if got, want := string(b), "1,Buy milk,,2,2025-12-01,1\n"; got != want {
		t.Errorf("task file: got %q, want %q", got, want)
	}
}

func TestRunBadFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())
	if code := run([]string{"-no-such-flag"}); code != cli.ExitUsage {
		t.Errorf("got %d, want %d", code, cli.ExitUsage)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
