package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the user config dir and working dir at temp dirs and
// clears every env var Load reads.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"TASKFLOW_FILE", "TASKFLOW_THEME", "TASKFLOW_LOG_LEVEL", "TASKFLOW_LOG_FORMAT", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	chdir(t, t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.DataFile != DefaultDataFile {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, DefaultDataFile)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, DefaultTheme)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.NoColor {
		t.Error("NoColor should default to false")
	}
}

func TestLoadResolvesDataFileAgainstWorkDir(t *testing.T) {
	isolate(t)

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(cfg.WorkDir, DefaultDataFile); cfg.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, want)
	}
	if !filepath.IsAbs(cfg.DataFile) {
		t.Errorf("DataFile should be absolute, got %q", cfg.DataFile)
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	userDir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	writeFile(t, filepath.Join(userDir, appName, userConfigName), `
data_file = "/user/tasks.csv"
theme = "neon"
log_level = "debug"
log_format = "json"
`)
	writeFile(t, "taskflow.toml", `
data_file = "/project/tasks.csv"
theme = "mono"
`)
	t.Setenv("TASKFLOW_THEME", "classic")
	t.Setenv("TASKFLOW_LOG_LEVEL", "error")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-log-level", "warn", "add", "Buy", "milk"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DataFile != "/project/tasks.csv" {
		t.Errorf("DataFile: project file should override user file, got %q", cfg.DataFile)
	}
	if cfg.Theme != "classic" {
		t.Errorf("Theme: env should override files, got %q", cfg.Theme)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: flag should override env, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: user file value should survive, got %q", cfg.LogFormat)
	}
	if got := fs.Args(); len(got) != 3 || got[0] != "add" {
		t.Errorf("remaining args: got %v", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TASKFLOW_FILE", "/tmp/elsewhere.csv")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile != "/tmp/elsewhere.csv" {
		t.Errorf("DataFile: got %q", cfg.DataFile)
	}
	if !cfg.NoColor {
		t.Error("NO_COLOR should disable color")
	}
}

func TestLoadBadProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, ".taskflow.toml", "data_file = [unterminated")

	if _, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestLoadEmptyDataFile(t *testing.T) {
	isolate(t)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if _, err := Load(fs, []string{"-file", "  "}); err == nil {
		t.Fatal("expected error for empty data file")
	}
}

func TestLoadTheme(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		args    []string
		want    string
		wantErr bool
	}{
		{"default", "", nil, DefaultTheme, false},
		{"flag", "", []string{"-theme", "neon"}, "neon", false},
		{"case and space", "", []string{"-theme", " Mono "}, "mono", false},
		{"unknown flag value", "", []string{"-theme", "sepia"}, "", true},
		{"unknown env value", "sepia", nil, "", true},
		{"flag overrides bad env", "sepia", []string{"-theme", "classic"}, "classic", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("TASKFLOW_THEME", tt.env)
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			cfg, err := Load(fs, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got theme %q", cfg.Theme)
				}
				if !strings.Contains(err.Error(), "classic, neon, mono") {
					t.Errorf("error should list themes: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Theme != tt.want {
				t.Errorf("theme: got %q, want %q", cfg.Theme, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := expandPath("~/tasks.csv"); got != filepath.Join(home, "tasks.csv") {
		t.Errorf("expandPath: got %q", got)
	}
	if got := expandPath("rel/tasks.csv"); got != "rel/tasks.csv" {
		t.Errorf("expandPath should leave relative paths alone: got %q", got)
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
