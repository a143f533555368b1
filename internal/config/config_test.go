package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

func newFlagBinder(t *testing.T, defaults Config, args ...string) *fakeBinder {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return &fakeBinder{fs: fs}
}

// chdirTemp runs the test from an empty directory so no tensorcmp.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Compare.Precision != 1e-5 {
		t.Errorf("Compare.Precision = %g; want 1e-5", cfg.Compare.Precision)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q; want %q", cfg.Output.Format, FormatText)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())

	for _, name := range keyFlags {
		if fs.Lookup(name) == nil {
			t.Errorf("flag %q not registered", name)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(t, defaults), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != defaults {
		t.Errorf("Load() = %+v; want %+v", cfg, defaults)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	chdirTemp(t)
	defaults := DefaultConfig()
	binder := newFlagBinder(t, defaults, "--precision=0.001", "--workers=3", "--format=yaml", "--verbosity=4")

	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Compare: CompareConfig{Precision: 0.001, Workers: 3},
		Output:  OutputConfig{Format: FormatYAML},
		Log:     LogConfig{Verbosity: 4},
	}
	if cfg != want {
		t.Errorf("Load() = %+v; want %+v", cfg, want)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TENSORCMP_COMPARE_PRECISION", "0.5")
	t.Setenv("TENSORCMP_OUTPUT_FORMAT", "yaml")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Compare.Precision != 0.5 {
		t.Errorf("Compare.Precision = %g; want 0.5", cfg.Compare.Precision)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("Output.Format = %q; want yaml", cfg.Output.Format)
	}
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TENSORCMP_COMPARE_WORKERS", "9")
	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(t, defaults, "--workers=2"), Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Compare.Workers != 2 {
		t.Errorf("Compare.Workers = %d; want 2", cfg.Compare.Workers)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	cfgFile := filepath.Join(dir, "custom.yaml")
	content := `
compare:
  precision: 0.01
  workers: 6
log:
  verbosity: 2
`
	if err := os.WriteFile(cfgFile, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{Cmd: newFlagBinder(t, defaults), ConfigFile: cfgFile, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Compare.Precision != 0.01 || cfg.Compare.Workers != 6 || cfg.Log.Verbosity != 2 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q; want default text", cfg.Output.Format)
	}
}

func TestLoad_ConfigFileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "tensorcmp.yaml"), []byte("output:\n  format: yaml\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("Output.Format = %q; want yaml", cfg.Output.Format)
	}
}

func TestLoad_Invalid(t *testing.T) {
	chdirTemp(t)
	defaults := DefaultConfig()

	tests := []struct {
		name string
		args []string
	}{
		{"negative precision", []string{"--precision=-1"}},
		{"negative workers", []string{"--workers=-2"}},
		{"unknown format", []string{"--format=json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(LoadOptions{Cmd: newFlagBinder(t, defaults, tt.args...), Defaults: defaults}); err == nil {
				t.Error("Load() succeeded; want error")
			}
		})
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	chdirTemp(t)
	_, err := Load(LoadOptions{ConfigFile: "/nonexistent/path/tensorcmp.yaml", Defaults: DefaultConfig()})
	if err == nil {
		t.Fatal("Load() succeeded; want error")
	}
}
