package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func setup(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NO_COLORS", "")
	t.Chdir(t.TempDir())
	return home
}

func TestInitDefaults(t *testing.T) {
	home := setup(t)

	if err := Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := GetPath(), filepath.Join(home, "src", "tries"); got != want {
		t.Errorf("expected path %q, got %q", want, got)
	}
	if GetOutput() != "print" {
		t.Errorf("expected print output, got %q", GetOutput())
	}
	if !GetColors() || !C.Colors {
		t.Error("expected colors enabled by default")
	}
	if GetWidth() != 0 || GetHeight() != 0 || GetLimit() != 0 {
		t.Errorf("expected zero size and limit, got %d %d %d", GetWidth(), GetHeight(), GetLimit())
	}
	if GetWide() != "emoji" {
		t.Errorf("expected emoji width policy, got %q", GetWide())
	}
	if GetLogFile() != "" {
		t.Errorf("expected logging disabled, got %q", GetLogFile())
	}
}

func TestInitEnv(t *testing.T) {
	setup(t)
	t.Setenv("TRY_OUTPUT", "copy")
	t.Setenv("TRY_WIDTH", "100")
	t.Setenv("TRY_HEIGHT", "-3")
	t.Setenv("TRY_PATH", "/data/tries")
	t.Setenv("NO_COLORS", "1")

	if err := Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if GetOutput() != "copy" || C.Output != "copy" {
		t.Errorf("expected copy output, got %q", GetOutput())
	}
	if GetWidth() != 100 {
		t.Errorf("expected width 100, got %d", GetWidth())
	}
	if GetHeight() != 0 {
		t.Errorf("expected negative height to clamp to 0, got %d", GetHeight())
	}
	if GetPath() != "/data/tries" {
		t.Errorf("expected /data/tries, got %q", GetPath())
	}
	if GetColors() || C.Colors {
		t.Error("expected NO_COLORS to disable colors")
	}
}

func TestInitConfigFile(t *testing.T) {
	home := setup(t)
	dir := filepath.Join(home, ".config", "trypick")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "path: ~/experiments\nlimit: 25\nwide: eastasian\nlog_file: ~/trypick.log\n"
	if err := os.WriteFile(filepath.Join(dir, "trypick.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := GetPath(), filepath.Join(home, "experiments"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if GetLimit() != 25 {
		t.Errorf("expected limit 25, got %d", GetLimit())
	}
	if GetWide() != "eastasian" {
		t.Errorf("expected eastasian, got %q", GetWide())
	}
	if got, want := GetLogFile(), filepath.Join(home, "trypick.log"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSetters(t *testing.T) {
	setup(t)
	if err := Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	SetOutput("exec")
	SetPath("/elsewhere")
	SetColors(false)
	if GetOutput() != "exec" || GetPath() != "/elsewhere" || GetColors() {
		t.Errorf("setters not applied: %q %q %v", GetOutput(), GetPath(), GetColors())
	}

	SetColors(true)
	if !GetColors() {
		t.Error("expected colors re-enabled")
	}
}
