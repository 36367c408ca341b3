package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme.Palette.Primary != "#0066CC" {
		t.Errorf("primary = %q, want default", cfg.Theme.Palette.Primary)
	}
	if cfg.Server.Port != 8501 {
		t.Errorf("port = %d, want 8501", cfg.Server.Port)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !strings.Contains(err.Error(), "config file") {
		t.Errorf("error should mention 'config file', got: %s", err)
	}
}

func TestLoad_OverridesKeepDefaults(t *testing.T) {
	path := writeConfig(t, `title: Demo Day
default_section: market
theme:
  palette:
    primary: "#112233"
server:
  port: 9000
  read_timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Title != "Demo Day" || cfg.DefaultSection != "market" {
		t.Errorf("title/default = %q/%q", cfg.Title, cfg.DefaultSection)
	}
	if cfg.Theme.Palette.Primary != "#112233" {
		t.Errorf("primary = %q", cfg.Theme.Palette.Primary)
	}
	if cfg.Theme.Palette.Accent != "#00A8E8" {
		t.Errorf("accent should keep its default, got %q", cfg.Theme.Palette.Accent)
	}
	if cfg.Server.Port != 9000 || cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("write timeout should keep its default, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
}

func TestLoad_InvalidColorRejected(t *testing.T) {
	path := writeConfig(t, `theme:
  palette:
    danger: red
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for non-hex color")
	}
	if !strings.Contains(err.Error(), "config file") || !strings.Contains(err.Error(), "danger") {
		t.Errorf("error should name the file and the color, got: %s", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "theme: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_Port(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "[1, 65535]") {
		t.Errorf("expected port range error, got %v", err)
	}
}

func TestValidate_Timeouts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.WriteTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero write timeout")
	}
}

func TestValidate_Font(t *testing.T) {
	for _, font := range []string{"", "Inter", "Source Sans 3", "Noto_Sans-JP", "Inter, Helvetica"} {
		cfg := DefaultConfig()
		cfg.Theme.Font = font
		if err := cfg.Validate(); err != nil {
			t.Errorf("font %q rejected: %v", font, err)
		}
	}

	for _, font := range []string{`Inter"><script>`, "Inter;color:red", "a=b", "{x}"} {
		cfg := DefaultConfig()
		cfg.Theme.Font = font
		if err := cfg.Validate(); err == nil {
			t.Errorf("font %q should be rejected", font)
		}
	}
}

func TestLoad_InvalidFontRejected(t *testing.T) {
	path := writeConfig(t, `theme:
  font: 'Inter"><script>alert(1)</script>'
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "font") {
		t.Errorf("expected font error, got %v", err)
	}
}

func TestSanitizeFont(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Inter", "Inter"},
		{`Inter"><script>alert(1)</script><x a="`, "Interscriptalert1scriptx a"},
		{" Fira;Code ", "FiraCode"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFont(tt.in); got != tt.want {
			t.Errorf("SanitizeFont(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
