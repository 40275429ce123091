package config

import (
	"strings"
	"testing"

	"github.com/uoi-cloud/lxcctl/internal/system"
)

func TestValidateContainerName(t *testing.T) {
	valid := []string{"web", "db-1", "a", "node_01", "0box"}
	for _, name := range valid {
		if err := ValidateContainerName(name); err != nil {
			t.Errorf("ValidateContainerName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "Web", "-web", "web/1", "../web", strings.Repeat("a", 64)}
	for _, name := range invalid {
		if err := ValidateContainerName(name); err == nil {
			t.Errorf("ValidateContainerName(%q) = nil, want error", name)
		}
	}
}

func TestSafePath(t *testing.T) {
	got, err := SafePath("/var/lib/lxc", "web")
	if err != nil {
		t.Fatalf("SafePath failed: %v", err)
	}
	if got != "/var/lib/lxc/web" {
		t.Errorf("SafePath = %q", got)
	}

	for _, name := range []string{"../web", "/etc/passwd", "a/b"} {
		if _, err := SafePath("/var/lib/lxc", name); err == nil {
			t.Errorf("SafePath(%q) = nil error, want traversal rejection", name)
		}
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load("/etc/lxcctl/config.toml", system.NewMockFS())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LXCPath != DefaultLXCPath {
		t.Errorf("LXCPath = %q, want %q", cfg.LXCPath, DefaultLXCPath)
	}
	if cfg.Bridge != "lxcbr0" {
		t.Errorf("Bridge = %q, want lxcbr0", cfg.Bridge)
	}
	if cfg.SubnetSpace != "10.0.0.0/16" || cfg.SubnetBits != 24 {
		t.Errorf("SubnetSpace/Bits = %q/%d", cfg.SubnetSpace, cfg.SubnetBits)
	}
	if cfg.UseImageCache {
		t.Error("UseImageCache should default to false")
	}
}

func TestLoad_FromTOML(t *testing.T) {
	fs := system.NewMockFS()
	fs.AddFile("/etc/lxcctl/config.toml", []byte(`
lxcpath = "/srv/lxc"
bridge = "br0"
run_as = "deploy"
subnet_space = "192.168.0.0/20"
subnet_bits = 26
use_image_cache = true
`), 0644)

	cfg, err := Load("/etc/lxcctl/config.toml", fs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LXCPath != "/srv/lxc" || cfg.Bridge != "br0" || cfg.RunAs != "deploy" {
		t.Errorf("loaded config = %+v", cfg)
	}
	if cfg.SubnetSpace != "192.168.0.0/20" || cfg.SubnetBits != 26 {
		t.Errorf("SubnetSpace/Bits = %q/%d", cfg.SubnetSpace, cfg.SubnetBits)
	}
	if !cfg.UseImageCache {
		t.Error("UseImageCache should be true")
	}
	// Unset fields keep defaults
	if cfg.Template != "ubuntu-cloud" {
		t.Errorf("Template = %q, want ubuntu-cloud", cfg.Template)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	fs := system.NewMockFS()
	fs.AddFile("/etc/lxcctl/config.toml", []byte("lxcpath = [broken"), 0644)

	if _, err := Load("/etc/lxcctl/config.toml", fs); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty lxcpath", func(c *Config) { c.LXCPath = "" }, true},
		{"empty bridge", func(c *Config) { c.Bridge = "" }, true},
		{"bad space", func(c *Config) { c.SubnetSpace = "banana" }, true},
		{"ipv6 space", func(c *Config) { c.SubnetSpace = "fd00::/48" }, true},
		{"bits smaller than space", func(c *Config) { c.SubnetBits = 8 }, true},
		{"bits too large", func(c *Config) { c.SubnetBits = 31 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContainerDir(t *testing.T) {
	cfg := Default()

	dir, err := cfg.ContainerDir("web")
	if err != nil {
		t.Fatalf("ContainerDir failed: %v", err)
	}
	if dir != "/var/lib/lxc/web" {
		t.Errorf("ContainerDir = %q", dir)
	}

	if _, err := cfg.ContainerDir("../escape"); err == nil {
		t.Error("expected rejection of traversal name")
	}
}
