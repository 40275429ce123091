package config

import (
	"fmt"
	"net/netip"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/uoi-cloud/lxcctl/internal/system"
)

const (
	// DefaultConfigPath is where the host configuration lives.
	DefaultConfigPath = "/etc/lxcctl/config.toml"

	// DefaultLXCPath is the default LXC container storage path.
	DefaultLXCPath = "/var/lib/lxc"

	// NetConfigRelPath is the location of the generated network
	// config inside a container's rootfs.
	NetConfigRelPath = "etc/default/lxc-net"
)

// containerNameRegex validates container names.
// Names must start with a lowercase letter or digit, followed by lowercase
// letters, digits, underscores, or hyphens. Maximum length is 63 characters.
var containerNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateContainerName checks if a container name is valid.
func ValidateContainerName(name string) error {
	if name == "" {
		return fmt.Errorf("container name cannot be empty")
	}

	if !containerNameRegex.MatchString(name) {
		return fmt.Errorf("invalid container name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// SafePath validates that a constructed path stays within the base
// directory. This prevents names like "../../../etc" from escaping
// the LXC storage directory.
func SafePath(baseDir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("name cannot be an absolute path")
	}

	if filepath.Dir(name) != "." {
		return "", fmt.Errorf("name cannot contain path separators")
	}

	path := filepath.Join(baseDir, name)

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return "", fmt.Errorf("path escapes base directory")
	}

	return path, nil
}

// Config is the host configuration for lxcctl
type Config struct {
	// LXCPath is the LXC container storage directory
	LXCPath string `toml:"lxcpath"`

	// Bridge is the host bridge interface containers attach to
	Bridge string `toml:"bridge"`

	// RunAs is the in-container user for SSH command execution
	RunAs string `toml:"run_as"`

	// Template is the LXC template containers are created from
	Template string `toml:"template"`

	// SubnetSpace is the private block subnets are carved out of
	SubnetSpace string `toml:"subnet_space"`

	// SubnetBits is the prefix length of allocated subnets
	SubnetBits int `toml:"subnet_bits"`

	// UseImageCache reuses the locally cached template image instead
	// of forcing a re-download on create
	UseImageCache bool `toml:"use_image_cache"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LXCPath:     DefaultLXCPath,
		Bridge:      "lxcbr0",
		RunAs:       "ubuntu",
		Template:    "ubuntu-cloud",
		SubnetSpace: "10.0.0.0/16",
		SubnetBits:  24,
	}
}

// Load reads the configuration file at path, applying defaults for
// unset fields. A missing file yields the defaults.
func Load(path string, filesystem system.FileSystem) (*Config, error) {
	if filesystem == nil {
		filesystem = system.DefaultFS()
	}

	cfg := Default()

	if !filesystem.Exists(path) {
		return cfg, nil
	}

	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if c.LXCPath == "" {
		return fmt.Errorf("lxcpath is required")
	}
	if c.Bridge == "" {
		return fmt.Errorf("bridge is required")
	}
	if c.Template == "" {
		return fmt.Errorf("template is required")
	}

	space, err := netip.ParsePrefix(c.SubnetSpace)
	if err != nil {
		return fmt.Errorf("invalid subnet_space %q: %w", c.SubnetSpace, err)
	}
	if !space.Addr().Is4() {
		return fmt.Errorf("subnet_space %q must be IPv4", c.SubnetSpace)
	}

	if c.SubnetBits < space.Bits() || c.SubnetBits > 30 {
		return fmt.Errorf("subnet_bits %d out of range for space %s", c.SubnetBits, c.SubnetSpace)
	}

	return nil
}

// Space returns the parsed allocation space. Validate must have
// passed for the result to be meaningful.
func (c *Config) Space() netip.Prefix {
	space, _ := netip.ParsePrefix(c.SubnetSpace)
	return space.Masked()
}

// ContainerDir returns the container's directory under LXCPath.
func (c *Config) ContainerDir(name string) (string, error) {
	if err := ValidateContainerName(name); err != nil {
		return "", err
	}
	return SafePath(c.LXCPath, name)
}
