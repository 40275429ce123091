// Package config loads and validates the lxcctl host configuration.
//
// Configuration is read from a TOML file, by default
// /etc/lxcctl/config.toml:
//
//	lxcpath = "/var/lib/lxc"
//	bridge = "lxcbr0"
//	run_as = "ubuntu"
//	template = "ubuntu-cloud"
//	subnet_space = "10.0.0.0/16"
//	subnet_bits = 24
//	use_image_cache = false
//
// A missing file yields the built-in defaults. The image cache
// behavior is an explicit config field rather than an environment
// variable, so a create's behavior is fully determined by the loaded
// configuration.
package config
