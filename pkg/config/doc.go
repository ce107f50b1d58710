// Package config loads the launcher settings.
//
// Settings are layered with koanf: embedded TOML defaults, then the user's
// config.toml, then MCLAUNCH_* environment variables, where a double
// underscore separates nested keys (MCLAUNCH_JAVA__MAX_RAM=6G).
//
// The resulting *Config is built once and passed explicitly to the packages
// that need it; there is no package-level configuration state.
package config
