// Package config loads, normalizes, and validates subtrans configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from an explicit path, from
// ~/.config/subtrans/config.toml, or from ./subtrans.toml in that order.
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
