// Package config provides configuration structures and utilities for RiskScan.
// It defines the backend origin, request behavior, refresh timing, and
// output preferences, and loads overrides from a YAML file and the
// environment.
//
// Precedence, lowest to highest:
//  1. Defaults from NewConfig
//  2. The configuration file (.riskscan or the XDG config directory)
//  3. Environment variables (RISKSCAN_BACKEND_URL, RISKSCAN_PROXY, RISKSCAN_TIMEOUT)
//  4. Command-line flags
package config
