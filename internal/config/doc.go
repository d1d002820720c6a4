// SPDX-License-Identifier: MIT

// Package config loads process configuration for the exactla CLI.
//
// Precedence, lowest first: built-in defaults, an optional config file
// (TOML, YAML or JSON, chosen by extension), EXACTLA_* environment
// variables (dots in keys become underscores, e.g. EXACTLA_SOLVER_TRIALS),
// then command-line flags bound with BindFlags.
package config
