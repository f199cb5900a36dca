// Package config loads process configuration from the environment.
//
// Every setting has a default, so an empty environment yields a working
// desktop. Installation options for renderers live in a separate file
// (YAML, TOML or JSON) named by DESKTOP_OPTIONS_FILE.
package config
