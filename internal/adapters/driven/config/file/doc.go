// Package file loads and saves the engine configuration from a TOML
// file.
package file
