// Package fixture loads a TOML site description into the in-memory
// stores so the CLI can exercise routing passes without a real content
// repository.
package fixture
