// Package sqlite persists routing rules in a SQLite database so rule
// administration survives restarts.
package sqlite
