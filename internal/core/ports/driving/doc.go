// Package driving defines the use-case interfaces exposed to the
// engine's entry points. The CLI and any future host surface depend on
// these, never on the service implementations.
package driving
