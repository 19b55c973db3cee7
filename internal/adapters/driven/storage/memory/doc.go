// Package memory provides in-memory implementations of the driven
// storage ports. They back the service tests and, loaded from a site
// fixture, let the CLI exercise a full routing pass without a real
// content repository.
package memory
