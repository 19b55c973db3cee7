// Package domain contains the core types of the document routing engine:
// field schemas and their transform classification, content types, routing
// rules, libraries, items, and the value encodings the content store uses
// on the wire.
package domain
