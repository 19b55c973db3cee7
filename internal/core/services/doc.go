// Package services implements the routing core: content type ancestry,
// rule matching, library eligibility, folder resolution, value
// transformation, metadata copying, and the routing engine itself.
// Services depend only on domain types and driven ports.
package services
