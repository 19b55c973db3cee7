// Package driven defines the contracts the routing core requires from
// its collaborators: the content store, the principal directory, the
// term store, and routing-rule persistence. Adapters implement these
// interfaces; the core never depends on an adapter directly.
package driven
