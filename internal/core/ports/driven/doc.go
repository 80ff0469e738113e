// Package driven defines the outbound ports of the export engine:
// the fetch collaborators that retrieve metadata, content and comments
// from the remote source, and the store that persists export units.
// Adapters in internal/connectors and internal/adapters/driven
// implement these interfaces.
package driven
