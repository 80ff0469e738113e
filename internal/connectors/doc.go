// Package connectors wires the per-API fetcher adapters into the
// fetcher set the core consumes. Each call to the factory builds fresh
// service handles, so every worker owns its transport.
package connectors
