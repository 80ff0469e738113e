// Package services implements the application's core logic: the
// single-item export pipeline and the batch orchestrator that walks
// folder trees and fans work out over a bounded worker pool. Services
// depend only on domain types and driven port interfaces.
package services
