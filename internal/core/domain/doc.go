// Package domain contains the core entities of the export engine:
// Drive items, comments, extracted assets, exported documents and
// batch results. It has no dependencies on adapters or transports.
package domain
