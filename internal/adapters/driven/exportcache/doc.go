// Package exportcache persists export units on the filesystem with a
// SQLite freshness index. Each unit is a directory holding the item's
// metadata, comments, converted content and extracted assets; the index
// records per-item modification times so unchanged items can be skipped
// on re-export.
package exportcache
