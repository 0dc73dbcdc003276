// Package store defines interfaces for task persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic. The only implementation today lives in
// internal/platform/memory and keeps tasks for the lifetime of the process.
package store
