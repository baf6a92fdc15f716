// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration, metrics, and debug introspection for
// hioload-offload.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and validated atomic updates
//   - Runtime observers for hot-reload
//   - Map-snapshot metrics plus Prometheus collectors for the pool
//   - Debug hooks and probe registration
package control
