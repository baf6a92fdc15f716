// File: api/vars.go
// Package api defines the derived request variables.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Var tags the derived request values exposed after resumption. Lookup is a
// tagged-variant table: unknown tags report not-found rather than a default.
type Var int

const (
	// VarWorkDuration is the milliseconds the offloaded task slept.
	VarWorkDuration Var = iota
	// VarDiagnostic is a static marker string for output plumbing checks.
	VarDiagnostic
)

// VarValue is a resolved variable. Values are never cacheable: they are
// not-found until the request's context reaches its final state.
type VarValue struct {
	Found       bool
	NoCacheable bool
	Data        string
}
