// File: internal/offload/vars.go
// Package offload
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Derived request variables for the host's output layer. Lookup is a
// tagged-variant table; unknown tags are not-found, never a default value.

package offload

import (
	"strconv"

	"github.com/momentics/hioload-offload/api"
)

// diagnosticValue is the static marker exposed through VarDiagnostic.
const diagnosticValue = "banana"

var varHandlers = map[api.Var]func(ctx *RequestContext) string{
	api.VarWorkDuration: func(ctx *RequestContext) string {
		return strconv.FormatInt(ctx.Output().DurationMS, 10)
	},
	api.VarDiagnostic: func(*RequestContext) string {
		return diagnosticValue
	},
}

// LookupVar resolves a derived variable for a request. Values are
// non-cacheable and not-found until the context reaches DONE.
func (d *Dispatcher) LookupVar(req api.Request, v api.Var) api.VarValue {
	notFound := api.VarValue{NoCacheable: true}
	ctx, ok := d.store.Get(req.ID())
	if !ok || ctx.State() != StateDone {
		return notFound
	}
	handler, ok := varHandlers[v]
	if !ok {
		return notFound
	}
	return api.VarValue{
		Found:       true,
		NoCacheable: true,
		Data:        handler(ctx),
	}
}
