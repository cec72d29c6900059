package api

import (
	"budgetplanner/internal/config"
)

// HTTPBackend implements Backend over a Doer using configured path templates.
type HTTPBackend struct {
	doer      Doer
	endpoints config.Endpoints
}

var _ Backend = (*HTTPBackend)(nil)

// NewHTTPBackend creates a Backend issuing requests through doer.
func NewHTTPBackend(doer Doer, endpoints config.Endpoints) *HTTPBackend {
	return &HTTPBackend{doer: doer, endpoints: endpoints}
}

func byID(id int64) map[string]int64 {
	return map[string]int64{"id": id}
}
