package server

import "context"

// HealthChecker answers the /health endpoint. Backends report their own
// notion of healthy; the server only maps the bool to a status code.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// OkHealthChecker always reports healthy. Used by the in_mem storage mode,
// which has no backend to probe.
type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}
