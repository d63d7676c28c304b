package dto

import "github.com/jsamuelsen11/portfolio-service/internal/ports"

// Readiness status values.
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusFailing  = "failing"
)

// LivenessResponse is the body of GET /health/live.
type LivenessResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse is the body of GET /health/ready.
type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []CheckStatus `json:"checks"`
}

// CheckStatus reports one dependency.
type CheckStatus struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
	LatencyMS float64 `json:"latency_ms"`
}

// ToReadinessResponse renders registry results. The overall status is
// not_ready when any check failed.
func ToReadinessResponse(results []ports.CheckResult) ReadinessResponse {
	resp := ReadinessResponse{Status: StatusReady, Checks: make([]CheckStatus, len(results))}

	for i, res := range results {
		cs := CheckStatus{
			Name:      res.Name,
			Status:    StatusOK,
			LatencyMS: float64(res.Latency.Microseconds()) / 1000,
		}
		if res.Err != nil {
			cs.Status = StatusFailing
			cs.Error = res.Err.Error()
			resp.Status = StatusNotReady
		}
		resp.Checks[i] = cs
	}

	return resp
}
