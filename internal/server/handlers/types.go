package handlers

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ServiceInfoResponse is the static descriptor served on GET /.
type ServiceInfoResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

const errorCodeInvalidRequest = "INVALID_REQUEST"
