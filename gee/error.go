package gee

// ErrorResponse is the API-wide error envelope: every failed request
// answers {"success":false,"error":...} so the storefront client can
// branch on a single field.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func NewErrorResponse(c *Context, message string) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Error:     message,
		RequestID: c.Req.Header.Get("X-Request-ID"), // empty when not assigned yet
	}
}
