package types

// SuccessEnvelope wraps every 2xx payload under a "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failure: a stable machine code, a
// human-readable message, and optional structured details (field errors,
// redirect targets).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx payload under an "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
