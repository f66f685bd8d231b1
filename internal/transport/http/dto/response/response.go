package response

// Envelope is embedded by every success body so clients can branch on
// "success" before reading anything else.
type Envelope struct {
	Success bool `json:"success"`
}

func OK() Envelope {
	return Envelope{Success: true}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func Error(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	}
}

type MessageResponse struct {
	Envelope
	Message string `json:"message"`
}
