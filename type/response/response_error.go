package response

type ErrorResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

func Error(msg any) *ErrorResponse {
	message, ok := msg.(string)
	if !ok {
		message = "Unknown Error"
	}
	return &ErrorResponse{Success: false, Message: &message}
}
