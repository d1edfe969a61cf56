package response

type SuccessResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Data    any     `json:"data,omitempty"`
}

// Success builds the success envelope. A non-string msg is treated as the
// payload with no message.
func Success(msg any, data ...any) *SuccessResponse {
	message, ok := msg.(string)
	if !ok {
		return &SuccessResponse{Success: true, Data: msg}
	}

	resp := &SuccessResponse{Success: true, Message: &message}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	return resp
}
