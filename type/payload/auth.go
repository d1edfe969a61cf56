package payload

type LoginPayload struct {
	Password string `json:"password" validate:"required"`
}
