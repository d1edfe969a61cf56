package payload

type EmailConfig struct {
	Host string `json:"host"`
	Port int    `json:"port" validate:"omitempty,gt=0,lte=65535"`
	User string `json:"user"`
	Pass string `json:"pass"`
	From string `json:"from" validate:"omitempty,email"`
}

type BulkMailPayload struct {
	EmailConfig *EmailConfig `json:"emailConfig"`
	Subject     string       `json:"subject" validate:"required"`
	Message     string       `json:"message" validate:"required"`
}
