package auth_controller

import "time"

type AuthController struct {
	jwtSecret    string
	passwordHash string
	tokenTTL     time.Duration
}

func NewAuthController(jwtSecret, passwordHash string, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		jwtSecret:    jwtSecret,
		passwordHash: passwordHash,
		tokenTTL:     tokenTTL,
	}
}
