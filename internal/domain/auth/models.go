package auth

import "time"

type UserContext struct {
	OperatorID string
	Email      string
	Role       string
}

type Session struct {
	Token     string    `json:"accessToken"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
}
