package model

import "time"

// GenerateRequest represents a secret generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
// Length counts characters for random and pin modes and words for passphrase mode.
type GenerateRequest struct {
	Mode             string `json:"mode"`
	Length           int    `json:"length"`
	Uppercase        *bool  `json:"uppercase"`
	Lowercase        *bool  `json:"lowercase"`
	Numbers          *bool  `json:"numbers"`
	Symbols          *bool  `json:"symbols"`
	RequireEachClass bool   `json:"require_each_class"`
	Hash             bool   `json:"hash"`
}

// GenerateResponse represents a secret generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Mode     string `json:"mode"`
	Length   int    `json:"length"`
	Hash     string `json:"hash,omitempty"`
}

// VerifyRequest asks whether a secret matches a previously issued hash.
type VerifyRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// VerifyResponse reports the verification result.
type VerifyResponse struct {
	Match bool `json:"match"`
}

// PopupResponse is returned when a popup session is opened.
type PopupResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	GenerateResponse
}
