package service

import (
	"log/slog"
	"time"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

// PopupService opens popup sessions: signed tokens that let a secondary
// window regenerate secrets with the settings it was opened with.
type PopupService struct {
	generator   *GeneratorService
	tokenSecret string
	tokenTTL    time.Duration
}

// NewPopupService creates a new PopupService.
func NewPopupService(generator *GeneratorService, secret string, ttl time.Duration) *PopupService {
	return &PopupService{
		generator:   generator,
		tokenSecret: secret,
		tokenTTL:    ttl,
	}
}

// Open validates the settings, issues a session token and generates the
// first secret for the popup.
func (s *PopupService) Open(req model.GenerateRequest) (model.PopupResponse, error) {
	genReq, err := BuildRequest(req)
	if err != nil {
		return model.PopupResponse{}, err
	}

	resp, err := s.generator.GenerateFrom(genReq, false)
	if err != nil {
		return model.PopupResponse{}, err
	}

	token, expiresAt, err := crypto.GeneratePopupToken(genReq, s.tokenSecret, s.tokenTTL)
	if err != nil {
		return model.PopupResponse{}, err
	}

	slog.Info("popup session opened", "mode", genReq.Mode, "size", genReq.Size, "expires_at", expiresAt)

	return model.PopupResponse{
		Token:            token,
		ExpiresAt:        expiresAt,
		GenerateResponse: resp,
	}, nil
}

// Regenerate produces a new secret with the settings carried by claims.
func (s *PopupService) Regenerate(claims *crypto.PopupClaims) (model.GenerateResponse, error) {
	req, err := claims.Request()
	if err != nil {
		return model.GenerateResponse{}, err
	}
	return s.generator.GenerateFrom(req, false)
}
