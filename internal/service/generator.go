package service

import (
	"fmt"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

// Defaults and upper bounds per mode. The engine only requires a size of at
// least one; the service keeps requests within what the tool offers.
const (
	DefaultPasswordLength  = 16
	DefaultPINLength       = 6
	DefaultPassphraseWords = 4

	MaxPasswordLength  = 128
	MaxPINLength       = 16
	MaxPassphraseWords = 8
)

var (
	ErrLengthTooLong    = fmt.Errorf("%w: length exceeds the maximum for this mode", crypto.ErrInvalidRequest)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", crypto.ErrInvalidRequest)
	ErrHashRequired     = fmt.Errorf("%w: hash is required", crypto.ErrInvalidRequest)
)

// GeneratorService handles secret generation business logic.
type GeneratorService struct {
	gen *crypto.Generator
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(gen *crypto.Generator) *GeneratorService {
	return &GeneratorService{gen: gen}
}

// Generate produces a secret based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	genReq, err := BuildRequest(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}
	return s.GenerateFrom(genReq, req.Hash)
}

// GenerateFrom produces a secret for an already validated request, optionally
// attaching an Argon2id verifier.
func (s *GeneratorService) GenerateFrom(req crypto.GenerationRequest, withHash bool) (model.GenerateResponse, error) {
	if err := checkBounds(req); err != nil {
		return model.GenerateResponse{}, err
	}

	secret, err := s.gen.Generate(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password: secret.Value,
		Mode:     string(secret.Request.Mode),
		Length:   len(secret.Value),
	}

	if withHash {
		hash, err := crypto.HashSecret(secret.Value)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		resp.Hash = hash
	}

	return resp, nil
}

// Verify checks a secret against a verifier issued by Generate.
func (s *GeneratorService) Verify(req model.VerifyRequest) (model.VerifyResponse, error) {
	if req.Password == "" {
		return model.VerifyResponse{}, ErrPasswordRequired
	}
	if req.Hash == "" {
		return model.VerifyResponse{}, ErrHashRequired
	}

	match, err := crypto.VerifySecret(req.Password, req.Hash)
	if err != nil {
		return model.VerifyResponse{}, err
	}
	return model.VerifyResponse{Match: match}, nil
}

// BuildRequest applies per-mode defaults to an API request and converts it
// into an engine request.
func BuildRequest(req model.GenerateRequest) (crypto.GenerationRequest, error) {
	mode, err := crypto.ParseMode(req.Mode)
	if err != nil {
		return crypto.GenerationRequest{}, err
	}

	out := crypto.GenerationRequest{
		Mode: mode,
		Size: req.Length,
	}

	switch mode {
	case crypto.ModeRandom:
		if out.Size == 0 {
			out.Size = DefaultPasswordLength
		}
		var classes []crypto.CharClass
		if boolOrDefault(req.Lowercase, true) {
			classes = append(classes, crypto.Lowercase)
		}
		if boolOrDefault(req.Uppercase, true) {
			classes = append(classes, crypto.Uppercase)
		}
		if boolOrDefault(req.Numbers, true) {
			classes = append(classes, crypto.Numeric)
		}
		if boolOrDefault(req.Symbols, true) {
			classes = append(classes, crypto.Symbol)
		}
		out.Classes = crypto.NewClassSet(classes...)
		out.RequireEachClass = req.RequireEachClass
	case crypto.ModePIN:
		if out.Size == 0 {
			out.Size = DefaultPINLength
		}
	case crypto.ModePassphrase:
		if out.Size == 0 {
			out.Size = DefaultPassphraseWords
		}
	}

	if err := checkBounds(out); err != nil {
		return crypto.GenerationRequest{}, err
	}
	return out, nil
}

func checkBounds(req crypto.GenerationRequest) error {
	var limit int
	switch req.Mode {
	case crypto.ModeRandom:
		limit = MaxPasswordLength
	case crypto.ModePIN:
		limit = MaxPINLength
	case crypto.ModePassphrase:
		limit = MaxPassphraseWords
	}
	if limit > 0 && req.Size > limit {
		return fmt.Errorf("%w (%d > %d)", ErrLengthTooLong, req.Size, limit)
	}
	return nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
