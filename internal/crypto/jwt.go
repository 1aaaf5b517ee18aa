package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "passgen"
	tokenAudience = "passgen-popup"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// PopupClaims carries the generation settings of a popup session.
type PopupClaims struct {
	jwt.RegisteredClaims
	Mode             Mode     `json:"mode"`
	Size             int      `json:"size"`
	Classes          []string `json:"classes,omitempty"`
	RequireEachClass bool     `json:"require_each_class,omitempty"`
}

// Request rebuilds the generation request stored in the claims.
func (c *PopupClaims) Request() (GenerationRequest, error) {
	mode, err := ParseMode(string(c.Mode))
	if err != nil {
		return GenerationRequest{}, err
	}
	classes, err := ParseClassSet(c.Classes)
	if err != nil {
		return GenerationRequest{}, err
	}
	return GenerationRequest{
		Mode:             mode,
		Size:             c.Size,
		Classes:          classes,
		RequireEachClass: c.RequireEachClass,
	}, nil
}

// GeneratePopupToken signs a token that lets a popup regenerate secrets with
// req's settings until expiry elapses.
func GeneratePopupToken(req GenerationRequest, secret string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	claims := PopupClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Mode:             req.Mode,
		Size:             req.Size,
		RequireEachClass: req.RequireEachClass,
	}
	if req.Mode == ModeRandom {
		claims.Classes = req.Classes.Names()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// ValidatePopupToken parses and validates a popup token.
func ValidatePopupToken(tokenString, secret string) (*PopupClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PopupClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*PopupClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
