package auth

import (
	"crypto/subtle"

	"github.com/geo-directory/backend/config"
	"github.com/geo-directory/backend/internal/apperr"
	"github.com/geo-directory/backend/pkg/utils"
)

// Principal identifies an authenticated caller.
type Principal struct {
	Subject string
	Method  string // "api_key" or "jwt"
}

// Authenticator checks API keys and, when configured, bearer tokens.
type Authenticator struct {
	apiKey     string
	apiKeyHash string
	jwt        *JWTService
}

// NewAuthenticator builds an Authenticator from configuration. Bearer tokens are rejected unless a
// JWT secret is configured.
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	a := &Authenticator{apiKey: cfg.APIKey, apiKeyHash: cfg.APIKeyHash}
	if cfg.JWTEnabled() {
		a.jwt = NewJWTService(cfg.JWTSecret, cfg.JWTExpireHours)
	}
	return a
}

// CheckAPIKey authenticates a raw X-API-Key value.
func (a *Authenticator) CheckAPIKey(key string) (Principal, error) {
	if key == "" {
		return Principal{}, invalidKey()
	}
	if a.apiKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(a.apiKey)) == 1 {
		return Principal{Subject: "api-key", Method: "api_key"}, nil
	}
	if a.apiKeyHash != "" && utils.CheckSecret(key, a.apiKeyHash) {
		return Principal{Subject: "api-key", Method: "api_key"}, nil
	}
	return Principal{}, invalidKey()
}

// CheckBearer authenticates a bearer token.
func (a *Authenticator) CheckBearer(token string) (Principal, error) {
	if a.jwt == nil || token == "" {
		return Principal{}, invalidKey()
	}
	claims, err := a.jwt.Validate(token)
	if err != nil {
		return Principal{}, invalidKey()
	}
	return Principal{Subject: claims.Subject, Method: "jwt"}, nil
}

func invalidKey() error {
	return apperr.Auth(apperr.CodeInvalidAPIKey, "invalid or missing API key")
}
