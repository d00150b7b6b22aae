package doordash

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

// ddJWTVersion is required by DoorDash in the token header.
const ddJWTVersion = "DD-JWT-V1"

// Authenticator mints short-lived bearer tokens for the DoorDash Drive API.
// It is constructed once with the provider-issued key material and holds no
// other state; a fresh token is produced per outbound call so the replay
// window stays as small as the token TTL.
type Authenticator struct {
	developerID string
	keyID       string
	signingKey  []byte
	audience    string
	ttl         time.Duration
}

// NewAuthenticator validates the credential material and returns an
// authenticator. All three credential inputs must be present and the signing
// secret must be valid base64url; anything else fails here, before any
// network call can be attempted.
func NewAuthenticator(cfg config.DoorDashConfig) (*Authenticator, error) {
	if cfg.DeveloperID == "" {
		return nil, &errors.ErrAuthConfiguration{Reason: "DOORDASH_DEVELOPER_ID is not set"}
	}
	if cfg.KeyID == "" {
		return nil, &errors.ErrAuthConfiguration{Reason: "DOORDASH_KEY_ID is not set"}
	}
	if cfg.SigningSecret == "" {
		return nil, &errors.ErrAuthConfiguration{Reason: "DOORDASH_SIGNING_SECRET is not set"}
	}
	// Portal secrets are base64url, sometimes with padding
	key, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(cfg.SigningSecret, "="))
	if err != nil {
		// Secret value is deliberately not included in the error
		return nil, &errors.ErrAuthConfiguration{Reason: "DOORDASH_SIGNING_SECRET is not valid base64url"}
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	audience := cfg.Audience
	if audience == "" {
		audience = "doordash"
	}

	return &Authenticator{
		developerID: cfg.DeveloperID,
		keyID:       cfg.KeyID,
		signingKey:  key,
		audience:    audience,
		ttl:         ttl,
	}, nil
}

// Token signs a fresh HS256 token valid from now until now+TTL.
func (a *Authenticator) Token(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    a.developerID,
		Subject:   a.keyID,
		Audience:  jwt.ClaimStrings{a.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["dd-ver"] = ddJWTVersion

	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", &errors.ErrAuthConfiguration{Reason: "failed to sign token: " + err.Error()}
	}
	return signed, nil
}

// TTL returns the configured token lifetime.
func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}
