// authenticationhandler/auth_jwt_payload.go
package authenticationhandler

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-api-contagem-client/session"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims carried by the counting API's access tokens.
type AccessClaims struct {
	UniqueName jwt.ClaimStrings `json:"unique_name,omitempty"`
	jwt.RegisteredClaims
}

// DecodeAccessToken decodes the payload of a JWT. The signature is not checked.
func DecodeAccessToken(raw string) (*session.Payload, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("decoding access token payload: %w", err)
	}

	return &session.Payload{
		Subject:    claims.Subject,
		UniqueName: []string(claims.UniqueName),
		ID:         claims.ID,
		NotBefore:  numericTime(claims.NotBefore),
		Expiry:     numericTime(claims.ExpiresAt),
		IssuedAt:   numericTime(claims.IssuedAt),
		Issuer:     claims.Issuer,
		Audience:   []string(claims.Audience),
	}, nil
}

func numericTime(d *jwt.NumericDate) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
