package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity summarizes the claims embedded in a session token. The token is
// decoded without signature verification: the console has no signing key
// and trusts the server to reject a forged token on the next request.
type Identity struct {
	Subject   string
	ExpiresAt time.Time
}

// Describe decodes the token's claims for display purposes only.
func Describe(token string) (*Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	id := &Identity{}

	if sub, err := claims.GetSubject(); err == nil {
		id.Subject = sub
	}
	if id.Subject == "" {
		if name, ok := claims["username"].(string); ok {
			id.Subject = name
		}
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}

	return id, nil
}
