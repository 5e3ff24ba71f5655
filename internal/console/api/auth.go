package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
)

// AuthClient exchanges credentials for a bearer token at the auth endpoint.
type AuthClient struct {
	base baseClient
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		base: newBaseClient(baseURL, &http.Client{Timeout: timeout}, nil),
	}
}

// Login issues the credential exchange. A 2xx response without a token is
// treated as a failure: the caller has nothing to persist.
func (c *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var out struct {
		Token string `json:"token"`
	}

	if err := c.base.doJSON(ctx, http.MethodPost, "/auth/login", in, &out, false); err != nil {
		return "", fmt.Errorf("%w: %s", common.ErrAuthRequestFailed, err.Error())
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: no token in response", common.ErrAuthRequestFailed)
	}
	return out.Token, nil
}
