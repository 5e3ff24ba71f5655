// Package api implements HTTP clients for the console's three collaborators:
// the record API, the asset storage service, and the auth endpoint. The
// collaborators are opaque; non-2xx responses are treated uniformly as
// failure and error-message extraction from bodies is best-effort.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
)

// TokenSource yields the current session token, or "" when none exists.
type TokenSource func() string

type baseClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

func newBaseClient(baseURL string, client *http.Client, token TokenSource) baseClient {
	return baseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		token:   token,
	}
}

// doJSON issues a JSON request and decodes a JSON response into out (when
// out is non-nil). When authorized is true and a token is available, the
// bearer credential is attached.
func (c *baseClient) doJSON(ctx context.Context, method, path string, in, out any, authorized bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req, authorized)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s", responseMessage(resp.Status, data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *baseClient) authorize(req *http.Request, authorized bool) {
	if !authorized || c.token == nil {
		return
	}
	if t := c.token(); t != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+t)
	}
}

// responseMessage extracts a human-readable message from an error response
// body, falling back to the HTTP status line. Collaborators are not
// guaranteed to return structured errors, so parsing is best-effort.
func responseMessage(status string, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return status
}
