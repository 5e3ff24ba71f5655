package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/TheCasperSolangi/arc-fun-front/internal/common"
	"github.com/TheCasperSolangi/arc-fun-front/internal/logging"
)

// State is the gate's position in its lifecycle:
// Bootstrapping → {Prompting ⇄ Verifying} → Authenticated.
type State int

const (
	Bootstrapping State = iota
	Prompting
	Verifying
	Authenticated
)

// Authenticator exchanges credentials for a token. Satisfied by
// api.AuthClient.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// CredentialPrompter collects credentials and decisions from the operator.
// The console implementation blocks on the terminal; tests use a fake.
type CredentialPrompter interface {
	// Credentials prompts for a username/password pair.
	Credentials(ctx context.Context) (username, password string, err error)
	// Notify surfaces a message to the operator.
	Notify(msg string)
	// Retry asks a yes/no question; false declines.
	Retry(question string) bool
}

// Gate gates the rest of the application behind a session token.
type Gate struct {
	store    SessionStore
	auth     Authenticator
	prompter CredentialPrompter
	log      logging.Logger

	state State
	token string
}

func NewGate(store SessionStore, auth Authenticator, prompter CredentialPrompter, log logging.Logger) *Gate {
	return &Gate{store: store, auth: auth, prompter: prompter, log: log}
}

func (g *Gate) State() State { return g.state }

// Token returns the session token. It is read-only after authentication.
func (g *Gate) Token() string { return g.token }

// CheckAuth reads the persisted token. A present token is trusted without a
// server round-trip; expiry is server-enforced and surfaces later as a
// request failure. Returns true when the gate reached Authenticated.
func (g *Gate) CheckAuth(ctx context.Context) (bool, error) {
	token, err := g.store.Token(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		g.state = Prompting
		return false, nil
	}

	g.token = token
	g.state = Authenticated
	g.logIdentity(ctx)
	return true, nil
}

// Authenticate exchanges credentials for a token and persists it. Empty
// inputs never reach the server: the gate fails locally with a message
// identifying the missing field so the prompt can be re-presented.
func (g *Gate) Authenticate(ctx context.Context, username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", common.ErrMissingCredential)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrMissingCredential)
	}

	g.state = Verifying
	token, err := g.auth.Login(ctx, username, password)
	if err != nil {
		g.state = Prompting
		return err
	}

	if err := g.store.SetToken(ctx, token); err != nil {
		g.state = Prompting
		return fmt.Errorf("%w: persisting token: %s", common.ErrAuthRequestFailed, err.Error())
	}

	g.token = token
	g.state = Authenticated
	g.logIdentity(ctx)
	return nil
}

// Run drives the gate to Authenticated and returns the token. Failures are
// never fatal: the operator may retry the full prompt cycle without bound,
// and declining a retry restarts from Bootstrapping, which re-runs CheckAuth
// from scratch. Only context cancellation or prompter input errors abort.
func (g *Gate) Run(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		g.state = Bootstrapping
		ok, err := g.CheckAuth(ctx)
		if err != nil {
			// A broken local store degrades to interactive login.
			g.log.Warn(ctx, "reading persisted token failed", "error", err.Error())
		}
		if ok {
			return g.token, nil
		}

		if done, err := g.promptCycle(ctx); done || err != nil {
			return g.token, err
		}
		// Retry declined: re-enter Bootstrapping.
	}
}

// promptCycle runs Prompting ⇄ Verifying until authentication succeeds
// (done=true), the operator declines a retry (done=false), or input fails.
func (g *Gate) promptCycle(ctx context.Context) (bool, error) {
	for {
		g.state = Prompting
		username, password, err := g.prompter.Credentials(ctx)
		if err != nil {
			return false, err
		}

		err = g.Authenticate(ctx, username, password)
		if err == nil {
			g.prompter.Notify("Login successful")
			return true, nil
		}

		g.prompter.Notify("Login failed: " + err.Error())

		// Locally rejected input re-prompts immediately; the server was
		// never contacted.
		if errors.Is(err, common.ErrMissingCredential) {
			continue
		}

		if !g.prompter.Retry("Would you like to try again?") {
			return false, nil
		}
	}
}

func (g *Gate) logIdentity(ctx context.Context) {
	id, err := Describe(g.token)
	if err != nil {
		// The token is opaque to this core; an unparseable one is fine.
		g.log.Info(ctx, "authenticated")
		return
	}
	g.log.Info(ctx, "authenticated", "user", id.Subject, "expires", id.ExpiresAt)
}
