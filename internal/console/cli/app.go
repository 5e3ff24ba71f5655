package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/TheCasperSolangi/arc-fun-front/internal/console/api"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/catalog"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/config"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/pipeline"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/session"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/store"
	"github.com/TheCasperSolangi/arc-fun-front/internal/logging"
)

// screenOrder fixes the entity screens and their selection order.
var screenOrder = []string{"testimonials", "success", "videos", "responses"}

// App wires the session gate and one pipeline per entity screen behind a
// read-eval-print loop.
type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	gate      *session.Gate
	pipelines map[string]*pipeline.Pipeline
	current   string
	reader    *bufio.Reader
	prompter  *TerminalPrompter
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := store.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	prompter := NewTerminalPrompter(reader, os.Stdout)

	sessions := session.NewKVSessionStore(store.NewSQLiteStore(db))
	auth := api.NewAuthClient(cfg.AuthAPIBaseURL, cfg.RequestTimeout)
	gate := session.NewGate(sessions, auth, prompter, log)

	records := api.NewRecordClient(cfg.RecordAPIBaseURL, cfg.RequestTimeout, gate.Token)
	storage := api.NewStorageClient(cfg.StorageAPIBaseURL, cfg.UploadTimeout)
	opts := pipeline.Options{Progress: printProgress}

	pipelines := make(map[string]*pipeline.Pipeline, len(screenOrder))
	for _, desc := range []*catalog.Descriptor{
		catalog.Testimonials(),
		catalog.SuccessStories(),
		catalog.Videos(),
		catalog.Responses(),
	} {
		pipelines[desc.Collection] = pipeline.New(desc, records, storage, prompter, log, opts)
	}

	return &App{
		config:    cfg,
		log:       log,
		db:        db,
		gate:      gate,
		pipelines: pipelines,
		current:   screenOrder[0],
		reader:    reader,
		prompter:  prompter,
	}, nil
}

// Run blocks on the session gate, then hands control to the REPL. Nothing
// past the gate is reachable without a session token.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.gate.Run(ctx); err != nil {
		return err
	}

	printlnFn("Welcome to the catalog console (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
	return nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) getStatus() string {
	s := a.current
	if id, err := session.Describe(a.gate.Token()); err == nil && id.Subject != "" {
		s = id.Subject + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) currentPipeline() *pipeline.Pipeline {
	return a.pipelines[a.current]
}

// Use switches the active entity screen.
func (a *App) Use(ctx context.Context, name string) error {
	// "stories" reads better than the success collection's path segment.
	if name == "stories" {
		name = "success"
	}
	if _, ok := a.pipelines[name]; !ok {
		printlnFn("Unknown screen:", name, "(one of: "+screenList()+")")
		return nil
	}
	a.current = name
	return nil
}

// Whoami prints the identity claims carried by the session token.
func (a *App) Whoami(ctx context.Context) error {
	id, err := session.Describe(a.gate.Token())
	if err != nil {
		printlnFn("Session token carries no readable identity")
		return nil
	}
	printlnFn("Logged in as:", id.Subject)
	if !id.ExpiresAt.IsZero() {
		printlnFn("Token expires:", id.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func screenList() string {
	s := ""
	for i, name := range screenOrder {
		if i > 0 {
			s += ", "
		}
		s += name
	}
	return s
}

// printProgress renders fractional upload progress on a single line.
func printProgress(fraction float64) {
	fmt.Printf("\rUploading... %3.0f%%", fraction*100)
	if fraction >= 1 {
		fmt.Println()
	}
}
