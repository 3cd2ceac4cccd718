package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"coursecal/internal/catalog"
	"coursecal/internal/config"
	"coursecal/internal/schedule"
	"coursecal/internal/share"
	"coursecal/internal/store"
)

// App is the application layer between the CLI and the schedule service.
// It constructs all dependencies from config and owns the log file.
type App struct {
	cfg     *config.Config
	service *schedule.Service
	logFile *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "AddCourse", "Export").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	backend, err := store.NewBackendFromConfig(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store backend: %w", err)
	}

	cat, err := catalog.NewCatalogFromConfig(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("creating catalog: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	origin := cfg.Origin
	if origin == "" {
		origin = config.DefaultOrigin
	}

	st := store.NewStore(backend, schedule.UUIDGenerator{})
	svc := schedule.NewService(st, cat, &slogAdapter{l: logger}, schedule.RealClock{}, origin)

	if err := svc.Load(); err != nil {
		logFile.Close()
		return nil, err
	}

	return &App{cfg: cfg, service: svc, logFile: logFile}, nil
}

// Service exposes the schedule service to the CLI commands.
func (a *App) Service() *schedule.Service { return a.service }

// Import runs the import flow for a pasted share link or bare token.
// On a term mismatch the user is asked to confirm the term switch;
// assumeYes skips the prompt, and a non-interactive session without
// assumeYes cancels the pending import.
func (a *App) Import(raw string, assumeYes bool) (*schedule.ImportOutcome, error) {
	token, ok := share.TokenFromURL(raw)
	if !ok {
		return &schedule.ImportOutcome{Status: schedule.ImportInvalid}, nil
	}

	outcome, err := a.service.HandleToken(token)
	if err != nil {
		return nil, err
	}
	if outcome.Status != schedule.ImportTermMismatch {
		return outcome, nil
	}

	if !assumeYes && !a.confirm(fmt.Sprintf("This schedule is for %s. Switch terms and import?", outcome.Term)) {
		a.service.CancelPendingImport()
		return outcome, nil
	}
	return a.service.ConfirmPendingImport()
}

// confirm asks a yes/no question on the terminal. Non-interactive
// sessions answer no.
func (a *App) confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	reply, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	reply = strings.ToLower(strings.TrimSpace(reply))
	return reply == "y" || reply == "yes"
}

// Close releases the log file.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
