package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/codementor/internal/auth"
	"github.com/zarlcorp/codementor/internal/cli"
	"github.com/zarlcorp/codementor/internal/config"
	"github.com/zarlcorp/codementor/internal/ctxlog"
	"github.com/zarlcorp/codementor/internal/messages"
	"github.com/zarlcorp/codementor/internal/tui"
	"github.com/zarlcorp/core/pkg/zapp"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("codementor"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "codementor: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := ctxlog.OpenFile(cfg.LogFile(), cfg.Level(), cfg.InstanceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codementor: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	ctx = ctxlog.WithLogger(ctx, logger)

	catalog, err := messages.New(cfg.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codementor: %v\n", err)
		os.Exit(1)
	}

	var opts []auth.SimulatedOption
	if cfg.Reject {
		opts = append(opts, auth.WithOutcome(auth.ErrRejected))
	}
	backend := auth.NewSimulated(cfg.Latency, opts...)

	if len(os.Args) > 1 {
		code := runCLI(ctx, cfg, backend, catalog, os.Args[1:])
		_ = app.Close()
		if code != 0 {
			os.Exit(code)
		}
		return
	}

	if err := runTUI(ctx, cfg, backend, catalog, logger); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, cfg config.Config, backend auth.Authenticator, catalog *messages.Catalog, args []string) int {
	s := cli.Session{
		Backend:      backend,
		Catalog:      catalog,
		Timeout:      cfg.SubmitTimeout,
		Out:          os.Stdout,
		ReadPassword: cli.TerminalPassword,
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("codementor %s\n", version)
	case "login":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: codementor login <email>")
			return 1
		}
		err = s.CmdLogin(ctx, args[1])
	case "register":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: codementor register <username> <email>")
			return 1
		}
		err = s.CmdRegister(ctx, args[1], args[2])
	default:
		fmt.Fprintf(os.Stderr, "codementor: unknown command %q\n", args[0])
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "codementor: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(ctx context.Context, cfg config.Config, backend auth.Authenticator, catalog *messages.Catalog, logger *slog.Logger) error {
	m := tui.New(ctx, tui.Options{
		Version:       version,
		Backend:       backend,
		Catalog:       catalog,
		SubmitTimeout: cfg.SubmitTimeout,
		Start:         cfg.Start,
		Logger:        logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
