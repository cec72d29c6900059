package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"budgetplanner/internal/api"
	"budgetplanner/internal/cli"
	"budgetplanner/internal/client"
	"budgetplanner/internal/config"
	"budgetplanner/internal/format"
	"budgetplanner/internal/logger"
	"budgetplanner/internal/session"
	"budgetplanner/internal/store"

	"github.com/charmbracelet/lipgloss"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))

func main() {
	code := run()
	logger.Sync()
	os.Exit(code)
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		return 1
	}

	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	logger.InitWithLevel(cfg.Env, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := session.New(session.NewFileStorage(cfg.SessionFile))
	httpClient := client.New(cfg.APIURL, sess, client.WithTimeout(cfg.RequestTimeout))
	st := store.New(api.NewHTTPBackend(httpClient, cfg.Endpoints), sess)
	defer st.Close()
	httpClient.OnUnauthorized(st.HandleUnauthorized)

	app := cli.New(st, cli.NewFileSelection(cfg.SessionFile+".account"), os.Stdout, format.New(cfg.Lang))
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
