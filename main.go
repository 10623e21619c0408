package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docshelf/config/database"
	"docshelf/internal/catalog/controller"
	"docshelf/internal/catalog/fetch"
	"docshelf/internal/catalog/persist"
	"docshelf/internal/catalog/store"
	"docshelf/internal/catalog/view"
	"docshelf/pkg/logger"
	"docshelf/socket"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docshelf",
		Short: "docshelf document catalog client",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the catalog client",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file; fall back to OS environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}
	logger.Init()

	gw, err := newGateway()
	if err != nil {
		return err
	}

	st := store.New(gw)
	term := view.NewTerminal(os.Stdout, os.Stdin)
	channel := socket.NewManager(os.Getenv("WS_URL"))

	ctrl, err := controller.New(st, term, channel)
	if err != nil {
		return err
	}

	// Initial bulk fetch. A failed fetch is not fatal: the catalog keeps
	// serving the persisted snapshot.
	if base := os.Getenv("API_BASE_URL"); base != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		docs, err := fetch.NewClient(base).Documents(ctx)
		cancel()
		if err != nil {
			logger.Sugar.Warnf("Bulk fetch failed, continuing on cached data: %v", err)
		} else {
			ctrl.AddDocuments(docs)
		}
	}

	ctrl.Connect()
	defer ctrl.Disconnect()

	done := make(chan struct{})
	go func() {
		term.Run()
		close(done)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	logger.Sugar.Info("docshelf running; type 'quit' or Ctrl-C to exit")

	select {
	case <-sig:
	case <-done:
	}
	return nil
}

func newGateway() (store.Gateway, error) {
	switch os.Getenv("PERSIST_DRIVER") {
	case "postgres":
		db, err := database.Connect()
		if err != nil {
			return nil, err
		}
		gw := persist.NewPostgresGateway(db)
		if err := gw.EnsureSchema(); err != nil {
			return nil, fmt.Errorf("ensure snapshot schema: %w", err)
		}
		return gw, nil
	default:
		path := os.Getenv("SNAPSHOT_PATH")
		if path == "" {
			path = "docshelf.json"
		}
		return persist.NewFileGateway(path), nil
	}
}
