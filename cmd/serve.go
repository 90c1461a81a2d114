package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saad2128/jsonl-task-processor/internal/db"
	"github.com/saad2128/jsonl-task-processor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve run history and distribution artifacts over HTTP",
	Long: `Starts an HTTP server exposing recorded runs as JSON under /api and the
output directory as static files under /files/.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	logger := newLogger()

	var database *db.DB
	if cfg.History.Enabled {
		database, err = db.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening run history %s: %w", cfg.History.Path, err)
		}
		defer database.Close()
	} else {
		logger.Info("run history disabled; /api routes are not served")
	}

	srv := server.New(server.Config{
		Port:      cfg.Server.Port,
		OutputDir: cfg.OutputDir,
		AllowAll:  cfg.Server.AllowAllOrigins,
	}, database, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "taskdist server %s starting on port %d\n", Version, cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "  Output: %s\n", cfg.OutputDir)
	if database != nil {
		fmt.Fprintf(os.Stderr, "  History: %s\n", database.Path())
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
