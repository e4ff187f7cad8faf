package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cooperunion/asset-tags/api"
	"github.com/cooperunion/asset-tags/config"
	"github.com/cooperunion/asset-tags/label"
)

var version = "v1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		tagsFrom   int
		tagsTo     int
		saveDir    string
		layout     string
	)

	root := &cobra.Command{
		Use:          "asset-tags",
		Short:        "Cooper Union microLab Asset Tag Generator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("tags-from") {
				cfg.TagsFrom = tagsFrom
			}
			if flags.Changed("tags-to") {
				cfg.TagsTo = tagsTo
			}
			if flags.Changed("save") {
				cfg.SaveDir = saveDir
			}
			if flags.Changed("layout") {
				cfg.Layout = layout
			}
			return runGenerate(cfg)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "asset-tags.yaml", "Path to config file")
	root.Flags().IntVarP(&tagsFrom, "tags-from", "f", 0, "First tag number (inclusive)")
	root.Flags().IntVarP(&tagsTo, "tags-to", "t", 1, "Last tag number (inclusive)")
	root.Flags().StringVarP(&saveDir, "save", "s", ".", "Directory to write label images to")
	root.Flags().StringVarP(&layout, "layout", "l", label.Standard.Name, "Label layout (standard, dual or one from the config file)")

	// --- serve command -------------------------------------------------------
	var port int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve label previews over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cfg)
		},
	}
	serveCmd.Flags().IntVarP(&port, "port", "p", 8556, "HTTP port")
	root.AddCommand(serveCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("asset-tags %s\n", version)
		},
	})

	return root
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
	return log
}

// runGenerate validates the request, loads fonts and writes the labels.
func runGenerate(cfg *config.Config) error {
	log := newLogger(cfg.LogLevel)

	layout, err := cfg.SelectedLayout()
	if err != nil {
		return err
	}

	rng := label.Range{From: cfg.TagsFrom, To: cfg.TagsTo}
	if err := label.Validate(rng, cfg.SaveDir); err != nil {
		return err
	}

	renderer, err := label.NewRenderer(layout, cfg.FontSet())
	if err != nil {
		return err
	}

	if _, err := label.NewGenerator(renderer, log).Run(rng, cfg.SaveDir); err != nil {
		log.Error("generation aborted", "error", err)
		return err
	}
	return nil
}

// runServe starts the preview server and blocks until SIGINT or SIGTERM.
func runServe(cfg *config.Config) error {
	log := newLogger(cfg.LogLevel)

	layouts, err := cfg.AllLayouts()
	if err != nil {
		return err
	}

	renderers := make(map[string]*label.Renderer)
	for _, name := range label.Names(layouts) {
		r, err := label.NewRenderer(layouts[name], cfg.FontSet())
		if err != nil {
			var re *label.ResourceError
			if errors.As(err, &re) {
				log.Warn("skipping layout, font unavailable", "layout", name, "error", err)
				continue
			}
			return fmt.Errorf("layout %s: %w", name, err)
		}
		renderers[name] = r
	}
	if len(renderers) == 0 {
		return errors.New("no layout could be loaded, check the font configuration")
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Renderers: renderers,
			Log:       log,
			Version:   version,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr, "layouts", label.Names(layouts))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	}

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}
	return nil
}
