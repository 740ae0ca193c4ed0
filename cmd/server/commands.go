package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/rpggio/portfolio/internal/config"
	"github.com/rpggio/portfolio/internal/mcp"
	"github.com/rpggio/portfolio/internal/transport"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio content server",
		Long:          "Serves portfolio projects, beats, site settings and uploaded assets over HTTP and MCP.\nWithout a subcommand it runs serve.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runServe,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return os.Setenv("PORTFOLIO_CONFIG_PATH", configPath)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides PORTFOLIO_CONFIG_PATH)")
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default command)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := newLogger(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return serveHTTP(ctx, cfg, a, logger)
}

func serveHTTP(ctx context.Context, cfg config.Config, a *app, logger *slog.Logger) error {
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: a.projects,
			Beats:    a.beats,
			Settings: a.settings,
			Activity: a.activity,
		},
		Version: version,
		Logger:  logger,
	})

	router := transport.NewServer(transport.Services{
		Projects: a.projects,
		Beats:    a.beats,
		Settings: a.settings,
		Admin:    a.admin,
		Uploads:  a.uploads,
		Activity: a.activity,
		Objects:  a.blobs,
		MCP:      mcp.NewHTTPHandler(mcpServer),
	}, transport.Options{
		Logger:         logger,
		RequestTimeout: cfg.Server.RequestTimeout,
		ProtectWrites:  cfg.Auth.ProtectWrites,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "db_driver", cfg.DB.Driver, "protect_writes", cfg.Auth.ProtectWrites)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			// stdout carries JSON-RPC.
			logger := newLogger(cfg.Log, os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Projects: a.projects,
					Beats:    a.beats,
					Settings: a.settings,
					Activity: a.activity,
				},
				Version: version,
				Logger:  logger,
			})

			logger.Info("starting stdio transport")
			if err := mcp.RunStdio(ctx, server); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server: %w", err)
			}
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample projects, beats and default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger := newLogger(cfg.Log, os.Stderr)

			a, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := seedSampleData(cmd.Context(), a, logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sample data inserted")
			return nil
		},
	}
}

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newSetPasswordCommand())
	return cmd
}

func newSetPasswordCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Create an admin or replace its password",
		Long: `Create an admin account or replace its password.

The password is read from the first line of stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger := newLogger(cfg.Log, os.Stderr)

			a, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.admin.SetPassword(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password set for %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "admin", "admin username")
	return cmd
}

func readPassword(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	for i, c := range data {
		if c == '\n' || c == '\r' {
			data = data[:i]
			break
		}
	}
	if len(data) == 0 {
		return "", errors.New("password is required on stdin")
	}
	return string(data), nil
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	cmd.AddCommand(newConfigGenerateCommand())
	return cmd
}

func newConfigGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the default configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output")
			overwrite, _ := cmd.Flags().GetBool("overwrite")

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			filename := filepath.Join(outputDir, "portfolio.yaml")
			if _, err := os.Stat(filename); err == nil && !overwrite {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipping %s (file exists, use --overwrite to replace)\n", filename)
				return nil
			}

			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return fmt.Errorf("failed to write config file %s: %w", filename, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", filename)
			return nil
		},
	}

	cmd.Flags().String("output", ".", "output directory")
	cmd.Flags().Bool("overwrite", false, "overwrite an existing file")
	return cmd
}
