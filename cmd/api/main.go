package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qrorder/internal/config"
	"qrorder/internal/infra/auth"
	"qrorder/internal/infra/db"
	"qrorder/internal/infra/logger"
	"qrorder/internal/middleware"
	"qrorder/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "qrorder",
		Short:         "QR ordering API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		adminTokenCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// 設定とロガーはどのコマンドでも同じ手順で作る
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.AutoMigrate {
				if err := migrateUp(cfg, log); err != nil {
					return err
				}
			}

			//DB接続
			gormDB, err := db.Connect(cfg, log)
			if err != nil {
				return err
			}

			e := server.Build(gormDB, server.Options{
				Logger:           log,
				CORSAllowOrigins: cfg.CORSAllowOrigin,
				JWTSecret:        cfg.JWTSecret,
			})
			if cfg.JWTSecret == "" {
				log.Warn("JWT_SECRET is empty: /orders is not protected")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx, e, cfg.Addr(), log)
		},
	}
}

func migrateUp(cfg config.Config, log *zap.Logger) error {
	m, err := db.NewMigrator(cfg.MigrateURL(), log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "apply or roll back schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			m, err := db.NewMigrator(cfg.MigrateURL(), log)
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			switch args[0] {
			case "up":
				return m.Up()
			case "down":
				return m.Down()
			default:
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
				return nil
			}
		},
	}
}

// 管理画面用のトークンを発行して出力する
func adminTokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "issue an admin bearer token for /orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			issuer, err := auth.NewJWTIssuer(cfg.JWTSecret, ttl)
			if err != nil {
				return err
			}
			token, expiresAt, err := issuer.Issue(subject, middleware.RoleAdmin, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject (who uses the dashboard)")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}
