package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/config"
	"github.com/jonathan/career-advisor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server that exposes recommendation and catalog endpoints. " +
		"Admin endpoints are enabled when a JWT secret is configured.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	src, closeSource := openSource(cmd.Context(), cfg, log)
	defer closeSource()

	store := catalog.NewStore(cfg.Catalog.LoadTimeout, log)
	store.Load(cmd.Context(), src)

	srvCfg := server.Config{
		Port:             cfg.Server.Port,
		TopN:             cfg.TopN,
		BatchConcurrency: cfg.Server.BatchConcurrency,
		Store:            store,
		Source:           src,
		Logger:           log,
	}

	if cfg.JWT.Enabled() {
		if cfg.Admin.PasswordHash == "" {
			return fmt.Errorf("admin.password_hash is required when a JWT secret is set (see hash-password)")
		}
		hashCost, err := config.HashCost(cfg.Admin.PasswordHash)
		if err != nil {
			return fmt.Errorf("invalid admin.password_hash: %w", err)
		}
		passwords, err := config.NewPasswordConfig(cfg.Admin)
		if err != nil {
			return fmt.Errorf("failed to create password config: %w", err)
		}
		if hashCost < passwords.BcryptCost {
			log.Warn("admin password hash uses a lower bcrypt cost than configured",
				zap.Int("hash_cost", hashCost), zap.Int("bcrypt_cost", passwords.BcryptCost))
		}
		jwtConfig := cfg.JWT
		srvCfg.JWT = &jwtConfig
		srvCfg.Passwords = passwords
		srvCfg.AdminPasswordHash = cfg.Admin.PasswordHash
	} else {
		log.Warn("no JWT secret configured, admin endpoints disabled")
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info("catalog ready", zap.Any("catalog", store.Current().Info()))
	return srv.Start()
}
