package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"proassignment/internal/adapter/http/routes"
	"proassignment/internal/adapter/persistence/repository"
	"proassignment/internal/config"
	"proassignment/internal/infrastructure/database"
	"proassignment/internal/infrastructure/logger"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "proassignment",
		Short:         "Assignment marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "reconcile",
			Short: "Credit closed assignments that never reached a paysheet",
			RunE:  runReconcile,
		},
		newTablesCmd(),
	)
	return root
}

func newTablesCmd() *cobra.Command {
	tables := &cobra.Command{
		Use:   "tables",
		Short: "Manage DynamoDB tables",
	}
	tables.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create missing tables and indexes",
		RunE:  runCreateTables,
	})
	return tables
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Logging)
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return routes.Run(ctx, cfg.Server, a.router)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.ledger.GeneratePaysheets(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runCreateTables(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return err
	}
	created, err := database.EnsureTables(ctx, ddb, repository.Schemas(cfg.DynamoDB.Tables))
	if err != nil {
		return err
	}
	log.Printf("[cmd][tables] created=%v", created)
	return nil
}
