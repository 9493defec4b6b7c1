package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"book-catalog/internal/config"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/pkg/logger"
)

var dsnFlag string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the PostgreSQL schema of the book catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(ctx context.Context, m *database.Migrator) error {
		if err := m.Up(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
		return nil
	}),
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(ctx context.Context, m *database.Migrator) error {
		if err := m.Down(ctx); err != nil {
			return fmt.Errorf("failed to rollback migrations: %w", err)
		}
		fmt.Println("Migrations rolled back successfully")
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the applied state of every migration",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(ctx context.Context, m *database.Migrator) error {
		return m.Status(ctx)
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(ctx context.Context, m *database.Migrator) error {
		v, err := m.Version(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		fmt.Println(v)
		return nil
	}),
}

// withMigrator resolves the DSN, opens a migrator for the duration of fn and closes it.
func withMigrator(fn func(ctx context.Context, m *database.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		dsn, err := resolveDSN()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		m, err := database.OpenMigrator(ctx, dsn)
		if err != nil {
			return err
		}
		defer m.Close()

		return fn(ctx, m)
	}
}

func resolveDSN() (string, error) {
	if dsnFlag != "" {
		return dsnFlag, nil
	}
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return "", err
	}
	return dbConfig.ConnectionString(), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "PostgreSQL connection string (defaults to DB_DSN / DB_* env)")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
