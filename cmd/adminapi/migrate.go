package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/config"
	"github.com/Abdallah-SE/ecommerce-api/model"
	"github.com/Abdallah-SE/ecommerce-api/storage"
)

func newMigrateCmd() *cobra.Command {
	var seedEmail, seedName, seedPassword string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and optionally seed the first admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := storage.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			cmd.Println("schema is up to date")

			if seedEmail == "" {
				return nil
			}
			if seedPassword == "" {
				return fmt.Errorf("--seed-password is required with --seed-email")
			}

			store := storage.NewAdminStore(db)
			if _, err := store.FindByEmail(ctx, seedEmail); err == nil {
				cmd.Printf("admin %s already exists, skipping seed\n", seedEmail)
				return nil
			}

			hash, err := auth.HashPassword(seedPassword)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			admin := &model.Admin{Name: seedName, Email: seedEmail, Password: hash}
			if err := store.Create(ctx, admin); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			cmd.Printf("seeded admin %s (id %d)\n", seedEmail, admin.ID)
			return nil
		},
	}

	cmd.Flags().String("database.driver", "sqlite", "database driver (sqlite, postgres, mysql)")
	cmd.Flags().String("database.dsn", config.DefaultDSN, "database DSN")
	cmd.Flags().StringVar(&seedEmail, "seed-email", "", "create an initial admin with this email")
	cmd.Flags().StringVar(&seedName, "seed-name", "Administrator", "name for the seeded admin")
	cmd.Flags().StringVar(&seedPassword, "seed-password", "", "password for the seeded admin")
	return cmd
}
