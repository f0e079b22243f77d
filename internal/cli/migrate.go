package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/internal/seed"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/anonto42/snapgram/backend/pkg/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// MigrateOptions holds flags for the migrate command
type MigrateOptions struct {
	*RootOptions
	SkipSeed      bool
	AdminUsername string
	AdminPassword string
}

// NewMigrateCommand creates the migrate command
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed reference data",
		Long: `Migrate runs the schema migrations for every model, upserts the gift
catalog and, when --admin-user is given, creates an admin console account.

Example:
  snapgram migrate
  snapgram migrate --admin-user root --admin-password change-me`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.InitDB(opts.Config)
			if err != nil {
				return fmt.Errorf("failed to initialize databases: %w", err)
			}
			defer db.CloseDB()
			return runMigrate(cmd.Context(), db, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipSeed, "skip-seed", false, "do not seed the gift catalog")
	cmd.Flags().StringVar(&opts.AdminUsername, "admin-user", "", "create an admin account with this username")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", "", "password for --admin-user")

	return cmd
}

func runMigrate(ctx context.Context, db *config.DB, opts *MigrateOptions) error {
	if err := Migrate(db.Postgres, opts.Config.GiftsSeedPath, opts.SkipSeed); err != nil {
		return err
	}

	if db.Mongo != nil {
		stories := repositories.NewStoryRepository(db.Mongo.Database(opts.Config.MongoDatabase), db.Postgres)
		if err := stories.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create story indexes: %w", err)
		}
		log.Println("MongoDB story indexes ensured.")
	}

	if opts.AdminUsername != "" {
		if len(opts.AdminPassword) < 8 {
			return errors.New("--admin-password must be at least 8 characters")
		}
		admins := services.NewAdminService(db.Postgres, nil)
		if err := admins.CreateAdmin(ctx, opts.AdminUsername, opts.AdminPassword); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Printf("Admin %q already exists.", opts.AdminUsername)
				return nil
			}
			return fmt.Errorf("failed to create admin: %w", err)
		}
		log.Printf("Admin %q created.", opts.AdminUsername)
	}
	return nil
}

// Migrate applies the relational schema and seeds the gift catalog
func Migrate(db *gorm.DB, giftsPath string, skipSeed bool) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Println("Auto-migrations completed for all models.")

	if skipSeed {
		return nil
	}
	n, err := seed.Gifts(db, giftsPath)
	if err != nil {
		return fmt.Errorf("failed to seed gifts: %w", err)
	}
	log.Printf("Seeded %d gifts.", n)
	return nil
}
