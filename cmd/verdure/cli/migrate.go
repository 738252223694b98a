package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			if err := st.Connect(ctx); err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err := st.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.WithField("database", cfg.Database.Path).Info("schema up to date")
			return nil
		},
	}

	return cmd
}
