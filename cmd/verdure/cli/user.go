package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/verdure/auth"
)

func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage planner users",
	}

	var (
		username string
		secret   string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a user that can sign in and edit",
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

			mgr := auth.NewManager(st, "", log)
			user, err := mgr.Register(ctx, username, secret)
			if err != nil {
				return err
			}
			fmt.Printf("created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	add.Flags().StringVar(&username, "name", "", "username (required)")
	add.Flags().StringVar(&secret, "secret", "", "secret (required)")
	add.MarkFlagRequired("name")
	add.MarkFlagRequired("secret")

	cmd.AddCommand(add)
	return cmd
}
