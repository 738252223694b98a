package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	verdure "github.com/phanxgames/verdure"
	"github.com/phanxgames/verdure/store"
)

func NewGardensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gardens",
		Short: "Manage gardens",
	}
	cmd.AddCommand(newGardensListCommand())
	cmd.AddCommand(newGardensAddCommand())
	return cmd
}

func newGardensListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active gardens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
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

			gardens, err := st.ListGardens(ctx)
			if err != nil {
				return err
			}
			for _, g := range gardens {
				fmt.Printf("%s  %s", g.ID, g.Name)
				if g.Location != "" {
					fmt.Printf("  (%s)", verdure.LocationURL(g.Location))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newGardensAddCommand() *cobra.Command {
	var (
		name     string
		desc     string
		location string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a garden",
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

			gallery := verdure.NewGallery(st, log)
			garden, err := gallery.Create(ctx, store.Garden{
				Name:        name,
				Description: desc,
				Location:    location,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created garden %s (%s)\n", garden.Name, garden.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "garden name (required)")
	cmd.Flags().StringVar(&desc, "description", "", "garden description")
	cmd.Flags().StringVar(&location, "location", "", "garden location or coordinates")
	cmd.MarkFlagRequired("name")
	return cmd
}
