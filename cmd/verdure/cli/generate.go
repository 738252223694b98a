package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	verdure "github.com/phanxgames/verdure"
)

func NewGenerateCommand() *cobra.Command {
	var (
		gardenID string
		count    int
		treeType string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill a garden with a grid of trees",
		Long:  "Lay out a computed grid of trees across a garden in a single batch, using the garden's default sort, year, and owner.",
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

			garden, err := st.GetGarden(ctx, gardenID)
			if err != nil {
				return fmt.Errorf("garden %s: %w", gardenID, err)
			}

			items := verdure.NewItemStore(st, verdure.NewPalette(nil), log)
			if _, err := items.Load(ctx, garden.ID, true); err != nil {
				return err
			}
			editor := verdure.NewEditor(items, verdure.NewUndoStack(st, 0), log)

			generated, err := editor.Generate(ctx, count, treeType, verdure.DefaultsFromGarden(*garden))
			if err != nil {
				return err
			}
			fmt.Printf("generated %d trees in %q\n", len(generated), garden.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&gardenID, "garden", "", "garden id (required)")
	cmd.Flags().IntVar(&count, "count", 12, "number of trees to generate")
	cmd.Flags().StringVar(&treeType, "type", "", "tree type (defaults to olive)")
	cmd.MarkFlagRequired("garden")

	return cmd
}
