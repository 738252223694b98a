package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	verdure "github.com/phanxgames/verdure"
)

func NewExportCommand() *cobra.Command {
	var (
		gardenID string
		out      string
		width    int
		height   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a garden to a PNG image",
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
			loaded, err := items.Load(ctx, garden.ID, true)
			if err != nil {
				return err
			}

			if err := verdure.ExportPNG(out, loaded, verdure.ExportOptions{
				Width:  width,
				Height: height,
				Title:  garden.Name,
			}); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d items)\n", out, len(loaded))
			return nil
		},
	}

	cmd.Flags().StringVar(&gardenID, "garden", "", "garden id (required)")
	cmd.Flags().StringVar(&out, "out", "garden.png", "output file")
	cmd.Flags().IntVar(&width, "width", 1200, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 900, "image height in pixels")
	cmd.MarkFlagRequired("garden")

	return cmd
}
