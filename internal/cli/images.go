package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/pdfdiff/compare"
)

var imagesCmd = &cobra.Command{
	Use:   "images <a.pdf> <b.pdf>",
	Short: "Compare how two PDFs render",
	Long: `Render both PDFs page by page and compare pixel colors.

A pixel differs by |dR|+|dG|+|dB| (0 to 765). The comparison fails at the
first pixel above --pixel-threshold, the first page whose sum exceeds
--page-threshold, or when the document sum exceeds --document-threshold.
All thresholds default to 0, which requires identical renderings.`,
	Args: cobra.ExactArgs(2),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().Int64("pixel-threshold", 0, "largest allowed difference of one pixel")
	imagesCmd.Flags().Int64("page-threshold", 0, "largest allowed sum of pixel differences on a page")
	imagesCmd.Flags().Int64("document-threshold", 0, "largest allowed sum of page differences")
	imagesCmd.Flags().Int("resolution", compare.DefaultResolution, "rendering resolution in dots per inch")
	imagesCmd.Flags().Int("workers", 1, "pages rendered at the same time")
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	c, err := compare.NewImageComparator(s.engine, compare.ImageOptions{
		Thresholds: s.cfg.Thresholds(),
		Resolution: s.cfg.Image.Resolution,
		Workers:    s.cfg.Image.Workers,
	}, s.logger)
	if err != nil {
		return err
	}

	res, err := c.Compare(args[0], args[1])
	if err != nil {
		return err
	}
	return report(cmd, res)
}
