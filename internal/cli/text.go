package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/pdfdiff/compare"
)

var textCmd = &cobra.Command{
	Use:   "text <a.pdf> <b.pdf>",
	Short: "Compare the text of two PDFs",
	Long: `Compare the extracted text of two PDFs page by page.

Whitespace is ignored unless --keep-whitespace is given. With --region,
only text inside the given areas is compared. Regions are
left,top,right,bottom in PDF points with the origin at the bottom-left
corner of the page; repeat the flag for several regions.`,
	Args: cobra.ExactArgs(2),
	RunE: runText,
}

func init() {
	textCmd.Flags().Bool("keep-whitespace", false, "compare spaces, tabs and line breaks too")
	textCmd.Flags().Bool("normalize-unicode", false, "compare text in Unicode NFC form")
	textCmd.Flags().StringArray("region", nil, "compare only text inside left,top,right,bottom (repeatable)")
	textCmd.Flags().Bool("ocr", false, "recognize text on pages without a text layer (requires -tags ocr)")
	textCmd.Flags().String("ocr-language", "eng", "Tesseract language for --ocr")
	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	regions, err := s.cfg.ParsedRegions()
	if err != nil {
		return err
	}

	c := compare.NewTextComparator(s.engine, compare.TextOptions{
		RemoveWhitespace: s.cfg.Text.RemoveWhitespace,
		NormalizeUnicode: s.cfg.Text.NormalizeUnicode,
		Regions:          regions,
	}, s.logger)

	res, err := c.Compare(args[0], args[1])
	if err != nil {
		return err
	}
	return report(cmd, res)
}
