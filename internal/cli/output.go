package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdfdiff/compare"
)

type jsonResult struct {
	Equal        bool           `json:"equal"`
	Pages        int            `json:"pages"`
	DocumentDiff int64          `json:"document_diff"`
	Violation    *jsonViolation `json:"violation,omitempty"`
}

type jsonViolation struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Page      int    `json:"page,omitempty"`
	Region    int    `json:"region"`
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
	Diff      int64  `json:"diff,omitempty"`
	Threshold int64  `json:"threshold,omitempty"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
}

// report prints res and returns errDifferent when the documents differ
func report(cmd *cobra.Command, res *compare.Result) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if asJSON {
		out := jsonResult{Equal: res.Equal, Pages: res.Pages, DocumentDiff: res.DocumentDiff}
		if v := res.Violation; v != nil {
			out.Violation = &jsonViolation{
				Kind:      v.Kind.String(),
				Message:   v.String(),
				Page:      v.Page,
				Region:    v.Region,
				X:         v.X,
				Y:         v.Y,
				Diff:      v.Diff,
				Threshold: v.Threshold,
				Expected:  v.Expected,
				Actual:    v.Actual,
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else if res.Equal {
		fmt.Fprintln(cmd.OutOrStdout(), "equal")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "different: %s\n", res.Violation)
	}

	if !res.Equal {
		return errDifferent
	}
	return nil
}
