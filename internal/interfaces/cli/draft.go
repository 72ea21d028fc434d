package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harshitalegal/markwatch/internal/application/licensing"
	"github.com/harshitalegal/markwatch/pkg/errors"
)

func newDraftCmd() *cobra.Command {
	var termsPath string

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Validate license terms and emit template fields",
		Long: `Validate a trademark-license terms JSON file and print the placeholder
values for the agreement template.  The agreement document itself is rendered
by the external generator, not by markwatch.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			terms, err := loadTerms(termsPath)
			if err != nil {
				return err
			}
			if err := terms.Validate(); err != nil {
				return err
			}

			fields := terms.TemplateFields()
			if cliCtx.OutputFormat == "json" {
				return printJSON(cmd, fields)
			}
			return printFields(cmd, fields)
		},
	}

	cmd.Flags().StringVarP(&termsPath, "terms", "t", "", "license terms JSON path (required)")
	_ = cmd.MarkFlagRequired("terms")

	return cmd
}

func loadTerms(path string) (*licensing.Terms, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	terms := &licensing.Terms{}
	if err := json.Unmarshal(raw, terms); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLicenseTermsInvalid,
			"failed to parse license terms file "+path)
	}
	return terms, nil
}

func printFields(cmd *cobra.Command, fields map[string]string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLACEHOLDER\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "{{%s}}\t%s\n", k, fields[k])
	}
	return w.Flush()
}
