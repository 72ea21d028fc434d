package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harshitalegal/markwatch/internal/application/watch"
	"github.com/harshitalegal/markwatch/internal/domain/filing"
	"github.com/harshitalegal/markwatch/internal/domain/portfolio"
	"github.com/harshitalegal/markwatch/internal/infrastructure/monitoring/logging"
	"github.com/harshitalegal/markwatch/internal/infrastructure/tabular"
)

func newWatchCmd() *cobra.Command {
	var (
		portfolioPath string
		filingsPath   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scan new filings for conflicts with the portfolio",
		Long: `Score every filing in the filings CSV against the portfolio CSV and print
the ranked conflict alerts.  Malformed rows are skipped and summarized;
invalid configuration aborts before any matching.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			records, filings, err := loadFeeds(portfolioPath, filingsPath)
			if err != nil {
				return err
			}

			pipeline, err := watch.NewPipeline(cliCtx.Config.Watch, cliCtx.Logger, nil)
			if err != nil {
				return err
			}

			report, err := pipeline.Run(cmd.Context(), records, filings)
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == "json" {
				return printJSON(cmd, report)
			}
			return printWatchReport(cmd, report)
		},
	}

	cmd.Flags().StringVarP(&portfolioPath, "portfolio", "p", "", "portfolio CSV path (required)")
	cmd.Flags().StringVarP(&filingsPath, "filings", "f", "", "new filings CSV path (required)")
	_ = cmd.MarkFlagRequired("portfolio")
	_ = cmd.MarkFlagRequired("filings")

	return cmd
}

// loadFeeds reads both CSV feeds.  Feed-level schema failures abort; row
// failures are logged here and re-detected per run inside the pipeline.
func loadFeeds(portfolioPath, filingsPath string) ([]*portfolio.TrademarkRecord, []*filing.Record, error) {
	pf, err := os.Open(portfolioPath)
	if err != nil {
		return nil, nil, err
	}
	defer pf.Close()

	records, skippedRecords, err := tabular.LoadPortfolio(pf)
	if err != nil {
		return nil, nil, err
	}
	logSkipped("portfolio", skippedRecords)

	ff, err := os.Open(filingsPath)
	if err != nil {
		return nil, nil, err
	}
	defer ff.Close()

	filings, skippedFilings, err := tabular.LoadFilings(ff)
	if err != nil {
		return nil, nil, err
	}
	logSkipped("filings", skippedFilings)

	return records, filings, nil
}

func logSkipped(feed string, skipped []portfolio.RecordError) {
	for _, re := range skipped {
		logging.Default().Warn("skipping malformed feed row",
			logging.String("feed", feed),
			logging.Int("position", re.Position),
			logging.String("mark", re.Mark),
			logging.Err(re.Err))
	}
}

func printWatchReport(cmd *cobra.Command, report *watch.Report) error {
	out := cmd.OutOrStdout()

	if len(report.Alerts) == 0 {
		fmt.Fprintln(out, "No conflicts found at the current threshold.")
	} else {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIER\tSCORE\tFILING\tMARK\tAPPLICANT\tCONFLICTS WITH")
		for _, a := range report.Alerts {
			fmt.Fprintf(w, "%s\t%.3f\t%s\t%s\t%s\t%s\n",
				a.Tier, a.MaxScore, a.Filing.SourceID, a.Filing.Mark,
				a.Filing.Applicant, evidenceMarks(a))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n%d filing(s) scanned against %d portfolio record(s); %d alert(s), %d row(s) skipped.\n",
		report.Stats.FilingsScanned, report.Stats.PortfolioSize,
		len(report.Alerts), report.Stats.RecordsSkipped)
	return nil
}

func evidenceMarks(a *watch.Alert) string {
	out := ""
	for i, c := range a.Evidence {
		if i > 0 {
			out += "; "
		}
		out += c.Entry.Mark
		if c.Method == watch.MethodKeyword {
			out += fmt.Sprintf(" (keyword %q)", c.MatchedTerm)
		}
	}
	return out
}
