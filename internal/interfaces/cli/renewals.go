package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harshitalegal/markwatch/internal/domain/renewal"
	"github.com/harshitalegal/markwatch/internal/infrastructure/tabular"
	"github.com/harshitalegal/markwatch/pkg/types/common"
)

func newRenewalsCmd() *cobra.Command {
	var (
		portfolioPath string
		asOf          string
		urgent        int
		upcoming      int
		withNotices   bool
	)

	cmd := &cobra.Command{
		Use:   "renewals",
		Short: "List due and overdue renewal reminders",
		Long: `Scan the portfolio for marks whose renewal date is overdue or inside the
configured reminder windows and print them most urgent first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ref := common.DateOf(time.Now())
			if asOf != "" {
				if ref, err = common.ParseDate(asOf); err != nil {
					return err
				}
			}

			windows := cliCtx.Config.Renewal
			if urgent > 0 {
				windows.Urgent = urgent
			}
			if upcoming > 0 {
				windows.Upcoming = upcoming
			}

			f, err := os.Open(portfolioPath)
			if err != nil {
				return err
			}
			defer f.Close()

			records, skipped, err := tabular.LoadPortfolio(f)
			if err != nil {
				return err
			}
			logSkipped("portfolio", skipped)

			reminders, err := renewal.Schedule(records, ref, windows)
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == "json" {
				if !withNotices {
					return printJSON(cmd, reminders)
				}
				return printJSON(cmd, withNoticeList(reminders))
			}
			return printReminders(cmd, reminders, ref, withNotices)
		},
	}

	cmd.Flags().StringVarP(&portfolioPath, "portfolio", "p", "", "portfolio CSV path (required)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date (2006-01-02, default today)")
	cmd.Flags().IntVar(&urgent, "urgent", 0, "override the urgent window in days")
	cmd.Flags().IntVar(&upcoming, "upcoming", 0, "override the upcoming window in days")
	cmd.Flags().BoolVar(&withNotices, "notices", false, "render the reminder notice for each entry")
	_ = cmd.MarkFlagRequired("portfolio")

	return cmd
}

type reminderWithNotice struct {
	renewal.Reminder
	Notice renewal.Notice `json:"notice"`
}

func withNoticeList(reminders []renewal.Reminder) []reminderWithNotice {
	out := make([]reminderWithNotice, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, reminderWithNotice{Reminder: r, Notice: renewal.BuildNotice(r)})
	}
	return out
}

func printReminders(cmd *cobra.Command, reminders []renewal.Reminder, ref common.Date, withNotices bool) error {
	out := cmd.OutOrStdout()

	if len(reminders) == 0 {
		fmt.Fprintf(out, "No renewals due as of %s.\n", ref)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tDAYS\tMARK\tCLASS\tREG NO\tDUE\tOWNER")
	for _, r := range reminders {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Tier, r.DaysUntil, r.Mark, joinClasses(r.Classes),
			r.RegistrationNo, r.ExpiryDate, r.Owner)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if withNotices {
		for _, r := range reminders {
			n := renewal.BuildNotice(r)
			fmt.Fprintf(out, "\n--- %s ---\nSubject: %s\n\n%s\n", r.Mark, n.Subject, n.Body)
		}
	}
	return nil
}

func joinClasses(classes []string) string {
	out := ""
	for i, c := range classes {
		if i > 0 {
			out += ";"
		}
		out += c
	}
	return out
}
