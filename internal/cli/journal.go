package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/atb-as/webshop-e2e/internal/models"
	"github.com/atb-as/webshop-e2e/internal/services"
)

// RunJournal prints the flow runs of the last period and the aliases that stalled them
func RunJournal(ctx context.Context, journal services.JournalService, period time.Duration, now time.Time, out io.Writer) error {
	since := now.Add(-period)
	report, err := journal.Report(ctx, since)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Flow runs since %s: %d (%.0f%% not settled)\n", since.Format(time.RFC3339), report.Runs, 100*report.FailureRate())

	states := make([]string, 0, len(report.States))
	for state := range report.States {
		states = append(states, string(state))
	}
	sort.Strings(states)
	for _, state := range states {
		fmt.Fprintf(out, "  %-10s %d\n", state, report.States[models.FlowState(state)])
	}

	if len(report.Stalled) == 0 {
		fmt.Fprintln(out, "No network waits timed out.")
		return nil
	}

	fmt.Fprintln(out, "Timed out network waits:")
	fmt.Fprintf(out, "  %-20s %-32s %6s\n", "Alias", "Flow", "Count")
	for _, c := range report.Stalled {
		fmt.Fprintf(out, "  %-20s %-32s %6d\n", "@"+c.Alias, c.Flow, c.Count)
	}
	return nil
}
