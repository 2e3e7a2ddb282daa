package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/touchwood-app/touchwood/internal/daemon"
)

func init() {
	rootCmd.AddCommand(challengesCmd)
}

var challengesCmd = &cobra.Command{
	Use:     "challenges",
	Aliases: []string{"ch"},
	Short:   "Show today's challenges",
	RunE:    runChallenges,
}

func runChallenges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	today, err := d.Challenges.RefreshDaily(time.Now())
	if err != nil {
		return err
	}
	if len(today) == 0 {
		fmt.Println("No challenges today.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHALLENGE\tPROGRESS\tXP\tSTATUS")
	for _, c := range today {
		status := fmt.Sprintf("%.0f%%", c.ProgressPct())
		if c.Completed {
			status = "done ✅"
		}
		fmt.Fprintf(w, "%s\t%d/%d\t%d\t%s\n",
			c.Description, c.Progress, c.Target, c.RewardXP, status)
	}
	return w.Flush()
}
