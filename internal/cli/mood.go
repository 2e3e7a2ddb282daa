package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/touchwood-app/touchwood/internal/daemon"
)

func init() {
	rootCmd.AddCommand(moodCmd)
}

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Show mood trends and insights",
	RunE:  runMood,
}

func runMood(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	report, err := d.Mood.Report(time.Now())
	if err != nil {
		return err
	}
	if report.EntryCount == 0 {
		fmt.Println("No mood entries yet. Use 'touchwood touch <ritual> --mood N' to start.")
		return nil
	}

	fmt.Printf("Mood log: %d entries — trend: %s\n", report.EntryCount, report.OverallTrend)

	if len(report.Weekly) > 0 {
		fmt.Println("\nLast 7 days:")
		for _, p := range report.Weekly {
			fmt.Printf("   %s  %.1f (%d entries)\n", p.Date.Format("Mon Jan 2"), p.AverageMood, p.Count)
		}
	}

	if len(report.ByRitual) > 0 {
		fmt.Println("\nBy ritual:")
		for _, r := range report.ByRitual {
			fmt.Printf("   %s  %.1f avg, %s (%d entries)\n", r.RitualName, r.AverageMood, r.Trend, r.Count)
		}
	}

	for _, in := range report.Insights {
		fmt.Printf("\n💡 %s\n   %s\n", in.Title, in.Body)
	}
	return nil
}
