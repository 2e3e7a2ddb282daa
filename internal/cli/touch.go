package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/touchwood-app/touchwood/internal/daemon"
)

func init() {
	touchCmd.Flags().IntVar(&touchMood, "mood", 0, "How you feel, 1 (low) to 5 (great)")
	touchCmd.Flags().StringVar(&touchNote, "note", "", "Optional note for this ritual")
	rootCmd.AddCommand(touchCmd)
}

var (
	touchMood int
	touchNote string
)

var touchCmd = &cobra.Command{
	Use:   "touch <ritual>",
	Short: "Record a ritual completion",
	Long:  `Record a ritual completion, advancing your streak, daily challenges, achievements and seasonal events.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTouch,
}

func runTouch(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	event, err := d.RecordRitual(args[0], touchMood, touchNote, time.Now())
	if err != nil {
		return err
	}

	streak, err := d.Progress.CurrentStreak()
	if err != nil {
		return err
	}
	today, err := d.Progress.TodayCount(time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("🪵 %s recorded.\n", event.RitualID)
	fmt.Printf("   Streak: %d days (best %d) — %d rituals today\n",
		streak.CurrentCount, streak.BestCount, today)

	pending, err := d.Notifier.Pending(5)
	if err != nil {
		return err
	}
	for _, n := range pending {
		fmt.Printf("   ✨ %s — %s\n", n.Title, n.Body)
		_ = d.Notifier.MarkShown(n.ID)
	}
	return nil
}
