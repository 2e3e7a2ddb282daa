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
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show streak, level and lifetime totals",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	stats, err := d.Stats(now)
	if err != nil {
		return err
	}
	lvl, err := d.Level.Current()
	if err != nil {
		return err
	}
	toNext, err := d.Level.XPToNextLevel()
	if err != nil {
		return err
	}
	points, err := d.Achievements.TotalPoints()
	if err != nil {
		return err
	}
	unlocked, err := d.Achievements.UnlockedCount()
	if err != nil {
		return err
	}

	fmt.Printf("🔥 Streak: %d days (best %d)\n", stats.StreakDays, stats.BestStreak)
	fmt.Printf("🌳 Level %d — %d XP (%d to next level)\n", lvl.Level, lvl.CurrentXP, toNext)
	fmt.Printf("🏆 Achievements: %d/%d unlocked, %d points\n",
		unlocked, d.Achievements.TotalCount(), points)
	fmt.Printf("🪵 Rituals: %d today, %d lifetime\n", stats.TodayRituals, stats.TotalRituals)

	byCategory, err := d.Progress.CountByCategory()
	if err != nil {
		return err
	}
	if len(byCategory) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nCATEGORY\tCOMPLETIONS")
		for category, count := range byCategory {
			fmt.Fprintf(w, "%s\t%d\n", category, count)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
