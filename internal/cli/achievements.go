package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/touchwood-app/touchwood/internal/daemon"
)

func init() {
	achievementsCmd.Flags().BoolVar(&achievementsAll, "all", false, "Show locked achievements too")
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsAll bool

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show unlocked achievements",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	unlocked, err := d.Achievements.ListUnlocked()
	if err != nil {
		return err
	}
	unlockedAt := make(map[string]string, len(unlocked))
	for _, u := range unlocked {
		unlockedAt[u.ID] = u.UnlockedAt.Format("2006-01-02")
	}

	points, err := d.Achievements.TotalPoints()
	if err != nil {
		return err
	}
	fmt.Printf("🏆 %d/%d unlocked — %d points\n\n",
		len(unlocked), d.Achievements.TotalCount(), points)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tPOINTS\tUNLOCKED")
	for _, def := range d.Achievements.Definitions() {
		when, ok := unlockedAt[def.ID]
		if !ok {
			if !achievementsAll {
				continue
			}
			when = "—"
		}
		fmt.Fprintf(w, "%s %s\t%d\t%s\n", def.Icon, def.Name, def.Points, when)
	}
	return w.Flush()
}
