package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/touchwood-app/touchwood/internal/daemon"
	"github.com/touchwood-app/touchwood/internal/domain"
)

func init() {
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show seasonal events and special rituals",
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	cal := d.Seasonal.PartitionAt(now)

	if len(cal.Current) == 0 {
		fmt.Println("No event is active right now.")
	}
	for _, ev := range cal.Current {
		progress, err := d.Seasonal.EventProgress(ev.ID)
		if err != nil {
			return err
		}
		fmt.Printf("🎉 %s (until %s) — %.0f%% complete\n",
			ev.Name, ev.EndDate.Format("Jan 2"), progress*100)
		for _, ch := range ev.Challenges {
			fmt.Printf("   • %s\n", ch.Description)
		}
	}

	available, err := d.Seasonal.AvailableRituals(now)
	if err != nil {
		return err
	}
	if len(available) > 0 {
		fmt.Println("\nSpecial rituals available:")
		for _, r := range available {
			fmt.Printf("   🪄 %s — %s\n", r.Name, r.Description)
		}
	}

	printEventList("\nUpcoming:", cal.Upcoming, func(ev domain.SeasonalEvent) string {
		return ev.StartDate.Format("Jan 2")
	})
	printEventList("\nPast:", cal.Past, func(ev domain.SeasonalEvent) string {
		return ev.EndDate.Format("Jan 2")
	})
	return nil
}

func printEventList(header string, events []domain.SeasonalEvent, when func(domain.SeasonalEvent) string) {
	if len(events) == 0 {
		return
	}
	fmt.Println(header)
	for _, ev := range events {
		fmt.Printf("   %s (%s)\n", ev.Name, when(ev))
	}
}
