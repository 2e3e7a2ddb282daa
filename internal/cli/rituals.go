package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/touchwood-app/touchwood/internal/daemon"
	"github.com/touchwood-app/touchwood/internal/domain"
)

func init() {
	createRitualCmd.Flags().StringVar(&createCategory, "category", "protection", "Ritual category (protection, luck, calm, gratitude, focus)")
	createRitualCmd.Flags().StringVar(&createDescription, "description", "", "What the ritual is for")
	ritualsCmd.AddCommand(createRitualCmd)
	rootCmd.AddCommand(ritualsCmd)
}

var (
	createCategory    string
	createDescription string
)

var ritualsCmd = &cobra.Command{
	Use:   "rituals",
	Short: "List available rituals",
	RunE:  runRituals,
}

func runRituals(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rituals, err := d.Catalog.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RITUAL\tCATEGORY\tDESCRIPTION")
	for _, r := range rituals {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Category, r.Description)
	}
	return w.Flush()
}

var createRitualCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a custom ritual",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateRitual,
}

func runCreateRitual(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	ritual, err := d.Catalog.CreateCustom(args[0], domain.RitualCategory(createCategory), createDescription, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("🪵 Created ritual %q (%s). Touch it with 'touchwood touch %s'.\n",
		ritual.Name, ritual.Category, ritual.ID)
	return nil
}
