package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/touchwood-app/touchwood/internal/app/social"
	"github.com/touchwood-app/touchwood/internal/daemon"
)

func init() {
	rootCmd.AddCommand(shareCmd)
}

var shareCmd = &cobra.Command{
	Use:       "share [streak|achievement|level|challenge]",
	Short:     "Share your progress",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"streak", "achievement", "level", "challenge"},
	RunE:      runShare,
}

func runShare(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	kind := social.ShareStreak
	if len(args) == 1 {
		kind = social.ShareKind(args[0])
	}

	payload, err := d.Share(kind, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", payload.Message, payload.Hashtag)

	count, err := d.Social.CurrentShareCount()
	if err != nil {
		return err
	}
	fmt.Printf("Shared %d times so far.\n", count)
	return nil
}
