package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jarutais/slidecast/internal/media"
)

var probeCmd = &cobra.Command{
	Use:   "probe [media_file]",
	Short: "Print the duration of an audio or video file",
	Long: `Print the duration of a media file as reported by ffprobe.

Useful for checking how a background track will be fitted: a clip shorter
than the video is looped, a longer one is trimmed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, err := media.Duration(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.3fs\n", args[0], duration.Seconds())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
