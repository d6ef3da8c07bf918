package cli

import (
	"github.com/Jarutais/slidecast/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "Render slideshow videos from still images with transition effects",
	Long: `Slidecast turns an ordered set of still images into a video,
blending each consecutive pair with a transition effect and optionally
looping a background audio track to cover the full duration.

Encoding and muxing are delegated to ffmpeg, which must be installed.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
