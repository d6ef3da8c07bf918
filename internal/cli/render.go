package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jarutais/slidecast/internal/manifest"
	"github.com/Jarutais/slidecast/internal/movie"
)

var renderCmd = &cobra.Command{
	Use:   "render [image...]",
	Short: "Render a slideshow video from images",
	Long: `Render a slideshow video from the given images, in order. Each
consecutive pair of images is blended with a transition effect.

Transitions are taken from --transitions (one name per pair, comma
separated) or --transition (a single name applied to every pair). Run
"slidecast effects" to list the available transitions.

With --audio, the track is looped or trimmed to exactly cover the video.
With --manifest, images, transitions and settings come from a YAML file
and positional arguments are not allowed.

Examples:
  slidecast render a.png b.png c.png -o show.mp4
  slidecast render a.png b.png --transition wipeleft --audio bg.mp3 -o show.mp4
  slidecast render *.png --transitions crossfade,pixelize,circleopen -o show.mp4
  slidecast render --manifest show.yaml`,
	Args: cobra.ArbitraryArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().
		StringP("audio", "a", "", "Background audio file, looped to the video duration")
	renderCmd.Flags().
		StringP("transition", "t", "crossfade", "Transition effect applied to every image pair")
	renderCmd.Flags().
		String("transitions", "", "Comma-separated transition names, one per image pair")
	renderCmd.Flags().
		Float64P("image-duration", "d", 1.0, "Display duration per image in seconds")
	renderCmd.Flags().
		Float64("transition-duration", 0.8, "Transition duration in seconds")
	renderCmd.Flags().
		Int("fps", 30, "Output frame rate")
	renderCmd.Flags().
		Int("samples", 30, "Blend steps rendered per transition")
	renderCmd.Flags().
		Int("quality", 23, "x264 CRF value (lower is better)")
	renderCmd.Flags().
		Int("workers", 0, "Parallel image decode workers (0 = auto)")
	renderCmd.Flags().
		StringP("manifest", "m", "", "YAML slideshow manifest instead of positional images")
}

func runRender(cmd *cobra.Command, args []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	outputPath, _ := cmd.Flags().GetString("output")
	audioPath, _ := cmd.Flags().GetString("audio")

	opts := movie.DefaultOptions()
	opts.FrameDuration, _ = cmd.Flags().GetFloat64("image-duration")
	opts.TransitionDuration, _ = cmd.Flags().GetFloat64("transition-duration")
	opts.FPS, _ = cmd.Flags().GetInt("fps")
	opts.SamplesPerTransition, _ = cmd.Flags().GetInt("samples")
	opts.Quality, _ = cmd.Flags().GetInt("quality")
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	opts.Logger = logger

	var images, transitions []string

	if manifestPath != "" {
		if len(args) > 0 {
			return fmt.Errorf("--manifest cannot be combined with positional images")
		}

		m, err := manifest.Read(manifestPath)
		if err != nil {
			return err
		}
		images = m.ImagePaths()
		transitions = m.Transitions()
		if m.Audio != "" {
			audioPath = m.Audio
		}
		if outputPath == "" {
			outputPath = m.Output
		}
		if m.FrameDuration > 0 {
			opts.FrameDuration = m.FrameDuration
		}
		if m.TransitionDuration > 0 {
			opts.TransitionDuration = m.TransitionDuration
		}
	} else {
		if len(args) < 2 {
			return fmt.Errorf("at least 2 images are required, got %d", len(args))
		}
		images = args

		list, _ := cmd.Flags().GetString("transitions")
		single, _ := cmd.Flags().GetString("transition")
		transitions = expandTransitions(list, single, len(images)-1)
	}

	for _, img := range images {
		if _, err := os.Stat(img); os.IsNotExist(err) {
			return fmt.Errorf("image not found: %s", img)
		}
	}

	if outputPath == "" {
		outputPath = "slideshow.mp4"
	}
	opts.AudioPath = audioPath

	logger.Infof("Rendering %d images to %s", len(images), outputPath)

	maker := movie.NewMaker(opts)
	result, err := maker.Make(cmd.Context(), images, transitions, outputPath)
	if err != nil {
		return err
	}

	logger.Infof(
		"Done: %s (%.1fs, %d frames, %d dropped)",
		result.OutputPath,
		result.Duration.Seconds(),
		result.FramesWritten,
		result.FramesDropped,
	)
	return nil
}

// expandTransitions builds the per-pair transition list: an explicit comma
// list wins, otherwise the single name is repeated.
func expandTransitions(list, single string, pairs int) []string {
	if list != "" {
		parts := strings.Split(list, ",")
		names := make([]string, 0, len(parts))
		for _, p := range parts {
			names = append(names, strings.TrimSpace(p))
		}
		return names
	}

	names := make([]string, pairs)
	for i := range names {
		names[i] = single
	}
	return names
}
