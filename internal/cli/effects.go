package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jarutais/slidecast/internal/effects"
)

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List the available transition effects",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range effects.Names() {
			if name == effects.DefaultName {
				fmt.Printf("%s (default)\n", name)
				continue
			}
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(effectsCmd)
}
