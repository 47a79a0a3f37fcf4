package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cmdRoot = &cobra.Command{
	Use:   "tracksmith",
	Short: "Match, download and tag Spotify tracks from external audio providers",
}

func init() {
	cmdRoot.PersistentFlags().BoolP("verbose", "v", false, "Print debug details")
}

func Execute() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
