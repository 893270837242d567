package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tillpoint",
	Short: "TillPoint POS and inventory toolbox",
}

// Execute applies registered commands and dispatches the CLI.
func Execute() {
	Apply()

	// ASCII banner on start (random font each run)
	fonts := []string{"standard", "slant", "small", "shadow", "speed", "thick", "doom", "larry3d", "rectangles"}
	fig := figure.NewFigure("TillPoint", fonts[rand.Intn(len(fonts))], true)
	fig.Print()
	fmt.Println()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
