// Command gamba simplifies and classifies mixed boolean-arithmetic
// expressions from the command line.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gamba",
	Short: "A simplifier for mixed boolean-arithmetic expressions.",
	Long: "Gamba rewrites mixed boolean-arithmetic expressions over a fixed bit\n" +
		"width into provably equivalent, simpler forms.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().UintP("bits", "b", 64, "bit width of variables and constants")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
