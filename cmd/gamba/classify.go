package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gamba "github.com/Colton1skees/GAMBA"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [expressions]",
	Short: "Print structural statistics for one or more expressions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, _ := cmd.Flags().GetUint("bits")

		for _, input := range args {
			c, err := gamba.Classify(input, bits)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			fmt.Printf("*** Expression %s\n", input)
			fmt.Printf("*** ... vnumber: %d\n", c.VarCount)
			fmt.Printf("*** ... linear: %v\n", c.Linear)
			fmt.Printf("*** ... stringlen: %d\n", c.StringLen)
			fmt.Printf("*** ... nodes: %d\n", c.NodeCount)
			fmt.Printf("*** ... alternation: %d\n", c.Alternation)
			if c.Linear {
				fmt.Printf("*** ... terms: %d\n", c.Terms)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
