package main

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gamba "github.com/Colton1skees/GAMBA"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [expressions]",
	Short: "Simplify one or more expressions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bits, _ := cmd.Flags().GetUint("bits")
		linear, _ := cmd.Flags().GetBool("linear")
		steps, _ := cmd.Flags().GetInt("steps")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		dump, _ := cmd.Flags().GetBool("dump-ast")

		simplifier := &gamba.Simplifier{Width: bits, MaxSteps: steps}
		for _, input := range args {
			ctx := context.Background()
			cancel := func() {}
			if timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, timeout)
			}

			if dump {
				if expr, err := gamba.Parse(input, bits); err == nil {
					log.Debug(spew.Sdump(expr))
				}
			}

			result, err := simplifier.Simplify(ctx, input, linear)
			cancel()
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			fmt.Println(result)
		}
		return nil
	},
}

func init() {
	simplifyCmd.Flags().BoolP("linear", "l", false, "reject non-linear expressions")
	simplifyCmd.Flags().Int("steps", gamba.DefaultMaxSteps, "rewrite search step budget")
	simplifyCmd.Flags().DurationP("timeout", "t", 10*time.Second, "per-expression time budget")
	simplifyCmd.Flags().Bool("dump-ast", false, "dump the parsed tree at debug level")
	rootCmd.AddCommand(simplifyCmd)
}
