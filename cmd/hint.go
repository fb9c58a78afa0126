package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/matching"
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Print a career direction hint based on your strongest matches",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		p := s.profiles.Get(ctx)
		if p.Incomplete() {
			s.logger.Info("exiting",
				zap.String("reason", "profile is not set up"),
				zap.String("hint", "run `studentos profile init`"))
			return
		}

		results := matching.EvaluateAll(s.filteredCatalog(ctx).Items, p)
		offline, _ := cmd.Flags().GetBool("no-ai")
		fmt.Fprintln(cmd.OutOrStdout(), s.newAdapter(ctx, offline).CareerHint(ctx, results))
	},
}

func init() {
	rootCmd.AddCommand(hintCmd)
	hintCmd.Flags().Bool("no-ai", false, "skip generation and use the offline hint")
}
