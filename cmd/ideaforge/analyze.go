package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ideaforge/internal/bootstrap"
)

func analyzeCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print portfolio analytics for the saved ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *bootstrap.Container) error {
				analytics, err := c.Services.Portfolio.Analyze(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(analytics)
				}
				renderPortfolio(os.Stdout, analytics, top)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of budget/ROI projections to show")
	return cmd
}
