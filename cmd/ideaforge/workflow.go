package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ideaforge/internal/bootstrap"
)

func workflowCmd() *cobra.Command {
	wf := &cobra.Command{Use: "workflow", Short: "Inspect saved workflow runs"}
	wf.AddCommand(workflowShowCmd())
	return wf
}

func workflowShowCmd() *cobra.Command {
	var company, title string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the last saved run for a company and idea title",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *bootstrap.Container) error {
				result, err := c.Business.Orchestrator.Load(ctx, company, title)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(result)
				}
				renderWorkflow(os.Stdout, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&title, "title", "", "idea title")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
