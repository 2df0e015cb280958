package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ideaforge/internal/bootstrap"
	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/services/submission"
)

func runCmd() *cobra.Command {
	var req submission.Request
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the research workflow for one idea",
		Long: `Runs company research, idea research, resource estimation and question
generation in order, stopping at the first failing stage. With --session the
idea is also scored and saved to the catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}
			return withContainer(cmd.Context(), func(ctx context.Context, c *bootstrap.Container) error {
				jsonOut := viper.GetBool("json")
				var cb *workflow.Callbacks
				if !jsonOut {
					cb = progressCallbacks()
				}

				out, err := c.Services.Submission.Submit(ctx, req, cb)
				if err != nil && out == nil {
					return err
				}
				if jsonOut {
					if perr := printJSON(out); perr != nil {
						return perr
					}
				} else {
					renderWorkflow(os.Stdout, out.Result)
					renderScore(os.Stdout, out)
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&req.CompanyName, "company", "", "company name (required)")
	cmd.Flags().StringVar(&req.IdeaTitle, "title", "", "idea title (required)")
	cmd.Flags().StringVar(&req.IdeaDescription, "description", "", "idea description")
	cmd.Flags().StringVar(&req.SessionID, "session", "", "save the idea to the catalog under this session id")
	cmd.Flags().StringVar(&req.Department, "department", "", "department the idea is filed under")
	cmd.Flags().StringVar(&req.SubmittedBy, "submitted-by", "", "submitter name")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func progressCallbacks() *workflow.Callbacks {
	step := func(label string) func(*workflow.Result) {
		return func(r *workflow.Result) {
			fmt.Fprintf(os.Stderr, "  %s done (%s)\n", label, r.CurrentStep)
		}
	}
	return &workflow.Callbacks{
		OnCompanyResearch:  step("company research"),
		OnIdeaResearch:     step("idea research"),
		OnResourceEstimate: step("resource estimation"),
		OnQuestions:        step("question generation"),
	}
}
