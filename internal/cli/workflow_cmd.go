package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfletch/jobsite/internal/cli/formatter"
)

func newWorkflowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Manage job types and their activity templates",
	}

	cmd.AddCommand(
		newWorkflowImportCmd(app),
		newWorkflowListCmd(app),
		newWorkflowShowCmd(app),
	)

	return cmd
}

func newWorkflowImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a job type workflow from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Templates.ImportWorkflow(context.Background(), app.CompanyID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %q: %d templates, %d subtasks, %d checklist items\n",
				result.JobType.Name, result.TemplateCount, result.SubtaskCount, result.ChecklistLen)
			return nil
		},
	}
}

func newWorkflowListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List job types",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobTypes, err := app.Templates.ListJobTypes(context.Background(), app.CompanyID)
			if err != nil {
				return err
			}

			if len(jobTypes) == 0 {
				fmt.Println("No job types found. Import one with 'jobsite workflow import'.")
				return nil
			}

			fmt.Println(formatter.FormatJobTypeList(jobTypes))
			return nil
		},
	}
}

func newWorkflowShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TYPE",
		Short: "Show a job type's activity templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			jobTypeID, err := resolveJobTypeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			templates, err := app.Templates.ListTemplates(ctx, app.CompanyID, jobTypeID)
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Println("No templates in this workflow yet.")
				return nil
			}

			fmt.Println(formatter.FormatTemplateList(templates))
			return nil
		},
	}
}
