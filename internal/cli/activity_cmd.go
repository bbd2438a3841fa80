package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfletch/jobsite/internal/cli/formatter"
	"github.com/mfletch/jobsite/internal/domain"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Inspect and update job activities",
	}

	cmd.AddCommand(
		newActivityListCmd(app),
		newActivityStatusCmd(app),
		newActivityChecklistCmd(app),
		newActivityCheckCmd(app),
	)

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list JOB",
		Short: "List a job's activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			jobID, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}

			activities, err := app.Activities.ListByJob(ctx, app.CompanyID, jobID)
			if err != nil {
				return err
			}

			if len(activities) == 0 {
				fmt.Println("No activities scheduled. Run 'jobsite schedule apply' first.")
				return nil
			}

			fmt.Println(formatter.FormatActivityList(activities))
			return nil
		},
	}
}

func newActivityStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ACTIVITY STATUS",
		Short: "Change an activity's status",
		Long: `Change an activity's status. Valid statuses: not_started, in_progress,
stuck, done, on_hold, skipped. Moving to done requires every checklist
item to be completed first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			status := domain.ActivityStatus(args[1])

			err := app.Activities.UpdateStatus(ctx, app.CompanyID, args[0], status, app.Actor)
			if err != nil {
				return err
			}

			fmt.Printf("Activity marked %s.\n", formatter.StatusLabel(status))
			return nil
		},
	}
}

func newActivityChecklistCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checklist ACTIVITY",
		Short: "Show an activity's checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			items, err := app.Activities.ListChecklist(ctx, app.CompanyID, args[0])
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("No checklist on this activity.")
				return nil
			}

			fmt.Println(formatter.FormatChecklist(items))
			return nil
		},
	}
}

func newActivityCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check ITEM",
		Short: "Complete a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Activities.CompleteChecklistItem(ctx, app.CompanyID, args[0], app.Actor); err != nil {
				return err
			}
			fmt.Println("Checklist item completed.")
			return nil
		},
	}
}
