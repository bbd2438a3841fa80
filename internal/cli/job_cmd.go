package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfletch/jobsite/internal/cli/formatter"
	"github.com/mfletch/jobsite/internal/domain"
)

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs",
	}

	cmd.AddCommand(
		newJobAddCmd(app),
		newJobListCmd(app),
		newJobInspectCmd(app),
		newJobStartCmd(app),
	)

	return cmd
}

func newJobAddCmd(app *App) *cobra.Command {
	var name, jobType, start string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new job",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			j := &domain.Job{
				CompanyID: app.CompanyID,
				Name:      name,
				Status:    domain.JobActive,
			}

			if jobType != "" {
				jobTypeID, err := resolveJobTypeID(ctx, app, jobType)
				if err != nil {
					return err
				}
				j.JobTypeID = &jobTypeID
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				j.StartDate = &startDate
			}

			if err := app.Jobs.Create(ctx, j); err != nil {
				return err
			}

			fmt.Printf("Created job %s (%s)\n", j.Name, shortID(j.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Job name")
	cmd.Flags().StringVar(&jobType, "type", "", "Job type name or ID")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newJobListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := app.Jobs.List(context.Background(), app.CompanyID)
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			fmt.Println(formatter.FormatJobList(jobs))
			return nil
		},
	}
}

func newJobInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect JOB",
		Short: "Show a job with its scheduled activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			jobID, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}

			j, err := app.Jobs.GetByID(ctx, app.CompanyID, jobID)
			if err != nil {
				return err
			}
			activities, err := app.Activities.ListByJob(ctx, app.CompanyID, jobID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatJobDetail(j, activities))
			return nil
		},
	}
}

func newJobStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start JOB DATE",
		Short: "Set a job's start date (weekends roll to Monday)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			jobID, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			start, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", args[1], err)
			}

			if err := app.Jobs.SetStartDate(ctx, app.CompanyID, jobID, start); err != nil {
				return err
			}

			j, err := app.Jobs.GetByID(ctx, app.CompanyID, jobID)
			if err != nil {
				return err
			}
			fmt.Printf("Job %s starts %s. Run 'jobsite schedule recalc %s' to move activity dates.\n",
				j.Name, j.StartDate.Format("2006-01-02"), shortID(j.ID))
			return nil
		},
	}
}

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
