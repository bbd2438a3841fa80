package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfletch/jobsite/internal/contract"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Apply, recalculate, and repair job schedules",
	}

	cmd.AddCommand(
		newScheduleApplyCmd(app),
		newScheduleRecalcCmd(app),
		newScheduleSyncCmd(app),
	)

	return cmd
}

func newScheduleApplyCmd(app *App) *cobra.Command {
	var jobType, start string

	cmd := &cobra.Command{
		Use:   "apply JOB",
		Short: "Instantiate a job type's workflow onto a job",
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

			// Flags override what the job already carries.
			jobTypeID := ""
			if jobType != "" {
				jobTypeID, err = resolveJobTypeID(ctx, app, jobType)
				if err != nil {
					return err
				}
			} else if j.JobTypeID != nil {
				jobTypeID = *j.JobTypeID
			} else {
				return fmt.Errorf("job %q has no job type; pass --type", j.Name)
			}

			startDate := time.Now().UTC()
			if start != "" {
				startDate, err = time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
			} else if j.StartDate != nil {
				startDate = *j.StartDate
			}

			resp, err := app.Schedule.Instantiate(ctx, contract.InstantiateRequest{
				CompanyID: app.CompanyID,
				JobID:     jobID,
				JobTypeID: jobTypeID,
				StartDate: startDate,
				Actor:     app.Actor,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Scheduled %d activities on %s.\n", resp.Created, j.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&jobType, "type", "", "Job type name or ID (defaults to the job's type)")
	cmd.Flags().StringVar(&start, "start", "", "Schedule anchor date (YYYY-MM-DD, defaults to the job's start)")

	return cmd
}

func newScheduleRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc JOB",
		Short: "Re-derive activity dates from durations and predecessors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			jobID, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}

			resp, err := app.Schedule.Recalculate(ctx, contract.RecalculateRequest{
				CompanyID: app.CompanyID,
				JobID:     jobID,
				Actor:     app.Actor,
			})
			if err != nil {
				return err
			}

			if resp.Changed == 0 {
				fmt.Println("Schedule already consistent; nothing moved.")
				return nil
			}
			fmt.Printf("Moved dates on %d activities.\n", resp.Changed)
			return nil
		},
	}
}

func newScheduleSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync JOB",
		Short: "Repair activity predecessor links from their templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			jobID, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}

			resp, err := app.Schedule.SyncPredecessors(ctx, contract.SyncRequest{
				CompanyID: app.CompanyID,
				JobID:     jobID,
				Actor:     app.Actor,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Repaired %d of %d template-linked activities. Dates were not changed.\n",
				resp.Synced, resp.Total)
			return nil
		},
	}
}
