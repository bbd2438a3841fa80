package cli

import (
	"github.com/spf13/cobra"

	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/service"
)

// App holds references to all service interfaces used by CLI commands,
// plus the tenant and actor every invocation runs as.
type App struct {
	Schedule   service.ScheduleService
	Activities service.ActivityService
	Templates  service.TemplateService
	Jobs       service.JobService

	CompanyID string
	Actor     domain.Actor
}

// NewRootCmd creates the top-level "jobsite" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "jobsite",
		Short: "Construction job scheduling from workflow templates",
	}

	root.AddCommand(
		newJobCmd(app),
		newWorkflowCmd(app),
		newScheduleCmd(app),
		newActivityCmd(app),
	)

	return root
}
