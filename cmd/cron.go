package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/prasetyarht/timesheet-management/internal/holiday"
	holidayPostgres "github.com/prasetyarht/timesheet-management/internal/holiday/postgres"
	"github.com/prasetyarht/timesheet-management/internal/notification"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
	timesheetPostgres "github.com/prasetyarht/timesheet-management/internal/timesheet/postgres"
)

// cron jobs run as one-shot invocations from an external scheduler. Both
// jobs are idempotent, so a scheduler that fires twice does no harm.
var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Scheduled maintenance jobs",
}

var cronRolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Create draft timesheets for the current week",
	RunE:  runRollover,
}

var cronRemindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Remind users whose current-week timesheet is still draft",
	RunE:  runRemind,
}

func init() {
	cronCmd.AddCommand(cronRolloverCmd)
	cronCmd.AddCommand(cronRemindCmd)
}

func cronTimesheetService() (*timesheet.Service, *Dependencies, error) {
	deps, err := initializeDependencies()
	if err != nil {
		return nil, nil, err
	}

	holidayRepo := holidayPostgres.NewRepository(deps.GormDB)
	holidayService := holiday.NewService(holidayRepo, deps.Logger)

	timesheetRepo := timesheetPostgres.NewRepository(deps.GormDB)
	service := timesheet.NewService(timesheetRepo, holidayService, nil, deps.Logger)
	return service, deps, nil
}

func runRollover(_ *cobra.Command, _ []string) error {
	service, deps, err := cronTimesheetService()
	if err != nil {
		return err
	}
	defer deps.DB.Close()

	created, err := service.CreateWeeklyTimesheets()
	if err != nil {
		return err
	}

	deps.Logger.Info("rollover job finished", "created", created)
	return nil
}

func runRemind(_ *cobra.Command, _ []string) error {
	service, deps, err := cronTimesheetService()
	if err != nil {
		return err
	}
	defer deps.DB.Close()

	notifier := notification.NewLogNotifier(deps.Logger)
	notificationService := notification.NewService(notifier, service, deps.Logger)

	sent, err := notificationService.SendWeeklyReminders(context.Background())
	if err != nil {
		return err
	}

	deps.Logger.Info("reminder job finished", "sent", sent)
	return nil
}
