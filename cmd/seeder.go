package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/prasetyarht/timesheet-management/internal/auth"
	orgDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/organization"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer deps.DB.Close()

		if err := runSeed(deps.GormDB, deps.Config.Security.BCryptCost); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("Seeding finished")
	},
}

func runSeed(db *gorm.DB, bcryptCost int) error {
	if clearData {
		tables := []string{
			"timesheet_history", "timesheet_entries", "timesheets",
			"holidays", "user_projects", "tasks", "projects",
			"users", "user_roles", "timesheet_status", "organizations",
		}
		for _, table := range tables {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		fmt.Println("Cleared existing data")
	}

	statuses := map[int64]string{
		timesheet.StatusDraft:           "Draft",
		timesheet.StatusPendingApproval: "Pending Approval",
		timesheet.StatusApproved:        "Approved",
		timesheet.StatusRejected:        "Rejected",
		timesheet.StatusCancel:          "Cancel",
		timesheet.StatusLocked:          "Locked",
		timesheet.StatusInProgress:      "In Progress",
		timesheet.StatusPartialApprove:  "Partial Approve",
		timesheet.StatusPartialReject:   "Partial Reject",
	}
	for id, name := range statuses {
		var status tsDatamodel.TimesheetStatus
		err := db.Where("id = ?", id).First(&status).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&tsDatamodel.TimesheetStatus{ID: id, Name: name}).Error; err != nil {
				return fmt.Errorf("failed to seed status %s: %w", name, err)
			}
		} else if err != nil {
			return err
		}
	}

	roleIDs := make(map[auth.Role]int64)
	for _, name := range []auth.Role{auth.RoleSuperAdmin, auth.RoleHR, auth.RoleManager, auth.RoleEmployee} {
		var role orgDatamodel.UserRole
		err := db.Where("name = ?", string(name)).First(&role).Error
		if err == gorm.ErrRecordNotFound {
			role = orgDatamodel.UserRole{Name: string(name)}
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", name, err)
			}
		} else if err != nil {
			return err
		}
		roleIDs[name] = role.ID
	}

	var org orgDatamodel.Organization
	err := db.Where("name = ?", "Acme Consulting").First(&org).Error
	if err == gorm.ErrRecordNotFound {
		org = orgDatamodel.Organization{Name: "Acme Consulting"}
		if err := db.Create(&org).Error; err != nil {
			return fmt.Errorf("failed to seed organization: %w", err)
		}
	} else if err != nil {
		return err
	}

	hash, err := auth.HashPassword("password", bcryptCost)
	if err != nil {
		return err
	}

	seedUsers := []struct {
		Username string
		Email    string
		FullName string
		Role     auth.Role
	}{
		{"admin", "admin@acme.test", "Ayu Admin", auth.RoleSuperAdmin},
		{"rina.hr", "rina@acme.test", "Rina Hartati", auth.RoleHR},
		{"budi.mgr", "budi@acme.test", "Budi Santoso", auth.RoleManager},
		{"sari", "sari@acme.test", "Sari Dewi", auth.RoleEmployee},
		{"joko", "joko@acme.test", "Joko Widagdo", auth.RoleEmployee},
	}

	userIDs := make(map[string]int64)
	for _, u := range seedUsers {
		var user orgDatamodel.User
		err := db.Where("email = ?", u.Email).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			user = orgDatamodel.User{
				OrgID:        org.ID,
				RoleID:       roleIDs[u.Role],
				Username:     u.Username,
				Email:        u.Email,
				FullName:     u.FullName,
				PasswordHash: hash,
				IsActive:     true,
			}
			if err := db.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		} else if err != nil {
			return err
		}
		userIDs[u.Username] = user.ID
	}

	managerID := userIDs["budi.mgr"]
	seedProjects := []struct {
		Name  string
		Tasks []string
	}{
		{"Internal Platform", []string{"Development", "Code Review", "Meetings"}},
		{"Client Portal", []string{"Development", "QA", "Support"}},
	}

	for _, p := range seedProjects {
		var project orgDatamodel.Project
		err := db.Where("org_id = ? AND name = ?", org.ID, p.Name).First(&project).Error
		if err == gorm.ErrRecordNotFound {
			project = orgDatamodel.Project{
				OrgID:     org.ID,
				Name:      p.Name,
				ManagerID: &managerID,
				CreatedBy: userIDs["admin"],
			}
			if err := db.Create(&project).Error; err != nil {
				return fmt.Errorf("failed to seed project %s: %w", p.Name, err)
			}
		} else if err != nil {
			return err
		}

		for _, taskName := range p.Tasks {
			var task orgDatamodel.Task
			err := db.Where("project_id = ? AND name = ?", project.ID, taskName).First(&task).Error
			if err == gorm.ErrRecordNotFound {
				task = orgDatamodel.Task{
					ProjectID: project.ID,
					Name:      taskName,
				}
				if err := db.Create(&task).Error; err != nil {
					return fmt.Errorf("failed to seed task %s: %w", taskName, err)
				}
			} else if err != nil {
				return err
			}
		}

		for _, username := range []string{"sari", "joko"} {
			var assignment orgDatamodel.UserProject
			err := db.Where("user_id = ? AND project_id = ?", userIDs[username], project.ID).First(&assignment).Error
			if err == gorm.ErrRecordNotFound {
				assignment = orgDatamodel.UserProject{
					UserID:    userIDs[username],
					ProjectID: project.ID,
					IsActive:  true,
					CreatedBy: userIDs["admin"],
				}
				if err := db.Create(&assignment).Error; err != nil {
					return fmt.Errorf("failed to seed project assignment for %s: %w", username, err)
				}
			} else if err != nil {
				return err
			}
		}
	}

	year := time.Now().Year()
	seedHolidays := []struct {
		Date time.Time
		Name string
	}{
		{time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), "New Year's Day"},
		{time.Date(year, time.August, 17, 0, 0, 0, 0, time.UTC), "Independence Day"},
		{time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC), "Christmas Day"},
	}
	for _, h := range seedHolidays {
		var existing tsDatamodel.Holiday
		err := db.Where("org_id = ? AND date = ?", org.ID, h.Date).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			holiday := tsDatamodel.Holiday{
				OrgID:     org.ID,
				Date:      h.Date,
				Name:      h.Name,
				CreatedBy: userIDs["admin"],
			}
			if err := db.Create(&holiday).Error; err != nil {
				return fmt.Errorf("failed to seed holiday %s: %w", h.Name, err)
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
