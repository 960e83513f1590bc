package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrsante/records-management/internal/auth"
	gradeDatamodel "github.com/mrsante/records-management/internal/core/datamodel/grade"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the grade ladder and a bootstrap admin",
	Long:  `Seed the database with the default grade ladder and an initial administrator account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"medical_reports", "appointments", "patients", "users", "grades", "diagnosis_rules"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		fullPermissions := gradeDatamodel.PermissionMap{
			auth.PermViewPatients:       true,
			auth.PermCreatePatients:     true,
			auth.PermDeletePatients:     true,
			auth.PermCreateReports:      true,
			auth.PermDeleteReports:      true,
			auth.PermManageUsers:        true,
			auth.PermDeleteUsers:        true,
			auth.PermViewRoster:         true,
			auth.PermManageAppointments: true,
		}

		grades := []struct {
			Name        string
			Category    string
			Level       int
			Color       string
			Permissions gradeDatamodel.PermissionMap
		}{
			{"Director", "command", 99, "#1a1a2e", fullPermissions},
			{"Chief of Medicine", "command", 10, "#b8860b", fullPermissions},
			{"Senior Physician", "medical", 8, "#4a90a4", gradeDatamodel.PermissionMap{
				auth.PermViewPatients:       true,
				auth.PermCreatePatients:     true,
				auth.PermCreateReports:      true,
				auth.PermDeleteReports:      true,
				auth.PermViewRoster:         true,
				auth.PermManageAppointments: true,
			}},
			{"Physician", "medical", 5, "#2e8b57", gradeDatamodel.PermissionMap{
				auth.PermViewPatients:       true,
				auth.PermCreatePatients:     true,
				auth.PermCreateReports:      true,
				auth.PermViewRoster:         true,
				auth.PermManageAppointments: true,
			}},
			{"Nurse", "medical", 3, "#6a5acd", gradeDatamodel.PermissionMap{
				auth.PermViewPatients:  true,
				auth.PermCreateReports: true,
				auth.PermViewRoster:    true,
			}},
			{"Intern", "medical", 1, "#808080", gradeDatamodel.PermissionMap{
				auth.PermViewPatients: true,
				auth.PermViewRoster:   true,
			}},
		}

		for _, g := range grades {
			var exists int
			row := db.Raw("SELECT 1 FROM grades WHERE name = ?", g.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			perms, _ := g.Permissions.Value()
			if err := db.Exec(
				"INSERT INTO grades (name, category, level, color, permissions, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				g.Name, g.Category, g.Level, g.Color, perms,
			).Error; err != nil {
				log.Fatalf("failed to insert grade %s: %v", g.Name, err)
			}
			fmt.Printf("Seeded grade: %s (level %d)\n", g.Name, g.Level)
		}

		adminUsername := "director"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE username = ?", adminUsername).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("bootstrap admin already exists:", adminUsername)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("changeme-now"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash bootstrap password: %v", err)
		}

		var rootGradeID int64
		if err := db.Raw("SELECT id FROM grades WHERE level = ?", auth.RootGradeLevel).Row().Scan(&rootGradeID); err != nil {
			log.Fatalf("failed to look up root grade: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO users (username, password_hash, first_name, last_name, badge_number, is_admin, grade_id, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, ?, true, now(), now())",
			adminUsername, string(hash), "System", "Director", "DIR-001", rootGradeID,
		).Error; err != nil {
			log.Fatalf("failed to insert bootstrap admin: %v", err)
		}

		fmt.Println("Seeded bootstrap admin:", adminUsername)
	},
}
