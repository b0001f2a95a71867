package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/epicevents/crm-management/internal/rbac"
	"github.com/epicevents/crm-management/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crée les rôles et l'administrateur par défaut",
	Long:  `Crée les trois rôles (gestion, commercial, support) et un administrateur par défaut s'ils n'existent pas encore.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := openDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to open db: %v", err)
		}

		roles := []rbac.RoleName{rbac.RoleSupport, rbac.RoleCommercial, rbac.RoleGestion}
		for _, name := range roles {
			var existing user.Role
			err := db.Where("name = ?", string(name)).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("failed to look up role %s: %v", name, err)
			}
			if err := db.Create(&user.Role{Name: name}).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", name, err)
			}
			fmt.Println("Rôle ajouté :", name)
		}

		adminEmail := "admin@admin.com"
		var existing user.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
			fmt.Println("L'administrateur existe déjà :", adminEmail)
			return
		}

		var gestion user.Role
		if err := db.Where("name = ?", string(rbac.RoleGestion)).First(&gestion).Error; err != nil {
			log.Fatalf("role gestion not found: %v", err)
		}

		hash, err := user.HashPassword("admin123", cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		admin := &user.User{
			Name:         "Admin",
			Email:        adminEmail,
			PasswordHash: hash,
			RoleID:       &gestion.ID,
		}
		if err := db.Create(admin).Error; err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Administrateur ajouté :", adminEmail)
	},
}
