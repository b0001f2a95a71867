package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/epicevents/crm-management/internal/rbac"
)

// Role is reference data seeded once at bootstrap; rows never change
// afterwards.
type Role struct {
	ID   int64         `gorm:"primaryKey"`
	Name rbac.RoleName `gorm:"column:name;size:100;uniqueIndex;not null"`
}

func (Role) TableName() string { return "roles" }

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"column:name;size:100;not null"`
	Email        string `gorm:"column:email;size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;size:100;not null"`
	RoleID       *int64 `gorm:"column:role_id"`
	Role         *Role  `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL"`
}

func (User) TableName() string { return "users" }

// RoleName returns the live role of the user, nil when no role is
// assigned. A user without a role never passes a permission check.
func (u *User) RoleName() *rbac.RoleName {
	if u == nil || u.Role == nil {
		return nil
	}
	return &u.Role.Name
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
