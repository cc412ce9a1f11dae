// Package seed bootstraps the records a fresh deployment needs before
// anyone can log in.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	employeedomain "github.com/intellious/hrms/internal/employee/domain"
	"gorm.io/gorm"
)

// EnsureDefaultAdmin creates an ADMIN employee with the given email when
// no admin exists yet. Without one there is no way to assign the first
// roles, since the admin role can only be granted by another admin.
func EnsureDefaultAdmin(db *gorm.DB, email string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("seed admin email is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.WithContext(ctx).
			Model(&employeedomain.Employee{}).
			Where("role = ?", employeedomain.RoleAdmin).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		var existing employeedomain.Employee
		err = tx.WithContext(ctx).
			Where("email = ?", email).
			First(&existing).Error
		if err == nil {
			// Promote the pre-registered record instead of duplicating it.
			return tx.WithContext(ctx).
				Model(&employeedomain.Employee{}).
				Where("id = ?", existing.ID).
				Updates(map[string]any{
					"role":       employeedomain.RoleAdmin,
					"updated_at": time.Now().UTC(),
				}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		admin := employeedomain.Employee{
			ID:        node.Generate(),
			Email:     email,
			Role:      employeedomain.RoleAdmin,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&admin).Error
	})
}
