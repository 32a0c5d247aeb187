package postgres

import (
	"github.com/prasetyarht/timesheet-management/internal/auth"
	orgDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/organization"
	"gorm.io/gorm"
)

// AuthRepository resolves acting users with their role and organization.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetUserByEmail(email string) (*auth.User, string, error) {
	var user orgDatamodel.User
	err := r.db.Preload("Organization").Preload("Role").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", auth.ErrUserNotFound
		}
		return nil, "", err
	}

	return toAuthUser(&user), user.PasswordHash, nil
}

func (r *AuthRepository) GetUserByCode(userCode string) (*auth.User, error) {
	var user orgDatamodel.User
	err := r.db.Preload("Organization").Preload("Role").
		Where("code = ?", userCode).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return toAuthUser(&user), nil
}

func toAuthUser(user *orgDatamodel.User) *auth.User {
	out := &auth.User{
		ID:       user.ID,
		Code:     user.Code,
		OrgID:    user.OrgID,
		Email:    user.Email,
		FullName: user.FullName,
		IsActive: user.IsActive,
	}
	if user.Organization != nil {
		out.OrgCode = user.Organization.Code
	}
	if user.Role != nil {
		out.Role = auth.Role(user.Role.Name)
	}
	return out
}
