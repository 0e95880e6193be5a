package repository

import (
	"context"
	"fmt"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/role"
)

// ============ Users ============

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user %q", login)
	}
	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]ds.User, error) {
	var users []ds.User
	if err := r.db.WithContext(ctx).Order("first_name, last_name, id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser expects an already hashed password.
func (r *Repository) CreateUser(ctx context.Context, login, passwordHash, firstName, lastName string, userRole role.Role) (*ds.User, error) {
	user := ds.User{
		Login:     login,
		Password:  passwordHash,
		FirstName: firstName,
		LastName:  lastName,
		Role:      userRole,
	}
	if err := r.InsertUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertUser stores a complete user row; Password must already be hashed.
func (r *Repository) InsertUser(ctx context.Context, user *ds.User) error {
	if err := r.checkLogin(ctx, user.Login, 0); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("login %q: %w", user.Login, apperr.ErrDuplicateLogin)
		}
		return err
	}
	return nil
}

// UpdateUser rewrites login, names, e-mail, role and profile. The password column is only
// written when passwordHash is not empty.
func (r *Repository) UpdateUser(ctx context.Context, user *ds.User, passwordHash string) error {
	if err := r.checkLogin(ctx, user.Login, user.ID); err != nil {
		return err
	}

	updates := profileColumns(user.Profile)
	updates["login"] = user.Login
	updates["first_name"] = user.FirstName
	updates["last_name"] = user.LastName
	updates["email"] = user.Email
	updates["role"] = user.Role
	if passwordHash != "" {
		updates["password"] = passwordHash
	}

	result := r.db.WithContext(ctx).Model(&ds.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return fmt.Errorf("login %q: %w", user.Login, apperr.ErrDuplicateLogin)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", user.ID, apperr.ErrNotFound)
	}
	return nil
}

// UpdateProfile overwrites every profile column, blanks included.
func (r *Repository) UpdateProfile(ctx context.Context, userID uint, p ds.Profile) error {
	return r.db.WithContext(ctx).Model(&ds.User{}).
		Where("id = ?", userID).
		Updates(profileColumns(p)).Error
}

func (r *Repository) checkLogin(ctx context.Context, login string, exceptID uint) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.User{}).
		Where("login = ? AND id <> ?", login, exceptID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("login %q: %w", login, apperr.ErrDuplicateLogin)
	}
	return nil
}

func profileColumns(p ds.Profile) map[string]interface{} {
	return map[string]interface{}{
		"cpf":          p.CPF,
		"rg":           p.RG,
		"street":       p.Street,
		"number":       p.Number,
		"complement":   p.Complement,
		"neighborhood": p.Neighborhood,
		"city":         p.City,
		"state":        p.State,
		"postal_code":  p.PostalCode,
	}
}
