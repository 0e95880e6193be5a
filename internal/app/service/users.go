package service

import (
	"context"
	"fmt"
	"strings"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/role"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ============ Users ============

// HashPassword is the hash stored in users.password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// UserInput is what an administrator sets on an account. Password may stay empty on
// update to keep the current one.
type UserInput struct {
	Login     string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      role.Role
	Profile   ds.Profile
}

// ContactInput is the part of the account a user edits on their own. Legal ID numbers
// are only written by signing or by an administrator.
type ContactInput struct {
	FirstName    string
	LastName     string
	Email        string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
}

func (s *Service) CreateUser(ctx context.Context, in UserInput) (*ds.User, error) {
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" {
		return nil, apperr.Required("login")
	}
	if in.Password == "" {
		return nil, apperr.Required("password")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &ds.User{
		Login:     in.Login,
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Role:      in.Role,
		Profile:   in.Profile,
	}
	if err := s.repo.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user": user.ID, "role": user.Role}).Info("user created")
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]ds.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) GetUser(ctx context.Context, id uint) (*ds.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id uint, in UserInput) (*ds.User, error) {
	in.Login = strings.TrimSpace(in.Login)
	if in.Login == "" {
		return nil, apperr.Required("login")
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash := ""
	if in.Password != "" {
		if hash, err = HashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	user.Login = in.Login
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.TrimSpace(in.Email)
	user.Role = in.Role
	user.Profile = in.Profile
	if err := s.repo.UpdateUser(ctx, user, hash); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user": id, "password_changed": hash != ""}).Info("user updated")
	return s.repo.GetUserByID(ctx, id)
}

// UpdateContact lets a user correct their own name, e-mail and address.
func (s *Service) UpdateContact(ctx context.Context, actor Actor, in ContactInput) (*ds.User, error) {
	user, err := s.repo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.TrimSpace(in.Email)
	user.Profile.Street = in.Street
	user.Profile.Number = in.Number
	user.Profile.Complement = in.Complement
	user.Profile.Neighborhood = in.Neighborhood
	user.Profile.City = in.City
	user.Profile.State = in.State
	user.Profile.PostalCode = in.PostalCode
	if err := s.repo.UpdateUser(ctx, user, ""); err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, actor.UserID)
}
