package service

import (
	"errors"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserUpdate carries the mutable user fields. Nil pointers are left as-is.
type UserUpdate struct {
	Name     *string         `json:"name"`
	Email    *string         `json:"email"`
	Password *string         `json:"password"`
	Role     *model.UserRole `json:"role"`
	IsActive *bool           `json:"is_active"`
}

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) List() ([]model.User, error) {
	return s.Repo.FindAll()
}

func (s *UserService) ListByRole(role model.UserRole) ([]model.User, error) {
	if role != model.Admin && role != model.Evaluator && role != model.Evaluatee {
		return nil, util.Validationf("unknown role %q", role)
	}
	return s.Repo.FindByRole(role)
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("user %d", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(id uint, update UserUpdate) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		existing, err := s.Repo.FindByEmail(*update.Email)
		if err == nil && existing.ID != id {
			return nil, util.Conflictf("email %s already in use", *update.Email)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Role != nil {
		if *update.Role != model.Admin && *update.Role != model.Evaluator && *update.Role != model.Evaluatee {
			return nil, util.Validationf("unknown role %q", *update.Role)
		}
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
