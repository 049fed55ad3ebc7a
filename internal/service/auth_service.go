package service

import (
	"errors"

	"perf_eval_backend/internal/config"
	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return util.Validationf("name, email and password are required")
	}
	if user.Role == "" {
		user.Role = model.Evaluatee
	}
	if user.Role != model.Admin && user.Role != model.Evaluator && user.Role != model.Evaluatee {
		return util.Validationf("unknown role %q", user.Role)
	}

	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.Conflictf("email %s already registered", user.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.IsActive = true
	return s.UserRepo.Create(user)
}

// Login checks credentials and returns a signed token together with the
// user record. Disabled accounts fail the same way as bad credentials.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
