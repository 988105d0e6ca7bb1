package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

type AuthService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	userRepo          repositories.UserRepository
	jwtSecret         []byte
	expirationMinutes int
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, expirationMinutes int) AuthService {
	return &authService{
		userRepo:          userRepo,
		jwtSecret:         []byte(jwtSecret),
		expirationMinutes: expirationMinutes,
	}
}

func (s *authService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, common.NewValidationError("email", "This field is required")
	}
	if len(password) < 8 {
		return nil, common.NewValidationError("password", "Must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInventoryError("failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, common.NewValidationError("email", "A user with this email already exists")
		}
		return nil, common.NewInventoryError("failed to create user", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNoRows(err) {
			return "", common.ErrUnauthenticated
		}
		return "", common.NewInventoryError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrUnauthenticated
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":      user.ID.String(),
		"is_superuser": user.IsSuperuser,
		"iat":          now.Unix(),
		"exp":          now.Add(time.Duration(s.expirationMinutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", common.NewInventoryError("failed to sign token", err)
	}
	return signed, nil
}
