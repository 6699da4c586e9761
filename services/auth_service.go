package services

import (
	"context"
	"errors"
	"time"

	"storefront/models"
	"storefront/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *ServiceError)
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResponse, *ServiceError)
	Profile(ctx context.Context, userID string) (*models.User, *ServiceError)
}

type authServiceImpl struct {
	users     repository.UserRepository
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, jwtSecret string, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, jwtSecret: []byte(jwtSecret), logger: logger}
}

func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *ServiceError) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to register user"}
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "customer",
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ServiceError{StatusCode: 409, Message: "Email already registered"}
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to register user"}
	}
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*LoginResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 401, Message: "Invalid email or password"}
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to log in"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid email or password"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to log in"}
	}
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *authServiceImpl) Profile(ctx context.Context, userID string) (*models.User, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	user, err := s.users.FindByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch profile"}
	}
	return user, nil
}

// generateToken signs an HS256 token carrying the user ID and role.
func (s *authServiceImpl) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
