package service

import (
	"context"

	"github.com/edusys/school-api/internal/domain/entity"
	"github.com/edusys/school-api/internal/domain/repository"
	"github.com/edusys/school-api/pkg/apperror"
	"github.com/edusys/school-api/pkg/utils"
	"github.com/google/uuid"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repository.UserRepository
	schoolRepo repository.SchoolRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	schoolRepo repository.SchoolRepository,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		schoolRepo: schoolRepo,
		jwtManager: jwtManager,
	}
}

// AuthTokens holds an issued token pair
type AuthTokens struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user"`
}

// Login authenticates a staff member and issues a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperror.NewAppError(403, "Account is deactivated")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.SchoolID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.SchoolID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         user,
	}, nil
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	SchoolID  uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// CreateUser registers a staff account for a school. Only admins reach
// this; the role check happens in the middleware layer.
func (s *AuthService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	var fieldErrors []apperror.FieldError
	if input.Email == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "Email is required"})
	}
	if len(input.Password) < 8 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	switch input.Role {
	case entity.RoleAdmin, entity.RoleTeacher, entity.RoleAccountant:
	default:
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: "Invalid role"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	school, err := s.schoolRepo.GetByID(ctx, input.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, apperror.NewNotFoundError("School")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email is already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		SchoolID:  input.SchoolID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      input.Role,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetMe returns the authenticated user's profile
func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}
