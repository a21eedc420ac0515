package service

import (
	"context"
	"fmt"

	"edu_rewards/internal/common"
	"edu_rewards/internal/common/security"
	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"

	"github.com/google/uuid"
)

// AuthService is the identity/session provider: it vouches for who is acting
// and whether they hold the student or admin role. The review workflow trusts
// its role claim.
type AuthService struct {
	userRepo repository.UserRepository
	ledger   *LedgerService
}

func NewAuthService(userRepo repository.UserRepository, ledger *LedgerService) *AuthService {
	return &AuthService{userRepo: userRepo, ledger: ledger}
}

type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Institution string `json:"institution"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Signup registers a student account and its zero-balance token profile.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleStudent,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict for duplicate emails
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.ledger.CreateProfile(ctx, CreateProfileRequest{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Institution: req.Institution,
	}); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Generic message whether the account exists or not
		return nil, common.ErrUnauthorized
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}
