package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"edu_rewards/internal/common"
	"edu_rewards/internal/domain/model"
	"edu_rewards/internal/domain/repository"
)

// LedgerService manages per-user token balances. Balances never go negative;
// TotalEarned only grows through credits.
type LedgerService struct {
	profileRepo repository.ProfileRepository
}

func NewLedgerService(profileRepo repository.ProfileRepository) *LedgerService {
	return &LedgerService{profileRepo: profileRepo}
}

// Credit raises tokens and lifetime earnings together. Positivity of amount
// is the caller's responsibility; the approval workflow only ever supplies
// the activity's fixed positive reward. Returns ErrNotFound when the user has
// no profile — no implicit account creation.
func (s *LedgerService) Credit(ctx context.Context, userID string, amount int) (*model.UserProfile, error) {
	return s.profileRepo.Credit(ctx, userID, amount)
}

// Debit lowers tokens only when the balance covers the amount; otherwise the
// balance is untouched and ErrInsufficientBalance is returned. The
// check-then-act happens in one repository statement, so there is no partial
// debit.
func (s *LedgerService) Debit(ctx context.Context, userID string, amount int) (*model.UserProfile, error) {
	if amount <= 0 {
		return nil, common.ErrBadRequest
	}
	return s.profileRepo.Debit(ctx, userID, amount)
}

func (s *LedgerService) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	return s.profileRepo.Find(ctx, userID)
}

type CreateProfileRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	Institution string `json:"institution"`
}

// CreateProfile registers a zero-balance profile with a generated wallet
// address. The address is decorative; no real chain is involved.
func (s *LedgerService) CreateProfile(ctx context.Context, req CreateProfileRequest) (*model.UserProfile, error) {
	if req.ID == "" {
		return nil, common.ErrBadRequest
	}
	p := &model.UserProfile{
		ID:            req.ID,
		Name:          req.Name,
		Email:         req.Email,
		WalletAddress: generateWalletAddress(),
		Bio:           req.Bio,
		Institution:   req.Institution,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.profileRepo.Create(ctx, p); err != nil {
		return nil, common.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

func generateWalletAddress() string {
	b := make([]byte, 20)
	rand.Read(b)
	return "0x" + hex.EncodeToString(b)
}
