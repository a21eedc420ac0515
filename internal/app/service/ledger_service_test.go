package service

import (
	"context"
	"errors"
	"testing"

	"edu_rewards/internal/common"
)

func TestCreditUnknownProfileFailsClosed(t *testing.T) {
	env := newTestEnv()

	if _, err := env.ledger.Credit(context.Background(), "ghost", 50); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDebitBeyondBalance(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addProfile("alice", "Alice", 100)

	if _, err := env.ledger.Debit(ctx, "alice", 150); !errors.Is(err, common.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	p, err := env.ledger.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Tokens != 100 {
		t.Fatalf("tokens = %d, want 100 (balance must be untouched)", p.Tokens)
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv()
	env.addProfile("alice", "Alice", 100)

	for _, amount := range []int{0, -10} {
		if _, err := env.ledger.Debit(context.Background(), "alice", amount); !errors.Is(err, common.ErrBadRequest) {
			t.Fatalf("Debit(%d) err = %v, want ErrBadRequest", amount, err)
		}
	}
}

func TestCreditThenDebitKeepsTotalEarned(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.addProfile("alice", "Alice", 100)

	p, err := env.ledger.Credit(ctx, "alice", 40)
	if err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if p.Tokens != 140 || p.TotalEarned != 140 {
		t.Fatalf("after credit: tokens=%d totalEarned=%d, want 140/140", p.Tokens, p.TotalEarned)
	}

	p, err = env.ledger.Debit(ctx, "alice", 40)
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if p.Tokens != 100 {
		t.Fatalf("tokens = %d, want original 100", p.Tokens)
	}
	if p.TotalEarned != 140 {
		t.Fatalf("totalEarned = %d, want 140 (must not decrease on debit)", p.TotalEarned)
	}
}

func TestCreateProfileGeneratesWalletAddress(t *testing.T) {
	env := newTestEnv()

	p, err := env.ledger.CreateProfile(context.Background(), CreateProfileRequest{
		ID:    "bob",
		Name:  "Bob",
		Email: "bob@example.edu",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if len(p.WalletAddress) != 42 || p.WalletAddress[:2] != "0x" {
		t.Fatalf("wallet address = %q, want 0x-prefixed 40 hex chars", p.WalletAddress)
	}
	if p.Tokens != 0 || p.TotalEarned != 0 {
		t.Fatalf("new profile not zero-balance: %+v", p)
	}
}
