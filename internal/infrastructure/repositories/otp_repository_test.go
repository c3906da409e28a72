package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/authsvc/domain"
)

func TestOTPRepositoryImpl_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)
	ctx := context.Background()

	otp := &domain.OneTimeCode{Email: "a@x.com", Code: "ABCDEF"}
	if err := repo.Create(ctx, otp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if otp.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if otp.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be populated")
	}
}

func TestOTPRepositoryImpl_FindNewest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOTPRepository(db)
	ctx := context.Background()

	// Seed records with explicit timestamps so ordering is deterministic.
	now := time.Now()
	seed := []DBOneTimeCode{
		{Email: "a@x.com", Code: "OLDOLD", CreatedAt: now.Add(-10 * time.Minute)},
		{Email: "a@x.com", Code: "ABCDEF", CreatedAt: now.Add(-8 * time.Minute)},
		{Email: "a@x.com", Code: "ABCDEF", CreatedAt: now.Add(-time.Minute)},
		{Email: "b@y.com", Code: "ABCDEF", CreatedAt: now},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}

	t.Run("newest matching record wins", func(t *testing.T) {
		otp, err := repo.FindNewest(ctx, "a@x.com", "ABCDEF")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if otp.ID != seed[2].ID {
			t.Errorf("expected newest record %d, got %d", seed[2].ID, otp.ID)
		}
	})

	t.Run("match is scoped to the email", func(t *testing.T) {
		otp, err := repo.FindNewest(ctx, "b@y.com", "ABCDEF")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if otp.Email != "b@y.com" {
			t.Errorf("expected b@y.com record, got %s", otp.Email)
		}
	})

	t.Run("wrong code yields not found", func(t *testing.T) {
		if _, err := repo.FindNewest(ctx, "a@x.com", "WRONGX"); !errors.Is(err, domain.ErrCodeNotFound) {
			t.Errorf("expected ErrCodeNotFound, got %v", err)
		}
	})

	t.Run("unknown email yields not found", func(t *testing.T) {
		if _, err := repo.FindNewest(ctx, "nobody@x.com", "ABCDEF"); !errors.Is(err, domain.ErrCodeNotFound) {
			t.Errorf("expected ErrCodeNotFound, got %v", err)
		}
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		if _, err := repo.FindNewest(ctx, "a@x.com", "abcdef"); !errors.Is(err, domain.ErrCodeNotFound) {
			t.Errorf("expected ErrCodeNotFound for lower-case code, got %v", err)
		}
	})
}
