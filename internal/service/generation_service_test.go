package service

import (
	"context"
	"errors"
	"testing"

	"github.com/leap-ai/toonify-backend/internal/models"
	"go.uber.org/zap"
)

type memoryGenerationStore struct {
	generations map[string]*models.Generation
}

func newMemoryGenerationStore() *memoryGenerationStore {
	return &memoryGenerationStore{generations: make(map[string]*models.Generation)}
}

func (s *memoryGenerationStore) Create(generation *models.Generation) error {
	copied := *generation
	s.generations[generation.ID] = &copied
	return nil
}

func (s *memoryGenerationStore) Update(generation *models.Generation) error {
	copied := *generation
	s.generations[generation.ID] = &copied
	return nil
}

func (s *memoryGenerationStore) GetUserGenerations(userID string) ([]models.Generation, error) {
	var out []models.Generation
	for _, g := range s.generations {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type stubStylizer struct {
	url string
	err error
}

func (s *stubStylizer) Cartoonify(ctx context.Context, imageURL string) (string, error) {
	return s.url, s.err
}

func TestGenerationCreateSpendsOneCredit(t *testing.T) {
	creditStore := newMemoryCreditStore()
	creditStore.balances["user-a"] = 3
	generations := newMemoryGenerationStore()
	svc := NewGenerationService(generations, NewCreditService(creditStore),
		&stubStylizer{url: "https://cdn.example.com/toon.png"}, zap.NewNop())

	generation, err := svc.Create(context.Background(), "user-a", models.CreateGenerationRequest{
		ImageURL: "https://cdn.example.com/original.jpg",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if generation.Status != models.GenerationStatusCompleted {
		t.Fatalf("status = %q, want completed", generation.Status)
	}
	if generation.ToonImageURL != "https://cdn.example.com/toon.png" {
		t.Fatalf("toon url = %q", generation.ToonImageURL)
	}
	if balance, _ := creditStore.GetBalance("user-a"); balance != 2 {
		t.Fatalf("balance = %d, want 2", balance)
	}
}

func TestGenerationCreateInsufficientCredits(t *testing.T) {
	creditStore := newMemoryCreditStore()
	creditStore.balances["user-a"] = 0
	generations := newMemoryGenerationStore()
	svc := NewGenerationService(generations, NewCreditService(creditStore),
		&stubStylizer{url: "https://cdn.example.com/toon.png"}, zap.NewNop())

	_, err := svc.Create(context.Background(), "user-a", models.CreateGenerationRequest{
		ImageURL: "https://cdn.example.com/original.jpg",
	})
	if !errors.Is(err, models.ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}
	if len(generations.generations) != 0 {
		t.Fatalf("no generation row may exist without a paid credit")
	}
}

func TestGenerationCreateStylizerFailure(t *testing.T) {
	creditStore := newMemoryCreditStore()
	creditStore.balances["user-a"] = 1
	generations := newMemoryGenerationStore()
	svc := NewGenerationService(generations, NewCreditService(creditStore),
		&stubStylizer{err: errors.New("provider unavailable")}, zap.NewNop())

	_, err := svc.Create(context.Background(), "user-a", models.CreateGenerationRequest{
		ImageURL: "https://cdn.example.com/original.jpg",
	})
	if err == nil {
		t.Fatalf("expected an error from the stylizer")
	}

	if len(generations.generations) != 1 {
		t.Fatalf("expected the pending row to survive as failed")
	}
	for _, g := range generations.generations {
		if g.Status != models.GenerationStatusFailed {
			t.Fatalf("status = %q, want failed", g.Status)
		}
	}
}
