package session

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/DanyaArt/itbot/internal/quiz"
)

func sample(userID int64) *quiz.Session {
	return &quiz.Session{
		ID:              "s-1",
		UserID:          userID,
		QuestionPointer: 2,
		Answers:         map[int]int{1: 3},
		Scores:          map[quiz.Category]int{quiz.CategoryCode: 3},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if _, err := m.Get(ctx, 1); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("get empty: %v", err)
	}
	if err := m.Put(ctx, sample(1)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := m.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QuestionPointer != 2 || got.Answers[1] != 3 {
		t.Errorf("got %+v", got)
	}

	// returned sessions are detached copies
	got.Answers[1] = 99
	again, _ := m.Get(ctx, 1)
	if again.Answers[1] != 3 {
		t.Errorf("stored session mutated through returned copy")
	}

	if err := m.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, 1); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}

type brokenStore struct{ err error }

func (b brokenStore) Put(context.Context, *quiz.Session) error { return b.err }
func (b brokenStore) Get(context.Context, int64) (*quiz.Session, error) {
	return nil, b.err
}
func (b brokenStore) Delete(context.Context, int64) error { return b.err }

func TestFallbackDegradesToMemory(t *testing.T) {
	ctx := context.Background()
	f := NewFallback(brokenStore{err: errors.New("disk on fire")}, zap.NewNop())

	if err := f.Put(ctx, sample(9)); err != nil {
		t.Fatalf("put must not surface primary failure: %v", err)
	}
	got, err := f.Get(ctx, 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 9 || got.Answers[1] != 3 {
		t.Errorf("got %+v", got)
	}
	if err := f.Delete(ctx, 9); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.Get(ctx, 9); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	ctx := context.Background()
	primary := NewMemoryStore()
	f := NewFallback(primary, zap.NewNop())

	if err := f.Put(ctx, sample(3)); err != nil {
		t.Fatalf("put: %v", err)
	}
	// the write must have reached the primary, not only the shadow
	got, err := primary.Get(ctx, 3)
	if err != nil {
		t.Fatalf("primary get: %v", err)
	}
	if got.ID != "s-1" {
		t.Errorf("primary session = %+v", got)
	}
}
