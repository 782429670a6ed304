package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DanyaArt/itbot/internal/quiz"
)

// Fallback wraps a persistent store with an in-memory shadow. When the
// primary errors for anything other than a miss, the shadow serves the
// session so a storage outage degrades the test instead of aborting it.
// Writes always land in the shadow and best-effort in the primary.
type Fallback struct {
	primary quiz.SessionStore
	shadow  *MemoryStore
	log     *zap.Logger
}

func NewFallback(primary quiz.SessionStore, log *zap.Logger) *Fallback {
	return &Fallback{primary: primary, shadow: NewMemoryStore(), log: log}
}

func (f *Fallback) Put(ctx context.Context, s *quiz.Session) error {
	if err := f.shadow.Put(ctx, s); err != nil {
		return err
	}
	if err := f.primary.Put(ctx, s); err != nil {
		f.log.Warn("session persist failed, kept in memory",
			zap.Int64("user_id", s.UserID), zap.Error(err))
	}
	return nil
}

func (f *Fallback) Get(ctx context.Context, userID int64) (*quiz.Session, error) {
	s, err := f.primary.Get(ctx, userID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, quiz.ErrSessionNotFound) {
		f.log.Warn("session read failed, trying memory",
			zap.Int64("user_id", userID), zap.Error(err))
	}
	return f.shadow.Get(ctx, userID)
}

func (f *Fallback) Delete(ctx context.Context, userID int64) error {
	_ = f.shadow.Delete(ctx, userID)
	if err := f.primary.Delete(ctx, userID); err != nil {
		f.log.Warn("session delete failed in primary",
			zap.Int64("user_id", userID), zap.Error(err))
	}
	return nil
}
