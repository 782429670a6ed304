package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFinished  = errors.New("session already finished")
	ErrSessionActive    = errors.New("session not finished yet")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidAnswer    = errors.New("answer does not match any option")
)

// SessionStore is the persistence boundary for per-user test state.
// Implementations live in internal/session.
type SessionStore interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, userID int64) (*Session, error)
	Delete(ctx context.Context, userID int64) error
}

// CatalogSource yields the current immutable question snapshot.
type CatalogSource interface {
	Snapshot() *Catalog
}

// Service drives the test flow: one session per user, answers recorded
// against the catalog snapshot taken at each step, results computed once at
// the end and cached on the session.
type Service struct {
	sessions   SessionStore
	catalog    CatalogSource
	normalizer Normalizer
	classifier Classifier
	log        *zap.Logger
}

func NewService(sessions SessionStore, catalog CatalogSource, n Normalizer, cl Classifier, log *zap.Logger) *Service {
	return &Service{sessions: sessions, catalog: catalog, normalizer: n, classifier: cl, log: log}
}

// Start creates (or restarts) the user's session and returns the first
// question of the battery.
func (s *Service) Start(ctx context.Context, userID int64) (*Session, Question, error) {
	cat := s.catalog.Snapshot()
	first, ok := cat.Question(1)
	if !ok {
		return nil, Question{}, ErrQuestionNotFound
	}
	sess := &Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		QuestionPointer: 1,
		Answers:         map[int]int{},
		Scores:          map[Category]int{},
		StartedAt:       time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, Question{}, err
	}
	return sess, first, nil
}

// Current returns the question the user should answer next.
func (s *Service) Current(ctx context.Context, userID int64) (*Session, Question, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, Question{}, err
	}
	if sess.Finished() {
		return sess, Question{}, ErrSessionFinished
	}
	q, ok := s.catalog.Snapshot().Question(sess.QuestionPointer)
	if !ok {
		return sess, Question{}, ErrQuestionNotFound
	}
	return sess, q, nil
}

// Answer records the chosen option value for the user's current question and
// advances the pointer. When the battery is exhausted it finalizes the
// session and returns the cached result; otherwise it returns the next
// question.
func (s *Service) Answer(ctx context.Context, userID int64, value int) (next *Question, result *Result, err error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if sess.Finished() {
		return nil, nil, ErrSessionFinished
	}
	cat := s.catalog.Snapshot()
	q, ok := cat.Question(sess.QuestionPointer)
	if !ok {
		return nil, nil, ErrQuestionNotFound
	}
	opt, ok := q.OptionByValue(value)
	if !ok {
		return nil, nil, ErrInvalidAnswer
	}
	sess.Answers[q.ID] = opt.Value
	sess.QuestionPointer++

	if sess.QuestionPointer > cat.Len() {
		res := s.compute(sess, cat)
		sess.Result = res
		sess.Scores = res.Scores
		now := time.Now().UTC()
		sess.FinishedAt = &now
		if err := s.sessions.Put(ctx, sess); err != nil {
			return nil, nil, err
		}
		return nil, res, nil
	}

	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, nil, err
	}
	nq, _ := cat.Question(sess.QuestionPointer)
	return &nq, nil, nil
}

// Results returns the cached outcome of a finished session. It never
// recomputes: repeat views must be identical even after catalog or dataset
// edits.
func (s *Service) Results(ctx context.Context, userID int64) (*Result, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sess.Finished() {
		return nil, ErrSessionActive
	}
	return sess.Result, nil
}

func (s *Service) compute(sess *Session, cat *Catalog) *Result {
	scores := Score(sess.Answers, cat)
	res := &Result{
		Scores:      scores,
		Percentages: s.normalizer.Percentages(scores),
		Winner:      s.classifier.Classify(scores),
		ComputedAt:  time.Now().UTC(),
	}
	s.log.Info("session finished",
		zap.Int64("user_id", sess.UserID),
		zap.String("session_id", sess.ID),
		zap.String("winner", string(res.Winner)),
	)
	return res
}
