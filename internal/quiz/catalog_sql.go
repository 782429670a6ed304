package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// CatalogStore serves an immutable catalog snapshot backed by the questions
// table. Admin mutations rewrite rows and swap in a whole new snapshot;
// in-flight readers keep the one they started with. If the database is
// unreachable the built-in seed battery is served instead, so a storage
// outage degrades the test rather than aborting it.
type CatalogStore struct {
	db   *sql.DB
	log  *zap.Logger
	snap atomic.Pointer[Catalog]
}

func NewCatalogStore(ctx context.Context, db *sql.DB, log *zap.Logger) (*CatalogStore, error) {
	s := &CatalogStore{db: db, log: log}
	if err := s.Reload(ctx); err != nil {
		log.Warn("catalog load failed, serving seed battery", zap.Error(err))
		seed, serr := NewCatalog(SeedQuestions())
		if serr != nil {
			return nil, serr
		}
		s.snap.Store(seed)
	}
	return s, nil
}

func (s *CatalogStore) Snapshot() *Catalog { return s.snap.Load() }

// Reload re-reads the questions table and atomically replaces the snapshot.
// An empty table is seeded first so a fresh deployment has a usable battery.
func (s *CatalogStore) Reload(ctx context.Context) error {
	qs, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		if err := s.seed(ctx); err != nil {
			return err
		}
		if qs, err = s.loadAll(ctx); err != nil {
			return err
		}
	}
	cat, err := NewCatalog(qs)
	if err != nil {
		return err
	}
	s.snap.Store(cat)
	return nil
}

func (s *CatalogStore) loadAll(ctx context.Context) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, category, options_json FROM questions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		var q Question
		var oj string
		if err := rows.Scan(&q.ID, &q.Text, &q.Category, &oj); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
			return nil, fmt.Errorf("question %d: bad options payload: %w", q.ID, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *CatalogStore) seed(ctx context.Context) error {
	for _, q := range SeedQuestions() {
		if err := s.insert(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogStore) insert(ctx context.Context, q Question) error {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (id, text, category, options_json) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET text=EXCLUDED.text, category=EXCLUDED.category, options_json=EXCLUDED.options_json`,
		q.ID, q.Text, q.Category, string(oj))
	return err
}

// AddQuestion validates the question against the current snapshot before
// persisting, so a bad submission never reaches the table.
func (s *CatalogStore) AddQuestion(ctx context.Context, q Question) error {
	cur := s.Snapshot()
	next := append(append([]Question{}, cur.Questions()...), q)
	if _, err := NewCatalog(next); err != nil {
		return err
	}
	if err := s.insert(ctx, q); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// DeleteQuestion removes a question unless that would leave a category with
// no options anywhere in the battery.
func (s *CatalogStore) DeleteQuestion(ctx context.Context, id int) error {
	cur := s.Snapshot()
	if _, ok := cur.ByID(id); !ok {
		return ErrQuestionNotFound
	}
	var rest []Question
	for _, q := range cur.Questions() {
		if q.ID != id {
			rest = append(rest, q)
		}
	}
	if _, err := NewCatalog(rest); err != nil {
		return fmt.Errorf("cannot delete question %d: %w", id, err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuestionNotFound
	}
	return s.Reload(ctx)
}

// NextID returns a free question id for admin inserts.
func (s *CatalogStore) NextID(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM questions`).Scan(&max); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 1, nil
		}
		return 0, err
	}
	return int(max.Int64) + 1, nil
}
