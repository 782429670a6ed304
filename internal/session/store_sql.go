package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/DanyaArt/itbot/internal/quiz"
)

// SQLStore persists sessions in the sessions table, one row per user.
// Nested maps travel as JSON blobs, same layout as the questions table.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Put(ctx context.Context, sess *quiz.Session) error {
	buf, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	finished := 0
	if sess.Finished() {
		finished = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, session_id, finished, state_json, updated_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id) DO UPDATE SET session_id=EXCLUDED.session_id,
		   finished=EXCLUDED.finished, state_json=EXCLUDED.state_json, updated_at=EXCLUDED.updated_at`,
		sess.UserID, sess.ID, finished, string(buf), time.Now().Unix())
	return err
}

func (s *SQLStore) Get(ctx context.Context, userID int64) (*quiz.Session, error) {
	var buf string
	err := s.db.QueryRowContext(ctx,
		`SELECT state_json FROM sessions WHERE user_id=$1`, userID).Scan(&buf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, quiz.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess quiz.Session
	if err := json.Unmarshal([]byte(buf), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SQLStore) Delete(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id=$1`, userID)
	return err
}

// UserIDs lists every user with a stored session, for broadcast.
func (s *SQLStore) UserIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id FROM sessions ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// FinishedCount reports how many stored sessions are terminal, for the
// admin statistics screen.
func (s *SQLStore) FinishedCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE finished=1`).Scan(&n)
	return n, err
}
