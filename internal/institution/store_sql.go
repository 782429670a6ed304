package institution

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DanyaArt/itbot/internal/quiz"
)

// SQLStore is the CRUD layer over the specializations and institutions
// tables. Rows are flat; "same name+city+specialization defines one row" is
// the only integrity rule, matching the exported file format.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// EnsureSeed populates the reference 8 specializations when the table is
// empty, so the classifier always has an outcome to name.
func (s *SQLStore) EnsureSeed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM specializations`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, sp := range SeedSpecializations() {
		if err := s.putSpecialization(ctx, sp); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) putSpecialization(ctx context.Context, sp Specialization) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO specializations (id, name, category, description, careers, skills, tech_score, analytic_score, creative_score)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, category=EXCLUDED.category,
		   description=EXCLUDED.description, careers=EXCLUDED.careers, skills=EXCLUDED.skills,
		   tech_score=EXCLUDED.tech_score, analytic_score=EXCLUDED.analytic_score, creative_score=EXCLUDED.creative_score`,
		sp.ID, sp.Name, string(sp.Category), sp.Description, sp.Careers, sp.Skills,
		sp.TechScore, sp.AnalyticScore, sp.CreativeScore)
	return err
}

func scanSpecialization(row interface{ Scan(...any) error }) (Specialization, error) {
	var sp Specialization
	var cat string
	err := row.Scan(&sp.ID, &sp.Name, &cat, &sp.Description, &sp.Careers, &sp.Skills,
		&sp.TechScore, &sp.AnalyticScore, &sp.CreativeScore)
	sp.Category = quiz.Category(cat)
	return sp, err
}

const specCols = `id, name, category, description, careers, skills, tech_score, analytic_score, creative_score`

func (s *SQLStore) ListSpecializations(ctx context.Context) ([]Specialization, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+specCols+` FROM specializations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Specialization
	for rows.Next() {
		sp, err := scanSpecialization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetSpecialization(ctx context.Context, id int) (Specialization, error) {
	sp, err := scanSpecialization(s.db.QueryRowContext(ctx,
		`SELECT `+specCols+` FROM specializations WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Specialization{}, ErrNotFound
	}
	return sp, err
}

func (s *SQLStore) SpecializationByCategory(ctx context.Context, c quiz.Category) (Specialization, error) {
	sp, err := scanSpecialization(s.db.QueryRowContext(ctx,
		`SELECT `+specCols+` FROM specializations WHERE category=$1`, string(c)))
	if errors.Is(err, sql.ErrNoRows) {
		return Specialization{}, ErrNotFound
	}
	return sp, err
}

func (s *SQLStore) SpecializationByName(ctx context.Context, name string) (Specialization, error) {
	sp, err := scanSpecialization(s.db.QueryRowContext(ctx,
		`SELECT `+specCols+` FROM specializations WHERE name=$1`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Specialization{}, ErrNotFound
	}
	return sp, err
}

// AddSpecialization inserts descriptive metadata. The category must belong
// to the closed set and the name must be free.
func (s *SQLStore) AddSpecialization(ctx context.Context, sp Specialization) error {
	if sp.Name == "" {
		return errors.New("specialization name required")
	}
	if !sp.Category.Valid() {
		return fmt.Errorf("unknown category %q", sp.Category)
	}
	if _, err := s.SpecializationByName(ctx, sp.Name); err == nil {
		return fmt.Errorf("specialization %q: %w", sp.Name, ErrAlreadyExist)
	}
	if sp.ID == 0 {
		var max sql.NullInt64
		if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM specializations`).Scan(&max); err != nil {
			return err
		}
		sp.ID = int(max.Int64) + 1
	}
	return s.putSpecialization(ctx, sp)
}

// DeleteSpecialization removes the metadata row and all programs under it.
func (s *SQLStore) DeleteSpecialization(ctx context.Context, id int) error {
	if _, err := s.GetSpecialization(ctx, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM institutions WHERE specialization_id=$1`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM specializations WHERE id=$1`, id)
	return err
}

const instCols = `name, city, score_min, score_max, url, specialization_id`

func (s *SQLStore) ListInstitutions(ctx context.Context) ([]Institution, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+instCols+` FROM institutions ORDER BY name, city, specialization_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Institution
	for rows.Next() {
		var i Institution
		var url sql.NullString
		if err := rows.Scan(&i.Name, &i.City, &i.ScoreMin, &i.ScoreMax, &url, &i.SpecializationID); err != nil {
			return nil, err
		}
		i.URL = url.String
		out = append(out, i)
	}
	return out, rows.Err()
}

// BySpecialization returns the ranked candidate list for one outcome.
func (s *SQLStore) BySpecialization(ctx context.Context, specializationID int) ([]Institution, error) {
	all, err := s.ListInstitutions(ctx)
	if err != nil {
		return nil, err
	}
	return Match(specializationID, all), nil
}

// AddInstitution inserts one program row after validation. A row with the
// same (name, city, specialization) already present is an error.
func (s *SQLStore) AddInstitution(ctx context.Context, i Institution) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if _, err := s.GetSpecialization(ctx, i.SpecializationID); err != nil {
		return fmt.Errorf("specialization %d: %w", i.SpecializationID, err)
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM institutions WHERE name=$1 AND city=$2 AND specialization_id=$3`,
		i.Name, i.City, i.SpecializationID).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("program %s/%s: %w", i.Name, i.City, ErrAlreadyExist)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO institutions (name, city, score_min, score_max, url, specialization_id)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		i.Name, i.City, i.ScoreMin, i.ScoreMax, i.URL, i.SpecializationID)
	return err
}

// DeleteProgram unlinks one specialization from an institution.
func (s *SQLStore) DeleteProgram(ctx context.Context, name, city string, specializationID int) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM institutions WHERE name=$1 AND city=$2 AND specialization_id=$3`,
		name, city, specializationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGroup removes every program of one (name, city) institution.
func (s *SQLStore) DeleteGroup(ctx context.Context, name, city string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM institutions WHERE name=$1 AND city=$2`, name, city)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats feeds the admin statistics screen.
type Stats struct {
	Programs        int `json:"programs"`
	Unique          int `json:"unique_institutions"`
	Specializations int `json:"specializations"`
}

func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	all, err := s.ListInstitutions(ctx)
	if err != nil {
		return st, err
	}
	st.Programs = len(all)
	st.Unique = len(Unique(all))
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM specializations`).Scan(&st.Specializations); err != nil {
		return st, err
	}
	return st, nil
}
