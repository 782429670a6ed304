package quiz

import (
	"fmt"
	"sort"
	"time"
)

// Category is an internal scoring bucket. The user-facing specialization
// name is resolved separately (institution.Specialization).
type Category string

const (
	CategoryCode     Category = "code"
	CategoryData     Category = "data"
	CategoryDesign   Category = "design"
	CategorySecurity Category = "security"
	CategoryDevOps   Category = "devops"
	CategoryMobile   Category = "mobile"
	CategoryGame     Category = "game"
	CategoryAIML     Category = "ai_ml"
)

// Categories is the closed category set in canonical display order.
var Categories = []Category{
	CategoryCode, CategoryData, CategoryDesign, CategorySecurity,
	CategoryDevOps, CategoryMobile, CategoryGame, CategoryAIML,
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

type Option struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Value    int      `json:"value"`
}

type Question struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category,omitempty"` // informational grouping, not scoring
	Options  []Option `json:"options"`
}

// OptionByValue returns the first option carrying the given weight.
// Duplicate values within one question are rejected at catalog load, but a
// stored answer against a stale catalog must still resolve deterministically.
func (q Question) OptionByValue(v int) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == v {
			return o, true
		}
	}
	return Option{}, false
}

// OptionByText resolves a chosen answer label back to its option.
func (q Question) OptionByText(text string) (Option, bool) {
	for _, o := range q.Options {
		if o.Text == text {
			return o, true
		}
	}
	return Option{}, false
}

// Catalog is an immutable snapshot of the question battery, ordered by
// ascending question id. Safe for concurrent reads; administrative edits
// produce a whole new snapshot.
type Catalog struct {
	questions []Question
	byID      map[int]Question
}

// NewCatalog validates and freezes a question set. Presentation order is by
// ascending id regardless of input order.
func NewCatalog(questions []Question) (*Catalog, error) {
	byID := make(map[int]Question, len(questions))
	used := map[Category]bool{}
	for _, q := range questions {
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate question id %d", q.ID)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("catalog: question %d has %d options, need at least 2", q.ID, len(q.Options))
		}
		texts := map[string]bool{}
		values := map[int]bool{}
		for _, o := range q.Options {
			if !o.Category.Valid() {
				return nil, fmt.Errorf("catalog: question %d option %q has unknown category %q", q.ID, o.Text, o.Category)
			}
			if texts[o.Text] {
				return nil, fmt.Errorf("catalog: question %d has duplicate option text %q", q.ID, o.Text)
			}
			if values[o.Value] {
				return nil, fmt.Errorf("catalog: question %d has duplicate option value %d", q.ID, o.Value)
			}
			texts[o.Text] = true
			values[o.Value] = true
			used[o.Category] = true
		}
		byID[q.ID] = q
	}
	for _, c := range Categories {
		if !used[c] {
			return nil, fmt.Errorf("catalog: category %q has no options; its specialization could never be recommended", c)
		}
	}
	ordered := make([]Question, len(questions))
	copy(ordered, questions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return &Catalog{questions: ordered, byID: byID}, nil
}

func (c *Catalog) Len() int { return len(c.questions) }

// Question returns the n-th question of the battery, 1-based.
func (c *Catalog) Question(n int) (Question, bool) {
	if n < 1 || n > len(c.questions) {
		return Question{}, false
	}
	return c.questions[n-1], true
}

func (c *Catalog) ByID(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Questions returns the ordered battery. Callers must not mutate it.
func (c *Catalog) Questions() []Question { return c.questions }

// Session is the per-user test state. QuestionPointer is 1-based; the
// session is terminal once it exceeds the catalog length and Result is set.
type Session struct {
	ID              string           `json:"id"`
	UserID          int64            `json:"user_id"`
	QuestionPointer int              `json:"question_pointer"`
	Answers         map[int]int      `json:"answers"` // question id -> chosen option value
	Scores          map[Category]int `json:"scores"`
	Result          *Result          `json:"result,omitempty"`
	StartedAt       time.Time        `json:"started_at"`
	FinishedAt      *time.Time       `json:"finished_at,omitempty"`
}

// Finished reports whether the battery has been exhausted.
func (s *Session) Finished() bool { return s.Result != nil }

// Result is the cached outcome of a finished session. It is computed once
// and re-served verbatim so repeat views stay byte-identical even if the
// catalog or dataset changes afterwards.
type Result struct {
	Scores      map[Category]int `json:"scores"`
	Percentages map[Category]int `json:"percentages"`
	Winner      Category         `json:"winner"`
	ComputedAt  time.Time        `json:"computed_at"`
}
