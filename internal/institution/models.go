// Package institution holds the specialization metadata and the university
// dataset: matching, admin CRUD and the flat-file export consumed by the
// public site.
package institution

import (
	"errors"
	"fmt"

	"github.com/DanyaArt/itbot/internal/quiz"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyExist = errors.New("already exists")
)

// MaxScore is the upper bound of the admission score domain (EGE points).
const MaxScore = 400

// Specialization is the human-facing outcome, 1:1 with a scoring category.
type Specialization struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Category      quiz.Category `json:"category"`
	Description   string        `json:"description"`
	Careers       string        `json:"careers"`
	Skills        string        `json:"skills"`
	TechScore     int           `json:"tech_score"`
	AnalyticScore int           `json:"analytic_score"`
	CreativeScore int           `json:"creative_score"`
}

// Institution is one program at one place: the same (name, city) pair may
// repeat under different specializations.
type Institution struct {
	Name             string `json:"name"`
	City             string `json:"city"`
	ScoreMin         int    `json:"score_min"`
	ScoreMax         int    `json:"score_max"`
	URL              string `json:"url,omitempty"`
	SpecializationID int    `json:"specialization_id"`
}

// Validate enforces the admission-range invariants before any mutation.
func (i Institution) Validate() error {
	if i.Name == "" {
		return errors.New("institution name required")
	}
	if i.City == "" {
		return errors.New("institution city required")
	}
	if i.ScoreMin < 0 || i.ScoreMax > MaxScore {
		return fmt.Errorf("score range %d-%d outside [0,%d]", i.ScoreMin, i.ScoreMax, MaxScore)
	}
	if i.ScoreMax < i.ScoreMin {
		return fmt.Errorf("score_max %d below score_min %d", i.ScoreMax, i.ScoreMin)
	}
	return nil
}

// SeedSpecializations is the reference 8-specialization configuration.
func SeedSpecializations() []Specialization {
	return []Specialization{
		{ID: 1, Name: "Программная инженерия", Category: quiz.CategoryCode,
			Description: "Проектирование и разработка программных систем.",
			Careers:     "• Software Engineer\n• Backend Developer\n• Full Stack Developer",
			Skills:      "• Алгоритмы и структуры данных\n• ООП\n• Git",
			TechScore:   9, AnalyticScore: 7, CreativeScore: 4},
		{ID: 2, Name: "Data Science", Category: quiz.CategoryData,
			Description: "Анализ данных, статистика и построение моделей.",
			Careers:     "• Data Scientist\n• Data Analyst\n• BI Analyst",
			Skills:      "• Python\n• SQL\n• Статистика",
			TechScore:   7, AnalyticScore: 9, CreativeScore: 3},
		{ID: 3, Name: "UX/UI дизайн", Category: quiz.CategoryDesign,
			Description: "Проектирование интерфейсов и пользовательского опыта.",
			Careers:     "• UX/UI Designer\n• Product Designer\n• UX Researcher",
			Skills:      "• Figma\n• Типографика\n• Прототипирование",
			TechScore:   4, AnalyticScore: 5, CreativeScore: 9},
		{ID: 4, Name: "Кибербезопасность", Category: quiz.CategorySecurity,
			Description: "Защита систем, анализ угроз и расследование инцидентов.",
			Careers:     "• Security Analyst\n• Penetration Tester\n• Security Engineer",
			Skills:      "• Сети\n• Linux\n• Криптография",
			TechScore:   8, AnalyticScore: 8, CreativeScore: 2},
		{ID: 5, Name: "DevOps инженерия", Category: quiz.CategoryDevOps,
			Description: "Автоматизация, инфраструктура и надежность систем.",
			Careers:     "• DevOps Engineer\n• SRE\n• Platform Engineer",
			Skills:      "• Docker\n• CI/CD\n• Kubernetes",
			TechScore:   8, AnalyticScore: 6, CreativeScore: 3},
		{ID: 6, Name: "Мобильная разработка", Category: quiz.CategoryMobile,
			Description: "Приложения для iOS и Android.",
			Careers:     "• iOS Developer\n• Android Developer\n• Cross-platform Developer",
			Skills:      "• Swift или Kotlin\n• Мобильный UX\n• Сторы и релизы",
			TechScore:   8, AnalyticScore: 5, CreativeScore: 6},
		{ID: 7, Name: "Game Development", Category: quiz.CategoryGame,
			Description: "Игры и интерактивный контент.",
			Careers:     "• Game Developer\n• Game Designer\n• Technical Artist",
			Skills:      "• Unity или Unreal\n• C#/C++\n• Геймдизайн",
			TechScore:   7, AnalyticScore: 4, CreativeScore: 9},
		{ID: 8, Name: "AI/ML инженерия", Category: quiz.CategoryAIML,
			Description: "Машинное обучение и интеллектуальные системы.",
			Careers:     "• ML Engineer\n• AI Research Scientist\n• NLP Engineer",
			Skills:      "• Python и ML-библиотеки\n• Линейная алгебра\n• Deep Learning",
			TechScore:   9, AnalyticScore: 9, CreativeScore: 4},
	}
}
