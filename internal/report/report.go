// Package report renders a finished session into the user-facing text
// payloads delivered through the notification boundary.
package report

import (
	"fmt"
	"strings"

	"github.com/DanyaArt/itbot/internal/institution"
	"github.com/DanyaArt/itbot/internal/quiz"
)

// QuickReplies are the option labels attached to the final report.
var QuickReplies = []string{"Подробный отчёт", "Все вузы", "Начать тест", "Помощь"}

// blend describes how a specialization percentage is derived for display
// when its own category collected nothing: a weighted mix of two broader
// categories. Display-only; classification never consults this table.
type blend struct {
	a, b    quiz.Category
	aWeight int // percent
}

var derived = map[quiz.Category]blend{
	quiz.CategoryDevOps: {a: quiz.CategoryCode, b: quiz.CategorySecurity, aWeight: 70},
	quiz.CategoryMobile: {a: quiz.CategoryCode, b: quiz.CategoryDesign, aWeight: 60},
	quiz.CategoryGame:   {a: quiz.CategoryDesign, b: quiz.CategoryCode, aWeight: 70},
	quiz.CategoryAIML:   {a: quiz.CategoryData, b: quiz.CategoryCode, aWeight: 80},
}

// DisplayPercentages returns the per-specialization percentages shown in
// the report: raw normalized values, with zero niche categories replaced by
// their derived blends.
func DisplayPercentages(pct map[quiz.Category]int) map[quiz.Category]int {
	out := make(map[quiz.Category]int, len(quiz.Categories))
	for _, c := range quiz.Categories {
		out[c] = pct[c]
	}
	for c, b := range derived {
		if out[c] == 0 {
			out[c] = (pct[b.a]*b.aWeight + pct[b.b]*(100-b.aWeight)) / 100
		}
	}
	return out
}

// Summary renders the final report text.
func Summary(res *quiz.Result, spec institution.Specialization, specs []institution.Specialization, top []institution.Institution) string {
	var sb strings.Builder
	sb.WriteString("🎉 Тест завершен!\n\n")
	sb.WriteString("📊 Ваши результаты по всем направлениям:\n")
	display := DisplayPercentages(res.Percentages)
	for _, sp := range specs {
		fmt.Fprintf(&sb, "• %s: %d%%\n", sp.Name, display[sp.Category])
	}
	fmt.Fprintf(&sb, "\n🎯 Рекомендуемая специализация: %s\n", spec.Name)
	if spec.Description != "" {
		fmt.Fprintf(&sb, "\n📝 Описание:\n%s\n", spec.Description)
	}
	if len(top) > 0 {
		sb.WriteString("\n🏛️ Топ-5 университетов:\n")
		for i, uni := range top {
			fmt.Fprintf(&sb, "\n%d. %s\n   📍 %s\n   🎯 Баллы ЕГЭ: %d-%d\n",
				i+1, uni.Name, uni.City, uni.ScoreMin, uni.ScoreMax)
		}
	} else {
		sb.WriteString("\n🏛️ Университеты для этой специализации пока не добавлены.\n")
	}
	if spec.Careers != "" {
		fmt.Fprintf(&sb, "\n💼 Карьерные возможности:\n%s\n", spec.Careers)
	}
	if spec.Skills != "" {
		fmt.Fprintf(&sb, "\n🔧 Необходимые навыки:\n%s\n", spec.Skills)
	}
	return sb.String()
}

// AllInstitutions renders the grouped "show all" view.
func AllInstitutions(spec institution.Specialization, groups []institution.CityGroup) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏛️ Все университеты — %s\n", spec.Name)
	total := 0
	for _, g := range groups {
		fmt.Fprintf(&sb, "\n📍 %s:\n", g.City)
		for _, uni := range g.Institutions {
			fmt.Fprintf(&sb, "   • %s\n     🎯 Баллы ЕГЭ: %d-%d\n", uni.Name, uni.ScoreMin, uni.ScoreMax)
			total++
		}
	}
	fmt.Fprintf(&sb, "\n📊 Всего университетов: %d\n", total)
	return sb.String()
}

// Detailed renders the long-form report with per-category commentary.
func Detailed(res *quiz.Result, spec institution.Specialization, specs []institution.Specialization) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Подробный отчёт\n\n🎯 Рекомендуемая специализация: %s\n", spec.Name)
	display := DisplayPercentages(res.Percentages)
	sb.WriteString("\n📊 Баллы и проценты:\n")
	for _, sp := range specs {
		fmt.Fprintf(&sb, "• %s: %d баллов (%d%%)\n", sp.Name, res.Scores[sp.Category], display[sp.Category])
	}
	var weak []string
	for _, sp := range specs {
		if res.Scores[sp.Category] == 0 {
			weak = append(weak, sp.Name)
		}
	}
	if len(weak) > 0 {
		sb.WriteString("\n💡 Направления, которые вы пока не раскрыли:\n")
		for _, name := range weak {
			fmt.Fprintf(&sb, "• %s\n", name)
		}
	}
	return sb.String()
}
