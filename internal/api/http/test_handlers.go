// Package http carries the chi handlers: the public test flow, the admin
// CRUD surface and the dataset sync operation.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/DanyaArt/itbot/internal/institution"
	"github.com/DanyaArt/itbot/internal/notify"
	"github.com/DanyaArt/itbot/internal/quiz"
	"github.com/DanyaArt/itbot/internal/report"
)

type questionView struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"` // labels only; weights stay server-side
	Number  int      `json:"number"`
	Total   int      `json:"total"`
}

func viewQuestion(q quiz.Question, number, total int) questionView {
	labels := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		labels = append(labels, o.Text)
	}
	return questionView{ID: q.ID, Text: q.Text, Options: labels, Number: number, Total: total}
}

// StartTestHandler begins (or restarts) a user's test.
func StartTestHandler(svc *quiz.Service, catalog quiz.CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int64 `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		sess, first, err := svc.Start(r.Context(), req.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(viewQuestion(first, sess.QuestionPointer, catalog.Snapshot().Len()))
	}
}

// AnswerHandler records one answer. The chosen option arrives as its label;
// it is decoded to the option value here, at the boundary, so the core only
// ever sees typed values.
func AnswerHandler(svc *quiz.Service, deps ResultDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int64  `json:"user_id"`
			Option string `json:"option"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 {
			http.Error(w, "user_id and option required", http.StatusBadRequest)
			return
		}
		_, q, err := svc.Current(r.Context(), req.UserID)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		opt, ok := q.OptionByText(req.Option)
		if !ok {
			http.Error(w, "выберите один из предложенных вариантов", http.StatusBadRequest)
			return
		}
		next, res, err := svc.Answer(r.Context(), req.UserID, opt.Value)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		if res != nil {
			deliverResult(r.Context(), deps, req.UserID, res)
			_ = json.NewEncoder(w).Encode(map[string]any{"finished": true, "result": res})
			return
		}
		cat := deps.Catalog.Snapshot()
		_ = json.NewEncoder(w).Encode(viewQuestion(*next, questionNumber(cat, next.ID), cat.Len()))
	}
}

func questionNumber(cat *quiz.Catalog, id int) int {
	for i, q := range cat.Questions() {
		if q.ID == id {
			return i + 1
		}
	}
	return 0
}

// ResultDeps bundles what the finishing path needs to render and deliver
// the report.
type ResultDeps struct {
	Catalog      quiz.CatalogSource
	Institutions *institution.SQLStore
	Notifier     notify.Notifier
	Log          *zap.Logger
}

// deliverResult renders the report and hands it to the notification
// boundary. Delivery is async and its failure never reaches the test flow.
func deliverResult(ctx context.Context, deps ResultDeps, userID int64, res *quiz.Result) {
	specs, err := deps.Institutions.ListSpecializations(ctx)
	if err != nil {
		deps.Log.Warn("report specializations unavailable", zap.Error(err))
		return
	}
	spec, err := deps.Institutions.SpecializationByCategory(ctx, res.Winner)
	if err != nil {
		deps.Log.Warn("winner has no specialization metadata",
			zap.String("category", string(res.Winner)), zap.Error(err))
		return
	}
	ranked, err := deps.Institutions.BySpecialization(ctx, spec.ID)
	if err != nil {
		deps.Log.Warn("institution lookup failed", zap.Error(err))
		ranked = nil
	}
	text := report.Summary(res, spec, specs, institution.Top(ranked, institution.TopN))
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := deps.Notifier.Send(sendCtx, userID, notify.Message{
			Text:         text,
			QuickReplies: report.QuickReplies,
		}); err != nil {
			deps.Log.Warn("report delivery failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}()
}

// ResultHandler serves the cached summary of a finished session.
func ResultHandler(svc *quiz.Service, deps ResultDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		res, err := svc.Results(r.Context(), userID)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// DetailedReportHandler serves the long-form report of a finished session.
func DetailedReportHandler(svc *quiz.Service, deps ResultDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		res, err := svc.Results(r.Context(), userID)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		specs, err := deps.Institutions.ListSpecializations(r.Context())
		if err != nil {
			http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
			return
		}
		spec, err := deps.Institutions.SpecializationByCategory(r.Context(), res.Winner)
		if err != nil {
			http.Error(w, "специализация не найдена", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": report.Detailed(res, spec, specs)})
	}
}

// AllInstitutionsHandler serves the grouped "show all" view for the user's
// recommended specialization.
func AllInstitutionsHandler(svc *quiz.Service, deps ResultDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}
		res, err := svc.Results(r.Context(), userID)
		if err != nil {
			writeFlowError(w, err)
			return
		}
		spec, err := deps.Institutions.SpecializationByCategory(r.Context(), res.Winner)
		if err != nil {
			http.Error(w, "специализация не найдена", http.StatusNotFound)
			return
		}
		ranked, err := deps.Institutions.BySpecialization(r.Context(), spec.ID)
		if err != nil {
			http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
			return
		}
		if len(ranked) == 0 {
			_ = json.NewEncoder(w).Encode(map[string]string{
				"text": "Университеты для данной специализации не найдены.",
			})
			return
		}
		groups := institution.GroupByCity(ranked)
		_ = json.NewEncoder(w).Encode(map[string]string{"text": report.AllInstitutions(spec, groups)})
	}
}

func writeFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		http.Error(w, "нажмите 'Начать тест' для начала тестирования", http.StatusNotFound)
	case errors.Is(err, quiz.ErrSessionActive):
		http.Error(w, "тест еще не завершен", http.StatusConflict)
	case errors.Is(err, quiz.ErrSessionFinished):
		http.Error(w, "тест уже завершен", http.StatusConflict)
	case errors.Is(err, quiz.ErrInvalidAnswer):
		http.Error(w, "выберите один из предложенных вариантов", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
