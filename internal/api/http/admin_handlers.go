package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DanyaArt/itbot/internal/audit"
	"github.com/DanyaArt/itbot/internal/institution"
	"github.com/DanyaArt/itbot/internal/notify"
	"github.com/DanyaArt/itbot/internal/quiz"
	"github.com/DanyaArt/itbot/internal/rbac"
)

// AdminDeps bundles everything the admin surface mutates or reads.
type AdminDeps struct {
	Catalog      *quiz.CatalogStore
	Institutions *institution.SQLStore
	Exporter     *institution.Exporter
	Audit        *audit.EventRepo
	Sessions     SessionCounter
	Users        UserSource
	Notifier     notify.Notifier
	Log          *zap.Logger
}

// SessionCounter reports how many tests were completed.
type SessionCounter interface {
	FinishedCount(ctx context.Context) (int, error)
}

// UserSource lists broadcast recipients.
type UserSource interface {
	UserIDs(ctx context.Context) ([]int64, error)
}

// record writes an audit event; failures are logged and never abort the
// mutation already applied.
func (d AdminDeps) record(r *http.Request, typ, key string, payload any) {
	actor := rbac.RoleFromContext(r.Context())
	if err := d.Audit.Record(r.Context(), actor, typ, key, payload); err != nil {
		d.Log.Warn("audit append failed", zap.String("type", typ), zap.Error(err))
	}
}

// resync refreshes the exported dataset file after a mutation.
func (d AdminDeps) resync(r *http.Request) {
	if _, err := d.Exporter.Sync(r.Context()); err != nil {
		d.Log.Warn("dataset export failed", zap.Error(err))
	}
}

// ListQuestionsHandler returns the full question battery with weights,
// admin-only.
func ListQuestionsHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(deps.Catalog.Snapshot().Questions())
	}
}

// AddQuestionHandler inserts a question into the battery. The candidate
// catalog is validated as a whole before anything is written.
func AddQuestionHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if q.ID == 0 {
			id, err := deps.Catalog.NextID(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			q.ID = id
		}
		if err := deps.Catalog.AddQuestion(r.Context(), q); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		deps.record(r, "QuestionAdded", strconv.Itoa(q.ID), q)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(q)
	}
}

// DeleteQuestionHandler removes one question by id.
func DeleteQuestionHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		if err := deps.Catalog.DeleteQuestion(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		deps.record(r, "QuestionDeleted", strconv.Itoa(id), nil)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListSpecializationsHandler returns the outcome metadata set.
func ListSpecializationsHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		specs, err := deps.Institutions.ListSpecializations(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(specs)
	}
}

func AddSpecializationHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sp institution.Specialization
		if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := deps.Institutions.AddSpecialization(r.Context(), sp); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, institution.ErrAlreadyExist) {
				status = http.StatusConflict
			}
			http.Error(w, err.Error(), status)
			return
		}
		deps.record(r, "SpecializationAdded", sp.Name, sp)
		deps.resync(r)
		w.WriteHeader(http.StatusCreated)
	}
}

func DeleteSpecializationHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		if err := deps.Institutions.DeleteSpecialization(r.Context(), id); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, institution.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		deps.record(r, "SpecializationDeleted", strconv.Itoa(id), nil)
		deps.resync(r)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListInstitutionsAdminHandler returns every program row, flat.
func ListInstitutionsAdminHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := deps.Institutions.ListInstitutions(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(all)
	}
}

func AddInstitutionHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var i institution.Institution
		if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := deps.Institutions.AddInstitution(r.Context(), i); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, institution.ErrAlreadyExist) {
				status = http.StatusConflict
			}
			http.Error(w, err.Error(), status)
			return
		}
		deps.record(r, "InstitutionAdded", i.Name+"|"+i.City, i)
		deps.resync(r)
		w.WriteHeader(http.StatusCreated)
	}
}

// DeleteInstitutionHandler removes either one program (when
// specialization_id is present) or the whole (name, city) group.
func DeleteInstitutionHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name             string `json:"name"`
			City             string `json:"city"`
			SpecializationID int    `json:"specialization_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.City == "" {
			http.Error(w, "name and city required", http.StatusBadRequest)
			return
		}
		var err error
		if req.SpecializationID > 0 {
			err = deps.Institutions.DeleteProgram(r.Context(), req.Name, req.City, req.SpecializationID)
		} else {
			err = deps.Institutions.DeleteGroup(r.Context(), req.Name, req.City)
		}
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, institution.ErrNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		deps.record(r, "InstitutionDeleted", req.Name+"|"+req.City, req)
		deps.resync(r)
		w.WriteHeader(http.StatusNoContent)
	}
}

// StatsHandler feeds the admin statistics screen.
func StatsHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := deps.Institutions.Stats(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		finished, err := deps.Sessions.FinishedCount(r.Context())
		if err != nil {
			deps.Log.Warn("finished count unavailable", zap.Error(err))
		}
		questions := deps.Catalog.Snapshot().Len()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"programs":            st.Programs,
			"unique_institutions": st.Unique,
			"specializations":     st.Specializations,
			"questions":           questions,
			"finished_tests":      finished,
		})
	}
}

// BroadcastHandler sends one message to every known user. Per-recipient
// failures are tallied, not fatal.
func BroadcastHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		ids, err := deps.Users.UserIDs(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		res := notify.Broadcast(r.Context(), deps.Notifier, deps.Log, ids, notify.Message{Text: req.Text})
		deps.record(r, "BroadcastSent", "", map[string]any{"sent": res.Sent, "skipped": res.Skipped})
		_ = json.NewEncoder(w).Encode(res)
	}
}

// EventsHandler lists the most recent audit events.
func EventsHandler(deps AdminDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		events, err := deps.Audit.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(events)
	}
}
