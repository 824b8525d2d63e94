package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BTreeMap/NeuroSoma/internal/models"
	"github.com/BTreeMap/NeuroSoma/internal/store"
)

// planCreated is the result of POST /api/create-plan.
type planCreated struct {
	PlanID string            `json:"plan_id"`
	Plan   models.ActionPlan `json:"plan"`
}

// planView is the result of GET /api/plan/{id}. The intake never carries the email.
type planView struct {
	Plan   models.ActionPlan `json:"plan"`
	Intake models.Intake     `json:"intake"`
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(nil))
}

// createPlanHandler validates an intake, generates and stores the plan, and
// delivers a summary when a WhatsApp number was given.
func (s *Server) createPlanHandler(w http.ResponseWriter, r *http.Request) {
	var intake models.Intake
	if err := decodeJSONBody(w, r, &intake); err != nil {
		slog.Warn("Server.createPlanHandler: invalid JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := intake.Validate(); err != nil {
		slog.Warn("Server.createPlanHandler: invalid intake", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid intake data: "+err.Error()))
		return
	}

	p := s.generator.Generate(intake, nil)
	if err := s.store.SavePlan(r.Context(), models.PlanRecord{Plan: p, Intake: intake}); err != nil {
		slog.Error("Server.createPlanHandler: failed to save plan", "plan_id", p.ID, "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to create plan"))
		return
	}

	if intake.WhatsAppNumber != "" && s.notifier != nil {
		if err := s.notifier.NotifyPlan(r.Context(), intake.WhatsAppNumber, p); err != nil {
			slog.Warn("Server.createPlanHandler: plan delivery failed", "plan_id", p.ID, "error", err)
		}
	}

	slog.Info("Server.createPlanHandler: plan created", "plan_id", p.ID, "goal", intake.Goal, "obstacle", intake.Obstacle)
	writeJSONResponse(w, http.StatusOK, models.Success(planCreated{PlanID: p.ID, Plan: p}))
}

func (s *Server) getPlanHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.GetPlan(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrEmptyPlanID):
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Plan ID required"))
		return
	case errors.Is(err, store.ErrPlanNotFound):
		writeJSONResponse(w, http.StatusNotFound, models.Error("Plan not found"))
		return
	case err != nil:
		slog.Error("Server.getPlanHandler: failed to load plan", "plan_id", id, "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load plan"))
		return
	}

	writeJSONResponse(w, http.StatusOK, models.Success(planView{Plan: rec.Plan, Intake: rec.Intake.WithoutEmail()}))
}
