package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BTreeMap/NeuroSoma/internal/education"
	"github.com/BTreeMap/NeuroSoma/internal/models"
	"github.com/BTreeMap/NeuroSoma/internal/protocol"
)

const (
	modelAttribution   = "Health AI Developer Foundations (HAI-DEF)"
	modelDocumentation = "https://developers.google.com/health-ai-developer-foundations/medgemma"

	educationFailedMessage = "Failed to generate education response. Please try again."
	modelWakingMessage     = "The education model is waking up. Please try again in 30 seconds."
)

// modelStatus is the result of GET /api/educate.
type modelStatus struct {
	Status        string `json:"status"`
	Model         string `json:"model"`
	Attribution   string `json:"attribution"`
	Documentation string `json:"documentation"`
}

// protocolView is the result of GET /api/protocols/{type}.
type protocolView struct {
	Protocol models.MatchedProtocol `json:"protocol"`
	Summary  string                 `json:"summary"`
	Badge    protocol.Badge         `json:"badge"`
}

// educateHandler answers a health question. Model failures are reported as
// retryable 503s while the endpoint is unreachable and as 500s otherwise.
func (s *Server) educateHandler(w http.ResponseWriter, r *http.Request) {
	var req education.Request
	if err := decodeJSONBody(w, r, &req); err != nil {
		slog.Warn("Server.educateHandler: invalid JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	res, err := s.education.Educate(r.Context(), req)
	switch {
	case err == nil:
		writeJSONResponse(w, http.StatusOK, models.Success(res))
	case errors.Is(err, education.ErrQuestionRequired), errors.Is(err, education.ErrQuestionTooShort):
		writeJSONResponse(w, http.StatusBadRequest, models.Error(capitalize(err.Error())))
	case s.education.Healthy(r.Context()):
		slog.Error("Server.educateHandler: education failed on a healthy endpoint", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error(educationFailedMessage))
	default:
		slog.Warn("Server.educateHandler: model endpoint unavailable", "error", err)
		writeJSONResponse(w, http.StatusServiceUnavailable, models.RetryableError(modelWakingMessage))
	}
}

func (s *Server) educateStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := "sleeping"
	if s.education.Healthy(r.Context()) {
		status = "healthy"
	}
	writeJSONResponse(w, http.StatusOK, models.Success(modelStatus{
		Status:        status,
		Model:         s.modelName,
		Attribution:   modelAttribution,
		Documentation: modelDocumentation,
	}))
}

// protocolHandler returns the protocol of a tier, tailored to the optional
// condition query parameter.
func (s *Server) protocolHandler(w http.ResponseWriter, r *http.Request) {
	t := models.ProtocolType(strings.ToLower(chi.URLParam(r, "type")))
	if !models.IsValidProtocolType(t) {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("protocol type must be gentle, moderate or standard"))
		return
	}

	p := protocol.Match(t, strings.TrimSpace(r.URL.Query().Get("condition")))
	writeJSONResponse(w, http.StatusOK, models.Success(protocolView{
		Protocol: p,
		Summary:  protocol.Summary(p),
		Badge:    protocol.SafetyBadge(p.Type),
	}))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
