package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"peerreview_service/internal/domain"
	"peerreview_service/internal/repository"
	"peerreview_service/internal/service"
	"peerreview_service/pkg/logger"
)

type Handler struct {
	submissions service.SubmissionServiceInterface
	reviews     service.ReviewServiceInterface
	feedback    service.FeedbackServiceInterface
	log         *logger.Logger
}

func NewHandler(
	submissions service.SubmissionServiceInterface,
	reviews service.ReviewServiceInterface,
	feedback service.FeedbackServiceInterface,
	log *logger.Logger,
) *Handler {
	return &Handler{
		submissions: submissions,
		reviews:     reviews,
		feedback:    feedback,
		log:         log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/assignments/{assignment_id}/submissions", h.HandinSubmission)
	r.Post("/assignments/{assignment_id}/close", h.CloseAssignment)
	r.Get("/submissions/{submission_id}/feedback", h.GetFeedback)
}

type handinRequest struct {
	CreatorID string `json:"creator_id"`
	Artifact  string `json:"artifact"`
}

type handinResponse struct {
	SubmissionID string `json:"submission_id"`
}

func (h *Handler) HandinSubmission(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := parsePathID(r, "assignment_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req handinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	creatorID, err := uuid.Parse(req.CreatorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid creator_id")
		return
	}

	sub, err := h.submissions.Handin(r.Context(), assignmentID, creatorID, req.Artifact)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, handinResponse{SubmissionID: sub.ID.String()})
}

func (h *Handler) CloseAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := parsePathID(r, "assignment_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mapping, err := h.reviews.CloseAssignment(r.Context(), assignmentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	reviewers := make(map[string]string, len(mapping))
	for submissionID, reviewerID := range mapping {
		reviewers[submissionID.String()] = reviewerID.String()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reviewers": reviewers})
}

type feedbackResponse struct {
	SubmissionID string         `json:"submission_id"`
	Summary      string         `json:"summary"`
	Hints        domain.HintSet `json:"hints"`
}

func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	submissionID, err := parsePathID(r, "submission_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	feedback, err := h.feedback.GetFeedback(r.Context(), submissionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feedbackResponse{
		SubmissionID: feedback.SubmissionID.String(),
		Summary:      feedback.Summary,
		Hints:        feedback.Hints,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrAssignmentClosed):
		writeError(w, http.StatusConflict, "assignment is closed")
	case errors.Is(err, service.ErrDistributionImpossible):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyArtifact):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Errorf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parsePathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
