package submissions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	"gitlab.com/gradeview-2025.net/internal/core/services/filter"
	"gitlab.com/gradeview-2025.net/internal/core/services/review"
	"gitlab.com/gradeview-2025.net/internal/handlers"
	"gitlab.com/gradeview-2025.net/internal/handlers/response"
	"gitlab.com/gradeview-2025.net/internal/static/errs"
)

// SubmissionHandler handles submission API requests
type SubmissionHandler struct {
	listService   filter.IListService
	reviewService review.IReviewService
	logger        primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(listService filter.IListService, reviewService review.IReviewService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		listService:   listService,
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/assignments/{assignmentId}/submissions", h.ListSubmissions).Methods("GET")
	router.HandleFunc("/assignments/{assignmentId}/submissions", h.HandIn).Methods("POST")
	router.HandleFunc("/assignments/{assignmentId}/submissions/nav", h.Neighbors).Methods("GET")
	router.HandleFunc("/submissions/{submissionId}/grade", h.SetGrade).Methods("PATCH")
	router.HandleFunc("/submissions/{submissionId}/assignee", h.SetAssignee).Methods("PATCH")
}

// ListSubmissions handles filtered submission list requests
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := h.pathID(w, r, "assignmentId")
	if !ok {
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	settings := parseFilterQuery(r.URL.Query())
	current := parseCurrentQuery(r.URL.Query())

	result, err := h.listService.ListSubmissions(r.Context(), assignmentID, actorID, settings, current)
	if err != nil {
		h.logger.Error("Failed to list submissions", "error", err)
		http.Error(w, "Failed to list submissions", http.StatusInternalServerError)
		return
	}

	response.WriteSuccess(w, ListSubmissionsResponse{
		Submissions:  result.Submissions,
		ForceInclude: result.ForceInclude,
	})
}

// Neighbors handles prev/next lookups over the filtered order
func (h *SubmissionHandler) Neighbors(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := h.pathID(w, r, "assignmentId")
	if !ok {
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	current := parseCurrentQuery(r.URL.Query())
	if current == nil {
		http.Error(w, "Invalid current submission ID", http.StatusBadRequest)
		return
	}
	settings := parseFilterQuery(r.URL.Query())

	nav, err := h.listService.Neighbors(r.Context(), assignmentID, actorID, settings, *current)
	if err != nil {
		h.logger.Error("Failed to resolve neighbors", "error", err)
		http.Error(w, "Failed to resolve neighbors", http.StatusInternalServerError)
		return
	}

	response.WriteSuccess(w, NavResponse{
		Previous: nav.Previous,
		Next:     nav.Next,
		Index:    nav.Index,
		Total:    nav.Total,
	})
}

// HandIn handles submission creation requests
func (h *SubmissionHandler) HandIn(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := h.pathID(w, r, "assignmentId")
	if !ok {
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	sub, err := h.reviewService.HandIn(r.Context(), assignmentID, actorID)
	if err != nil {
		h.logger.Error("Failed to create submission", "error", err)
		h.writeReviewError(w, err, "Failed to create submission")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sub)
}

// SetGrade handles grade update requests
func (h *SubmissionHandler) SetGrade(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := h.pathID(w, r, "submissionId")
	if !ok {
		return
	}
	if _, ok := h.actor(w, r); !ok {
		return
	}

	var req SetGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	sub, err := h.reviewService.SetGrade(r.Context(), submissionID, req.Grade)
	if err != nil {
		h.logger.Error("Failed to update grade", "submissionId", submissionID, "error", err)
		h.writeReviewError(w, err, "Failed to update grade")
		return
	}

	response.WriteSuccess(w, sub)
}

// SetAssignee handles grader assignment requests
func (h *SubmissionHandler) SetAssignee(w http.ResponseWriter, r *http.Request) {
	submissionID, ok := h.pathID(w, r, "submissionId")
	if !ok {
		return
	}
	if _, ok := h.actor(w, r); !ok {
		return
	}

	var req SetAssigneeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	sub, err := h.reviewService.AssignGrader(r.Context(), submissionID, req.AssigneeID)
	if err != nil {
		h.logger.Error("Failed to update assignee", "submissionId", submissionID, "error", err)
		h.writeReviewError(w, err, "Failed to update assignee")
		return
	}

	response.WriteSuccess(w, sub)
}

func (h *SubmissionHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	idStr := mux.Vars(r)[name]
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Error("Invalid id", "param", name, "id", idStr)
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *SubmissionHandler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actorID, ok := handlers.ActorID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return actorID, true
}

func (h *SubmissionHandler) writeReviewError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, errs.SubmissionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, errs.GradeOutOfRange), errors.Is(err, errs.GraderNotFound), errors.Is(err, errs.AuthorNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}
