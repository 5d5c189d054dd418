package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"qa_platform/internal/api/middleware"
	"qa_platform/internal/app/service"
	"qa_platform/internal/common"
	"qa_platform/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(qs *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: qs}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuestions)           // GET /api/questions
	r.Get("/{questionID}", h.getQuestion) // GET /api/questions/{id}

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.OptionalIdentity)
		gr.Post("/", h.createQuestion) // POST /api/questions
	})
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionService.List(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}

	type questionListResponse struct {
		Success   bool             `json:"success"`
		Questions []model.Question `json:"questions"`
		Total     int              `json:"total"`
	}
	common.RespondWithJSON(w, http.StatusOK, questionListResponse{
		Success:   true,
		Questions: questions,
		Total:     len(questions),
	})
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")

	question, err := h.questionService.GetByID(r.Context(), questionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "Question not found")
			return
		}
		common.RespondWithServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, questionResponse{Success: true, Question: question})
}

func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// A verified token always wins over a client-supplied author id.
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		req.UserID = userID
	}

	question, err := h.questionService.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			common.RespondWithError(w, http.StatusBadRequest, "Title and body are required")
			return
		}
		common.RespondWithServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, questionResponse{Success: true, Question: question})
}

type questionResponse struct {
	Success  bool            `json:"success"`
	Question *model.Question `json:"question"`
}
