package service

import (
	"context"
	"fmt"

	"qa_platform/internal/common"
	"qa_platform/internal/domain/model"
	"qa_platform/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// recentQuestionLimit caps the listing at the newest rows; there is no
// pagination cursor.
const recentQuestionLimit = 20

type QuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

type CreateQuestionRequest struct {
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Tags   model.TagInput `json:"tags"`
	UserID string         `json:"userId"`
}

func (s *QuestionService) Create(ctx context.Context, req CreateQuestionRequest) (*model.Question, error) {
	if req.Title == "" || req.Body == "" {
		return nil, common.ErrValidation
	}

	authorID := req.UserID
	if authorID == "" {
		authorID = model.AnonymousUserID
	}

	tags := model.TagList(req.Tags)
	if tags == nil {
		tags = model.TagList{}
	}

	question := &model.Question{
		ID:     uuid.NewString(),
		Title:  req.Title,
		Slug:   slug.Make(req.Title),
		Body:   req.Body,
		Tags:   tags,
		UserID: authorID,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	questions, err := s.questionRepo.ListRecent(ctx, recentQuestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (s *QuestionService) GetByID(ctx context.Context, id string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return question, nil
}
