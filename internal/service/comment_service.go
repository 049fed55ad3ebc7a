package service

import (
	"errors"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"gorm.io/gorm"
)

// CommentInput is the write payload for evaluator feedback.
type CommentInput struct {
	AssignmentID uint   `json:"assignment_id"`
	EvaluateeID  uint   `json:"evaluatee_id"`
	CommentText  string `json:"comment_text"`
	CommentType  string `json:"comment_type"`
}

type CommentService struct {
	Repo           *repository.CommentRepository
	AssignmentRepo *repository.AssignmentRepository
}

func NewCommentService(repo *repository.CommentRepository, assignmentRepo *repository.AssignmentRepository) *CommentService {
	return &CommentService{Repo: repo, AssignmentRepo: assignmentRepo}
}

func (s *CommentService) gateAssignment(actor Actor, assignmentID uint, action Action) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("assignment %d", assignmentID)
		}
		return nil, err
	}
	if !CanAct(actor, assignment, action) {
		return nil, util.NotFoundf("assignment %d", assignmentID)
	}
	return assignment, nil
}

// Create records evaluator feedback under an assignment. Only the paired
// evaluator (or an admin) may comment, and only on the paired evaluatee.
func (s *CommentService) Create(actor Actor, input CommentInput) (*model.Comment, error) {
	if input.AssignmentID == 0 || input.EvaluateeID == 0 {
		return nil, util.Validationf("assignment_id and evaluatee_id are required")
	}
	if input.CommentText == "" {
		return nil, util.Validationf("comment_text required")
	}
	if actor.Role == model.Evaluatee {
		return nil, util.Forbiddenf("evaluatees cannot write comments")
	}

	assignment, err := s.gateAssignment(actor, input.AssignmentID, ActionWrite)
	if err != nil {
		return nil, err
	}
	if assignment.EvaluateeID != input.EvaluateeID {
		return nil, util.Validationf("evaluatee %d does not belong to assignment %d", input.EvaluateeID, input.AssignmentID)
	}

	comment := &model.Comment{
		AssignmentID: input.AssignmentID,
		EvaluateeID:  input.EvaluateeID,
		EvaluatorID:  actor.ID,
		CommentText:  input.CommentText,
		CommentType:  input.CommentType,
	}
	if comment.CommentType == "" {
		comment.CommentType = "general"
	}
	if err := s.Repo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) List() ([]model.Comment, error) {
	return s.Repo.FindAll()
}

func (s *CommentService) ListByEvaluateeAssignment(actor Actor, evaluateeID, assignmentID uint) ([]model.Comment, error) {
	if _, err := s.gateAssignment(actor, assignmentID, ActionRead); err != nil {
		return nil, err
	}
	return s.Repo.FindByEvaluateeAssignment(evaluateeID, assignmentID)
}

func (s *CommentService) ListByEvaluator(evaluatorID uint) ([]model.Comment, error) {
	return s.Repo.FindByEvaluator(evaluatorID)
}

func (s *CommentService) get(id uint) (*model.Comment, error) {
	comment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("comment %d", id)
		}
		return nil, err
	}
	return comment, nil
}

// Update rewrites a comment's text. Only the author or an admin may edit.
func (s *CommentService) Update(actor Actor, id uint, text, commentType string) (*model.Comment, error) {
	comment, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.Admin && comment.EvaluatorID != actor.ID {
		return nil, util.Forbiddenf("only the author can edit this comment")
	}
	if text == "" {
		return nil, util.Validationf("comment_text required")
	}

	comment.CommentText = text
	if commentType != "" {
		comment.CommentType = commentType
	}
	comment.Evaluator = nil
	comment.Evaluatee = nil
	if err := s.Repo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(actor Actor, id uint) error {
	comment, err := s.get(id)
	if err != nil {
		return err
	}
	if actor.Role != model.Admin && comment.EvaluatorID != actor.ID {
		return util.Forbiddenf("only the author can delete this comment")
	}
	return s.Repo.Delete(id)
}
