package service

import (
	"errors"
	"strings"
	"time"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"gorm.io/gorm"
)

// SignatureInput carries one sign-off: a base64 data-URL image drawn by the
// evaluator.
type SignatureInput struct {
	AssignmentID  uint   `json:"assignment_id"`
	EvaluateeID   uint   `json:"evaluatee_id"`
	SignatureData string `json:"signature_data"`
}

type SignatureService struct {
	Repo           *repository.SignatureRepository
	AssignmentRepo *repository.AssignmentRepository
}

func NewSignatureService(repo *repository.SignatureRepository, assignmentRepo *repository.AssignmentRepository) *SignatureService {
	return &SignatureService{Repo: repo, AssignmentRepo: assignmentRepo}
}

func (s *SignatureService) gateAssignment(actor Actor, assignmentID uint, action Action) (*model.Assignment, error) {
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

// Create records the actor's sign-off for the pair. One signature per
// evaluator per pair; a second attempt conflicts.
func (s *SignatureService) Create(actor Actor, input SignatureInput) (*model.Signature, error) {
	if input.AssignmentID == 0 || input.EvaluateeID == 0 {
		return nil, util.Validationf("assignment_id and evaluatee_id are required")
	}
	if input.SignatureData == "" {
		return nil, util.Validationf("signature_data required")
	}
	if !strings.HasPrefix(input.SignatureData, "data:image/") {
		return nil, util.Validationf("signature_data must be an image data URL")
	}
	if actor.Role == model.Evaluatee {
		return nil, util.Forbiddenf("evaluatees cannot sign evaluations")
	}

	assignment, err := s.gateAssignment(actor, input.AssignmentID, ActionWrite)
	if err != nil {
		return nil, err
	}
	if assignment.EvaluateeID != input.EvaluateeID {
		return nil, util.Validationf("evaluatee %d does not belong to assignment %d", input.EvaluateeID, input.AssignmentID)
	}

	exists, err := s.Repo.Exists(input.EvaluateeID, input.AssignmentID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.Conflictf("evaluator %d already signed this evaluation", actor.ID)
	}

	signature := &model.Signature{
		EvaluateeID:   input.EvaluateeID,
		AssignmentID:  input.AssignmentID,
		EvaluatorID:   actor.ID,
		SignatureData: input.SignatureData,
		SignedAt:      time.Now(),
	}
	if err := s.Repo.Create(signature); err != nil {
		return nil, err
	}
	return signature, nil
}

func (s *SignatureService) List() ([]model.Signature, error) {
	return s.Repo.FindAll()
}

func (s *SignatureService) ListByEvaluateeAssignment(actor Actor, evaluateeID, assignmentID uint) ([]model.Signature, error) {
	if _, err := s.gateAssignment(actor, assignmentID, ActionRead); err != nil {
		return nil, err
	}
	return s.Repo.FindByEvaluateeAssignment(evaluateeID, assignmentID)
}

func (s *SignatureService) ListByEvaluator(evaluatorID uint) ([]model.Signature, error) {
	return s.Repo.FindByEvaluator(evaluatorID)
}

// Delete withdraws a sign-off. Only the signer or an admin may remove it.
func (s *SignatureService) Delete(actor Actor, id uint) error {
	signature, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("signature %d", id)
		}
		return err
	}
	if actor.Role != model.Admin && signature.EvaluatorID != actor.ID {
		return util.Forbiddenf("only the signer can withdraw this signature")
	}
	return s.Repo.Delete(id)
}
