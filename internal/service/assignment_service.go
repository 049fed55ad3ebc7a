package service

import (
	"errors"
	"time"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"gorm.io/gorm"
)

// AssignmentInput is the write payload for creating or updating a pairing.
type AssignmentInput struct {
	EvaluatorID uint       `json:"evaluator_id"`
	EvaluateeID uint       `json:"evaluatee_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

// BulkAssignmentInput pairs one evaluator with many evaluatees at once.
type BulkAssignmentInput struct {
	EvaluatorID  uint       `json:"evaluator_id"`
	EvaluateeIDs []uint     `json:"evaluatee_ids"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

// BulkAssignmentResult reports per-item outcomes of a bulk create. Existing
// active pairs are skipped rather than failing the batch.
type BulkAssignmentResult struct {
	Created []model.Assignment `json:"created"`
	Skipped []uint             `json:"skipped"`
}

type AssignmentService struct {
	Repo     *repository.AssignmentRepository
	UserRepo *repository.UserRepository
}

func NewAssignmentService(repo *repository.AssignmentRepository, userRepo *repository.UserRepository) *AssignmentService {
	return &AssignmentService{Repo: repo, UserRepo: userRepo}
}

func (s *AssignmentService) List() ([]model.Assignment, error) {
	return s.Repo.FindAll()
}

// ListForActor scopes the listing to the actor's own side of the pairings.
func (s *AssignmentService) ListForActor(actor Actor) ([]model.Assignment, error) {
	switch actor.Role {
	case model.Admin:
		return s.Repo.FindAll()
	case model.Evaluator:
		return s.Repo.FindByEvaluator(actor.ID)
	case model.Evaluatee:
		return s.Repo.FindByEvaluatee(actor.ID)
	default:
		return nil, util.Forbiddenf("unknown role %q", actor.Role)
	}
}

func (s *AssignmentService) Get(actor Actor, id uint) (*model.Assignment, error) {
	assignment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("assignment %d", id)
		}
		return nil, err
	}
	if !CanAct(actor, assignment, ActionRead) {
		return nil, util.NotFoundf("assignment %d", id)
	}
	return assignment, nil
}

// checkPair validates the evaluator/evaluatee sides of a pairing. Self-pairs
// are rejected; both users must exist and be active.
func (s *AssignmentService) checkPair(evaluatorID, evaluateeID uint) error {
	if evaluatorID == 0 || evaluateeID == 0 {
		return util.Validationf("evaluator_id and evaluatee_id are required")
	}
	if evaluatorID == evaluateeID {
		return util.Validationf("evaluator and evaluatee must differ")
	}

	evaluator, err := s.UserRepo.FindByID(evaluatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("evaluator %d", evaluatorID)
		}
		return err
	}
	if !evaluator.IsActive {
		return util.Validationf("evaluator %d is inactive", evaluatorID)
	}
	if evaluator.Role == model.Evaluatee {
		return util.Validationf("user %d cannot act as evaluator", evaluatorID)
	}

	evaluatee, err := s.UserRepo.FindByID(evaluateeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("evaluatee %d", evaluateeID)
		}
		return err
	}
	if !evaluatee.IsActive {
		return util.Validationf("evaluatee %d is inactive", evaluateeID)
	}
	return nil
}

func (s *AssignmentService) Create(input AssignmentInput) (*model.Assignment, error) {
	if err := s.checkPair(input.EvaluatorID, input.EvaluateeID); err != nil {
		return nil, err
	}

	exists, err := s.Repo.ActivePairExists(input.EvaluatorID, input.EvaluateeID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.Conflictf("active assignment for pair %d/%d already exists", input.EvaluatorID, input.EvaluateeID)
	}

	assignment := &model.Assignment{
		EvaluatorID: input.EvaluatorID,
		EvaluateeID: input.EvaluateeID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsActive:    true,
	}
	if input.IsActive != nil {
		assignment.IsActive = *input.IsActive
	}
	if err := s.Repo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// BulkCreate pairs one evaluator with many evaluatees. Pairs that already
// have an active assignment are reported as skipped. Validation runs up
// front; the writes happen in one transaction so a failure creates nothing.
func (s *AssignmentService) BulkCreate(input BulkAssignmentInput) (*BulkAssignmentResult, error) {
	if len(input.EvaluateeIDs) == 0 {
		return nil, util.Validationf("evaluatee_ids array required")
	}
	for _, evaluateeID := range input.EvaluateeIDs {
		if err := s.checkPair(input.EvaluatorID, evaluateeID); err != nil {
			return nil, err
		}
	}

	result := &BulkAssignmentResult{}
	err := s.Repo.Transaction(func(tx *repository.AssignmentRepository) error {
		for _, evaluateeID := range input.EvaluateeIDs {
			exists, err := tx.ActivePairExists(input.EvaluatorID, evaluateeID, 0)
			if err != nil {
				return err
			}
			if exists {
				result.Skipped = append(result.Skipped, evaluateeID)
				continue
			}

			assignment := model.Assignment{
				EvaluatorID: input.EvaluatorID,
				EvaluateeID: evaluateeID,
				StartDate:   input.StartDate,
				EndDate:     input.EndDate,
				IsActive:    true,
			}
			if err := tx.Create(&assignment); err != nil {
				return err
			}
			result.Created = append(result.Created, assignment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AssignmentService) Update(id uint, input AssignmentInput) (*model.Assignment, error) {
	assignment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("assignment %d", id)
		}
		return nil, err
	}

	evaluatorID := assignment.EvaluatorID
	evaluateeID := assignment.EvaluateeID
	if input.EvaluatorID != 0 {
		evaluatorID = input.EvaluatorID
	}
	if input.EvaluateeID != 0 {
		evaluateeID = input.EvaluateeID
	}
	if err := s.checkPair(evaluatorID, evaluateeID); err != nil {
		return nil, err
	}

	active := assignment.IsActive
	if input.IsActive != nil {
		active = *input.IsActive
	}
	if active {
		exists, err := s.Repo.ActivePairExists(evaluatorID, evaluateeID, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.Conflictf("active assignment for pair %d/%d already exists", evaluatorID, evaluateeID)
		}
	}

	assignment.EvaluatorID = evaluatorID
	assignment.EvaluateeID = evaluateeID
	assignment.IsActive = active
	if input.StartDate != nil {
		assignment.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		assignment.EndDate = input.EndDate
	}
	assignment.Evaluator = nil
	assignment.Evaluatee = nil

	if err := s.Repo.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Delete removes the assignment and every dependent row under it.
func (s *AssignmentService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("assignment %d", id)
		}
		return err
	}
	return s.Repo.Delete(id)
}
