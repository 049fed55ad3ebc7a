package service

import (
	"context"
	"errors"
	"fmt"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"
	"perf_eval_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SelfScoreItem is one entry of a self-assessment bulk write. The score is
// the pre-scaled weight contribution, already computed by the client as
// (selected_value / max_value) * indicator.weight.
type SelfScoreItem struct {
	IndicatorID uint     `json:"indicator_id"`
	SelfScore   *float64 `json:"self_score"`
	Comment     string   `json:"comment"`
}

// EvaluatorScoreItem is one entry of a committee bulk write.
type EvaluatorScoreItem struct {
	IndicatorID    uint     `json:"indicator_id"`
	EvaluatorScore *float64 `json:"evaluator_score"`
	Comment        string   `json:"comment"`
}

// BulkSaveResult reports how many items a bulk write persisted.
type BulkSaveResult struct {
	Saved int `json:"saved"`
}

// InitResult reports the outcome of seeding draft rows for an assignment.
type InitResult struct {
	Created         int64 `json:"created"`
	TotalIndicators int   `json:"total_indicators"`
}

type ResultService struct {
	Repo           *repository.ResultRepository
	AssignmentRepo *repository.AssignmentRepository
	IndicatorRepo  *repository.IndicatorRepository
	Redis          *redis.Client
}

func NewResultService(repo *repository.ResultRepository, assignmentRepo *repository.AssignmentRepository, indicatorRepo *repository.IndicatorRepository, rdb *redis.Client) *ResultService {
	return &ResultService{
		Repo:           repo,
		AssignmentRepo: assignmentRepo,
		IndicatorRepo:  indicatorRepo,
		Redis:          rdb,
	}
}

// gateAssignment loads the assignment and runs the authorization gate.
// Denial reports not-found so membership is never leaked.
func (s *ResultService) gateAssignment(actor Actor, assignmentID uint, action Action) (*model.Assignment, error) {
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

// gatePair additionally verifies the target evaluatee is the assignment's
// own evaluatee. Holding an assignment never grants writes against anyone
// else's rows.
func (s *ResultService) gatePair(actor Actor, assignmentID, evaluateeID uint, action Action) (*model.Assignment, error) {
	assignment, err := s.gateAssignment(actor, assignmentID, action)
	if err != nil {
		return nil, err
	}
	if assignment.EvaluateeID != evaluateeID {
		return nil, util.Validationf("evaluatee %d does not belong to assignment %d", evaluateeID, assignmentID)
	}
	return assignment, nil
}

func (s *ResultService) List() ([]model.Result, error) {
	return s.Repo.FindAll()
}

func (s *ResultService) Get(actor Actor, id uint) (*model.Result, error) {
	result, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("result %d", id)
		}
		return nil, err
	}
	if _, err := s.gateAssignment(actor, result.AssignmentID, ActionRead); err != nil {
		return nil, err
	}
	return result, nil
}

// MyResults returns the actor's own result rows under an assignment.
func (s *ResultService) MyResults(actor Actor, assignmentID uint) ([]model.Result, error) {
	if _, err := s.gateAssignment(actor, assignmentID, ActionRead); err != nil {
		return nil, err
	}
	return s.Repo.FindByEvaluateeAssignment(actor.ID, assignmentID)
}

func (s *ResultService) ByEvaluatee(actor Actor, evaluateeID, assignmentID uint) ([]model.Result, error) {
	if _, err := s.gateAssignment(actor, assignmentID, ActionRead); err != nil {
		return nil, err
	}
	return s.Repo.FindByEvaluateeAssignment(evaluateeID, assignmentID)
}

// Summary computes the weighted final summary for one evaluatee under one
// assignment.
func (s *ResultService) Summary(actor Actor, evaluateeID, assignmentID uint) (*FinalSummary, error) {
	if _, err := s.gateAssignment(actor, assignmentID, ActionRead); err != nil {
		return nil, err
	}
	rows, err := s.Repo.FindScored(evaluateeID, assignmentID)
	if err != nil {
		return nil, err
	}
	summary := AggregateScores(rows)
	summary.EvaluateeID = evaluateeID
	summary.AssignmentID = assignmentID
	return &summary, nil
}

// SaveSelf upserts a single self score for the actor. Outside the submit
// path, so status is untouched.
func (s *ResultService) SaveSelf(actor Actor, assignmentID, indicatorID uint, score *float64, note string) (*model.Result, error) {
	if indicatorID == 0 {
		return nil, util.Validationf("indicator_id required")
	}
	if assignmentID == 0 {
		return nil, util.Validationf("assignment_id required")
	}
	if score == nil {
		return nil, util.Validationf("self_score required")
	}
	if _, err := s.gateAssignment(actor, assignmentID, ActionWrite); err != nil {
		return nil, err
	}

	result, err := s.Repo.UpsertSelf(assignmentID, actor.ID, indicatorID, score, note)
	if err != nil {
		return nil, err
	}
	monitoring.ScoreWriteCounter.WithLabelValues(util.ScoreTypeSelf).Inc()
	s.invalidateOverall(assignmentID)
	return result, nil
}

// SaveSelfBulk applies the actor's self scores as one transaction. With
// isSubmitted the touched rows advance to submitted and get the submission
// timestamp.
func (s *ResultService) SaveSelfBulk(actor Actor, assignmentID uint, items []SelfScoreItem, isSubmitted bool) (*BulkSaveResult, error) {
	if assignmentID == 0 {
		return nil, util.Validationf("assignment_id required")
	}
	if len(items) == 0 {
		return nil, util.Validationf("items array required")
	}
	if _, err := s.gateAssignment(actor, assignmentID, ActionWrite); err != nil {
		return nil, err
	}

	rows := make([]model.Result, len(items))
	for i, item := range items {
		if item.IndicatorID == 0 {
			return nil, util.Validationf("items[%d].indicator_id required", i)
		}
		if item.SelfScore == nil {
			return nil, util.Validationf("items[%d].self_score required", i)
		}
		rows[i] = model.Result{
			AssignmentID: assignmentID,
			EvaluateeID:  actor.ID,
			IndicatorID:  item.IndicatorID,
			SelfScore:    item.SelfScore,
			SelfNote:     item.Comment,
			Status:       model.StatusDraft,
		}
	}

	if err := s.Repo.SaveBulkSelf(assignmentID, actor.ID, rows, isSubmitted); err != nil {
		return nil, err
	}
	monitoring.ScoreWriteCounter.WithLabelValues(util.ScoreTypeSelf).Add(float64(len(rows)))
	s.invalidateOverall(assignmentID)
	return &BulkSaveResult{Saved: len(rows)}, nil
}

// Evaluate upserts one evaluator score and advances the row to evaluated.
// The actor must hold the active assignment pairing them with the evaluatee.
func (s *ResultService) Evaluate(actor Actor, evaluateeID, indicatorID, assignmentID uint, score *float64, note string) (*model.Result, error) {
	if evaluateeID == 0 {
		return nil, util.Validationf("evaluatee_id required")
	}
	if indicatorID == 0 {
		return nil, util.Validationf("indicator_id required")
	}
	if assignmentID == 0 {
		return nil, util.Validationf("assignment_id required")
	}
	if score == nil {
		return nil, util.Validationf("score required")
	}
	if _, err := s.gatePair(actor, assignmentID, evaluateeID, ActionWrite); err != nil {
		return nil, err
	}

	result, err := s.Repo.UpsertEvaluator(assignmentID, evaluateeID, indicatorID, actor.ID, score, note)
	if err != nil {
		return nil, err
	}
	monitoring.ScoreWriteCounter.WithLabelValues(util.ScoreTypeEvaluator).Inc()
	s.invalidateOverall(assignmentID)
	return result, nil
}

// SaveEvaluatorBulk applies committee scores as one transaction and advances
// the touched rows to evaluated. Approval never happens here; it requires
// the explicit approve operation.
func (s *ResultService) SaveEvaluatorBulk(actor Actor, evaluateeID, assignmentID uint, items []EvaluatorScoreItem) (*BulkSaveResult, error) {
	if evaluateeID == 0 {
		return nil, util.Validationf("evaluatee_id required")
	}
	if assignmentID == 0 {
		return nil, util.Validationf("assignment_id required")
	}
	if len(items) == 0 {
		return nil, util.Validationf("items array required")
	}
	if _, err := s.gatePair(actor, assignmentID, evaluateeID, ActionWrite); err != nil {
		return nil, err
	}

	evaluatorID := actor.ID
	rows := make([]model.Result, len(items))
	for i, item := range items {
		if item.IndicatorID == 0 {
			return nil, util.Validationf("items[%d].indicator_id required", i)
		}
		if item.EvaluatorScore == nil {
			return nil, util.Validationf("items[%d].evaluator_score required", i)
		}
		rows[i] = model.Result{
			AssignmentID:   assignmentID,
			EvaluateeID:    evaluateeID,
			IndicatorID:    item.IndicatorID,
			EvaluatorScore: item.EvaluatorScore,
			EvaluatorID:    &evaluatorID,
			EvaluatorNote:  item.Comment,
			Status:         model.StatusDraft,
		}
	}

	if err := s.Repo.SaveBulkEvaluator(assignmentID, evaluateeID, rows); err != nil {
		return nil, err
	}
	monitoring.ScoreWriteCounter.WithLabelValues(util.ScoreTypeEvaluator).Add(float64(len(rows)))
	s.invalidateOverall(assignmentID)
	return &BulkSaveResult{Saved: len(rows)}, nil
}

// Approve advances every evaluated row of the pair to approved.
func (s *ResultService) Approve(actor Actor, evaluateeID, assignmentID uint) (int64, error) {
	if evaluateeID == 0 {
		return 0, util.Validationf("evaluatee_id required")
	}
	if assignmentID == 0 {
		return 0, util.Validationf("assignment_id required")
	}
	if actor.Role != model.Admin && actor.Role != model.Evaluator {
		return 0, util.Forbiddenf("only evaluator or admin can approve")
	}
	if _, err := s.gatePair(actor, assignmentID, evaluateeID, ActionWrite); err != nil {
		return 0, err
	}

	approved, err := s.Repo.Approve(assignmentID, evaluateeID)
	if err != nil {
		return 0, err
	}
	s.invalidateOverall(assignmentID)
	return approved, nil
}

// InitForAssignment seeds draft rows for every active indicator for the
// assignment's evaluatee. Idempotent; existing triples are left alone.
func (s *ResultService) InitForAssignment(assignmentID uint) (*InitResult, error) {
	if assignmentID == 0 {
		return nil, util.Validationf("assignment_id required")
	}
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("assignment %d", assignmentID)
		}
		return nil, err
	}

	indicators, err := s.IndicatorRepo.FindActive()
	if err != nil {
		return nil, err
	}
	indicatorIDs := make([]uint, len(indicators))
	for i, ind := range indicators {
		indicatorIDs[i] = ind.ID
	}

	created, err := s.Repo.InitDrafts(assignmentID, assignment.EvaluateeID, indicatorIDs)
	if err != nil {
		return nil, err
	}
	return &InitResult{Created: created, TotalIndicators: len(indicators)}, nil
}

func (s *ResultService) Delete(id uint) error {
	result, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("result %d", id)
		}
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateOverall(result.AssignmentID)
	return nil
}

func overallSummaryCacheKey(assignmentID uint) string {
	return fmt.Sprintf("report:overall:%d", assignmentID)
}

// invalidateOverall drops the cached overall report for the assignment.
// Best effort: a cache miss later is cheaper than failing the write.
func (s *ResultService) invalidateOverall(assignmentID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), overallSummaryCacheKey(assignmentID))
}
