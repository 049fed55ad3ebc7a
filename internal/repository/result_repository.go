package repository

import (
	"time"

	"perf_eval_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoredResult is the flat row the score aggregator consumes: one result
// joined to its indicator weight.
type ScoredResult struct {
	IndicatorID    uint               `json:"indicatorId"`
	SelfScore      *float64           `json:"selfScore"`
	EvaluatorScore *float64           `json:"evaluatorScore"`
	Status         model.ResultStatus `json:"status"`
	Weight         float64            `json:"weight"`
}

// EvaluateeRow identifies an evaluatee with at least one result row under an
// assignment.
type EvaluateeRow struct {
	EvaluateeID   uint   `json:"evaluateeId"`
	EvaluateeName string `json:"evaluateeName"`
}

// TopicSummaryRow carries per-topic unweighted averages for the topic report.
type TopicSummaryRow struct {
	TopicID           uint    `json:"topicId"`
	TopicName         string  `json:"topicName"`
	TopicWeight       float64 `json:"topicWeight"`
	TotalResults      int64   `json:"totalResults"`
	AvgSelfScore      float64 `json:"avgSelfScore"`
	AvgEvaluatorScore float64 `json:"avgEvaluatorScore"`
}

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

var resultConflictColumns = []clause.Column{
	{Name: "assignment_id"},
	{Name: "evaluatee_id"},
	{Name: "indicator_id"},
}

func (r *ResultRepository) FindByID(id uint) (*model.Result, error) {
	var res model.Result
	err := r.DB.Preload("Indicator.Topic").Preload("Evaluatee").Preload("Evaluator").First(&res, id).Error
	return &res, err
}

func (r *ResultRepository) FindAll() ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Order("created_at desc").Find(&results).Error
	return results, err
}

func (r *ResultRepository) FindByEvaluateeAssignment(evaluateeID, assignmentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Preload("Indicator.Topic").Preload("Evaluatee").Preload("Evaluator").
		Joins("LEFT JOIN indicators ON indicators.id = results.indicator_id").
		Where("results.evaluatee_id = ? AND results.assignment_id = ?", evaluateeID, assignmentID).
		Order("indicators.topic_id asc, results.indicator_id asc").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) FindByTriple(assignmentID, evaluateeID, indicatorID uint) (*model.Result, error) {
	var res model.Result
	err := r.DB.Where("assignment_id = ? AND evaluatee_id = ? AND indicator_id = ?",
		assignmentID, evaluateeID, indicatorID).First(&res).Error
	return &res, err
}

// FindScored returns result rows joined with their indicator weight, the
// exact input shape of the aggregator.
func (r *ResultRepository) FindScored(evaluateeID, assignmentID uint) ([]ScoredResult, error) {
	var rows []ScoredResult
	err := r.DB.Model(&model.Result{}).
		Select("results.indicator_id, results.self_score, results.evaluator_score, results.status, COALESCE(indicators.weight, 0) AS weight").
		Joins("LEFT JOIN indicators ON indicators.id = results.indicator_id").
		Where("results.evaluatee_id = ? AND results.assignment_id = ?", evaluateeID, assignmentID).
		Scan(&rows).Error
	return rows, err
}

// UpsertSelf writes a single self score by triple. Inserts start as draft;
// status is never touched here.
func (r *ResultRepository) UpsertSelf(assignmentID, evaluateeID, indicatorID uint, score *float64, note string) (*model.Result, error) {
	row := model.Result{
		AssignmentID: assignmentID,
		EvaluateeID:  evaluateeID,
		IndicatorID:  indicatorID,
		SelfScore:    score,
		SelfNote:     note,
		Status:       model.StatusDraft,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   resultConflictColumns,
		DoUpdates: clause.AssignmentColumns([]string{"self_score", "self_note", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.FindByTriple(assignmentID, evaluateeID, indicatorID)
}

// UpsertEvaluator writes a single evaluator score by triple and advances the
// row to evaluated (forward-only).
func (r *ResultRepository) UpsertEvaluator(assignmentID, evaluateeID, indicatorID, evaluatorID uint, score *float64, note string) (*model.Result, error) {
	now := time.Now()
	row := model.Result{
		AssignmentID:   assignmentID,
		EvaluateeID:    evaluateeID,
		IndicatorID:    indicatorID,
		EvaluatorScore: score,
		EvaluatorID:    &evaluatorID,
		EvaluatorNote:  note,
		EvaluatedAt:    &now,
		Status:         model.StatusDraft,
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   resultConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{"evaluator_score", "evaluator_id", "evaluator_note", "evaluated_at", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return advanceStatus(tx, assignmentID, evaluateeID, []uint{indicatorID}, model.StatusEvaluated, nil)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByTriple(assignmentID, evaluateeID, indicatorID)
}

// SaveBulkSelf applies a batch of self-score upserts as one transaction.
// When submitted, all touched rows still below "submitted" advance together
// and get the submission timestamp.
func (r *ResultRepository) SaveBulkSelf(assignmentID, evaluateeID uint, rows []model.Result, submitted bool) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   resultConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{"self_score", "self_note", "updated_at"}),
		}).Create(&rows).Error; err != nil {
			return err
		}
		if !submitted {
			return nil
		}
		indicatorIDs := make([]uint, len(rows))
		for i, row := range rows {
			indicatorIDs[i] = row.IndicatorID
		}
		return advanceStatus(tx, assignmentID, evaluateeID, indicatorIDs, model.StatusSubmitted,
			map[string]interface{}{"self_submitted_at": time.Now()})
	})
}

// SaveBulkEvaluator applies a batch of evaluator-score upserts as one
// transaction and advances the touched rows to evaluated.
func (r *ResultRepository) SaveBulkEvaluator(assignmentID, evaluateeID uint, rows []model.Result) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   resultConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{"evaluator_score", "evaluator_id", "evaluator_note", "evaluated_at", "updated_at"}),
		}).Create(&rows).Error; err != nil {
			return err
		}
		indicatorIDs := make([]uint, len(rows))
		for i, row := range rows {
			indicatorIDs[i] = row.IndicatorID
		}
		return advanceStatus(tx, assignmentID, evaluateeID, indicatorIDs, model.StatusEvaluated, nil)
	})
}

// advanceStatus is the single place a result status changes. The rank guard
// makes every transition forward-only regardless of caller.
func advanceStatus(tx *gorm.DB, assignmentID, evaluateeID uint, indicatorIDs []uint, target model.ResultStatus, extra map[string]interface{}) error {
	updates := map[string]interface{}{"status": target}
	for k, v := range extra {
		updates[k] = v
	}
	query := tx.Model(&model.Result{}).
		Where("assignment_id = ? AND evaluatee_id = ?", assignmentID, evaluateeID).
		Where("status IN ?", model.StatusesBelow(target))
	if len(indicatorIDs) > 0 {
		query = query.Where("indicator_id IN ?", indicatorIDs)
	}
	return query.Updates(updates).Error
}

// Approve advances every evaluated row of the pair to approved, returning
// how many rows moved.
func (r *ResultRepository) Approve(assignmentID, evaluateeID uint) (int64, error) {
	res := r.DB.Model(&model.Result{}).
		Where("assignment_id = ? AND evaluatee_id = ? AND status = ?", assignmentID, evaluateeID, model.StatusEvaluated).
		Update("status", model.StatusApproved)
	return res.RowsAffected, res.Error
}

// InitDrafts seeds draft rows for the given indicators, skipping triples
// that already exist. Set-based and idempotent.
func (r *ResultRepository) InitDrafts(assignmentID, evaluateeID uint, indicatorIDs []uint) (int64, error) {
	if len(indicatorIDs) == 0 {
		return 0, nil
	}
	rows := make([]model.Result, len(indicatorIDs))
	for i, indicatorID := range indicatorIDs {
		rows[i] = model.Result{
			AssignmentID: assignmentID,
			EvaluateeID:  evaluateeID,
			IndicatorID:  indicatorID,
			Status:       model.StatusDraft,
		}
	}
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   resultConflictColumns,
		DoNothing: true,
	}).Create(&rows)
	return res.RowsAffected, res.Error
}

// DistinctEvaluatees lists the evaluatees with at least one result row under
// the assignment, ordered by name.
func (r *ResultRepository) DistinctEvaluatees(assignmentID uint) ([]EvaluateeRow, error) {
	var rows []EvaluateeRow
	err := r.DB.Model(&model.Result{}).
		Select("results.evaluatee_id, users.name AS evaluatee_name").
		Joins("LEFT JOIN users ON users.id = results.evaluatee_id").
		Where("results.assignment_id = ?", assignmentID).
		Group("results.evaluatee_id, users.name").
		Order("users.name asc").
		Scan(&rows).Error
	return rows, err
}

// TopicSummary groups result rows by topic with unweighted averages.
func (r *ResultRepository) TopicSummary(assignmentID uint) ([]TopicSummaryRow, error) {
	var rows []TopicSummaryRow
	err := r.DB.Model(&model.Result{}).
		Select("topics.id AS topic_id, topics.title AS topic_name, topics.weight AS topic_weight, "+
			"COUNT(results.id) AS total_results, "+
			"COALESCE(AVG(results.self_score), 0) AS avg_self_score, "+
			"COALESCE(AVG(results.evaluator_score), 0) AS avg_evaluator_score").
		Joins("LEFT JOIN indicators ON indicators.id = results.indicator_id").
		Joins("LEFT JOIN topics ON topics.id = indicators.topic_id").
		Where("results.assignment_id = ?", assignmentID).
		Group("topics.id, topics.title, topics.weight").
		Order("topics.id asc").
		Scan(&rows).Error
	return rows, err
}

func (r *ResultRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Result{}, id).Error
}
