package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"perf_eval_backend/internal/config"
	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IndividualSummary carries unweighted totals and averages over the rows
// present. Plain sums and means, deliberately not comparable with the
// weighted FinalSummary; the field names never overlap.
type IndividualSummary struct {
	TotalIndicators     int     `json:"total_indicators"`
	TotalSelfScore      float64 `json:"total_self_score"`
	TotalEvaluatorScore float64 `json:"total_evaluator_score"`
	TotalWeight         float64 `json:"total_weight"`
	AvgSelfScore        float64 `json:"avg_self_score"`
	AvgEvaluatorScore   float64 `json:"avg_evaluator_score"`
}

// IndividualReport is one evaluatee's full picture under an assignment:
// the pair itself, result rows, evaluator comments, sign-offs and the
// unweighted summary.
type IndividualReport struct {
	EvaluateeID  uint              `json:"evaluatee_id"`
	AssignmentID uint              `json:"assignment_id"`
	Evaluatee    *model.User       `json:"evaluatee"`
	Assignment   *model.Assignment `json:"assignment"`
	Results      []model.Result    `json:"results"`
	Comments     []model.Comment   `json:"comments"`
	Signatures   []model.Signature `json:"signatures"`
	Summary      IndividualSummary `json:"summary"`
}

// EvaluateeSummary is one evaluatee's line in the overall report.
type EvaluateeSummary struct {
	EvaluateeName string `json:"evaluatee_name"`
	FinalSummary
}

// OverallReport aggregates every evaluatee with results under an assignment.
type OverallReport struct {
	AssignmentID uint               `json:"assignment_id"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Evaluatees   []EvaluateeSummary `json:"evaluatees"`
}

// TopicReport groups an assignment's rows by topic.
type TopicReport struct {
	AssignmentID uint                         `json:"assignment_id"`
	Topics       []repository.TopicSummaryRow `json:"topics"`
}

// EvaluateeExport is one evaluatee's complete slice of an export.
type EvaluateeExport struct {
	EvaluateeID   uint           `json:"evaluatee_id"`
	EvaluateeName string         `json:"evaluatee_name"`
	Results       []model.Result `json:"results"`
	Summary       FinalSummary   `json:"summary"`
}

// ExportData is the full dump of one assignment for external processing.
type ExportData struct {
	Assignment  *model.Assignment `json:"assignment"`
	GeneratedAt time.Time         `json:"generated_at"`
	Evaluatees  []EvaluateeExport `json:"evaluatees"`
}

type ReportService struct {
	ResultRepo     *repository.ResultRepository
	AssignmentRepo *repository.AssignmentRepository
	CommentRepo    *repository.CommentRepository
	SignatureRepo  *repository.SignatureRepository
	UserRepo       *repository.UserRepository
	Redis          *redis.Client
	Cfg            *config.Config
	Logger         *zap.Logger
}

func NewReportService(resultRepo *repository.ResultRepository, assignmentRepo *repository.AssignmentRepository, commentRepo *repository.CommentRepository, signatureRepo *repository.SignatureRepository, userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *ReportService {
	return &ReportService{
		ResultRepo:     resultRepo,
		AssignmentRepo: assignmentRepo,
		CommentRepo:    commentRepo,
		SignatureRepo:  signatureRepo,
		UserRepo:       userRepo,
		Redis:          rdb,
		Cfg:            cfg,
		Logger:         logger,
	}
}

func (s *ReportService) gateAssignment(actor Actor, assignmentID uint) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("assignment %d", assignmentID)
		}
		return nil, err
	}
	if !CanAct(actor, assignment, ActionRead) {
		return nil, util.NotFoundf("assignment %d", assignmentID)
	}
	return assignment, nil
}

// GetIndividualSummary builds the per-evaluatee report. Not found only when
// the evaluatee or assignment is missing; a pair with no result rows yet
// yields an empty report.
func (s *ReportService) GetIndividualSummary(actor Actor, evaluateeID, assignmentID uint) (*IndividualReport, error) {
	assignment, err := s.gateAssignment(actor, assignmentID)
	if err != nil {
		return nil, err
	}

	evaluatee, err := s.UserRepo.FindByID(evaluateeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("evaluatee %d", evaluateeID)
		}
		return nil, err
	}

	results, err := s.ResultRepo.FindByEvaluateeAssignment(evaluateeID, assignmentID)
	if err != nil {
		return nil, err
	}
	comments, err := s.CommentRepo.FindByEvaluateeAssignment(evaluateeID, assignmentID)
	if err != nil {
		return nil, err
	}
	signatures, err := s.SignatureRepo.FindByEvaluateeAssignment(evaluateeID, assignmentID)
	if err != nil {
		return nil, err
	}

	report := &IndividualReport{
		EvaluateeID:  evaluateeID,
		AssignmentID: assignmentID,
		Evaluatee:    evaluatee,
		Assignment:   assignment,
		Results:      results,
		Comments:     comments,
		Signatures:   signatures,
		Summary:      summarizeResults(results),
	}
	return report, nil
}

func summarizeResults(results []model.Result) IndividualSummary {
	summary := IndividualSummary{TotalIndicators: len(results)}

	var selfCount, evaluatorCount int
	for _, res := range results {
		if res.SelfScore != nil {
			summary.TotalSelfScore += *res.SelfScore
			selfCount++
		}
		if res.EvaluatorScore != nil {
			summary.TotalEvaluatorScore += *res.EvaluatorScore
			evaluatorCount++
		}
		if res.Indicator != nil {
			summary.TotalWeight += res.Indicator.Weight
		}
	}
	if selfCount > 0 {
		summary.AvgSelfScore = summary.TotalSelfScore / float64(selfCount)
	}
	if evaluatorCount > 0 {
		summary.AvgEvaluatorScore = summary.TotalEvaluatorScore / float64(evaluatorCount)
	}
	return summary
}

// GetOverallSummary builds the cross-evaluatee weighted report for one
// assignment. Served from redis when a fresh copy exists; score writes
// invalidate the key.
func (s *ReportService) GetOverallSummary(actor Actor, assignmentID uint) (*OverallReport, error) {
	if _, err := s.gateAssignment(actor, assignmentID); err != nil {
		return nil, err
	}

	if cached := s.cachedOverall(assignmentID); cached != nil {
		return cached, nil
	}

	report, err := s.buildOverall(assignmentID)
	if err != nil {
		return nil, err
	}
	s.cacheOverall(assignmentID, report)
	return report, nil
}

func (s *ReportService) buildOverall(assignmentID uint) (*OverallReport, error) {
	evaluatees, err := s.ResultRepo.DistinctEvaluatees(assignmentID)
	if err != nil {
		return nil, err
	}

	report := &OverallReport{
		AssignmentID: assignmentID,
		GeneratedAt:  time.Now(),
		Evaluatees:   make([]EvaluateeSummary, 0, len(evaluatees)),
	}
	for _, evaluatee := range evaluatees {
		rows, err := s.ResultRepo.FindScored(evaluatee.EvaluateeID, assignmentID)
		if err != nil {
			return nil, err
		}
		summary := AggregateScores(rows)
		summary.EvaluateeID = evaluatee.EvaluateeID
		summary.AssignmentID = assignmentID
		report.Evaluatees = append(report.Evaluatees, EvaluateeSummary{
			EvaluateeName: evaluatee.EvaluateeName,
			FinalSummary:  summary,
		})
	}
	return report, nil
}

// GetTopicSummary groups the assignment's rows by topic with unweighted
// averages per topic.
func (s *ReportService) GetTopicSummary(actor Actor, assignmentID uint) (*TopicReport, error) {
	if _, err := s.gateAssignment(actor, assignmentID); err != nil {
		return nil, err
	}
	topics, err := s.ResultRepo.TopicSummary(assignmentID)
	if err != nil {
		return nil, err
	}
	return &TopicReport{AssignmentID: assignmentID, Topics: topics}, nil
}

// GetExportData dumps one assignment completely: every evaluatee's rows plus
// their weighted summary. Never cached; exports must see the latest writes.
func (s *ReportService) GetExportData(actor Actor, assignmentID uint) (*ExportData, error) {
	assignment, err := s.gateAssignment(actor, assignmentID)
	if err != nil {
		return nil, err
	}

	evaluatees, err := s.ResultRepo.DistinctEvaluatees(assignmentID)
	if err != nil {
		return nil, err
	}

	export := &ExportData{
		Assignment:  assignment,
		GeneratedAt: time.Now(),
		Evaluatees:  make([]EvaluateeExport, 0, len(evaluatees)),
	}
	for _, evaluatee := range evaluatees {
		results, err := s.ResultRepo.FindByEvaluateeAssignment(evaluatee.EvaluateeID, assignmentID)
		if err != nil {
			return nil, err
		}
		scored, err := s.ResultRepo.FindScored(evaluatee.EvaluateeID, assignmentID)
		if err != nil {
			return nil, err
		}
		summary := AggregateScores(scored)
		summary.EvaluateeID = evaluatee.EvaluateeID
		summary.AssignmentID = assignmentID
		export.Evaluatees = append(export.Evaluatees, EvaluateeExport{
			EvaluateeID:   evaluatee.EvaluateeID,
			EvaluateeName: evaluatee.EvaluateeName,
			Results:       results,
			Summary:       summary,
		})
	}
	return export, nil
}

func (s *ReportService) cachedOverall(assignmentID uint) *OverallReport {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(context.Background(), overallSummaryCacheKey(assignmentID)).Bytes()
	if err != nil {
		return nil
	}
	var report OverallReport
	if err := json.Unmarshal(data, &report); err != nil {
		s.Logger.Warn("dropping unreadable cached report", zap.Uint("assignment_id", assignmentID), zap.Error(err))
		s.Redis.Del(context.Background(), overallSummaryCacheKey(assignmentID))
		return nil
	}
	return &report
}

func (s *ReportService) cacheOverall(assignmentID uint, report *OverallReport) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	ttl := time.Duration(s.Cfg.Report.CacheTTLSeconds) * time.Second
	if err := s.Redis.Set(context.Background(), overallSummaryCacheKey(assignmentID), data, ttl).Err(); err != nil {
		s.Logger.Warn("failed to cache overall report", zap.Uint("assignment_id", assignmentID), zap.Error(err))
	}
}
