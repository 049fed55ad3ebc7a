package controller

import (
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// SelfScoreRequest writes one self score.
// swagger:model SelfScoreRequest
type SelfScoreRequest struct {
	AssignmentID uint     `json:"assignment_id" binding:"required"`
	IndicatorID  uint     `json:"indicator_id" binding:"required"`
	SelfScore    *float64 `json:"self_score" binding:"required"`
	Comment      string   `json:"comment"`
}

// SelfScoreBulkRequest writes a batch of self scores, optionally submitting
// the self-assessment.
// swagger:model SelfScoreBulkRequest
type SelfScoreBulkRequest struct {
	AssignmentID uint                    `json:"assignment_id" binding:"required"`
	Items        []service.SelfScoreItem `json:"items" binding:"required"`
	IsSubmitted  bool                    `json:"is_submitted"`
}

// EvaluateRequest writes one committee score.
// swagger:model EvaluateRequest
type EvaluateRequest struct {
	AssignmentID uint     `json:"assignment_id" binding:"required"`
	EvaluateeID  uint     `json:"evaluatee_id" binding:"required"`
	IndicatorID  uint     `json:"indicator_id" binding:"required"`
	Score        *float64 `json:"score" binding:"required"`
	Comment      string   `json:"comment"`
}

// EvaluateBulkRequest writes a batch of committee scores.
// swagger:model EvaluateBulkRequest
type EvaluateBulkRequest struct {
	AssignmentID uint                         `json:"assignment_id" binding:"required"`
	EvaluateeID  uint                         `json:"evaluatee_id" binding:"required"`
	Items        []service.EvaluatorScoreItem `json:"items" binding:"required"`
}

// ApproveRequest finalizes one evaluatee's evaluated rows.
// swagger:model ApproveRequest
type ApproveRequest struct {
	AssignmentID uint `json:"assignment_id" binding:"required"`
	EvaluateeID  uint `json:"evaluatee_id" binding:"required"`
}

// List godoc
// @Summary List all results
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/results [get]
func (c *ResultController) List(ctx *gin.Context) {
	results, err := c.ResultService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, results, len(results))
}

// Get godoc
// @Summary Get a result
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "result id"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Router /api/results/{id} [get]
func (c *ResultController) Get(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.ResultService.Get(actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Mine godoc
// @Summary My results under an assignment
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/results/mine [get]
func (c *ResultController) Mine(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	assignmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	results, err := c.ResultService.MyResults(actor, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, results, len(results))
}

// ByEvaluatee godoc
// @Summary An evaluatee's results under an assignment
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Param   evaluateeId path int true "evaluatee id"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/results/evaluatee/{evaluateeId} [get]
func (c *ResultController) ByEvaluatee(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	assignmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	evaluateeID, ok := pathID(ctx, "evaluateeId")
	if !ok {
		return
	}
	results, err := c.ResultService.ByEvaluatee(actor, evaluateeID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, results, len(results))
}

// Summary godoc
// @Summary Weighted final summary for one evaluatee
// @Description Sums pre-scaled scores, preferring positive committee scores, normalized to 0-100 against the weight present
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Param   evaluateeId path int true "evaluatee id"
// @Success 200 {object} util.Response{data=service.FinalSummary}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/results/summary/{evaluateeId} [get]
func (c *ResultController) Summary(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	assignmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	evaluateeID, ok := pathID(ctx, "evaluateeId")
	if !ok {
		return
	}
	summary, err := c.ResultService.Summary(actor, evaluateeID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// SaveSelf godoc
// @Summary Save one self score
// @Description Upserts by (assignment, evaluatee, indicator); status is untouched
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SelfScoreRequest true "self score"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/self [post]
func (c *ResultController) SaveSelf(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req SelfScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ResultService.SaveSelf(actor, req.AssignmentID, req.IndicatorID, req.SelfScore, req.Comment)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// SaveSelfBulk godoc
// @Summary Save self scores in bulk
// @Description One transaction; with is_submitted the touched rows advance to submitted
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SelfScoreBulkRequest true "self scores"
// @Success 200 {object} util.Response{data=service.BulkSaveResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/self/bulk [post]
func (c *ResultController) SaveSelfBulk(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req SelfScoreBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ResultService.SaveSelfBulk(actor, req.AssignmentID, req.Items, req.IsSubmitted)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Evaluate godoc
// @Summary Save one committee score
// @Description Upserts the evaluator side and advances the row to evaluated
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body EvaluateRequest true "committee score"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/evaluate [post]
func (c *ResultController) Evaluate(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ResultService.Evaluate(actor, req.EvaluateeID, req.IndicatorID, req.AssignmentID, req.Score, req.Comment)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// EvaluateBulk godoc
// @Summary Save committee scores in bulk
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body EvaluateBulkRequest true "committee scores"
// @Success 200 {object} util.Response{data=service.BulkSaveResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/evaluate/bulk [post]
func (c *ResultController) EvaluateBulk(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req EvaluateBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ResultService.SaveEvaluatorBulk(actor, req.EvaluateeID, req.AssignmentID, req.Items)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Approve godoc
// @Summary Approve an evaluation
// @Description Advances every evaluated row of the pair to approved
// @Tags results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ApproveRequest true "pair to approve"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/approve [post]
func (c *ResultController) Approve(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req ApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	approved, err := c.ResultService.Approve(actor, req.EvaluateeID, req.AssignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"approved": approved})
}

// Delete godoc
// @Summary Delete a result
// @Tags results
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "result id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/{id} [delete]
func (c *ResultController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ResultService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
