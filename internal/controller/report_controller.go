package controller

import (
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Individual godoc
// @Summary Per-evaluatee report
// @Description Full result rows plus unweighted score averages; 404 when the evaluatee has no rows
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Param   evaluateeId path int true "evaluatee id"
// @Success 200 {object} util.Response{data=service.IndividualReport}
// @Failure 404 {object} util.Response
// @Router /api/reports/assignments/{id}/evaluatees/{evaluateeId} [get]
func (c *ReportController) Individual(ctx *gin.Context) {
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
	report, err := c.ReportService.GetIndividualSummary(actor, evaluateeID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Overall godoc
// @Summary Cross-evaluatee weighted report
// @Description Weighted final summary per evaluatee with results under the assignment; served from cache when fresh
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response{data=service.OverallReport}
// @Failure 404 {object} util.Response
// @Router /api/reports/assignments/{id}/overall [get]
func (c *ReportController) Overall(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	assignmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	report, err := c.ReportService.GetOverallSummary(actor, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Topics godoc
// @Summary Per-topic report
// @Description Groups the assignment's rows by topic with unweighted averages
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response{data=service.TopicReport}
// @Failure 404 {object} util.Response
// @Router /api/reports/assignments/{id}/topics [get]
func (c *ReportController) Topics(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	assignmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	report, err := c.ReportService.GetTopicSummary(actor, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Export godoc
// @Summary Export an assignment
// @Description Complete dump of every evaluatee's rows and weighted summaries, always uncached
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response{data=service.ExportData}
// @Failure 404 {object} util.Response
// @Router /api/reports/assignments/{id}/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	assignmentID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	export, err := c.ReportService.GetExportData(actor, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, export)
}
