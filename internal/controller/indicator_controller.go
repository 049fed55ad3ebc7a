package controller

import (
	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IndicatorController struct {
	IndicatorService *service.IndicatorService
}

func NewIndicatorController(indicatorService *service.IndicatorService) *IndicatorController {
	return &IndicatorController{IndicatorService: indicatorService}
}

// IndicatorRequest is the write payload for an indicator.
// swagger:model IndicatorRequest
type IndicatorRequest struct {
	TopicID     uint    `json:"topic_id" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" binding:"omitempty,oneof=binary scaled custom"`
	Weight      float64 `json:"weight"`
	MinScore    float64 `json:"min_score"`
	MaxScore    float64 `json:"max_score"`
	Active      *bool   `json:"active"`
}

func (r *IndicatorRequest) toModel() *model.Indicator {
	indicator := &model.Indicator{
		TopicID:     r.TopicID,
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		Type:        model.IndicatorType(r.Type),
		Weight:      r.Weight,
		MinScore:    r.MinScore,
		MaxScore:    r.MaxScore,
		Active:      true,
	}
	if r.Active != nil {
		indicator.Active = *r.Active
	}
	return indicator
}

// List godoc
// @Summary List indicators
// @Description Lists indicators, optionally filtered by type or active flag
// @Tags indicators
// @Produce  json
// @Security BearerAuth
// @Param   type query string false "binary | scaled | custom"
// @Param   active query bool false "only active indicators"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/indicators [get]
func (c *IndicatorController) List(ctx *gin.Context) {
	var indicators []model.Indicator
	var err error
	switch {
	case ctx.Query("type") != "":
		indicators, err = c.IndicatorService.ListByType(model.IndicatorType(ctx.Query("type")))
	case ctx.Query("active") == "true":
		indicators, err = c.IndicatorService.ListActive()
	default:
		indicators, err = c.IndicatorService.List()
	}
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, indicators, len(indicators))
}

// Get godoc
// @Summary Get an indicator
// @Tags indicators
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "indicator id"
// @Success 200 {object} util.Response{data=model.Indicator}
// @Failure 404 {object} util.Response
// @Router /api/indicators/{id} [get]
func (c *IndicatorController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	indicator, err := c.IndicatorService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, indicator)
}

// Create godoc
// @Summary Create an indicator
// @Tags indicators
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body IndicatorRequest true "indicator"
// @Success 201 {object} util.Response{data=model.Indicator}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/indicators [post]
func (c *IndicatorController) Create(ctx *gin.Context) {
	var req IndicatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	indicator := req.toModel()
	if err := c.IndicatorService.Create(indicator); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, indicator)
}

// Update godoc
// @Summary Update an indicator
// @Tags indicators
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "indicator id"
// @Param   body body IndicatorRequest true "indicator"
// @Success 200 {object} util.Response{data=model.Indicator}
// @Failure 404 {object} util.Response
// @Router /api/indicators/{id} [put]
func (c *IndicatorController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req IndicatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	indicator, err := c.IndicatorService.Update(id, req.toModel())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, indicator)
}

// Delete godoc
// @Summary Delete an indicator
// @Tags indicators
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "indicator id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/indicators/{id} [delete]
func (c *IndicatorController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.IndicatorService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
