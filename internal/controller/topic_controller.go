package controller

import (
	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	TopicService     *service.TopicService
	IndicatorService *service.IndicatorService
}

func NewTopicController(topicService *service.TopicService, indicatorService *service.IndicatorService) *TopicController {
	return &TopicController{TopicService: topicService, IndicatorService: indicatorService}
}

// TopicRequest is the write payload for a topic.
// swagger:model TopicRequest
type TopicRequest struct {
	Code        string  `json:"code" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Active      *bool   `json:"active"`
}

func (r *TopicRequest) toModel() *model.Topic {
	topic := &model.Topic{
		Code:        r.Code,
		Title:       r.Title,
		Description: r.Description,
		Weight:      r.Weight,
		Active:      true,
	}
	if r.Active != nil {
		topic.Active = *r.Active
	}
	return topic
}

// List godoc
// @Summary List topics
// @Tags topics
// @Produce  json
// @Security BearerAuth
// @Param   active query bool false "only active topics"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/topics [get]
func (c *TopicController) List(ctx *gin.Context) {
	var topics []model.Topic
	var err error
	if ctx.Query("active") == "true" {
		topics, err = c.TopicService.ListActive()
	} else {
		topics, err = c.TopicService.List()
	}
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, topics, len(topics))
}

// Get godoc
// @Summary Get a topic
// @Tags topics
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "topic id"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response
// @Router /api/topics/{id} [get]
func (c *TopicController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	topic, err := c.TopicService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// Indicators godoc
// @Summary List a topic's indicators
// @Tags topics
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "topic id"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Failure 404 {object} util.Response
// @Router /api/topics/{id}/indicators [get]
func (c *TopicController) Indicators(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	indicators, err := c.IndicatorService.ListByTopic(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, indicators, len(indicators))
}

// Create godoc
// @Summary Create a topic
// @Tags topics
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body TopicRequest true "topic"
// @Success 201 {object} util.Response{data=model.Topic}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/topics [post]
func (c *TopicController) Create(ctx *gin.Context) {
	var req TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic := req.toModel()
	if err := c.TopicService.Create(topic); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// Update godoc
// @Summary Update a topic
// @Tags topics
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "topic id"
// @Param   body body TopicRequest true "topic"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/topics/{id} [put]
func (c *TopicController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic, err := c.TopicService.Update(id, req.toModel())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// Delete godoc
// @Summary Delete a topic and its indicators
// @Tags topics
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "topic id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/topics/{id} [delete]
func (c *TopicController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.TopicService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
