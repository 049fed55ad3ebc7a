package controller

import (
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// CommentUpdateRequest edits a comment's text or type.
// swagger:model CommentUpdateRequest
type CommentUpdateRequest struct {
	CommentText string `json:"comment_text" binding:"required"`
	CommentType string `json:"comment_type"`
}

// Create godoc
// @Summary Write a comment
// @Description Evaluator feedback on the paired evaluatee
// @Tags comments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CommentInput true "comment"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/comments [post]
func (c *CommentController) Create(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var input service.CommentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	comment, err := c.CommentService.Create(actor, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// List godoc
// @Summary List all comments
// @Tags comments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	comments, err := c.CommentService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, comments, len(comments))
}

// Mine godoc
// @Summary My written comments
// @Tags comments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/comments/mine [get]
func (c *CommentController) Mine(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	comments, err := c.CommentService.ListByEvaluator(actor.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, comments, len(comments))
}

// ByPair godoc
// @Summary Comments on one evaluatee under an assignment
// @Tags comments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Param   evaluateeId path int true "evaluatee id"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/comments/{evaluateeId} [get]
func (c *CommentController) ByPair(ctx *gin.Context) {
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
	comments, err := c.CommentService.ListByEvaluateeAssignment(actor, evaluateeID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, comments, len(comments))
}

// Update godoc
// @Summary Edit a comment
// @Description Only the author or an admin may edit
// @Tags comments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "comment id"
// @Param   body body CommentUpdateRequest true "new text"
// @Success 200 {object} util.Response{data=model.Comment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/comments/{id} [put]
func (c *CommentController) Update(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req CommentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	comment, err := c.CommentService.Update(actor, id, req.CommentText, req.CommentType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Description Only the author or an admin may delete
// @Tags comments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "comment id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.CommentService.Delete(actor, id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
