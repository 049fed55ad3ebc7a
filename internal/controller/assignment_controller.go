package controller

import (
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
	ResultService     *service.ResultService
}

func NewAssignmentController(assignmentService *service.AssignmentService, resultService *service.ResultService) *AssignmentController {
	return &AssignmentController{
		AssignmentService: assignmentService,
		ResultService:     resultService,
	}
}

// List godoc
// @Summary List assignments
// @Description Admins see every pairing; evaluators and evaluatees see their own side only
// @Tags assignments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	assignments, err := c.AssignmentService.ListForActor(actor)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, assignments, len(assignments))
}

// Get godoc
// @Summary Get an assignment
// @Description Non-members get 404, never 403
// @Tags assignments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	assignment, err := c.AssignmentService.Get(actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// Create godoc
// @Summary Create an assignment
// @Description Pairs one evaluator with one evaluatee; an existing active pair conflicts
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.AssignmentInput true "pairing"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var input service.AssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assignment, err := c.AssignmentService.Create(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

// BulkCreate godoc
// @Summary Create assignments in bulk
// @Description Pairs one evaluator with many evaluatees; existing active pairs are skipped
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.BulkAssignmentInput true "bulk pairing"
// @Success 201 {object} util.Response{data=service.BulkAssignmentResult}
// @Failure 400 {object} util.Response
// @Router /api/assignments/bulk [post]
func (c *AssignmentController) BulkCreate(ctx *gin.Context) {
	var input service.BulkAssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.AssignmentService.BulkCreate(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// Update godoc
// @Summary Update an assignment
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Param   body body service.AssignmentInput true "fields to change"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var input service.AssignmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assignment, err := c.AssignmentService.Update(id, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// Delete godoc
// @Summary Delete an assignment
// @Description Removes the pairing and every result, comment, signature and attachment under it
// @Tags assignments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AssignmentService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// InitResults godoc
// @Summary Seed draft results
// @Description Creates missing draft rows for every active indicator under the assignment
// @Tags assignments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Success 200 {object} util.Response{data=service.InitResult}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/results/init [post]
func (c *AssignmentController) InitResults(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	result, err := c.ResultService.InitForAssignment(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
