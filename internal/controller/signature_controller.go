package controller

import (
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SignatureController struct {
	SignatureService *service.SignatureService
}

func NewSignatureController(signatureService *service.SignatureService) *SignatureController {
	return &SignatureController{SignatureService: signatureService}
}

// Create godoc
// @Summary Sign an evaluation
// @Description Records the evaluator's sign-off; each evaluator signs a pair at most once
// @Tags signatures
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SignatureInput true "signature"
// @Success 201 {object} util.Response{data=model.Signature}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/signatures [post]
func (c *SignatureController) Create(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var input service.SignatureInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	signature, err := c.SignatureService.Create(actor, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, signature)
}

// List godoc
// @Summary List all signatures
// @Tags signatures
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/signatures [get]
func (c *SignatureController) List(ctx *gin.Context) {
	signatures, err := c.SignatureService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, signatures, len(signatures))
}

// Mine godoc
// @Summary My signatures
// @Tags signatures
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/signatures/mine [get]
func (c *SignatureController) Mine(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	signatures, err := c.SignatureService.ListByEvaluator(actor.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, signatures, len(signatures))
}

// ByPair godoc
// @Summary Signatures on one evaluatee under an assignment
// @Tags signatures
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assignment id"
// @Param   evaluateeId path int true "evaluatee id"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/signatures/{evaluateeId} [get]
func (c *SignatureController) ByPair(ctx *gin.Context) {
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
	signatures, err := c.SignatureService.ListByEvaluateeAssignment(actor, evaluateeID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, signatures, len(signatures))
}

// Delete godoc
// @Summary Withdraw a signature
// @Description Only the signer or an admin may withdraw
// @Tags signatures
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "signature id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/signatures/{id} [delete]
func (c *SignatureController) Delete(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.SignatureService.Delete(actor, id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
