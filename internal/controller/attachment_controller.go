package controller

import (
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/service"
	"perf_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttachmentController struct {
	AttachmentService *service.AttachmentService
}

func NewAttachmentController(attachmentService *service.AttachmentService) *AttachmentController {
	return &AttachmentController{AttachmentService: attachmentService}
}

// Upload godoc
// @Summary Upload evidence
// @Description Multipart upload of one evidence file for an indicator under the caller's assignment
// @Tags attachments
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "evidence file"
// @Param   assignment_id formData int true "assignment id"
// @Param   indicator_id formData int true "indicator id"
// @Param   evidence_type_id formData int false "evidence type id"
// @Success 201 {object} util.Response{data=model.Attachment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attachments [post]
func (c *AttachmentController) Upload(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	upload := service.AttachmentUpload{
		AssignmentID:   util.MustParseUint(ctx.PostForm("assignment_id")),
		IndicatorID:    util.MustParseUint(ctx.PostForm("indicator_id")),
		EvidenceTypeID: util.MustParseUint(ctx.PostForm("evidence_type_id")),
		FileName:       fileHeader.Filename,
		MimeType:       fileHeader.Header.Get("Content-Type"),
		Size:           fileHeader.Size,
		Reader:         file,
	}

	attachment, err := c.AttachmentService.Upload(ctx.Request.Context(), actor, upload)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attachment)
}

// List godoc
// @Summary List attachments
// @Description Filterable by assignment, evaluatee, indicator and evidence type
// @Tags attachments
// @Produce  json
// @Security BearerAuth
// @Param   assignment_id query int false "assignment id"
// @Param   evaluatee_id query int false "evaluatee id"
// @Param   indicator_id query int false "indicator id"
// @Param   evidence_type_id query int false "evidence type id"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Failure 404 {object} util.Response
// @Router /api/attachments [get]
func (c *AttachmentController) List(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	filter := repository.AttachmentFilter{
		AssignmentID:   util.MustParseUint(ctx.Query("assignment_id")),
		EvaluateeID:    util.MustParseUint(ctx.Query("evaluatee_id")),
		IndicatorID:    util.MustParseUint(ctx.Query("indicator_id")),
		EvidenceTypeID: util.MustParseUint(ctx.Query("evidence_type_id")),
	}
	attachments, err := c.AttachmentService.List(actor, filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, attachments, len(attachments))
}

// Mine godoc
// @Summary My evidence files
// @Description Lists the caller's own attachments, filterable like the admin listing
// @Tags attachments
// @Produce  json
// @Security BearerAuth
// @Param   assignment_id query int false "assignment id"
// @Param   indicator_id query int false "indicator id"
// @Param   evidence_type_id query int false "evidence type id"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/attachments/mine [get]
func (c *AttachmentController) Mine(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	filter := repository.AttachmentFilter{
		AssignmentID:   util.MustParseUint(ctx.Query("assignment_id")),
		IndicatorID:    util.MustParseUint(ctx.Query("indicator_id")),
		EvidenceTypeID: util.MustParseUint(ctx.Query("evidence_type_id")),
	}
	attachments, err := c.AttachmentService.ListMine(actor, filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessList(ctx, attachments, len(attachments))
}

// Get godoc
// @Summary Get an attachment
// @Tags attachments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "attachment id"
// @Success 200 {object} util.Response{data=model.Attachment}
// @Failure 404 {object} util.Response
// @Router /api/attachments/{id} [get]
func (c *AttachmentController) Get(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	attachment, err := c.AttachmentService.Get(actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attachment)
}

// URL godoc
// @Summary Resolve an attachment's download URL
// @Tags attachments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "attachment id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/attachments/{id}/url [get]
func (c *AttachmentController) URL(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	url, err := c.AttachmentService.URL(actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// AttachmentMetaRequest reclassifies an attachment.
// swagger:model AttachmentMetaRequest
type AttachmentMetaRequest struct {
	IndicatorID    uint `json:"indicator_id"`
	EvidenceTypeID uint `json:"evidence_type_id"`
}

// UpdateMeta godoc
// @Summary Reclassify an attachment
// @Description Changes the indicator or evidence type without touching the file; owner or admin only
// @Tags attachments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "attachment id"
// @Param   body body AttachmentMetaRequest true "new classification"
// @Success 200 {object} util.Response{data=model.Attachment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attachments/{id}/meta [put]
func (c *AttachmentController) UpdateMeta(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req AttachmentMetaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	attachment, err := c.AttachmentService.UpdateMeta(actor, id, req.IndicatorID, req.EvidenceTypeID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attachment)
}

// ReplaceFile godoc
// @Summary Replace an attachment's file
// @Description Uploads a new file behind the same attachment row; owner or admin only
// @Tags attachments
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "attachment id"
// @Param   file formData file true "replacement file"
// @Success 200 {object} util.Response{data=model.Attachment}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attachments/{id}/file [put]
func (c *AttachmentController) ReplaceFile(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	upload := service.AttachmentUpload{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Reader:   file,
	}
	attachment, err := c.AttachmentService.ReplaceFile(ctx.Request.Context(), actor, id, upload)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attachment)
}

// Delete godoc
// @Summary Delete an attachment
// @Description Removes the stored object and the row; owner or admin only
// @Tags attachments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "attachment id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attachments/{id} [delete]
func (c *AttachmentController) Delete(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AttachmentService.Delete(ctx.Request.Context(), actor, id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
