package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxAttachmentSize caps evidence uploads at 20 MB.
const maxAttachmentSize = 20 << 20

var allowedAttachmentExts = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".zip":  true,
}

// AttachmentUpload describes one evidence file arriving from a multipart
// request.
type AttachmentUpload struct {
	AssignmentID   uint
	IndicatorID    uint
	EvidenceTypeID uint
	FileName       string
	MimeType       string
	Size           int64
	Reader         io.Reader
}

type AttachmentService struct {
	Repo           *repository.AttachmentRepository
	AssignmentRepo *repository.AssignmentRepository
	IndicatorRepo  *repository.IndicatorRepository
	Storage        *StorageService
	Logger         *zap.Logger
}

func NewAttachmentService(repo *repository.AttachmentRepository, assignmentRepo *repository.AssignmentRepository, indicatorRepo *repository.IndicatorRepository, storage *StorageService, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{
		Repo:           repo,
		AssignmentRepo: assignmentRepo,
		IndicatorRepo:  indicatorRepo,
		Storage:        storage,
		Logger:         logger,
	}
}

func (s *AttachmentService) gateAssignment(actor Actor, assignmentID uint, action Action) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("assignment %d", assignmentID)
		}
		return nil, err
	}
	if !CanAct(actor, assignment, action) {
		return nil, util.NotFoundf("assignment %d", assignmentID)
	}
	return assignment, nil
}

// Upload stores one evidence file for the assignment's evaluatee. Only the
// evaluatee themselves (or an admin) may attach evidence, and only while the
// assignment is active. The stored object name is a uuid so original file
// names never collide or leak into storage paths.
func (s *AttachmentService) Upload(ctx context.Context, actor Actor, upload AttachmentUpload) (*model.Attachment, error) {
	if upload.AssignmentID == 0 || upload.IndicatorID == 0 {
		return nil, util.Validationf("assignment_id and indicator_id are required")
	}
	if upload.FileName == "" || upload.Reader == nil {
		return nil, util.Validationf("file required")
	}
	if upload.Size > maxAttachmentSize {
		return nil, util.Validationf("file exceeds %d bytes", maxAttachmentSize)
	}
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	if !allowedAttachmentExts[ext] {
		return nil, util.Validationf("file type %s not allowed", ext)
	}
	if actor.Role == model.Evaluator {
		return nil, util.Forbiddenf("only the evaluatee can attach evidence")
	}

	assignment, err := s.gateAssignment(actor, upload.AssignmentID, ActionWrite)
	if err != nil {
		return nil, err
	}

	if _, err := s.IndicatorRepo.FindByID(upload.IndicatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("indicator %d", upload.IndicatorID)
		}
		return nil, err
	}

	objectName := fmt.Sprintf("evidence/%d/%d/%s%s", assignment.ID, assignment.EvaluateeID, uuid.New().String(), ext)
	if _, err := s.Storage.Upload(ctx, objectName, upload.Reader, upload.Size, upload.MimeType); err != nil {
		return nil, err
	}

	attachment := &model.Attachment{
		AssignmentID:   upload.AssignmentID,
		EvaluateeID:    assignment.EvaluateeID,
		IndicatorID:    upload.IndicatorID,
		EvidenceTypeID: upload.EvidenceTypeID,
		FileName:       upload.FileName,
		MimeType:       upload.MimeType,
		SizeBytes:      upload.Size,
		StoragePath:    objectName,
	}
	if err := s.Repo.Create(attachment); err != nil {
		// Roll the object back so storage does not accumulate orphans.
		if delErr := s.Storage.Delete(ctx, objectName); delErr != nil {
			s.Logger.Warn("failed to remove orphaned object", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}
	return attachment, nil
}

func (s *AttachmentService) List(actor Actor, filter repository.AttachmentFilter) ([]model.Attachment, error) {
	if filter.AssignmentID > 0 {
		if _, err := s.gateAssignment(actor, filter.AssignmentID, ActionRead); err != nil {
			return nil, err
		}
	} else if actor.Role != model.Admin {
		return nil, util.Validationf("assignment_id required")
	}
	return s.Repo.Find(filter)
}

// ListMine scopes the listing to evidence the actor owns as evaluatee.
func (s *AttachmentService) ListMine(actor Actor, filter repository.AttachmentFilter) ([]model.Attachment, error) {
	filter.EvaluateeID = actor.ID
	return s.Repo.Find(filter)
}

func (s *AttachmentService) Get(actor Actor, id uint) (*model.Attachment, error) {
	attachment, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("attachment %d", id)
		}
		return nil, err
	}
	if _, err := s.gateAssignment(actor, attachment.AssignmentID, ActionRead); err != nil {
		return nil, err
	}
	return attachment, nil
}

// URL resolves the download location of an attachment through the configured
// storage provider.
func (s *AttachmentService) URL(actor Actor, id uint) (string, error) {
	attachment, err := s.Get(actor, id)
	if err != nil {
		return "", err
	}
	return s.Storage.GetURL(attachment.StoragePath), nil
}

// UpdateMeta reclassifies an attachment (indicator, evidence type) without
// touching the stored file. Owner or admin only; the assignment must still
// accept writes.
func (s *AttachmentService) UpdateMeta(actor Actor, id, indicatorID, evidenceTypeID uint) (*model.Attachment, error) {
	attachment, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.Admin && attachment.EvaluateeID != actor.ID {
		return nil, util.Forbiddenf("only the owner can edit this attachment")
	}
	if _, err := s.gateAssignment(actor, attachment.AssignmentID, ActionWrite); err != nil {
		return nil, err
	}

	if indicatorID > 0 && indicatorID != attachment.IndicatorID {
		if _, err := s.IndicatorRepo.FindByID(indicatorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundf("indicator %d", indicatorID)
			}
			return nil, err
		}
		attachment.IndicatorID = indicatorID
	}
	if evidenceTypeID > 0 {
		attachment.EvidenceTypeID = evidenceTypeID
	}

	if err := s.Repo.Update(attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// ReplaceFile swaps the stored object behind an attachment. The new object
// goes in first; the old one is removed best effort once the row points at
// the replacement.
func (s *AttachmentService) ReplaceFile(ctx context.Context, actor Actor, id uint, upload AttachmentUpload) (*model.Attachment, error) {
	attachment, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.Admin && attachment.EvaluateeID != actor.ID {
		return nil, util.Forbiddenf("only the owner can replace this file")
	}
	if _, err := s.gateAssignment(actor, attachment.AssignmentID, ActionWrite); err != nil {
		return nil, err
	}

	if upload.FileName == "" || upload.Reader == nil {
		return nil, util.Validationf("file required")
	}
	if upload.Size > maxAttachmentSize {
		return nil, util.Validationf("file exceeds %d bytes", maxAttachmentSize)
	}
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	if !allowedAttachmentExts[ext] {
		return nil, util.Validationf("file type %s not allowed", ext)
	}

	objectName := fmt.Sprintf("evidence/%d/%d/%s%s", attachment.AssignmentID, attachment.EvaluateeID, uuid.New().String(), ext)
	if _, err := s.Storage.Upload(ctx, objectName, upload.Reader, upload.Size, upload.MimeType); err != nil {
		return nil, err
	}

	oldObject := attachment.StoragePath
	attachment.FileName = upload.FileName
	attachment.MimeType = upload.MimeType
	attachment.SizeBytes = upload.Size
	attachment.StoragePath = objectName

	if err := s.Repo.Update(attachment); err != nil {
		if delErr := s.Storage.Delete(ctx, objectName); delErr != nil {
			s.Logger.Warn("failed to remove orphaned object", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.Storage.Delete(ctx, oldObject); err != nil {
		s.Logger.Warn("failed to delete replaced object", zap.String("object", oldObject), zap.Error(err))
	}
	return attachment, nil
}

// Delete removes the stored object and then the row. Only the owning
// evaluatee or an admin may delete evidence.
func (s *AttachmentService) Delete(ctx context.Context, actor Actor, id uint) error {
	attachment, err := s.Get(actor, id)
	if err != nil {
		return err
	}
	if actor.Role != model.Admin && attachment.EvaluateeID != actor.ID {
		return util.Forbiddenf("only the owner can delete this attachment")
	}

	if err := s.Storage.Delete(ctx, attachment.StoragePath); err != nil {
		s.Logger.Warn("failed to delete stored object, removing row anyway",
			zap.String("object", attachment.StoragePath), zap.Error(err))
	}
	return s.Repo.Delete(id)
}
