package repository

import (
	"perf_eval_backend/internal/model"

	"gorm.io/gorm"
)

// AttachmentFilter narrows attachment listings; zero values are ignored.
type AttachmentFilter struct {
	AssignmentID   uint
	EvaluateeID    uint
	IndicatorID    uint
	EvidenceTypeID uint
}

type AttachmentRepository struct {
	DB *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{DB: db}
}

func (r *AttachmentRepository) Create(attachment *model.Attachment) error {
	return r.DB.Create(attachment).Error
}

func (r *AttachmentRepository) FindByID(id uint) (*model.Attachment, error) {
	var a model.Attachment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AttachmentRepository) Find(filter AttachmentFilter) ([]model.Attachment, error) {
	query := r.DB.Model(&model.Attachment{})
	if filter.AssignmentID > 0 {
		query = query.Where("assignment_id = ?", filter.AssignmentID)
	}
	if filter.EvaluateeID > 0 {
		query = query.Where("evaluatee_id = ?", filter.EvaluateeID)
	}
	if filter.IndicatorID > 0 {
		query = query.Where("indicator_id = ?", filter.IndicatorID)
	}
	if filter.EvidenceTypeID > 0 {
		query = query.Where("evidence_type_id = ?", filter.EvidenceTypeID)
	}
	var attachments []model.Attachment
	err := query.Order("created_at desc").Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepository) Update(attachment *model.Attachment) error {
	return r.DB.Save(attachment).Error
}

func (r *AttachmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Attachment{}, id).Error
}
