package repository

import (
	"perf_eval_backend/internal/model"

	"gorm.io/gorm"
)

type SignatureRepository struct {
	DB *gorm.DB
}

func NewSignatureRepository(db *gorm.DB) *SignatureRepository {
	return &SignatureRepository{DB: db}
}

func (r *SignatureRepository) Create(signature *model.Signature) error {
	return r.DB.Create(signature).Error
}

func (r *SignatureRepository) FindByID(id uint) (*model.Signature, error) {
	var s model.Signature
	err := r.DB.Preload("Evaluator").First(&s, id).Error
	return &s, err
}

func (r *SignatureRepository) FindAll() ([]model.Signature, error) {
	var sigs []model.Signature
	err := r.DB.Preload("Evaluator").Order("signed_at desc").Find(&sigs).Error
	return sigs, err
}

func (r *SignatureRepository) FindByEvaluator(evaluatorID uint) ([]model.Signature, error) {
	var sigs []model.Signature
	err := r.DB.Where("evaluator_id = ?", evaluatorID).Order("signed_at desc").Find(&sigs).Error
	return sigs, err
}

func (r *SignatureRepository) FindByEvaluateeAssignment(evaluateeID, assignmentID uint) ([]model.Signature, error) {
	var sigs []model.Signature
	err := r.DB.Preload("Evaluator").
		Where("evaluatee_id = ? AND assignment_id = ?", evaluateeID, assignmentID).
		Order("signed_at desc").
		Find(&sigs).Error
	return sigs, err
}

// Exists reports whether the evaluator has already signed this pair.
func (r *SignatureRepository) Exists(evaluateeID, assignmentID, evaluatorID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Signature{}).
		Where("evaluatee_id = ? AND assignment_id = ? AND evaluator_id = ?", evaluateeID, assignmentID, evaluatorID).
		Count(&count).Error
	return count > 0, err
}

func (r *SignatureRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Signature{}, id).Error
}
