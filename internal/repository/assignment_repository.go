package repository

import (
	"perf_eval_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

// Transaction runs fn against a repository bound to one transaction.
func (r *AssignmentRepository) Transaction(fn func(tx *AssignmentRepository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&AssignmentRepository{DB: tx})
	})
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var a model.Assignment
	err := r.DB.Preload("Evaluator").Preload("Evaluatee").First(&a, id).Error
	return &a, err
}

func (r *AssignmentRepository) FindAll() ([]model.Assignment, error) {
	var as []model.Assignment
	err := r.DB.Preload("Evaluator").Preload("Evaluatee").Order("created_at desc").Find(&as).Error
	return as, err
}

func (r *AssignmentRepository) FindByEvaluator(evaluatorID uint) ([]model.Assignment, error) {
	var as []model.Assignment
	err := r.DB.Preload("Evaluatee").
		Where("evaluator_id = ?", evaluatorID).
		Order("created_at desc").
		Find(&as).Error
	return as, err
}

func (r *AssignmentRepository) FindByEvaluatee(evaluateeID uint) ([]model.Assignment, error) {
	var as []model.Assignment
	err := r.DB.Preload("Evaluator").
		Where("evaluatee_id = ?", evaluateeID).
		Order("created_at desc").
		Find(&as).Error
	return as, err
}

// ActivePairExists reports whether an active assignment already links the
// pair. excludeID skips a row when re-validating an update against itself.
func (r *AssignmentRepository) ActivePairExists(evaluatorID, evaluateeID, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Assignment{}).
		Where("evaluator_id = ? AND evaluatee_id = ? AND is_active = ?", evaluatorID, evaluateeID, true)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

// Delete removes the assignment and everything hanging off it in one
// transaction. Cascade over restrict: the API has no other path to orphaned
// dependents.
func (r *AssignmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id = ?", id).Delete(&model.Signature{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id = ?", id).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assignment{}, id).Error
	})
}
