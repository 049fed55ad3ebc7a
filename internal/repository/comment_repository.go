package repository

import (
	"perf_eval_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.Preload("Evaluator").Preload("Evaluatee").First(&c, id).Error
	return &c, err
}

func (r *CommentRepository) FindAll() ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Preload("Evaluator").Preload("Evaluatee").Order("created_at desc").Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) FindByEvaluateeAssignment(evaluateeID, assignmentID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Preload("Evaluator").
		Where("evaluatee_id = ? AND assignment_id = ?", evaluateeID, assignmentID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) FindByEvaluator(evaluatorID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Preload("Evaluatee").
		Where("evaluator_id = ?", evaluatorID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.DB.Save(comment).Error
}

func (r *CommentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Comment{}, id).Error
}
