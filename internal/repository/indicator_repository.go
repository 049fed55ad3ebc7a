package repository

import (
	"perf_eval_backend/internal/model"

	"gorm.io/gorm"
)

type IndicatorRepository struct {
	DB *gorm.DB
}

func NewIndicatorRepository(db *gorm.DB) *IndicatorRepository {
	return &IndicatorRepository{DB: db}
}

func (r *IndicatorRepository) Create(indicator *model.Indicator) error {
	return r.DB.Create(indicator).Error
}

func (r *IndicatorRepository) FindByID(id uint) (*model.Indicator, error) {
	var ind model.Indicator
	err := r.DB.Preload("Topic").First(&ind, id).Error
	return &ind, err
}

func (r *IndicatorRepository) FindAll() ([]model.Indicator, error) {
	var inds []model.Indicator
	err := r.DB.Preload("Topic").Order("topic_id asc, id asc").Find(&inds).Error
	return inds, err
}

func (r *IndicatorRepository) FindActive() ([]model.Indicator, error) {
	var inds []model.Indicator
	err := r.DB.Where("active = ?", true).Order("topic_id asc, id asc").Find(&inds).Error
	return inds, err
}

func (r *IndicatorRepository) FindByTopic(topicID uint) ([]model.Indicator, error) {
	var inds []model.Indicator
	err := r.DB.Preload("Topic").Where("topic_id = ?", topicID).Order("id asc").Find(&inds).Error
	return inds, err
}

func (r *IndicatorRepository) FindByType(indicatorType model.IndicatorType) ([]model.Indicator, error) {
	var inds []model.Indicator
	err := r.DB.Preload("Topic").Where("type = ?", indicatorType).Order("topic_id asc, id asc").Find(&inds).Error
	return inds, err
}

func (r *IndicatorRepository) Update(indicator *model.Indicator) error {
	return r.DB.Save(indicator).Error
}

func (r *IndicatorRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Indicator{}, id).Error
}
