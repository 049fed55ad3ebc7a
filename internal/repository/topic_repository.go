package repository

import (
	"perf_eval_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var t model.Topic
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *TopicRepository) FindByCode(code string) (*model.Topic, error) {
	var t model.Topic
	err := r.DB.Where("code = ?", code).First(&t).Error
	return &t, err
}

func (r *TopicRepository) FindAll() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("id asc").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindActive() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("active = ?", true).Order("id asc").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) Update(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

// Delete removes the topic and its indicators in one transaction.
func (r *TopicRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&model.Indicator{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Topic{}, id).Error
	})
}

func (r *TopicRepository) CountIndicators(topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Indicator{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

// ActiveWeightSum totals the weights of active topics, for the
// weights-sum-to-100 integrity warning.
func (r *TopicRepository) ActiveWeightSum() (float64, error) {
	var sum float64
	err := r.DB.Model(&model.Topic{}).
		Where("active = ?", true).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&sum).Error
	return sum, err
}
