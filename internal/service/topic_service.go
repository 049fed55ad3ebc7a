package service

import (
	"errors"
	"math"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// weightSumTolerance absorbs float drift when checking that active topic
// weights add up to 100.
const weightSumTolerance = 0.01

type TopicService struct {
	Repo   *repository.TopicRepository
	Logger *zap.Logger
}

func NewTopicService(repo *repository.TopicRepository, logger *zap.Logger) *TopicService {
	return &TopicService{Repo: repo, Logger: logger}
}

func (s *TopicService) List() ([]model.Topic, error) {
	return s.Repo.FindAll()
}

func (s *TopicService) ListActive() ([]model.Topic, error) {
	return s.Repo.FindActive()
}

func (s *TopicService) Get(id uint) (*model.Topic, error) {
	topic, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("topic %d", id)
		}
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) Create(topic *model.Topic) error {
	if topic.Code == "" || topic.Title == "" {
		return util.Validationf("code and title are required")
	}
	if topic.Weight < 0 {
		return util.Validationf("weight must not be negative")
	}

	_, err := s.Repo.FindByCode(topic.Code)
	if err == nil {
		return util.Conflictf("topic code %s already exists", topic.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.Repo.Create(topic); err != nil {
		return err
	}
	s.warnOnWeightDrift()
	return nil
}

func (s *TopicService) Update(id uint, topic *model.Topic) (*model.Topic, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if topic.Code == "" || topic.Title == "" {
		return nil, util.Validationf("code and title are required")
	}
	if topic.Weight < 0 {
		return nil, util.Validationf("weight must not be negative")
	}

	if topic.Code != existing.Code {
		other, err := s.Repo.FindByCode(topic.Code)
		if err == nil && other.ID != id {
			return nil, util.Conflictf("topic code %s already exists", topic.Code)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	existing.Code = topic.Code
	existing.Title = topic.Title
	existing.Description = topic.Description
	existing.Weight = topic.Weight
	existing.Active = topic.Active

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	s.warnOnWeightDrift()
	return existing, nil
}

// Delete removes the topic together with its indicators.
func (s *TopicService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.warnOnWeightDrift()
	return nil
}

// warnOnWeightDrift logs when active topic weights no longer sum to 100.
// Writes still go through; partial configurations are normal while an admin
// is rebuilding the topic catalogue.
func (s *TopicService) warnOnWeightDrift() {
	sum, err := s.Repo.ActiveWeightSum()
	if err != nil {
		return
	}
	if math.Abs(sum-100) > weightSumTolerance {
		s.Logger.Warn("active topic weights do not sum to 100",
			zap.Float64("sum", sum))
	}
}
