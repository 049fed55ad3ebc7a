package service

import (
	"errors"

	"perf_eval_backend/internal/model"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/util"

	"gorm.io/gorm"
)

type IndicatorService struct {
	Repo      *repository.IndicatorRepository
	TopicRepo *repository.TopicRepository
}

func NewIndicatorService(repo *repository.IndicatorRepository, topicRepo *repository.TopicRepository) *IndicatorService {
	return &IndicatorService{Repo: repo, TopicRepo: topicRepo}
}

func (s *IndicatorService) List() ([]model.Indicator, error) {
	return s.Repo.FindAll()
}

func (s *IndicatorService) ListActive() ([]model.Indicator, error) {
	return s.Repo.FindActive()
}

func (s *IndicatorService) ListByTopic(topicID uint) ([]model.Indicator, error) {
	if _, err := s.TopicRepo.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("topic %d", topicID)
		}
		return nil, err
	}
	return s.Repo.FindByTopic(topicID)
}

func (s *IndicatorService) ListByType(indicatorType model.IndicatorType) ([]model.Indicator, error) {
	if indicatorType != model.IndicatorBinary && indicatorType != model.IndicatorScaled && indicatorType != model.IndicatorCustom {
		return nil, util.Validationf("unknown indicator type %q", indicatorType)
	}
	return s.Repo.FindByType(indicatorType)
}

func (s *IndicatorService) Get(id uint) (*model.Indicator, error) {
	indicator, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundf("indicator %d", id)
		}
		return nil, err
	}
	return indicator, nil
}

func (s *IndicatorService) validate(indicator *model.Indicator) error {
	if indicator.TopicID == 0 {
		return util.Validationf("topic_id required")
	}
	if indicator.Code == "" || indicator.Name == "" {
		return util.Validationf("code and name are required")
	}
	if indicator.Type == "" {
		indicator.Type = model.IndicatorScaled
	}
	if indicator.Type != model.IndicatorBinary && indicator.Type != model.IndicatorScaled && indicator.Type != model.IndicatorCustom {
		return util.Validationf("unknown indicator type %q", indicator.Type)
	}
	if indicator.Weight < 0 {
		return util.Validationf("weight must not be negative")
	}
	if indicator.MaxScore < indicator.MinScore {
		return util.Validationf("max_score must not be below min_score")
	}

	if _, err := s.TopicRepo.FindByID(indicator.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundf("topic %d", indicator.TopicID)
		}
		return err
	}
	return nil
}

func (s *IndicatorService) Create(indicator *model.Indicator) error {
	if err := s.validate(indicator); err != nil {
		return err
	}
	return s.Repo.Create(indicator)
}

func (s *IndicatorService) Update(id uint, indicator *model.Indicator) (*model.Indicator, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(indicator); err != nil {
		return nil, err
	}

	existing.TopicID = indicator.TopicID
	existing.Code = indicator.Code
	existing.Name = indicator.Name
	existing.Description = indicator.Description
	existing.Type = indicator.Type
	existing.Weight = indicator.Weight
	existing.MinScore = indicator.MinScore
	existing.MaxScore = indicator.MaxScore
	existing.Active = indicator.Active
	existing.Topic = nil

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *IndicatorService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
