package services

import (
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"
)

type PlanService struct {
	planRepo PlanStore
}

func NewPlanService(planRepo PlanStore) *PlanService {
	return &PlanService{
		planRepo: planRepo,
	}
}

func (s *PlanService) GetById(id uint64) (*models.StakingPlan, error) {
	plan := s.planRepo.FindById(id)
	if plan == nil {
		return nil, apperr.NotFound("staking plan not found")
	}

	return plan, nil
}

func (s *PlanService) GetAll() *[]models.StakingPlan {
	return s.planRepo.FindAll()
}
