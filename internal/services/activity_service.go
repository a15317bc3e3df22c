package services

import "usdtstaking/internal/models"

type ActivityService struct {
	activityRepo ActivityStore
}

func NewActivityService(activityRepo ActivityStore) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
	}
}

func (s *ActivityService) GetUserActivities(userId uint64, offset, limit int) *[]models.Activity {
	return s.activityRepo.FindByUserLimit(userId, offset, limit)
}

func (s *ActivityService) GetAll(offset, limit int) *[]models.Activity {
	return s.activityRepo.FindAllLimit(offset, limit)
}
