package repositories

import (
	"context"
	"usdtstaking/internal/models"

	"github.com/jmoiron/sqlx"
)

type PlanRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{
		db: db,
	}
}

func (r *PlanRepository) FindById(id uint64) *models.StakingPlan {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var plan models.StakingPlan
	if err := r.db.GetContext(ctx, &plan, "select * from staking_plan where id = $1", id); err != nil {
		return nil
	}

	return &plan
}

func (r *PlanRepository) FindAll() *[]models.StakingPlan {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	plans := make([]models.StakingPlan, 0)
	if err := r.db.SelectContext(ctx, &plans, "select * from staking_plan order by min_amount"); err != nil {
		log.Error("Failed find plans: ", err)
		return nil
	}

	return &plans
}
