package repositories

import (
	"context"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"

	"github.com/jmoiron/sqlx"
)

type RewardRepository struct {
	db *sqlx.DB
}

func NewRewardRepository(db *sqlx.DB) *RewardRepository {
	return &RewardRepository{
		db: db,
	}
}

// SaveClaim applies one claim in a single transaction: advance the
// accrual cursor, insert the reward row, increment the user balance and
// append the audit record. The cursor advance is guarded so that of two
// racing claims only one can pass; the loser gets AlreadyClaimedError
// and no other statement of its transaction runs.
func (r *RewardRepository) SaveClaim(pos *models.StakingPosition, reward *models.Reward, act *models.Activity) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}

	res, err := tx.ExecContext(
		ctx,
		"update staking_position set last_claimed_at = $1, next_claim_deadline = $2 where id = $3 and is_active = true and (last_claimed_at is null or next_claim_deadline < $1)",
		reward.ClaimedAt,
		pos.NextClaimDeadline,
		pos.Id,
	)
	if err != nil {
		log.Error("Failed to advance claim cursor: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}
	if affected == 0 {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return apperr.AlreadyClaimed("reward already claimed for the current period")
	}

	query, args, err := tx.BindNamed(
		"insert into reward (user_id, staking_position_id, amount, status, claimed_at) values (:user_id, :staking_position_id, :amount, :status, :claimed_at) returning id",
		reward,
	)
	if err != nil {
		log.Error("Failed to create new query: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&reward.Id); err != nil {
		log.Error("Failed to save reward: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	if _, err := tx.ExecContext(
		ctx,
		"update usr set balance = balance + $1 where id = $2",
		reward.Amount,
		reward.UserId,
	); err != nil {
		log.Error("Failed to credit balance: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	if err := insertActivity(ctx, tx, act); err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	return nil
}

func (r *RewardRepository) FindByUser(userId uint64) *[]models.Reward {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rewards := make([]models.Reward, 0)
	if err := r.db.SelectContext(
		ctx,
		&rewards,
		"select * from reward where user_id = $1 order by claimed_at desc",
		userId,
	); err != nil {
		log.Error("Failed find rewards: ", err)
		return nil
	}

	return &rewards
}

func (r *RewardRepository) TotalClaimedByUser(userId uint64) float64 {
	var res float64
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := r.db.QueryRowxContext(
		ctx,
		"select coalesce(sum(amount), 0) from reward where user_id = $1 and status = $2",
		userId,
		models.RewardClaimed,
	).Scan(&res); err != nil {
		log.Error("Failed sum rewards: ", err)
		return 0
	}

	return res
}

func (r *RewardRepository) TotalPaid() float64 {
	var res float64
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := r.db.QueryRowxContext(
		ctx,
		"select coalesce(sum(amount), 0) from reward where status = $1",
		models.RewardClaimed,
	).Scan(&res); err != nil {
		log.Error("Failed sum rewards: ", err)
		return 0
	}

	return res
}
