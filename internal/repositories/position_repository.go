package repositories

import (
	"context"
	"time"
	"usdtstaking/internal/models"

	"github.com/jmoiron/sqlx"
)

type PositionRepository struct {
	db *sqlx.DB
}

func NewPositionRepository(db *sqlx.DB) *PositionRepository {
	return &PositionRepository{
		db: db,
	}
}

func (r *PositionRepository) Save(pos *models.StakingPosition, act *models.Activity) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}

	query, args, err := tx.BindNamed(
		"insert into staking_position (user_id, plan_id, plan_name, amount, network, apr, deposit_status, is_active, withdrawal_status, created_at) values (:user_id, :plan_id, :plan_name, :amount, :network, :apr, :deposit_status, :is_active, :withdrawal_status, :created_at) returning id",
		pos,
	)
	if err != nil {
		log.Error("Failed to create new query: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	if err := tx.QueryRowContext(ctx, query, args...).Scan(&pos.Id); err != nil {
		log.Error("Failed to save position: ", err)
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

func (r *PositionRepository) FindById(id uint64) *models.StakingPosition {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var pos models.StakingPosition
	if err := r.db.GetContext(ctx, &pos, "select * from staking_position where id = $1", id); err != nil {
		return nil
	}

	return &pos
}

func (r *PositionRepository) FindByUser(userId uint64) *[]models.StakingPosition {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	positions := make([]models.StakingPosition, 0)
	if err := r.db.SelectContext(
		ctx,
		&positions,
		"select * from staking_position where user_id = $1 order by created_at desc",
		userId,
	); err != nil {
		log.Error("Failed find positions: ", err)
		return nil
	}

	return &positions
}

// Approve moves a PENDING deposit to APPROVED and starts the accrual
// clock. Returns false when the position is not PENDING; nothing is
// written in that case.
func (r *PositionRepository) Approve(id uint64, now time.Time, act *models.Activity) (bool, error) {
	return r.transition(
		"update staking_position set deposit_status = $1, start_date = $2, is_active = true where id = $3 and deposit_status = $4",
		[]interface{}{models.DepositApproved, now, id, models.DepositPending},
		act,
	)
}

func (r *PositionRepository) Reject(id uint64, act *models.Activity) (bool, error) {
	return r.transition(
		"update staking_position set deposit_status = $1 where id = $2 and deposit_status = $3",
		[]interface{}{models.DepositRejected, id, models.DepositPending},
		act,
	)
}

func (r *PositionRepository) MarkUnstaked(id uint64, now time.Time, act *models.Activity) (bool, error) {
	return r.transition(
		"update staking_position set is_active = false, end_date = $1 where id = $2 and is_active = true",
		[]interface{}{now, id},
		act,
	)
}

func (r *PositionRepository) transition(query string, args []interface{}, act *models.Activity) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return false, err
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed position transition: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return false, err
	}
	if affected == 0 {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return false, nil
	}

	if err := insertActivity(ctx, tx, act); err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return false, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return false, err
	}

	return true, nil
}

func (r *PositionRepository) TotalStaked() float64 {
	var res float64
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := r.db.QueryRowxContext(
		ctx,
		"select coalesce(sum(amount), 0) from staking_position where is_active = true",
	).Scan(&res); err != nil {
		log.Error("Failed sum staked: ", err)
		return 0
	}

	return res
}

func (r *PositionRepository) CountActive() int {
	var res int
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := r.db.QueryRowxContext(
		ctx,
		"select count(*) from staking_position where is_active = true",
	).Scan(&res); err != nil {
		log.Error("Failed count active positions: ", err)
		return 0
	}

	return res
}

func (r *PositionRepository) FindPendingDeposits() *[]models.StakingPosition {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	positions := make([]models.StakingPosition, 0)
	if err := r.db.SelectContext(
		ctx,
		&positions,
		"select * from staking_position where deposit_status = $1 order by created_at",
		models.DepositPending,
	); err != nil {
		log.Error("Failed find pending deposits: ", err)
		return nil
	}

	return &positions
}
