package repositories

import (
	"context"
	"time"
	"usdtstaking/internal/apperr"
	"usdtstaking/internal/models"

	"github.com/jmoiron/sqlx"
)

type WithdrawalRepository struct {
	db *sqlx.DB
}

func NewWithdrawalRepository(db *sqlx.DB) *WithdrawalRepository {
	return &WithdrawalRepository{
		db: db,
	}
}

// SaveRequest records a balance withdrawal request together with its
// audit entry.
func (r *WithdrawalRepository) SaveRequest(w *models.Withdrawal, act *models.Activity) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}

	if err := r.insertWithdrawal(ctx, tx, w); err != nil {
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

// SavePositionRequest closes a position into the withdrawal pipeline.
// The position update is guarded on requested_withdrawal = false so a
// second request on the same position aborts with InvalidStateError
// before the withdrawal row is written.
func (r *WithdrawalRepository) SavePositionRequest(w *models.Withdrawal, act *models.Activity) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}

	res, err := tx.ExecContext(
		ctx,
		"update staking_position set requested_withdrawal = true, withdrawal_status = $1, is_active = false where id = $2 and requested_withdrawal = false",
		models.WithdrawalPending,
		w.StakingPositionId,
	)
	if err != nil {
		log.Error("Failed to mark position withdrawal: ", err)
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
		return apperr.InvalidState("position already has a withdrawal in progress")
	}

	if err := r.insertWithdrawal(ctx, tx, w); err != nil {
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

func (r *WithdrawalRepository) insertWithdrawal(ctx context.Context, tx *sqlx.Tx, w *models.Withdrawal) error {
	query, args, err := tx.BindNamed(
		"insert into withdrawal (reference, user_id, staking_position_id, amount, network, wallet, status, created_at) values (:reference, :user_id, :staking_position_id, :amount, :network, :wallet, :status, :created_at) returning id",
		w,
	)
	if err != nil {
		log.Error("Failed to create new query: ", err)
		return err
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&w.Id); err != nil {
		log.Error("Failed to save withdrawal: ", err)
		return err
	}
	return nil
}

// Approve settles a pending withdrawal. For a balance withdrawal the
// amount leaves the user's balance here; for a position withdrawal the
// payout is principal-based, so only the position is closed out.
func (r *WithdrawalRepository) Approve(id int64, now time.Time) (*models.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return nil, err
	}

	var w models.Withdrawal
	if err := tx.QueryRowxContext(
		ctx,
		"update withdrawal set status = $1 where id = $2 and status = $3 returning *",
		models.WithdrawalApproved,
		id,
		models.WithdrawalPending,
	).StructScan(&w); err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return nil, apperr.InvalidState("withdrawal already processed")
	}

	if w.StakingPositionId.Valid {
		if _, err := tx.ExecContext(
			ctx,
			"update staking_position set withdrawal_status = $1, end_date = $2 where id = $3",
			models.WithdrawalApproved,
			now,
			w.StakingPositionId.Int64,
		); err != nil {
			log.Error("Failed to close position: ", err)
			if er := tx.Rollback(); er != nil {
				log.Error("Failed to rollback transaction: ", er)
			}
			return nil, err
		}
	} else {
		if _, err := tx.ExecContext(
			ctx,
			"update usr set balance = balance - $1 where id = $2",
			w.Amount,
			w.UserId,
		); err != nil {
			log.Error("Failed to debit balance: ", err)
			if er := tx.Rollback(); er != nil {
				log.Error("Failed to rollback transaction: ", er)
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return nil, err
	}

	return &w, nil
}

// Reject reopens the position (if any) so it keeps earning.
func (r *WithdrawalRepository) Reject(id int64) (*models.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
		return nil, err
	}

	var w models.Withdrawal
	if err := tx.QueryRowxContext(
		ctx,
		"update withdrawal set status = $1 where id = $2 and status = $3 returning *",
		models.WithdrawalRejected,
		id,
		models.WithdrawalPending,
	).StructScan(&w); err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return nil, apperr.InvalidState("withdrawal already processed")
	}

	if w.StakingPositionId.Valid {
		if _, err := tx.ExecContext(
			ctx,
			"update staking_position set withdrawal_status = $1, requested_withdrawal = false, is_active = true where id = $2",
			models.WithdrawalRejected,
			w.StakingPositionId.Int64,
		); err != nil {
			log.Error("Failed to reopen position: ", err)
			if er := tx.Rollback(); er != nil {
				log.Error("Failed to rollback transaction: ", er)
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return nil, err
	}

	return &w, nil
}

func (r *WithdrawalRepository) FindById(id int64) *models.Withdrawal {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var w models.Withdrawal
	if err := r.db.GetContext(ctx, &w, "select * from withdrawal where id = $1", id); err != nil {
		return nil
	}

	return &w
}

func (r *WithdrawalRepository) FindByUser(userId uint64) *[]models.Withdrawal {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	withdrawals := make([]models.Withdrawal, 0)
	if err := r.db.SelectContext(
		ctx,
		&withdrawals,
		"select * from withdrawal where user_id = $1 order by created_at desc",
		userId,
	); err != nil {
		log.Error("Failed find withdrawals: ", err)
		return nil
	}

	return &withdrawals
}

func (r *WithdrawalRepository) FindPending() *[]models.Withdrawal {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	withdrawals := make([]models.Withdrawal, 0)
	if err := r.db.SelectContext(
		ctx,
		&withdrawals,
		"select * from withdrawal where status = $1 order by created_at",
		models.WithdrawalPending,
	); err != nil {
		log.Error("Failed find pending withdrawals: ", err)
		return nil
	}

	return &withdrawals
}

func (r *WithdrawalRepository) SumPendingByUser(userId uint64) float64 {
	var res float64
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := r.db.QueryRowxContext(
		ctx,
		"select coalesce(sum(amount), 0) from withdrawal where user_id = $1 and status = $2 and staking_position_id is null",
		userId,
		models.WithdrawalPending,
	).Scan(&res); err != nil {
		log.Error("Failed sum pending withdrawals: ", err)
		return 0
	}

	return res
}
