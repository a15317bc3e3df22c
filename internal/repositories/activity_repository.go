package repositories

import (
	"context"
	"usdtstaking/internal/models"

	"github.com/jmoiron/sqlx"
)

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{
		db: db,
	}
}

// insertActivity appends an audit record inside an already-open
// transaction so balance-affecting writes and their audit trail commit
// together.
func insertActivity(ctx context.Context, tx *sqlx.Tx, act *models.Activity) error {
	if _, err := tx.NamedExecContext(
		ctx,
		"insert into activity (user_id, type, amount, details, created_at) values (:user_id, :type, :amount, :details, :created_at)",
		act,
	); err != nil {
		log.Error("Failed insert activity: ", err)
		return err
	}
	return nil
}

func (r *ActivityRepository) Save(act *models.Activity) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.Beginx()
	if err != nil {
		log.Error(err)
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

func (r *ActivityRepository) FindByUserLimit(userId uint64, offset, limit int) *[]models.Activity {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	activities := make([]models.Activity, 0)
	if err := r.db.SelectContext(
		ctx,
		&activities,
		"select * from activity where user_id = $1 order by created_at desc offset $2 limit $3",
		userId,
		offset,
		limit,
	); err != nil {
		log.Error("Failed find activities: ", err)
		return nil
	}

	return &activities
}

func (r *ActivityRepository) FindAllLimit(offset, limit int) *[]models.Activity {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	activities := make([]models.Activity, 0)
	if err := r.db.SelectContext(
		ctx,
		&activities,
		"select * from activity order by created_at desc offset $1 limit $2",
		offset,
		limit,
	); err != nil {
		log.Error("Failed find activities: ", err)
		return nil
	}

	return &activities
}
