package repositories

import (
	"context"
	"time"
	"usdtstaking/internal/config"
	"usdtstaking/internal/models"

	"github.com/jmoiron/sqlx"
)

var log = config.InitLogger()

const queryTimeout = 30 * time.Second

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (u *UserRepository) Save(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := u.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}
	query, args, err := tx.BindNamed(
		"insert into usr (email, username, password_hash, referral_code, referred_by, created_at) values (:email, :username, :password_hash, :referral_code, :referred_by, :created_at) returning id",
		user,
	)
	if err != nil {
		log.Error("Failed insert user ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&user.Id)
	if err != nil {
		log.Error("Failed save user ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction")
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
			return er
		}
		return err
	}

	return nil
}

func (u *UserRepository) Update(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	tx, err := u.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}
	_, err = tx.NamedExecContext(
		ctx,
		"update usr set email = :email, username = :username, last_login_at = :last_login_at where id = :id",
		user,
	)
	if err != nil {
		log.Error("failed update user: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction")
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
			return er
		}
		return err
	}

	return nil
}

func (u *UserRepository) RecordLogin(userId uint64, now time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := u.db.Beginx()
	if err != nil {
		log.Error(err)
		return err
	}
	if _, err := tx.ExecContext(
		ctx,
		"update usr set last_login_at = $1 where id = $2",
		now,
		userId,
	); err != nil {
		log.Error("Failed record login: ", err)
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}
	if err := insertActivity(ctx, tx, &models.Activity{
		UserId:    userId,
		Type:      models.ActivityLogin,
		CreatedAt: now,
	}); err != nil {
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction")
		if er := tx.Rollback(); er != nil {
			log.Error("Failed to rollback transaction: ", er)
			return er
		}
		return err
	}

	return nil
}

func (u *UserRepository) FindById(id uint64) *models.User {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var user models.User

	err := u.db.GetContext(
		ctx,
		&user,
		"select * from usr where id = $1",
		id,
	)

	if err != nil {
		return nil
	}

	return &user
}

func (u *UserRepository) FindByEmail(email string) *models.User {
	var user models.User

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := u.db.GetContext(
		ctx,
		&user,
		"select * from usr where email = $1",
		email,
	)
	if err != nil {
		return nil
	}

	return &user
}

func (u *UserRepository) FindByReferralCode(code string) *models.User {
	var user models.User

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := u.db.GetContext(
		ctx,
		&user,
		"select * from usr where referral_code = $1",
		code,
	)
	if err != nil {
		return nil
	}

	return &user
}

func (u *UserRepository) FindReferrals(referrerId uint64) *[]models.User {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	users := make([]models.User, 0)

	if err := u.db.SelectContext(
		ctx,
		&users,
		"select * from usr where referred_by = $1",
		referrerId,
	); err != nil {
		log.Error("Failed find referrals ", err)
		return nil
	}

	return &users
}

func (u *UserRepository) CountReferrals(referrerId uint64) int {
	var res int
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := u.db.QueryRowxContext(
		ctx,
		"select count(*) from usr where referred_by = $1",
		referrerId,
	).Scan(&res); err != nil {
		log.Error("Failed count referrals ", err)
		return 0
	}

	return res
}
