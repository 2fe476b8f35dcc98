package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	"gitlab.com/gradeview-2025.net/internal/core/ports/secondary"
	"gitlab.com/gradeview-2025.net/internal/domain"
	querybuilder "gitlab.com/gradeview-2025.net/internal/utils"
)

var _ secondary.UserPort = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) Create(ctx context.Context, user *domain.Users) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		user.ID = id
	}

	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).Insert(
		userTbl.ID, userTbl.UserName, userTbl.DisplayName, userTbl.PasswordHash,
		userTbl.Email,
		userTbl.AuthProvider, userTbl.GoogleID,
	).
		Into(userTbl.GetTableName()).
		Values(
			user.ID, user.UserName, user.DisplayName, user.PasswordHash,
			user.Email,
			user.AuthProvider, user.GoogleID,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := u.db.ExecContext(ctx, query, args...)

	return err
}

func (u userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getOne(ctx, userTbl.ID+" = ?", id)
}

func (u userRepo) GetByEmail(ctx context.Context, email string) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getOne(ctx, userTbl.Email+" = ?", email)
}

func (u userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getOne(ctx, userTbl.GoogleID+" = ?", googleID)
}

func (u userRepo) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getOne(ctx, userTbl.UserName+" = ?", userName)
}

func (u userRepo) getOne(ctx context.Context, clause string, arg interface{}) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(
			userTbl.ID, userTbl.UserName, userTbl.DisplayName,
			userTbl.PasswordHash, userTbl.Email,
			userTbl.AuthProvider, userTbl.GoogleID, userTbl.Virtual,
		).
		From(userTbl.GetTableName()).
		Where(clause, arg).
		Limit(1).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var user domain.Users
	err := u.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		u.logger.Error("Failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
