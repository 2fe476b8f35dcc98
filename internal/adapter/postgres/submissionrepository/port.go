// package postgres contains PostgreSQL implementations of repositories
package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/gradeview-2025.net/internal/core/ports/primary"
	"gitlab.com/gradeview-2025.net/internal/core/ports/secondary"
	"gitlab.com/gradeview-2025.net/internal/domain"
	querybuilder "gitlab.com/gradeview-2025.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// submissionRow is the flat join row; submitter columns come from users u,
// assignee columns from users g (nullable).
type submissionRow struct {
	ID                  uuid.UUID  `db:"id"`
	AssignmentID        uuid.UUID  `db:"assignment_id"`
	Grade               *float64   `db:"grade"`
	CreatedAt           time.Time  `db:"created_at"`
	UserID              uuid.UUID  `db:"user_id"`
	UserName            string     `db:"user_name"`
	UserDisplayName     string     `db:"user_display_name"`
	UserVirtual         bool       `db:"user_virtual"`
	AssigneeID          *uuid.UUID `db:"assignee_id"`
	AssigneeUserName    *string    `db:"assignee_user_name"`
	AssigneeDisplayName *string    `db:"assignee_display_name"`
}

func (row submissionRow) toDomain() *domain.Submission {
	sub := &domain.Submission{
		ID:           row.ID,
		AssignmentID: row.AssignmentID,
		Grade:        row.Grade,
		CreatedAt:    row.CreatedAt,
		User: domain.Users{
			ID:          row.UserID,
			UserName:    row.UserName,
			DisplayName: row.UserDisplayName,
			Virtual:     row.UserVirtual,
		},
	}
	if row.AssigneeID != nil {
		sub.Assignee = &domain.Users{
			ID:          *row.AssigneeID,
			UserName:    deref(row.AssigneeUserName),
			DisplayName: deref(row.AssigneeDisplayName),
		}
	}
	return sub
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

const submissionSelectCols = `
		s.id, s.assignment_id, s.grade, s.created_at,
		u.id AS user_id, u.user_name, u.display_name AS user_display_name, u.virtual AS user_virtual,
		g.id AS assignee_id, g.user_name AS assignee_user_name, g.display_name AS assignee_display_name`

// ListByAssignment retrieves all submissions of one assignment
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	subTbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(submissionSelectCols).
		From(subTbl.TableName()+" s").
		Join(querybuilder.JoinTypeInner, "users", "u", "u.id = s.user_id").
		Join(querybuilder.JoinTypeLeft, "users", "g", "g.id = s.assignee_id").
		Where("s."+subTbl.AssignmentID+" = ?", assignmentID).
		OrderBy("s."+subTbl.CreatedAt, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to list submissions", "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	subs := make([]*domain.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toDomain())
	}
	return subs, nil
}

// GetSubmission retrieves a submission by ID, nil when absent
func (r *SubmissionRepository) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	subTbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(submissionSelectCols).
		From(subTbl.TableName()+" s").
		Join(querybuilder.JoinTypeInner, "users", "u", "u.id = s.user_id").
		Join(querybuilder.JoinTypeLeft, "users", "g", "g.id = s.assignee_id").
		Where("s."+subTbl.ID+" = ?", submissionID).
		Limit(1).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var row submissionRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get submission", "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return row.toDomain(), nil
}

// CreateSubmission stores a new submission
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	subTbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			subTbl.ID,
			subTbl.AssignmentID,
			subTbl.UserID,
			subTbl.Grade,
			subTbl.CreatedAt,
		).
		Into(subTbl.TableName()).
		Values(sub.ID, sub.AssignmentID, sub.User.ID, sub.Grade, sub.CreatedAt).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save submission", "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// UpdateGrade sets or clears a submission's grade
func (r *SubmissionRepository) UpdateGrade(ctx context.Context, submissionID uuid.UUID, grade *float64) error {
	query := `UPDATE submissions SET grade = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, grade, submissionID)
	if err != nil {
		r.logger.Error("Failed to update grade", "error", err)
		return fmt.Errorf("failed to update grade: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("submission %s not found", submissionID)
	}

	return nil
}

// UpdateAssignee sets or clears the grader responsible for a submission
func (r *SubmissionRepository) UpdateAssignee(ctx context.Context, submissionID uuid.UUID, assigneeID *uuid.UUID) error {
	query := `UPDATE submissions SET assignee_id = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, assigneeID, submissionID)
	if err != nil {
		r.logger.Error("Failed to update assignee", "error", err)
		return fmt.Errorf("failed to update assignee: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("submission %s not found", submissionID)
	}

	return nil
}
