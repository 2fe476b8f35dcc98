package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gitlab.com/gradeview-2025.net/internal/adapter/logging"
	"gitlab.com/gradeview-2025.net/internal/core/services/review"
	"gitlab.com/gradeview-2025.net/internal/domain"
	"gitlab.com/gradeview-2025.net/internal/static/errs"
)

type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubmissionRepo) UpdateGrade(ctx context.Context, submissionID uuid.UUID, grade *float64) error {
	args := m.Called(ctx, submissionID, grade)
	return args.Error(0)
}

func (m *MockSubmissionRepo) UpdateAssignee(ctx context.Context, submissionID uuid.UUID, assigneeID *uuid.UUID) error {
	args := m.Called(ctx, submissionID, assigneeID)
	return args.Error(0)
}

type MockUserPort struct {
	mock.Mock
}

func (m *MockUserPort) Create(ctx context.Context, user *domain.Users) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserPort) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Users), args.Error(1)
}

func (m *MockUserPort) GetByEmail(ctx context.Context, email string) (*domain.Users, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Users), args.Error(1)
}

func (m *MockUserPort) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Users), args.Error(1)
}

func (m *MockUserPort) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Users), args.Error(1)
}

var (
	submissionID = uuid.MustParse("018f0000-0000-7000-8000-000000000001")
	assignmentID = uuid.MustParse("018f0000-0000-7000-8000-0000000000aa")
	graderID     = uuid.MustParse("018f0000-0000-7000-8000-0000000000bb")
)

func gradePtr(g float64) *float64 { return &g }

func storedSubmission() *domain.Submission {
	return &domain.Submission{
		ID:           submissionID,
		AssignmentID: assignmentID,
		User:         domain.Users{ID: graderID, UserName: "ann", DisplayName: "ann"},
		CreatedAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newService(repo *MockSubmissionRepo, users *MockUserPort) review.IReviewService {
	return review.NewReviewService(repo, users, logging.NewZapLogger())
}

func TestSetGrade(t *testing.T) {
	repo := new(MockSubmissionRepo)
	users := new(MockUserPort)
	svc := newService(repo, users)

	repo.On("GetSubmission", mock.Anything, submissionID).Return(storedSubmission(), nil)
	repo.On("UpdateGrade", mock.Anything, submissionID, mock.Anything).Return(nil)

	sub, err := svc.SetGrade(context.Background(), submissionID, gradePtr(7.5))

	assert.NoError(t, err)
	if assert.NotNil(t, sub.Grade) {
		assert.Equal(t, 7.5, *sub.Grade)
	}
}

func TestSetGradeOutOfRange(t *testing.T) {
	repo := new(MockSubmissionRepo)
	users := new(MockUserPort)
	svc := newService(repo, users)

	_, err := svc.SetGrade(context.Background(), submissionID, gradePtr(11))

	assert.ErrorIs(t, err, errs.GradeOutOfRange)
	repo.AssertNotCalled(t, "UpdateGrade", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetGradeClears(t *testing.T) {
	repo := new(MockSubmissionRepo)
	users := new(MockUserPort)
	svc := newService(repo, users)

	graded := storedSubmission()
	graded.Grade = gradePtr(5)
	repo.On("GetSubmission", mock.Anything, submissionID).Return(graded, nil)
	repo.On("UpdateGrade", mock.Anything, submissionID, (*float64)(nil)).Return(nil)

	sub, err := svc.SetGrade(context.Background(), submissionID, nil)

	assert.NoError(t, err)
	assert.Nil(t, sub.Grade)
	repo.AssertExpectations(t)
}

func TestSetGradeUnknownSubmission(t *testing.T) {
	repo := new(MockSubmissionRepo)
	users := new(MockUserPort)
	svc := newService(repo, users)

	repo.On("GetSubmission", mock.Anything, submissionID).Return(nil, nil)

	_, err := svc.SetGrade(context.Background(), submissionID, gradePtr(5))

	assert.ErrorIs(t, err, errs.SubmissionNotFound)
}

func TestAssignGrader(t *testing.T) {
	repo := new(MockSubmissionRepo)
	users := new(MockUserPort)
	svc := newService(repo, users)

	grader := &domain.Users{ID: graderID, UserName: "alice", DisplayName: "Alice"}
	repo.On("GetSubmission", mock.Anything, submissionID).Return(storedSubmission(), nil)
	users.On("Get", mock.Anything, graderID).Return(grader, nil)
	repo.On("UpdateAssignee", mock.Anything, submissionID, &graderID).Return(nil)

	sub, err := svc.AssignGrader(context.Background(), submissionID, &graderID)

	assert.NoError(t, err)
	if assert.NotNil(t, sub.Assignee) {
		assert.Equal(t, graderID, sub.Assignee.ID)
	}
}

func TestAssignGraderUnknownGrader(t *testing.T) {
	repo := new(MockSubmissionRepo)
	users := new(MockUserPort)
	svc := newService(repo, users)

	repo.On("GetSubmission", mock.Anything, submissionID).Return(storedSubmission(), nil)
	users.On("Get", mock.Anything, graderID).Return(nil, nil)

	_, err := svc.AssignGrader(context.Background(), submissionID, &graderID)

	assert.ErrorIs(t, err, errs.GraderNotFound)
	repo.AssertNotCalled(t, "UpdateAssignee", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandIn(t *testing.T) {
	repo := new(MockSubmissionRepo)
	users := new(MockUserPort)
	svc := newService(repo, users)

	author := &domain.Users{ID: graderID, UserName: "ann", DisplayName: "ann"}
	users.On("Get", mock.Anything, graderID).Return(author, nil)
	repo.On("CreateSubmission", mock.Anything, mock.MatchedBy(func(sub *domain.Submission) bool {
		return sub.AssignmentID == assignmentID && sub.User.ID == graderID && sub.ID != uuid.Nil
	})).Return(nil)

	sub, err := svc.HandIn(context.Background(), assignmentID, graderID)

	assert.NoError(t, err)
	assert.Equal(t, assignmentID, sub.AssignmentID)
	assert.False(t, sub.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}
