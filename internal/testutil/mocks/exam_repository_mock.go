package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mhartley/sqeprep/internal/models"
)

// MockExamRepository is a mock implementation of repository.ExamRepository
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) InsertExam(ctx context.Context, exam models.MockExam) (int64, error) {
	args := m.Called(ctx, exam)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExamRepository) GetExam(ctx context.Context, id int64) (*models.MockExam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MockExam), args.Error(1)
}

func (m *MockExamRepository) GetActiveExam(ctx context.Context, userID int64) (*models.MockExam, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MockExam), args.Error(1)
}

func (m *MockExamRepository) UpdateExam(ctx context.Context, exam models.MockExam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) ListExams(ctx context.Context, userID int64, limit int) ([]models.MockExam, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MockExam), args.Error(1)
}

func (m *MockExamRepository) Stats(ctx context.Context, userID int64) (*models.ExamStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamStats), args.Error(1)
}
