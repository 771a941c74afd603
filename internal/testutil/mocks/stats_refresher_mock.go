package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockStatsRefresher is a mock implementation of services.StatsRefresher
type MockStatsRefresher struct {
	mock.Mock
}

func (m *MockStatsRefresher) EnqueueStatsRefresh(userID int64) {
	m.Called(userID)
}
