package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slabworks/cardstand/internal/domain"
)

func TestCleanupJob_Process(t *testing.T) {
	repo := &MockRepository{}
	repo.On("CleanupOldEvents", mock.Anything, 30).Return(int64(7), nil)

	job := NewCleanupJob(NewService(repo), 30)

	assert.NoError(t, job.Process(context.Background()))
	repo.AssertExpectations(t)
}

func TestCleanupJob_Process_Error(t *testing.T) {
	repo := &MockRepository{}
	repo.On("CleanupOldEvents", mock.Anything, 30).Return(int64(0), domain.ErrDatabaseError)

	job := NewCleanupJob(NewService(repo), 30)

	assert.ErrorIs(t, job.Process(context.Background()), domain.ErrDatabaseError)
	repo.AssertExpectations(t)
}
