package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

func TestManageAnvil(t *testing.T) {
	ctx := context.Background()
	running := &domain.AnvilStatus{Running: true, PID: 4242, RPCHealthy: true}
	stopped := &domain.AnvilStatus{}

	t.Run("start", func(t *testing.T) {
		m := new(MockAnvilManager)
		m.On("Start", ctx, mock.Anything).Return(nil)
		m.On("GetStatus", ctx, mock.Anything).Return(running, nil)

		result, err := usecase.NewManageAnvil(m, &MockProgressSink{}).Execute(ctx, usecase.ManageAnvilParams{
			Operation: usecase.AnvilStart, Name: "harness", Port: "9545",
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Anvil 'harness' started with PID 4242", result.Message)
		assert.Equal(t, "9545", result.Instance.Port)
	})

	t.Run("start failure", func(t *testing.T) {
		m := new(MockAnvilManager)
		m.On("Start", ctx, mock.Anything).Return(errors.New("already running"))

		_, err := usecase.NewManageAnvil(m, &MockProgressSink{}).Execute(ctx, usecase.ManageAnvilParams{Operation: usecase.AnvilStart})
		assert.ErrorContains(t, err, "failed to start anvil: already running")
	})

	t.Run("stop when not running", func(t *testing.T) {
		m := new(MockAnvilManager)
		m.On("GetStatus", ctx, mock.Anything).Return(stopped, nil)

		result, err := usecase.NewManageAnvil(m, &MockProgressSink{}).Execute(ctx, usecase.ManageAnvilParams{Operation: usecase.AnvilStop, Name: "anvil"})
		require.NoError(t, err)
		assert.Equal(t, "Anvil 'anvil' is not running", result.Message)
		m.AssertNotCalled(t, "Stop", mock.Anything, mock.Anything)
	})

	t.Run("restart", func(t *testing.T) {
		m := new(MockAnvilManager)
		m.On("GetStatus", ctx, mock.Anything).Return(running, nil)
		m.On("Stop", ctx, mock.Anything).Return(nil).Once()
		m.On("Start", ctx, mock.Anything).Return(nil).Once()

		result, err := usecase.NewManageAnvil(m, &MockProgressSink{}).Execute(ctx, usecase.ManageAnvilParams{Operation: usecase.AnvilRestart, Name: "anvil"})
		require.NoError(t, err)
		assert.Equal(t, usecase.AnvilRestart, result.Operation)
		m.AssertExpectations(t)
	})

	t.Run("logs", func(t *testing.T) {
		var buf bytes.Buffer
		m := new(MockAnvilManager)
		m.On("GetStatus", ctx, mock.Anything).Return(stopped, nil)
		m.On("StreamLogs", ctx, mock.Anything, &buf).Return(nil)
		progress := &MockProgressSink{}

		_, err := usecase.NewManageAnvil(m, progress).Execute(ctx, usecase.ManageAnvilParams{Operation: usecase.AnvilLogs, Name: "anvil", Logs: &buf})
		require.NoError(t, err)
		require.Len(t, progress.infos, 1)
		assert.Contains(t, progress.infos[0], "not running")

		_, err = usecase.NewManageAnvil(m, progress).Execute(ctx, usecase.ManageAnvilParams{Operation: usecase.AnvilLogs})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := usecase.NewManageAnvil(new(MockAnvilManager), &MockProgressSink{}).Execute(ctx, usecase.ManageAnvilParams{Operation: "explode"})
		assert.EqualError(t, err, "unknown operation: explode")
	})
}
