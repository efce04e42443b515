package triage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-reconciliation/internal/domain"
	mock_triage "trade-reconciliation/internal/triage/mocks"
)

func TestComputePolicy(t *testing.T) {
	t.Run("empty event log learns nothing", func(t *testing.T) {
		pol := ComputePolicy(nil)
		require.NotNil(t, pol)
		assert.Zero(t, pol.EventCount)
		_, ok := pol.Destination(domain.ReasonNotionalMismatch)
		assert.False(t, ok)
	})

	t.Run("highest cumulative reward wins", func(t *testing.T) {
		pol := ComputePolicy([]domain.RewardEvent{
			{ReasonCode: domain.ReasonNotionalMismatch, Destination: domain.RouteOpsDesk, Reward: 1.0},
			{ReasonCode: domain.ReasonNotionalMismatch, Destination: domain.RouteOpsDesk, Reward: 1.0},
			{ReasonCode: domain.ReasonNotionalMismatch, Destination: domain.RouteSeniorOps, Reward: 0.5},
		})
		dest, ok := pol.Destination(domain.ReasonNotionalMismatch)
		require.True(t, ok)
		assert.Equal(t, domain.RouteOpsDesk, dest)
		assert.Equal(t, 3, pol.EventCount)
	})

	t.Run("non-positive cumulative reward yields no preference", func(t *testing.T) {
		pol := ComputePolicy([]domain.RewardEvent{
			{ReasonCode: domain.ReasonDateMismatch, Destination: domain.RouteOpsDesk, Reward: -1.0},
			{ReasonCode: domain.ReasonDateMismatch, Destination: domain.RouteDataOps, Reward: -0.5},
		})
		_, ok := pol.Destination(domain.ReasonDateMismatch)
		assert.False(t, ok)
	})

	t.Run("ties break alphabetically and deterministically", func(t *testing.T) {
		events := []domain.RewardEvent{
			{ReasonCode: domain.ReasonDateMismatch, Destination: domain.RouteOpsDesk, Reward: 1.0},
			{ReasonCode: domain.ReasonDateMismatch, Destination: domain.RouteDataOps, Reward: 1.0},
		}
		for i := 0; i < 20; i++ {
			dest, ok := ComputePolicy(events).Destination(domain.ReasonDateMismatch)
			require.True(t, ok)
			assert.Equal(t, domain.RouteDataOps, dest)
		}
	})
}

func TestPolicy_SeverityCorrection(t *testing.T) {
	pol := ComputePolicy([]domain.RewardEvent{
		{ReasonCode: domain.ReasonDateMismatch, Destination: domain.RouteOpsDesk, Reward: -1.0},
		{ReasonCode: domain.ReasonCurrencyMismatch, Destination: domain.RouteOpsDesk, Reward: 1.0},
		{ReasonCode: domain.ReasonNotionalMismatch, Destination: domain.RouteOpsDesk, Reward: 0.5},
	})

	assert.InDelta(t, 0.10, pol.SeverityCorrection(domain.ReasonDateMismatch), 1e-9)
	assert.InDelta(t, -0.10, pol.SeverityCorrection(domain.ReasonCurrencyMismatch), 1e-9)
	assert.InDelta(t, -0.05, pol.SeverityCorrection(domain.ReasonNotionalMismatch), 1e-9)
	assert.Zero(t, pol.SeverityCorrection("UNSEEN_REASON"))
}

func TestPolicyProvider_Current(t *testing.T) {
	ctx := context.Background()

	t.Run("nil provider and nil store degrade to no policy", func(t *testing.T) {
		var pp *PolicyProvider
		assert.Nil(t, pp.Current(ctx))
		assert.NoError(t, pp.Refresh(ctx))

		pp = NewPolicyProvider(nil, time.Minute)
		assert.Nil(t, pp.Current(ctx))
	})

	t.Run("computes once then serves from cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mock_triage.NewMockPolicyStore(ctrl)
		store.EXPECT().ListRewards(ctx).Return([]domain.RewardEvent{
			{ReasonCode: domain.ReasonDateMismatch, Destination: domain.RouteDataOps, Reward: 1.0},
		}, nil).Times(1)

		pp := NewPolicyProvider(store, time.Minute)

		first := pp.Current(ctx)
		require.NotNil(t, first)
		dest, ok := first.Destination(domain.ReasonDateMismatch)
		require.True(t, ok)
		assert.Equal(t, domain.RouteDataOps, dest)

		// Second lookup hits the cache; the mock enforces a single store call.
		assert.Same(t, first, pp.Current(ctx))
	})

	t.Run("store failure degrades to no policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mock_triage.NewMockPolicyStore(ctrl)
		store.EXPECT().ListRewards(ctx).Return(nil, errors.New("db locked"))

		pp := NewPolicyProvider(store, time.Minute)
		assert.Nil(t, pp.Current(ctx))
	})

	t.Run("refresh bypasses the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := mock_triage.NewMockPolicyStore(ctrl)
		store.EXPECT().ListRewards(ctx).Return(nil, nil).Times(2)

		pp := NewPolicyProvider(store, time.Minute)
		require.NotNil(t, pp.Current(ctx))
		require.NoError(t, pp.Refresh(ctx))
	})
}
