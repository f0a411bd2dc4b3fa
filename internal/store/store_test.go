package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/scenario"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pathwise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testScenario(name string) scenario.Scenario {
	return scenario.Scenario{
		Name:        name,
		Description: "fleet electrification study",
		Parameters: scenario.Parameters{
			Years:             []int{2025, 2030, 2040},
			TargetReduction:   0.4,
			MaxAnnualChange:   0.1,
			VehicleTypes:      []string{"Passenger Cars", "Buses"},
			EnableConstraints: true,
			AdoptionRates: map[string]map[string]float64{
				"Passenger Cars": {"Battery Electric Car": 0.12},
			},
		},
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testScenario("baseline"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateKeepsCallerID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sc := testScenario("named")
	sc.ID = "sc-custom"
	created, err := s.Create(ctx, sc)
	require.NoError(t, err)
	assert.Equal(t, "sc-custom", created.ID)
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sc := testScenario("first")
	sc.ID = "sc-dup"
	_, err := s.Create(ctx, sc)
	require.NoError(t, err)

	_, err = s.Create(ctx, sc)
	require.ErrorIs(t, err, ErrScenarioExists)
}

func TestGetRoundTripsParameters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testScenario("roundtrip"))
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Parameters, got.Parameters)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "sc-missing")
	require.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := s.Create(ctx, testScenario(name))
		require.NoError(t, err)
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}
}

func TestUpdateReplacesParametersInFull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testScenario("evolving"))
	require.NoError(t, err)

	created.Name = "evolving v2"
	created.Parameters = scenario.Parameters{
		Years:             []int{2026, 2036},
		TargetReduction:   0.6,
		MaxAnnualChange:   0.2,
		VehicleTypes:      []string{"Buses"},
		EnableConstraints: false,
	}
	updated, err := s.Update(ctx, created)
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "evolving v2", got.Name)
	assert.Equal(t, created.Parameters, got.Parameters)
	// The old adoption rates must not survive the replacement.
	assert.Nil(t, got.Parameters.AdoptionRates)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
	assert.True(t, updated.UpdatedAt.Equal(got.UpdatedAt))
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestStore(t)

	sc := testScenario("ghost")
	sc.ID = "sc-ghost"
	_, err := s.Update(context.Background(), sc)
	require.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testScenario("doomed"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrScenarioNotFound)

	require.ErrorIs(t, s.Delete(ctx, created.ID), ErrScenarioNotFound)
}
