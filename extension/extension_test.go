package extension

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/garage"
	"github.com/xraph/garage/store/memory"
)

func writeSnapshot(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBuildGarageFromSnapshotFile(t *testing.T) {
	path := writeSnapshot(t, `
occupants:
  - license_plate: HAI
    checkin_time: "2024-01-01 00:00:00"
`)
	e := New(WithSnapshotFile(path), WithTotalSpots(2))
	e.config = mergeWithDefaults(e.config)

	require.NoError(t, e.buildGarage())
	require.NotNil(t, e.Garage())
	assert.Equal(t, 2, e.Garage().TotalSpots(), "zero total_spots takes the configured capacity")

	ctx := context.Background()
	occupant, err := e.Garage().Occupant(ctx, "HAI")
	require.NoError(t, err)
	assert.Equal(t, garage.MustParseTimestamp("2024-01-01 00:00:00"), occupant.CheckinTime)

	free, err := e.Garage().FreeSpots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, free)

	require.NoError(t, e.Health(ctx))
}

func TestBuildGarageSnapshotCapacityWins(t *testing.T) {
	path := writeSnapshot(t, "total_spots: 7\n")
	e := New(WithSnapshotFile(path), WithTotalSpots(2))
	e.config = mergeWithDefaults(e.config)

	require.NoError(t, e.buildGarage())
	assert.Equal(t, 7, e.Garage().TotalSpots())
}

func TestBuildGarageUsesProvidedStore(t *testing.T) {
	s := memory.New()
	e := New(WithStore(s))
	e.config = mergeWithDefaults(e.config)

	require.NoError(t, e.buildGarage())
	require.NoError(t, e.Garage().Stop(context.Background()))
	assert.ErrorIs(t, e.Health(context.Background()), garage.ErrStoreClosed)
}

func TestBuildGarageRejectsInvalidSnapshot(t *testing.T) {
	path := writeSnapshot(t, `
total_spots: 1
occupants:
  - license_plate: A
    checkin_time: "2024-01-01 00:00:00"
  - license_plate: B
    checkin_time: "2024-01-01 00:00:00"
`)
	e := New(WithSnapshotFile(path))
	e.config = mergeWithDefaults(e.config)

	err := e.buildGarage()
	require.ErrorIs(t, err, garage.ErrCapacity)
	assert.Nil(t, e.Garage())
}

func TestBuildGarageMissingSnapshotFile(t *testing.T) {
	e := New(WithSnapshotFile(filepath.Join(t.TempDir(), "missing.yaml")))
	e.config = mergeWithDefaults(e.config)

	assert.Error(t, e.buildGarage())
}

func TestHealthBeforeBuild(t *testing.T) {
	assert.Error(t, New().Health(context.Background()))
}
