package driver_test

import (
	"testing"
	"time"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSample(t *testing.T, reportedAt time.Time) driver.LocationSample {
	t.Helper()
	point, err := kernel.NewGeoPoint(41.01, 28.97)
	require.NoError(t, err)

	sample, err := driver.NewLocationSample(point, reportedAt, nil, nil)
	require.NoError(t, err)
	return sample
}

func TestNewDriver(t *testing.T) {
	t.Run("creates available driver without position", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "Ayşe")

		require.NoError(t, err)
		assert.True(t, d.Available())
		assert.Nil(t, d.LastSample())
		assert.Nil(t, d.ActiveConsignment())
		assert.False(t, d.HasActiveConsignment())
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := driver.NewDriver(kernel.NewUUID(), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var d *driver.Driver
		require.ErrorIs(t, d.Validate(), driver.ErrDriverIsNotConstructed)
	})
}

func TestNewLocationSample(t *testing.T) {
	point, _ := kernel.NewGeoPoint(41.01, 28.97)

	t.Run("accepts optional speed and heading", func(t *testing.T) {
		speed := 12.5
		heading := 270.0

		sample, err := driver.NewLocationSample(point, time.Now(), &speed, &heading)

		require.NoError(t, err)
		assert.Equal(t, 12.5, *sample.Speed())
		assert.Equal(t, 270.0, *sample.Heading())
	})

	t.Run("rejects zero timestamp", func(t *testing.T) {
		_, err := driver.NewLocationSample(point, time.Time{}, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects negative speed", func(t *testing.T) {
		speed := -1.0
		_, err := driver.NewLocationSample(point, time.Now(), &speed, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects heading outside range", func(t *testing.T) {
		heading := 360.0
		_, err := driver.NewLocationSample(point, time.Now(), nil, &heading)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects unconstructed point", func(t *testing.T) {
		var zero kernel.GeoPoint
		_, err := driver.NewLocationSample(zero, time.Now(), nil, nil)
		require.Error(t, err)
	})
}

func TestDriver_ReportLocation(t *testing.T) {
	t.Run("first report is stored", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		sample := makeSample(t, time.Now())

		require.NoError(t, d.ReportLocation(sample))

		require.NotNil(t, d.LastSample())
		assert.Equal(t, sample.ReportedAt(), d.LastSample().ReportedAt())
	})

	t.Run("newer sample replaces stored one", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		base := time.Now()
		require.NoError(t, d.ReportLocation(makeSample(t, base)))

		newer := makeSample(t, base.Add(10*time.Second))
		require.NoError(t, d.ReportLocation(newer))

		assert.Equal(t, newer.ReportedAt(), d.LastSample().ReportedAt())
	})

	t.Run("out-of-order sample is rejected and ignored", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		base := time.Now()
		stored := makeSample(t, base)
		require.NoError(t, d.ReportLocation(stored))

		err := d.ReportLocation(makeSample(t, base.Add(-time.Minute)))

		require.ErrorIs(t, err, errs.ErrStaleSample)
		assert.Equal(t, stored.ReportedAt(), d.LastSample().ReportedAt(),
			"stored location must be unchanged")
	})

	t.Run("exact duplicate timestamp is treated as stale", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		base := time.Now()
		require.NoError(t, d.ReportLocation(makeSample(t, base)))

		err := d.ReportLocation(makeSample(t, base))

		require.ErrorIs(t, err, errs.ErrStaleSample)
	})
}

func TestDriver_IsFreshAt(t *testing.T) {
	staleness := 5 * time.Minute

	t.Run("driver without reports is never fresh", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		assert.False(t, d.IsFreshAt(time.Now(), staleness))
	})

	t.Run("recent sample is fresh", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		now := time.Now()
		require.NoError(t, d.ReportLocation(makeSample(t, now.Add(-time.Minute))))

		assert.True(t, d.IsFreshAt(now, staleness))
	})

	t.Run("sample older than threshold is stale", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		now := time.Now()
		require.NoError(t, d.ReportLocation(makeSample(t, now.Add(-6*time.Minute))))

		assert.False(t, d.IsFreshAt(now, staleness))
	})
}

func TestDriver_BindConsignment(t *testing.T) {
	t.Run("binds a free driver", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		consignmentID := kernel.NewUUID()

		require.NoError(t, d.BindConsignment(consignmentID))

		assert.True(t, d.HasActiveConsignment())
		assert.True(t, d.ActiveConsignment().IsEqual(consignmentID))
	})

	t.Run("rebinding the same consignment is a no-op", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		consignmentID := kernel.NewUUID()
		require.NoError(t, d.BindConsignment(consignmentID))

		require.NoError(t, d.BindConsignment(consignmentID))

		assert.True(t, d.ActiveConsignment().IsEqual(consignmentID))
	})

	t.Run("binding a second consignment conflicts", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		first := kernel.NewUUID()
		require.NoError(t, d.BindConsignment(first))

		err := d.BindConsignment(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, d.ActiveConsignment().IsEqual(first), "binding must be unchanged")
	})
}

func TestDriver_ReleaseConsignment(t *testing.T) {
	t.Run("clears the binding", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		require.NoError(t, d.BindConsignment(kernel.NewUUID()))

		d.ReleaseConsignment()

		assert.False(t, d.HasActiveConsignment())
	})

	t.Run("releasing an unbound driver is a no-op", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Ayşe")
		d.ReleaseConsignment()
		assert.False(t, d.HasActiveConsignment())
	})
}

func TestRestoreDriver(t *testing.T) {
	t.Run("restores binding and sample", func(t *testing.T) {
		sample := makeSample(t, time.Now())
		consignmentID := kernel.NewUUID()

		d, err := driver.RestoreDriver(kernel.NewUUID(), "Ayşe", false, &sample, &consignmentID)

		require.NoError(t, err)
		assert.False(t, d.Available())
		assert.True(t, d.ActiveConsignment().IsEqual(consignmentID))
		require.NotNil(t, d.LastSample())
	})

	t.Run("rejects unconstructed sample", func(t *testing.T) {
		var zero driver.LocationSample

		_, err := driver.RestoreDriver(kernel.NewUUID(), "Ayşe", true, &zero, nil)

		require.Error(t, err)
	})
}
