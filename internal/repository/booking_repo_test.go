package repository

import (
	"context"
	"testing"
	"time"

	"studiobooking/internal/database"
	"studiobooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupDB gives each test a fresh in-memory SQLite with the full schema
// and one approved studio with a generated day of slots.
func setupDB(t *testing.T) (*gorm.DB, *domain.Studio, time.Time) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	studio := &domain.Studio{
		OwnerID:   1,
		Name:      "Daylight Studio",
		OpenHour:  9,
		CloseHour: 18,
		Status:    domain.StudioApproved,
		Packages:  []domain.Package{{Key: "basic", PricePerHour: 500}},
	}
	require.NoError(t, NewStudioRepository(db).Create(context.Background(), studio))

	date := domain.NormalizeDate(time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC))
	_, err = NewAvailabilityRepository(db).GenerateRange(context.Background(), studio.ID, date, date, studio.OpenHour, studio.CloseHour)
	require.NoError(t, err)

	return db, studio, date
}

func TestBookingRepository_CreateWithSlots_ClosesHours(t *testing.T) {
	db, studio, date := setupDB(t)
	bookings := NewBookingRepository(db)
	slots := NewAvailabilityRepository(db)
	ctx := context.Background()

	b := &domain.Booking{
		StudioID:      studio.ID,
		CustomerID:    42,
		Date:          date,
		Hours:         []int{10, 11},
		PackageKey:    "basic",
		TotalPrice:    1000,
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, b))
	assert.NotZero(t, b.ID)

	free, err := slots.ListAvailableHours(ctx, studio.ID, date)
	require.NoError(t, err)
	assert.NotContains(t, free, 10)
	assert.NotContains(t, free, 11)
	assert.Contains(t, free, 9)

	cnt, err := bookings.CountByHour(ctx, studio.ID, date, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestBookingRepository_CreateWithSlots_Conflict(t *testing.T) {
	db, studio, date := setupDB(t)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	first := &domain.Booking{
		StudioID: studio.ID, CustomerID: 42, Date: date,
		Hours: []int{10, 11}, PackageKey: "basic",
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, first))

	second := &domain.Booking{
		StudioID: studio.ID, CustomerID: 43, Date: date,
		Hours: []int{11, 12}, PackageKey: "basic",
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	err := bookings.CreateWithSlots(ctx, second)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// The losing transaction must roll back completely: hour 12 stays free
	// and no second booking row exists.
	free, err := NewAvailabilityRepository(db).ListAvailableHours(ctx, studio.ID, date)
	require.NoError(t, err)
	assert.Contains(t, free, 12)

	all, err := bookings.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	cnt, err := bookings.CountByHour(ctx, studio.ID, date, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestBookingRepository_CreateWithSlots_NoDayGenerated(t *testing.T) {
	db, studio, date := setupDB(t)
	bookings := NewBookingRepository(db)

	b := &domain.Booking{
		StudioID: studio.ID, CustomerID: 42,
		Date:  date.AddDate(0, 0, 7), // never generated
		Hours: []int{10}, PackageKey: "basic",
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	err := bookings.CreateWithSlots(context.Background(), b)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestBookingRepository_DeleteWithRestore(t *testing.T) {
	db, studio, date := setupDB(t)
	bookings := NewBookingRepository(db)
	slots := NewAvailabilityRepository(db)
	ctx := context.Background()

	b := &domain.Booking{
		StudioID: studio.ID, CustomerID: 42, Date: date,
		Hours: []int{10, 11}, PackageKey: "basic",
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, b))

	require.NoError(t, bookings.DeleteWithRestore(ctx, b.ID))

	free, err := slots.ListAvailableHours(ctx, studio.ID, date)
	require.NoError(t, err)
	assert.Contains(t, free, 10)
	assert.Contains(t, free, 11)

	_, err = bookings.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	cnt, err := bookings.CountByHour(ctx, studio.ID, date, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	// The freed hours are immediately bookable again.
	again := &domain.Booking{
		StudioID: studio.ID, CustomerID: 43, Date: date,
		Hours: []int{10, 11}, PackageKey: "basic",
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	assert.NoError(t, bookings.CreateWithSlots(ctx, again))
}

func TestAvailabilityRepository_GenerateRange_PreservesToggledSlots(t *testing.T) {
	db, studio, date := setupDB(t)
	slots := NewAvailabilityRepository(db)
	ctx := context.Background()

	require.NoError(t, slots.SetSlotAvailability(ctx, studio.ID, date, 10, false))

	// Regenerating the same range must not re-open hour 10.
	_, err := slots.GenerateRange(ctx, studio.ID, date, date, studio.OpenHour, studio.CloseHour)
	require.NoError(t, err)

	free, err := slots.ListAvailableHours(ctx, studio.ID, date)
	require.NoError(t, err)
	assert.NotContains(t, free, 10)
	assert.Contains(t, free, 9)
}

func TestAvailabilityRepository_ListAvailableHours_Sorted(t *testing.T) {
	db, studio, date := setupDB(t)
	slots := NewAvailabilityRepository(db)

	free, err := slots.ListAvailableHours(context.Background(), studio.ID, date)
	require.NoError(t, err)
	require.NotEmpty(t, free)
	for i := 1; i < len(free); i++ {
		assert.Less(t, free[i-1], free[i])
	}
	assert.Equal(t, 9, free[0])
	assert.Equal(t, 17, free[len(free)-1]) // close hour is exclusive
}

func TestAvailabilityRepository_ListAvailableDates(t *testing.T) {
	db, studio, date := setupDB(t)
	slots := NewAvailabilityRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	dates, err := slots.ListAvailableDates(ctx, studio.ID)
	require.NoError(t, err)
	require.Len(t, dates, 1)

	// Book every hour of the day; the date must drop out.
	all := []int{9, 10, 11, 12, 13, 14, 15, 16, 17}
	b := &domain.Booking{
		StudioID: studio.ID, CustomerID: 42, Date: date,
		Hours: all, PackageKey: "basic",
		PaymentStatus: domain.PaymentPayAtStudio,
	}
	require.NoError(t, bookings.CreateWithSlots(ctx, b))

	dates, err = slots.ListAvailableDates(ctx, studio.ID)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestAvailabilityRepository_GetDay_MissingDay(t *testing.T) {
	db, studio, date := setupDB(t)
	slots := NewAvailabilityRepository(db)

	_, err := slots.GetDay(context.Background(), studio.ID, date.AddDate(0, 0, 3))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
