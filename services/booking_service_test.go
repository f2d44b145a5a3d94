package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-backend/models"
)

func newBookingService(t *testing.T) *BookingService {
	t.Helper()
	db := setupTestDB(t)
	return NewBookingService(db, NewAvailabilityService(db))
}

func makeBooking(room string, checkin, checkout time.Time) models.Booking {
	return models.Booking{
		Name:     "Ravi Kumar",
		Contact:  "9876543210",
		Room:     room,
		Adults:   2,
		Checkin:  checkin,
		Checkout: checkout,
	}
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	svc := newBookingService(t)

	b := makeBooking("Penthouse", day(2026, time.July, 1), day(2026, time.July, 3))
	err := svc.CreateBooking(&b, nil)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBookingWritesCountersAndRoster(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "AC Deluxe Room", 1200, 15, 201, 215)

	b := makeBooking("AC Deluxe Room", day(2026, time.July, 1), day(2026, time.July, 3))
	members := []BookingMember{{Name: "Meena", Contact: "9876500000", Age: 30, Gender: "Female"}}
	require.NoError(t, svc.CreateBooking(&b, members))

	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, 3, b.NoOfPersons)

	var room models.Room
	require.NoError(t, svc.DB.Where("title = ?", "AC Deluxe Room").First(&room).Error)
	assert.Equal(t, 1, room.BookedRooms)

	// Booker row plus one member row, all pointing back at the booking.
	var guests []models.Guest
	require.NoError(t, svc.DB.Where("booking_id = ?", b.ID).Find(&guests).Error)
	require.Len(t, guests, 2)
	assert.Equal(t, "Ravi Kumar", guests[0].MemberName)
	assert.Equal(t, "N/A", guests[0].MemberGender)
	assert.Equal(t, "TBD", guests[0].RoomNo)
	assert.Equal(t, "Meena", guests[1].MemberName)
}

func TestCreateBookingRejectedWhenTypeFull(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "Family Suite", 1800, 5, 1, 5)

	checkin := day(2026, time.August, 10)
	checkout := day(2026, time.August, 12)
	for i := 0; i < 5; i++ {
		b := makeBooking("Family Suite", checkin, checkout)
		require.NoError(t, svc.CreateBooking(&b, nil))
	}

	sixth := makeBooking("Family Suite", checkin, checkout)
	err := svc.CreateBooking(&sixth, nil)
	assert.ErrorIs(t, err, ErrNoVacancy)

	// A rejected booking leaves the counter untouched.
	var room models.Room
	require.NoError(t, svc.DB.Where("title = ?", "Family Suite").First(&room).Error)
	assert.Equal(t, 5, room.BookedRooms)
}

func TestCreateBookingSameDayTurnover(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "Family Suite", 1800, 1, 1, 1)

	first := makeBooking("Family Suite", day(2026, time.August, 10), day(2026, time.August, 12))
	require.NoError(t, svc.CreateBooking(&first, nil))

	// Checks in the day the first stay checks out.
	second := makeBooking("Family Suite", day(2026, time.August, 12), day(2026, time.August, 14))
	require.NoError(t, svc.CreateBooking(&second, nil))
}

func TestCreateBookingExplicitRoomNumberConflict(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "AC Deluxe Room", 1200, 15, 201, 215)

	checkin := day(2026, time.September, 1)
	checkout := day(2026, time.September, 3)

	first := makeBooking("AC Deluxe Room", checkin, checkout)
	first.RoomNo = intPtr(205)
	require.NoError(t, svc.CreateBooking(&first, nil))

	second := makeBooking("AC Deluxe Room", checkin, checkout)
	second.RoomNo = intPtr(205)
	err := svc.CreateBooking(&second, nil)
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	// The same number on disjoint dates is fine.
	third := makeBooking("AC Deluxe Room", checkout, day(2026, time.September, 5))
	third.RoomNo = intPtr(205)
	assert.NoError(t, svc.CreateBooking(&third, nil))
}

func TestUpdateBookingStatusForwardOnly(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "AC Deluxe Room", 1200, 15, 201, 215)

	b := makeBooking("AC Deluxe Room", day(2026, time.October, 1), day(2026, time.October, 4))
	require.NoError(t, svc.CreateBooking(&b, nil))

	// Pending -> Checked In assigns a number and stamps the time.
	upd, err := svc.UpdateBooking(b.ID, BookingUpdate{Status: strPtr(models.StatusCheckedIn)})
	require.NoError(t, err)
	require.NotNil(t, upd.RoomNo)
	assert.Equal(t, 201, *upd.RoomNo)
	assert.NotNil(t, upd.CheckInTime)

	// Checked In -> Pending is a regression.
	_, err = svc.UpdateBooking(b.ID, BookingUpdate{Status: strPtr(models.StatusPending)})
	assert.ErrorIs(t, err, ErrStatusRegression)

	// Checked In -> Checked Out computes the bill: 3 nights x 1200 x 2 persons.
	upd, err = svc.UpdateBooking(b.ID, BookingUpdate{Status: strPtr(models.StatusCheckedOut)})
	require.NoError(t, err)
	require.NotNil(t, upd.TotalBill)
	assert.Equal(t, 3*1200*2, *upd.TotalBill)
	assert.NotNil(t, upd.CheckOutTime)

	// No way back from Checked Out either.
	_, err = svc.UpdateBooking(b.ID, BookingUpdate{Status: strPtr(models.StatusCheckedIn)})
	assert.ErrorIs(t, err, ErrStatusRegression)

	// Same status twice is a no-op, not an error.
	_, err = svc.UpdateBooking(b.ID, BookingUpdate{Status: strPtr(models.StatusCheckedOut)})
	assert.NoError(t, err)

	_, err = svc.UpdateBooking(b.ID, BookingUpdate{Status: strPtr("Archived")})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestUpdateBookingKeepsExplicitNumberOnCheckIn(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "AC Deluxe Room", 1200, 15, 201, 215)

	b := makeBooking("AC Deluxe Room", day(2026, time.October, 1), day(2026, time.October, 2))
	b.RoomNo = intPtr(210)
	require.NoError(t, svc.CreateBooking(&b, nil))

	upd, err := svc.UpdateBooking(b.ID, BookingUpdate{Status: strPtr(models.StatusCheckedIn)})
	require.NoError(t, err)
	require.NotNil(t, upd.RoomNo)
	assert.Equal(t, 210, *upd.RoomNo)
}

func TestUpdateBookingRoomNumberConflict(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "AC Deluxe Room", 1200, 15, 201, 215)

	checkin := day(2026, time.November, 1)
	checkout := day(2026, time.November, 3)

	holder := makeBooking("AC Deluxe Room", checkin, checkout)
	holder.RoomNo = intPtr(201)
	require.NoError(t, svc.CreateBooking(&holder, nil))

	other := makeBooking("AC Deluxe Room", checkin, checkout)
	require.NoError(t, svc.CreateBooking(&other, nil))

	_, err := svc.UpdateBooking(other.ID, BookingUpdate{RoomNo: intPtr(201)})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	got, err := svc.UpdateBooking(other.ID, BookingUpdate{RoomNo: intPtr(202)})
	require.NoError(t, err)
	assert.Equal(t, 202, *got.RoomNo)
}

func TestUpdateBookingInvalidDates(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "AC Deluxe Room", 1200, 15, 201, 215)

	b := makeBooking("AC Deluxe Room", day(2026, time.November, 1), day(2026, time.November, 3))
	require.NoError(t, svc.CreateBooking(&b, nil))

	badCheckout := day(2026, time.October, 30)
	_, err := svc.UpdateBooking(b.ID, BookingUpdate{Checkout: &badCheckout})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestDeleteBookingCascadesAndRecounts(t *testing.T) {
	svc := newBookingService(t)
	seedRoom(t, svc.DB, "AC Deluxe Room", 1200, 15, 201, 215)

	// Future stays so the recount sees them.
	ci := time.Now().AddDate(0, 1, 0)
	co := ci.AddDate(0, 0, 2)

	first := makeBooking("AC Deluxe Room", ci, co)
	require.NoError(t, svc.CreateBooking(&first, []BookingMember{{Name: "Meena", Age: 30, Gender: "Female"}}))
	second := makeBooking("AC Deluxe Room", ci, co)
	second.Name = "Suresh"
	second.Contact = "9123456780"
	require.NoError(t, svc.CreateBooking(&second, nil))

	require.NoError(t, svc.DeleteBooking(first.ID))

	_, err := svc.GetByID(first.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	var orphans int64
	require.NoError(t, svc.DB.Model(&models.Guest{}).Where("booking_id = ?", first.ID).Count(&orphans).Error)
	assert.Equal(t, int64(0), orphans)

	// Counter is recomputed from the ledger, not decremented.
	var room models.Room
	require.NoError(t, svc.DB.Where("title = ?", "AC Deluxe Room").First(&room).Error)
	assert.Equal(t, 1, room.BookedRooms)

	// The surviving booking's roster is untouched.
	var kept int64
	require.NoError(t, svc.DB.Model(&models.Guest{}).Where("booking_id = ?", second.ID).Count(&kept).Error)
	assert.Equal(t, int64(1), kept)
}

func TestDeleteBookingMissing(t *testing.T) {
	svc := newBookingService(t)
	err := svc.DeleteBooking(9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
