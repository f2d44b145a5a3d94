package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resort-backend/models"
)

func postBookingForm(t *testing.T, r http.Handler, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/bookings", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingMissingFields(t *testing.T) {
	r, _ := testRouter(t)

	w := postBookingForm(t, r, map[string]string{
		"name": "Ravi Kumar",
		"room": "AC Deluxe Room",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Missing required fields", resp["message"])
}

func TestCreateBookingFlow(t *testing.T) {
	r, db := testRouter(t)
	seedTestRoom(t, db, "AC Deluxe Room", 1200, 15, 201, 215)

	w := postBookingForm(t, r, map[string]string{
		"name":     "Ravi Kumar",
		"contact":  "9876543210",
		"room":     "AC Deluxe Room",
		"checkin":  "2026-10-01",
		"checkout": "2026-10-04",
		"adult":    "2",
		"child":    "1",
		"members":  `[{"name":"Meena","contact":"9876500000","age":30,"gender":"Female"}]`,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Booking successful", resp["message"])

	var booking models.Booking
	require.NoError(t, db.Where("name = ?", "Ravi Kumar").First(&booking).Error)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, 3, booking.NoOfPersons)

	var guests int64
	require.NoError(t, db.Model(&models.Guest{}).Where("booking_id = ?", booking.ID).Count(&guests).Error)
	assert.Equal(t, int64(2), guests)
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	r, _ := testRouter(t)

	w := postBookingForm(t, r, map[string]string{
		"name":     "Ravi Kumar",
		"contact":  "9876543210",
		"room":     "Penthouse",
		"checkin":  "2026-10-01",
		"checkout": "2026-10-04",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Room not found", resp["message"])
}

func TestCreateBookingAllRoomsBooked(t *testing.T) {
	r, db := testRouter(t)
	seedTestRoom(t, db, "Family Suite", 1800, 1, 1, 1)

	fields := map[string]string{
		"name":     "Ravi Kumar",
		"contact":  "9876543210",
		"room":     "Family Suite",
		"checkin":  "2026-10-01",
		"checkout": "2026-10-04",
	}
	w := postBookingForm(t, r, fields)
	require.Equal(t, http.StatusOK, w.Code)

	w = postBookingForm(t, r, fields)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "All rooms are booked for selected dates", resp["message"])
}

func TestUpdateBookingCheckInAndOut(t *testing.T) {
	r, db := testRouter(t)
	seedTestRoom(t, db, "AC Deluxe Room", 1200, 15, 201, 215)

	w := postBookingForm(t, r, map[string]string{
		"name":     "Ravi Kumar",
		"contact":  "9876543210",
		"room":     "AC Deluxe Room",
		"checkin":  "2026-10-01",
		"checkout": "2026-10-04",
		"adult":    "2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	require.NoError(t, db.First(&booking).Error)

	doPut := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", fmt.Sprintf("/api/bookings/%d", booking.ID), bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w2 := doPut(`{"status":"Checked In"}`)
	assert.Equal(t, http.StatusOK, w2.Code)
	var updated models.Booking
	require.NoError(t, db.First(&updated, booking.ID).Error)
	require.NotNil(t, updated.RoomNo)
	assert.Equal(t, 201, *updated.RoomNo)

	w2 = doPut(`{"status":"Checked Out"}`)
	assert.Equal(t, http.StatusOK, w2.Code)
	require.NoError(t, db.First(&updated, booking.ID).Error)
	require.NotNil(t, updated.TotalBill)
	assert.Equal(t, 3*1200*2, *updated.TotalBill)

	w2 = doPut(`{"status":"Pending"}`)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
	var resp map[string]interface{}
	json.Unmarshal(w2.Body.Bytes(), &resp)
	assert.Equal(t, "Booking status can only move forward", resp["message"])
}

func TestDeleteBooking(t *testing.T) {
	r, db := testRouter(t)
	seedTestRoom(t, db, "AC Deluxe Room", 1200, 15, 201, 215)

	w := postBookingForm(t, r, map[string]string{
		"name":     "Ravi Kumar",
		"contact":  "9876543210",
		"room":     "AC Deluxe Room",
		"checkin":  "2026-10-01",
		"checkout": "2026-10-04",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	require.NoError(t, db.First(&booking).Error)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/bookings/%d", booking.ID), nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	var resp map[string]interface{}
	json.Unmarshal(w2.Body.Bytes(), &resp)
	assert.Equal(t, "Booking & guests deleted", resp["message"])

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/bookings/%d", booking.ID), nil)
	w2 = httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}

func TestGetAvailability(t *testing.T) {
	r, db := testRouter(t)
	seedTestRoom(t, db, "AC Deluxe Room", 1200, 15, 201, 215)

	stay := models.Booking{
		Name: "A", Contact: "1", Room: "AC Deluxe Room",
		Checkin:  testDay(2026, time.October, 1),
		Checkout: testDay(2026, time.October, 4),
	}
	require.NoError(t, db.Create(&stay).Error)

	req := httptest.NewRequest("GET", "/api/bookings/availability/2026-10-02", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "AC Deluxe Room", rows[0]["room"])
	assert.Equal(t, float64(1), rows[0]["count"])

	req = httptest.NewRequest("GET", "/api/bookings/availability/not-a-date", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
