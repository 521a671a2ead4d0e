package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type publicFixture struct {
	router       *gin.Engine
	shops        *fakeShops
	availability *fakeAvailability
	slots        *fakeSlots
	create       *fakeCreator
}

func newPublicFixture() *publicFixture {
	f := &publicFixture{
		shops: &fakeShops{barbers: []models.User{
			{ID: 10, Name: "Ana", PhotoURL: "https://cdn/ana.webp"},
			{ID: 11, Name: "Bruno"},
		}},
		availability: &fakeAvailability{out: &domain.Availability{
			Date:    "2026-10-19",
			Barbers: []domain.BarberSlots{{BarberID: 10, Name: "Ana", Slots: []string{"09:00", "09:30"}}},
			Merged:  []string{"09:00", "09:30"},
		}},
		slots:  &fakeSlots{out: &ucAppointment.SlotCheck{Available: true}},
		create: &fakeCreator{},
	}

	h := NewPublicHandler(nil, f.shops, f.availability, f.slots, f.create)

	r := gin.New()
	g := r.Group("/api/public/:slug")
	g.GET("/barbers", h.ListBarbers)
	g.GET("/availability", h.Availability)
	g.GET("/availability/check", h.CheckSlot)
	g.POST("/appointments", h.CreateAppointment)
	f.router = r
	return f
}

func TestPublicAvailability(t *testing.T) {
	f := newPublicFixture()

	w := do(f.router, http.MethodGet, "/api/public/navalha/availability?date=2026-10-19&barber_id=10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body domain.Availability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"09:00", "09:30"}, body.Merged)

	assert.Equal(t, uint(1), f.availability.got.BarbershopID)
	assert.Equal(t, uint(10), f.availability.got.BarberID)
	assert.Equal(t, "America/Sao_Paulo", f.availability.got.Date.Location().String())
	assert.Equal(t, 19, f.availability.got.Date.Day())
}

func TestPublicAvailabilityAllBarbers(t *testing.T) {
	f := newPublicFixture()

	w := do(f.router, http.MethodGet, "/api/public/navalha/availability?date=2026-10-19", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, f.availability.got.BarberID)
}

func TestPublicAvailabilityErrors(t *testing.T) {
	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/public/navalha/availability", http.StatusBadRequest, "missing_date"},
		{"/api/public/navalha/availability?date=19-10-2026", http.StatusBadRequest, "invalid_date"},
		{"/api/public/navalha/availability?date=2026-10-19&barber_id=x", http.StatusBadRequest, "invalid_barber_id"},
		{"/api/public/nope/availability?date=2026-10-19", http.StatusNotFound, "barbershop_not_found"},
	}

	for _, tc := range cases {
		w := do(newPublicFixture().router, http.MethodGet, tc.path, nil)
		assert.Equal(t, tc.status, w.Code, tc.path)
		assert.Equal(t, tc.code, errorCode(t, w), tc.path)
	}
}

func TestPublicAvailabilityLookupFailure(t *testing.T) {
	f := newPublicFixture()
	f.availability.out = nil
	f.availability.err = ucAppointment.ErrLookup

	w := do(f.router, http.MethodGet, "/api/public/navalha/availability?date=2026-10-19", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "lookup_failed", errorCode(t, w))
}

func TestPublicCheckSlot(t *testing.T) {
	f := newPublicFixture()

	w := do(f.router, http.MethodGet, "/api/public/navalha/availability/check?barber_id=10&date=2026-10-19&time=09:30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available":true}`, w.Body.String())
	assert.Equal(t, "09:30", f.slots.got.Time)

	w = do(f.router, http.MethodGet, "/api/public/navalha/availability/check?date=2026-10-19&time=09:30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicListBarbers(t *testing.T) {
	f := newPublicFixture()

	w := do(f.router, http.MethodGet, "/api/public/navalha/barbers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[
		{"id":10,"name":"Ana","photo_url":"https://cdn/ana.webp"},
		{"id":11,"name":"Bruno"}
	],"total":2}`, w.Body.String())
}

func TestPublicCreateAppointment(t *testing.T) {
	f := newPublicFixture()

	payload := map[string]any{
		"barber_id":    10,
		"client_name":  "Carla",
		"client_phone": "11999990000",
		"product_id":   5,
		"date":         "2026-10-19",
		"time":         "09:30",
	}

	w := do(f.router, http.MethodPost, "/api/public/navalha/appointments", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, uint(10), f.create.got.BarberID)
	assert.Nil(t, f.create.got.ActorID)

	payload["time"] = "9h30"
	w = do(f.router, http.MethodPost, "/api/public/navalha/appointments", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))

	payload["time"] = "09:30"
	f.create.err = httperr.ErrBusiness("time_conflict")
	w = do(f.router, http.MethodPost, "/api/public/navalha/appointments", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "time_conflict", errorCode(t, w))
}
