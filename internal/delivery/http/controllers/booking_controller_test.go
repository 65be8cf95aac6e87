package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createErr    error
	createResult *domain.Booking
	lastEventID  string
	lastEmail    string

	listErr    error
	listResult []*domain.Booking
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEventID = eventID
	f.lastEmail = email
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeBookingService) ListEventBookings(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	f.lastEventID = eventID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func TestBookingController_CreateBooking(t *testing.T) {
	eventID := primitive.NewObjectID()
	booking := &domain.Booking{
		ID:      primitive.NewObjectID(),
		EventID: eventID,
		Email:   "user@example.com",
	}
	validBody := `{"event_id": "` + eventID.Hex() + `", "email": "user@example.com"}`

	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "created",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing fields",
			body:           `{}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "event_id is required; email is required",
		},
		{
			name:           "malformed email",
			body:           `{"event_id": "` + eventID.Hex() + `", "email": "not-an-email"}`,
			fakeErr:        domain.NewValidationError("email", "must be a valid email address"),
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "email",
		},
		{
			name:           "event does not exist",
			body:           validBody,
			fakeErr:        domain.ErrEventNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "does not exist",
		},
		{
			name:           "unexpected failure",
			body:           validBody,
			fakeErr:        errors.New("store unreachable"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "store unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{
				createErr:    tt.fakeErr,
				createResult: booking,
			}
			ctrl := NewBookingController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/bookings", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusCreated {
				var resp BookingResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				require.NotNil(t, resp.Booking)
				assert.Equal(t, eventID.Hex(), fake.lastEventID)
				assert.Equal(t, "user@example.com", fake.lastEmail)
				return
			}
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
		})
	}
}

func TestBookingController_ListEventBookings(t *testing.T) {
	eventID := primitive.NewObjectID()

	tests := []struct {
		name       string
		id         string
		fakeErr    error
		wantStatus int
	}{
		{"success", eventID.Hex(), nil, http.StatusOK},
		{"missing id", "  ", nil, http.StatusBadRequest},
		{"event does not exist", eventID.Hex(), domain.ErrEventNotFound, http.StatusNotFound},
		{"unexpected failure", eventID.Hex(), errors.New("store unreachable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{
				listErr:    tt.fakeErr,
				listResult: []*domain.Booking{{ID: primitive.NewObjectID(), EventID: eventID}},
			}
			ctrl := NewBookingController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/x/bookings", nil)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			ctrl.ListEventBookings(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				var resp BookingListResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Len(t, resp.Bookings, 1)
			}
		})
	}
}
