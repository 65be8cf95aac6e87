package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	eventsBySlug map[string]*domain.Event

	createEventErr    error
	createEventResult *domain.Event
	lastCreateAttrs   domain.EventAttrs

	updateEventErr    error
	updateEventResult *domain.Event
	lastUpdateID      string
	lastUpdatePatch   domain.EventPatch

	getBySlugErr error
	lastGetSlug  string

	listEventsErr    error
	listEventsResult []*domain.Event
	listEventsTotal  int

	similarErr    error
	similarResult []*domain.Event
	lastSimilarN  int
}

func (f *fakeEventService) CreateEvent(ctx context.Context, attrs domain.EventAttrs) (*domain.Event, error) {
	f.lastCreateAttrs = attrs
	if f.createEventErr != nil {
		return nil, f.createEventErr
	}
	return f.createEventResult, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastUpdateID = id
	f.lastUpdatePatch = patch
	if f.updateEventErr != nil {
		return nil, f.updateEventErr
	}
	return f.updateEventResult, nil
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastGetSlug = slug
	if f.getBySlugErr != nil {
		return nil, f.getBySlugErr
	}
	if e, ok := f.eventsBySlug[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listEventsErr != nil {
		return nil, 0, f.listEventsErr
	}
	return f.listEventsResult, f.listEventsTotal, nil
}

func (f *fakeEventService) GetSimilarEvents(ctx context.Context, slug string, limit int) ([]*domain.Event, error) {
	f.lastSimilarN = limit
	if f.similarErr != nil {
		return nil, f.similarErr
	}
	if f.eventsBySlug != nil {
		if _, ok := f.eventsBySlug[slug]; !ok {
			return nil, domain.ErrNotFound
		}
	}
	return f.similarResult, nil
}

func sampleEvent() *domain.Event {
	return &domain.Event{
		Title:     "JSConf EU 2026",
		Slug:      "jsconf-eu-2026",
		Venue:     "CityCube",
		Location:  "Berlin, Germany",
		Date:      "2026-05-23",
		Time:      "09:00",
		Agenda:    []string{"Opening keynote"},
		Tags:      []string{"javascript"},
		Organizer: "JSConf",
	}
}

func TestEventController_GetEventBySlug(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		eventsBySlug   map[string]*domain.Event
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:         "success",
			slug:         "jsconf-eu-2026",
			eventsBySlug: map[string]*domain.Event{"jsconf-eu-2026": sampleEvent()},
			wantStatus:   http.StatusOK,
		},
		{
			name:         "mixed case slug normalized before lookup",
			slug:         " JSConf-EU-2026 ",
			eventsBySlug: map[string]*domain.Event{"jsconf-eu-2026": sampleEvent()},
			wantStatus:   http.StatusOK,
		},
		{
			name:           "whitespace-only slug",
			slug:           "   ",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "valid event slug",
		},
		{
			name:           "not found names the slug",
			slug:           "no-such-event",
			eventsBySlug:   map[string]*domain.Event{},
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: `"no-such-event"`,
		},
		{
			name:           "unexpected failure",
			slug:           "jsconf-eu-2026",
			fakeErr:        errors.New("store unreachable"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "store unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{
				eventsBySlug: tt.eventsBySlug,
				getBySlugErr: tt.fakeErr,
			}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "http://test/events/x", nil)
			req.SetPathValue("slug", tt.slug)
			rr := httptest.NewRecorder()

			ctrl.GetEventBySlug(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			body := rr.Body.String()
			if tt.wantStatus == http.StatusOK {
				var resp EventResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				require.NotNil(t, resp.Event)
				assert.Equal(t, "jsconf-eu-2026", resp.Event.Slug)
				assert.Equal(t, "jsconf-eu-2026", fake.lastGetSlug, "slug must be normalized before the service call")
				assert.NotEmpty(t, resp.Message)
				return
			}
			var msg map[string]any
			require.NoError(t, json.Unmarshal([]byte(body), &msg))
			require.Contains(t, msg, "message")
			if tt.wantStatus == http.StatusInternalServerError {
				require.Contains(t, msg, "error")
			}
			if tt.wantBodySubstr != "" {
				assert.Contains(t, body, tt.wantBodySubstr)
			}
		})
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := `{
		"title": "JSConf EU 2026",
		"description": "The JavaScript conference",
		"overview": "Two days of talks",
		"image": "/images/event1.png",
		"venue": "CityCube",
		"location": "Berlin, Germany",
		"date": "2026-05-23",
		"time": "9:00",
		"mode": "offline",
		"audience": "developers",
		"agenda": ["Opening keynote"],
		"organizer": "JSConf",
		"tags": ["javascript"]
	}`

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
			name:           "missing title",
			body:           `{"description": "x"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "title is required",
		},
		{
			name:           "malformed body",
			body:           `{"title": `,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "Invalid request body",
		},
		{
			name:           "unknown field rejected",
			body:           `{"title": "x", "bogus": true}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "Invalid request body",
		},
		{
			name:           "validation error from service",
			body:           validBody,
			fakeErr:        domain.NewValidationError("date", "cannot be parsed as a calendar date"),
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "date",
		},
		{
			name:           "slug collision",
			body:           validBody,
			fakeErr:        domain.ErrDuplicateSlug,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "slug",
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
			fake := &fakeEventService{
				createEventErr:    tt.fakeErr,
				createEventResult: sampleEvent(),
			}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/events", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusCreated {
				var resp EventResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				require.NotNil(t, resp.Event)
				assert.Equal(t, "JSConf EU 2026", fake.lastCreateAttrs.Title)
				return
			}
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "updated",
			id:         "65f000000000000000000001",
			body:       `{"description": "fresh"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing id",
			id:             " ",
			body:           `{"description": "fresh"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "valid event id",
		},
		{
			name:           "not found",
			id:             "65f000000000000000000002",
			body:           `{"description": "fresh"}`,
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "was not found",
		},
		{
			name:           "validation error",
			id:             "65f000000000000000000001",
			body:           `{"time": "24:00"}`,
			fakeErr:        domain.NewValidationError("time", "must represent a valid 24-hour clock value"),
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "time",
		},
		{
			name:           "slug collision",
			id:             "65f000000000000000000001",
			body:           `{"title": "Taken Title"}`,
			fakeErr:        domain.ErrDuplicateSlug,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{
				updateEventErr:    tt.fakeErr,
				updateEventResult: sampleEvent(),
			}
			ctrl := NewEventController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPatch, "http://test/events/x", strings.NewReader(tt.body))
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			ctrl.UpdateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				var resp EventResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				require.NotNil(t, resp.Event)
				assert.Equal(t, strings.TrimSpace(tt.id), fake.lastUpdateID)
				return
			}
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("success with pagination meta", func(t *testing.T) {
		fake := &fakeEventService{
			listEventsResult: []*domain.Event{sampleEvent()},
			listEventsTotal:  42,
		}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events?page=2&page_size=10", nil)
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp EventListResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Events, 1)
		assert.Equal(t, 2, resp.Pagination.Page)
		assert.Equal(t, 10, resp.Pagination.PageSize)
		assert.Equal(t, 42, resp.Pagination.Total)
		assert.Equal(t, 5, resp.Pagination.TotalPages)
	})

	t.Run("service error", func(t *testing.T) {
		fake := &fakeEventService{listEventsErr: errors.New("store unreachable")}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestEventController_GetSimilarEvents(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeEventService{
			eventsBySlug:  map[string]*domain.Event{"jsconf-eu-2026": sampleEvent()},
			similarResult: []*domain.Event{sampleEvent()},
		}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/jsconf-eu-2026/similar", nil)
		req.SetPathValue("slug", "jsconf-eu-2026")
		rr := httptest.NewRecorder()

		ctrl.GetSimilarEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp SimilarEventsResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp.Events, 1)
		assert.Equal(t, similarEventsLimit, fake.lastSimilarN)
	})

	t.Run("unknown slug", func(t *testing.T) {
		fake := &fakeEventService{eventsBySlug: map[string]*domain.Event{}}
		ctrl := NewEventController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/events/ghost/similar", nil)
		req.SetPathValue("slug", "ghost")
		rr := httptest.NewRecorder()

		ctrl.GetSimilarEvents(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
