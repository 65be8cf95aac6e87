package services

import (
	"context"
	"fmt"
	"time"

	"eventbooking/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, attrs domain.EventAttrs) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized, err := domain.ValidateAndNormalize(attrs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event := &domain.Event{
		Title:       normalized.Title,
		Slug:        domain.Slugify(normalized.Title),
		Description: normalized.Description,
		Overview:    normalized.Overview,
		Image:       normalized.Image,
		Venue:       normalized.Venue,
		Location:    normalized.Location,
		Date:        normalized.Date,
		Time:        normalized.Time,
		Mode:        normalized.Mode,
		Audience:    normalized.Audience,
		Agenda:      normalized.Agenda,
		Organizer:   normalized.Organizer,
		Tags:        normalized.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	attrs := domain.EventAttrs{
		Title:       existing.Title,
		Description: existing.Description,
		Overview:    existing.Overview,
		Image:       existing.Image,
		Venue:       existing.Venue,
		Location:    existing.Location,
		Date:        existing.Date,
		Time:        existing.Time,
		Mode:        existing.Mode,
		Audience:    existing.Audience,
		Agenda:      existing.Agenda,
		Organizer:   existing.Organizer,
		Tags:        existing.Tags,
	}
	applyPatch(&attrs, patch)

	normalized, err := domain.ValidateAndNormalize(attrs)
	if err != nil {
		return nil, err
	}

	// Regenerate the slug only when the title actually changed, so an
	// event's public URL survives unrelated edits.
	if normalized.Title != existing.Title {
		existing.Slug = domain.Slugify(normalized.Title)
	}

	existing.Title = normalized.Title
	existing.Description = normalized.Description
	existing.Overview = normalized.Overview
	existing.Image = normalized.Image
	existing.Venue = normalized.Venue
	existing.Location = normalized.Location
	existing.Date = normalized.Date
	existing.Time = normalized.Time
	existing.Mode = normalized.Mode
	existing.Audience = normalized.Audience
	existing.Agenda = normalized.Agenda
	existing.Organizer = normalized.Organizer
	existing.Tags = normalized.Tags
	existing.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func applyPatch(attrs *domain.EventAttrs, patch domain.EventPatch) {
	if patch.Title != nil {
		attrs.Title = *patch.Title
	}
	if patch.Description != nil {
		attrs.Description = *patch.Description
	}
	if patch.Overview != nil {
		attrs.Overview = *patch.Overview
	}
	if patch.Image != nil {
		attrs.Image = *patch.Image
	}
	if patch.Venue != nil {
		attrs.Venue = *patch.Venue
	}
	if patch.Location != nil {
		attrs.Location = *patch.Location
	}
	if patch.Date != nil {
		attrs.Date = *patch.Date
	}
	if patch.Time != nil {
		attrs.Time = *patch.Time
	}
	if patch.Mode != nil {
		attrs.Mode = *patch.Mode
	}
	if patch.Audience != nil {
		attrs.Audience = *patch.Audience
	}
	if patch.Agenda != nil {
		attrs.Agenda = patch.Agenda
	}
	if patch.Organizer != nil {
		attrs.Organizer = *patch.Organizer
	}
	if patch.Tags != nil {
		attrs.Tags = patch.Tags
	}
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized := domain.NormalizeSlug(slug)
	if normalized == "" {
		return nil, domain.NewValidationError("slug", "is required and cannot be empty")
	}

	event, err := s.eventRepo.GetBySlug(ctx, normalized)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) GetSimilarEvents(ctx context.Context, slug string, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalized := domain.NormalizeSlug(slug)
	if normalized == "" {
		return nil, domain.NewValidationError("slug", "is required and cannot be empty")
	}

	event, err := s.eventRepo.GetBySlug(ctx, normalized)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}

	similar, err := s.eventRepo.ListByTags(ctx, event.Tags, event.Slug, limit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	return similar, nil
}
