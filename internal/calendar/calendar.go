// Package calendar aggregates the dashboard's calendar sources into one
// event list. Each source is polled independently; a failing source logs
// and contributes nothing rather than breaking the widget.
package calendar

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mvarner/hearth/internal/model"
)

// Source is one calendar feed. Load returns the source's events, possibly
// empty; errors are handled by the aggregating service.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]model.CalendarEvent, error)
}

// Service merges events from every configured source.
type Service struct {
	sources []Source
	logger  *slog.Logger
}

func NewService(logger *slog.Logger, sources ...Source) *Service {
	return &Service{sources: sources, logger: logger}
}

// AddSource registers another feed. Used when a source is configured
// after startup.
func (s *Service) AddSource(src Source) {
	s.sources = append(s.sources, src)
}

// Events loads every source and returns the merged list sorted by start
// time. A source failure is logged and skipped; the widget still renders
// whatever the healthy sources returned.
func (s *Service) Events(ctx context.Context) []model.CalendarEvent {
	var all []model.CalendarEvent
	for _, src := range s.sources {
		events, err := src.Load(ctx)
		if err != nil {
			s.logger.Warn("calendar source failed", "source", src.Name(), "error", err)
			continue
		}
		all = append(all, events...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})
	return all
}
