package api

import (
	"context"

	"returnnotify/internal/directory"
)

// DirectoryReader abstracts the directory queries needed for status reporting.
type DirectoryReader interface {
	Counts(ctx context.Context) (directory.Counts, error)
}

// DirectoryService exposes read-only directory summaries as API DTOs.
type DirectoryService struct {
	store DirectoryReader
}

// NewDirectoryService constructs a DirectoryService around the provided reader.
func NewDirectoryService(store DirectoryReader) *DirectoryService {
	if store == nil {
		return nil
	}
	return &DirectoryService{store: store}
}

// Counts returns record counts per directory table.
func (s *DirectoryService) Counts(ctx context.Context) (*DirectoryCounts, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return FromCounts(counts), nil
}

// FromCounts converts directory counts into the API shape.
func FromCounts(c directory.Counts) *DirectoryCounts {
	return &DirectoryCounts{
		Resellers:   c.Resellers,
		Contractors: c.Contractors,
		Employees:   c.Employees,
		Permits:     c.Permits,
		Statuses:    c.Statuses,
	}
}
