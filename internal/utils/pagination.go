package utils

import (
	"fmt"
	"math"
	"strings"
)

// PaginationInfo contains pagination metadata for the list command.
type PaginationInfo struct {
	Total      int
	PerPage    int
	Current    int
	Offset     int
	TotalPages int
}

// NewPagination clamps the requested page into range and computes the
// offsets.
func NewPagination(total, perPage, current int) *PaginationInfo {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	return &PaginationInfo{
		Total:      total,
		PerPage:    perPage,
		Current:    current,
		Offset:     (current - 1) * perPage,
		TotalPages: totalPages,
	}
}

// Slice returns the window of the current page within a list of n
// items, as [start, end) indexes.
func (p *PaginationInfo) Slice(n int) (start, end int) {
	start = p.Offset
	if start > n {
		start = n
	}
	end = start + p.PerPage
	if end > n {
		end = n
	}
	return start, end
}

func (p *PaginationInfo) HasNext() bool { return p.Current < p.TotalPages }
func (p *PaginationInfo) HasPrev() bool { return p.Current > 1 }

// FormatSummary returns a human-readable page summary.
func (p *PaginationInfo) FormatSummary() string {
	if p.Total == 0 {
		return "No events"
	}
	start := p.Offset + 1
	end := p.Offset + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	if p.TotalPages == 1 {
		return fmt.Sprintf("Showing %d-%d of %d event%s", start, end, p.Total, plural(p.Total))
	}
	return fmt.Sprintf("Showing %d-%d of %d event%s (page %d of %d)",
		start, end, p.Total, plural(p.Total), p.Current, p.TotalPages)
}

// FormatNavigation returns CLI hints for moving between pages.
func (p *PaginationInfo) FormatNavigation() string {
	if p.TotalPages <= 1 {
		return ""
	}
	var hints []string
	if p.HasPrev() {
		hints = append(hints, fmt.Sprintf("use --page %d for previous", p.Current-1))
	}
	if p.HasNext() {
		hints = append(hints, fmt.Sprintf("use --page %d for next", p.Current+1))
	}
	return strings.Join(hints, ", ")
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
