package utils

import (
	"strings"
	"unicode"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DigitsOnly strips everything but ASCII digits and keeps at most max of them (max <= 0 keeps
// all). Phone inputs go through this before validation.
func DigitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			continue
		}
		if max > 0 && b.Len() >= max {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ShortID is the trailing 8 characters shown for long backend ids.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Paginate returns page (1-based) of items with perPage entries and the total page count.
// Out-of-range pages yield an empty slice.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		perPage = len(items)
		if perPage == 0 {
			return nil, 0
		}
	}
	totalPages := (len(items) + perPage - 1) / perPage
	if page < 1 || page > totalPages {
		return []T{}, totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
