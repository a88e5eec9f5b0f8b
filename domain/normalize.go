package domain

import "fmt"

// Normalize turns a fetched item into a Story. Missing id, by, score or time
// yields ErrMalformedItem; missing title and url become empty strings.
func Normalize(it FetchedItem) (Story, error) {
	switch {
	case it.ID == nil:
		return Story{}, fmt.Errorf("%w: missing id", ErrMalformedItem)
	case it.By == nil:
		return Story{}, fmt.Errorf("%w: missing by", ErrMalformedItem)
	case it.Score == nil:
		return Story{}, fmt.Errorf("%w: missing score", ErrMalformedItem)
	case it.Time == nil:
		return Story{}, fmt.Errorf("%w: missing time", ErrMalformedItem)
	}

	s := Story{
		ID:          *it.ID,
		Submitter:   *it.By,
		Score:       *it.Score,
		SubmittedAt: FormatTimestamp(*it.Time),
	}
	if it.Title != nil {
		s.Title = *it.Title
	}
	if it.URL != nil {
		s.URL = *it.URL
	}
	return s, nil
}
