package domain

type OutcomeStatus string

const (
	StatusInserted       OutcomeStatus = "inserted"
	StatusAlreadyPresent OutcomeStatus = "already_present"
	StatusFailed         OutcomeStatus = "failed"
)

// Outcome is the result for one requested id. Err is set only when Status
// is StatusFailed and then wraps ErrItemFetch or ErrMalformedItem.
type Outcome struct {
	ID     int64
	Status OutcomeStatus
	Err    error
}

// IngestionReport lists one Outcome per requested id, in request order.
type IngestionReport struct {
	Outcomes []Outcome

	Inserted       int
	AlreadyPresent int
	Failed         int
}

func (r *IngestionReport) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusInserted:
		r.Inserted++
	case StatusAlreadyPresent:
		r.AlreadyPresent++
	case StatusFailed:
		r.Failed++
	}
}

// Succeeded counts ids whose story is now in the store.
func (r IngestionReport) Succeeded() int {
	return r.Inserted + r.AlreadyPresent
}

// Failures returns the failed outcomes.
func (r IngestionReport) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}
