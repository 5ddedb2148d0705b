package scheduler

// State is the lifecycle stage of a card.
type State string

const (
	StateNew        State = "new"        // never reviewed
	StateLearning   State = "learning"   // in initial sub-day learning steps
	StateReview     State = "review"     // in the long-term review cycle
	StateRelearning State = "relearning" // forgotten, repeating short steps
)

// IsValid reports whether s is one of the four known states.
func (s State) IsValid() bool {
	switch s {
	case StateNew, StateLearning, StateReview, StateRelearning:
		return true
	}
	return false
}
