package scheduler

import "fmt"

// Rating is the learner's self-reported recall quality for a single review.
type Rating int

const (
	RatingAgain Rating = iota + 1 // failed to recall
	RatingHard                    // recalled with significant difficulty
	RatingGood                    // recalled with some effort
	RatingEasy                    // recalled effortlessly
)

var ratingNames = map[Rating]string{
	RatingAgain: "again",
	RatingHard:  "hard",
	RatingGood:  "good",
	RatingEasy:  "easy",
}

// ParseRating converts the numeric 1-4 scale used on the wire and in the CLI.
func ParseRating(value int) (Rating, error) {
	r := Rating(value)
	if !r.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRating, value)
	}
	return r, nil
}

// IsValid reports whether r is within Again..Easy.
func (r Rating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// Succeeded reports whether the review counts as a successful recall.
func (r Rating) Succeeded() bool {
	return r != RatingAgain
}

func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rating(%d)", int(r))
}
