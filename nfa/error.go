package nfa

import "fmt"

// InvalidRangeError is returned when a manual character class contains a
// descending range such as [z-a].
type InvalidRangeError struct {
	Lo, Hi rune
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid character range %q-%q: low end is greater than high end", e.Lo, e.Hi)
}
