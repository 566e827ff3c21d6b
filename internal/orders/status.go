package orders

import "fmt"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRemoved  Status = "Removed"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:  {StatusAccepted: true, StatusRemoved: true},
	StatusAccepted: {},
	StatusRemoved:  {},
}

// CanTransition reports whether from -> to is a legal move. Re-writing the
// current status is allowed; it is a state-wise no-op.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return validNext[from][to]
}

// ParseStatus validates incoming status strings against the closed set.
// The column itself stays free text so legacy values survive reads.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRemoved:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}
