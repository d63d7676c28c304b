package project

// Status represents the lifecycle stage of a portfolio project.
type Status string

const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In progress"
	StatusOngoing    Status = "Ongoing"
	StatusPrototype  Status = "Prototype"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusCompleted, StatusInProgress, StatusOngoing, StatusPrototype}

// IsValid returns true if the status is one of the defined constants.
// Matching is exact and case sensitive.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusOngoing, StatusPrototype:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
