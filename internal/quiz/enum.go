package quiz

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var AllStatuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) rank() int {
	for i, v := range AllStatuses {
		if s == v {
			return i
		}
	}
	return -1
}

// CanAdvanceTo reports whether next is the single forward step from s.
func (s Status) CanAdvanceTo(next Status) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return next.rank() == s.rank()+1
}

// IsOpen reports whether a quiz in this status still accepts attempts.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}
