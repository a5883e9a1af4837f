package order

import "time"

// Stage is the state of an order as seen by a caller at a given instant.
// It folds status, code presence and expiry into one value so the three can
// never be combined inconsistently.
type Stage int

const (
	StageUnknown Stage = iota
	StageNew
	StageAwaitingCode
	StageWithCode
	StageExpired
)

// Stages lists every valid stage, in display order.
var Stages = []Stage{StageNew, StageAwaitingCode, StageWithCode, StageExpired}

func (s Stage) String() string {
	switch s {
	case StageNew:
		return "new"
	case StageAwaitingCode:
		return "awaiting_code"
	case StageWithCode:
		return "with_code"
	case StageExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// DeriveStage computes the stage from stored fields. A stored code wins over
// expiry: the code stays readable after the window closes.
func DeriveStage(status Status, hasCode bool, firstUsedAt *time.Time, now time.Time) Stage {
	switch status {
	case New:
		return StageNew
	case Active:
		if hasCode {
			return StageWithCode
		}
		if firstUsedAt != nil && now.After(firstUsedAt.Add(ActivationWindow)) {
			return StageExpired
		}
		return StageAwaitingCode
	default:
		return StageUnknown
	}
}
