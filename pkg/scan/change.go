package scan

import "encoding/json"

// Change classifies an entry relative to the previous backup.
// The zero value is Unknown.
type Change int

const (
	ChangeUnknown Change = iota
	ChangeNew
	ChangeDifferent
	ChangeSame
)

func (c Change) String() string {
	switch c {
	case ChangeNew:
		return "New"
	case ChangeDifferent:
		return "Different"
	case ChangeSame:
		return "Same"
	default:
		return "Unknown"
	}
}

// Symbol is the single-character form used in text reports.
func (c Change) Symbol() string {
	switch c {
	case ChangeNew:
		return "+"
	case ChangeDifferent:
		return "Δ"
	case ChangeSame:
		return "="
	default:
		return "?"
	}
}

func (c Change) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Decision records what the driver did with a game this run.
type Decision string

const (
	DecisionProcessed Decision = "Processed"
	DecisionIgnored   Decision = "Ignored"
	DecisionPreviewed Decision = "Previewed"
)
