// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

// Severity is the outcome of evaluating a pool or a single metric.
// Unknown denotes data unavailability, never a threshold breach.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARN"
	case SeverityCritical:
		return "CRIT"
	default:
		return "UNKNOWN"
	}
}

// ExitStatus maps the severity to the conventional check exit code.
func (s Severity) ExitStatus() int {
	switch s {
	case SeverityOK:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCritical:
		return 2
	default:
		return 3
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// severityRank orders severities by operator urgency. Critical outranks
// unknown: a confirmed failure is more actionable than missing data.
var severityRank = map[Severity]int{
	SeverityOK:       0,
	SeverityWarning:  1,
	SeverityUnknown:  2,
	SeverityCritical: 3,
}

func worstSeverity(a, b Severity) Severity {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}
