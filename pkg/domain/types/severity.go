package types

// Severity is the derived outcome classification of a collision
type Severity string

const (
	SeverityFatal    Severity = "Fatal"
	SeverityInjury   Severity = "Injury"
	SeverityNoInjury Severity = "No Injury"
)

// String returns the display label of the severity
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is one of the derived variants
func (s Severity) IsValid() bool {
	switch s {
	case SeverityFatal, SeverityInjury, SeverityNoInjury:
		return true
	default:
		return false
	}
}

// ClassifySeverity derives severity from casualty counts. Fatal takes
// precedence over Injury.
func ClassifySeverity(injured, killed int) Severity {
	switch {
	case killed > 0:
		return SeverityFatal
	case injured > 0:
		return SeverityInjury
	default:
		return SeverityNoInjury
	}
}
