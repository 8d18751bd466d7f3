package models

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityUnknown  = "unknown"
)

// SeverityForPain maps a pain level onto the bands used by the history list.
func SeverityForPain(level int) string {
	switch {
	case level >= 1 && level <= 3:
		return SeverityMild
	case level >= 4 && level <= 6:
		return SeverityModerate
	case level >= 7 && level <= 10:
		return SeveritySevere
	default:
		return SeverityUnknown
	}
}
