package model

import (
	"encoding/json"
	"strings"
)

// StabilityLevel classifies the residential stability of a district.
// The dataset ships free-text labels ("Très stable", "Stabilité
// faible", ...); the label is decoded once at load time so scoring
// never re-parses text.
type StabilityLevel int

const (
	StabilityUnknown StabilityLevel = iota
	StabilityWeak
	StabilityModerate
	StabilityStable
	StabilityVeryStable
)

// ParseStabilityLevel decodes a free-text stability label. Matching is
// substring-based to absorb label variants ("forte stabilité",
// "stabilité moyenne").
func ParseStabilityLevel(s string) StabilityLevel {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "très stable") || strings.Contains(lower, "forte"):
		return StabilityVeryStable
	case strings.Contains(lower, "stable") || strings.Contains(lower, "moyenne"):
		return StabilityStable
	case strings.Contains(lower, "modérée"):
		return StabilityModerate
	case strings.Contains(lower, "faible"):
		return StabilityWeak
	default:
		return StabilityUnknown
	}
}

func (s StabilityLevel) String() string {
	switch s {
	case StabilityVeryStable:
		return "Très stable"
	case StabilityStable:
		return "Stable"
	case StabilityModerate:
		return "Modérée"
	case StabilityWeak:
		return "Faible"
	default:
		return ""
	}
}

// UnmarshalJSON decodes the dataset's free-text label.
func (s *StabilityLevel) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseStabilityLevel(raw)
	return nil
}

// MarshalJSON writes the canonical label.
func (s StabilityLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DataQuality classifies the reliability of a DVF summary.
type DataQuality int

const (
	QualityUnknown DataQuality = iota
	QualityEstimated
	QualityWeak
	QualityMedium
	QualityGood
)

// ParseDataQuality decodes a free-text quality label ("Bon", "Moyen",
// "Faible", "Estimation").
func ParseDataQuality(s string) DataQuality {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "estim"):
		return QualityEstimated
	case strings.Contains(lower, "bon"):
		return QualityGood
	case strings.Contains(lower, "moyen"):
		return QualityMedium
	case strings.Contains(lower, "faible"):
		return QualityWeak
	default:
		return QualityUnknown
	}
}

func (q DataQuality) String() string {
	switch q {
	case QualityGood:
		return "Bon"
	case QualityMedium:
		return "Moyen"
	case QualityWeak:
		return "Faible"
	case QualityEstimated:
		return "Estimation"
	default:
		return ""
	}
}

// UnmarshalJSON decodes the dataset's free-text label.
func (q *DataQuality) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*q = ParseDataQuality(raw)
	return nil
}

// MarshalJSON writes the canonical label.
func (q DataQuality) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.String())
}
