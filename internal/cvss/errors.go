package cvss

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	MalformedToken ErrorKind = iota + 1
	UnknownMetric
	InvalidValue
	DuplicateMetric
	MissingRequiredMetrics
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedToken:
		return "malformed_token"
	case UnknownMetric:
		return "unknown_metric"
	case InvalidValue:
		return "invalid_value"
	case DuplicateMetric:
		return "duplicate_metric"
	case MissingRequiredMetrics:
		return "missing_required_metrics"
	}
	return "unknown"
}

// Sentinels for errors.Is matching against a *ParseError.
var (
	ErrMalformedToken         = errors.New("malformed token")
	ErrUnknownMetric          = errors.New("unknown metric")
	ErrInvalidValue           = errors.New("invalid value")
	ErrDuplicateMetric        = errors.New("duplicate metric")
	ErrMissingRequiredMetrics = errors.New("missing required metrics")
)

// ParseError is a user input error found while reading a vector.
type ParseError struct {
	Kind ErrorKind

	Token   string   // MalformedToken
	Key     string   // UnknownMetric, InvalidValue, DuplicateMetric
	Value   string   // InvalidValue
	Allowed []string // InvalidValue, sorted
	Missing []string // MissingRequiredMetrics, sorted
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MalformedToken:
		return fmt.Sprintf(`Invalid metric "%s".`, e.Token)
	case UnknownMetric:
		return fmt.Sprintf(`Unknown metric "%s".`, e.Key)
	case InvalidValue:
		return fmt.Sprintf(`Invalid value "%s" for metric "%s". Available values: %s`,
			e.Value, e.Key, strings.Join(e.Allowed, ", "))
	case DuplicateMetric:
		return fmt.Sprintf(`Duplicate metric "%s".`, e.Key)
	case MissingRequiredMetrics:
		return "Missing required metrics: " + strings.Join(e.Missing, ", ")
	}
	return "invalid vector"
}

func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformedToken:
		return e.Kind == MalformedToken
	case ErrUnknownMetric:
		return e.Kind == UnknownMetric
	case ErrInvalidValue:
		return e.Kind == InvalidValue
	case ErrDuplicateMetric:
		return e.Kind == DuplicateMetric
	case ErrMissingRequiredMetrics:
		return e.Kind == MissingRequiredMetrics
	}
	return false
}
