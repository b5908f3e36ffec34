package cvss

import "sort"

// Vector is a fully resolved metric assignment: every Base metric is set and
// every optional metric holds either a value or ND. Vectors are immutable and
// only produced by Parse or Builder.Resolve.
//
// The zero Vector is not a valid vector. IsZero detects it, String renders it
// as "" and Weight panics on it.
type Vector struct {
	values [metricCount]string
}

// IsZero reports whether v is the zero Vector rather than a resolved one.
func (v Vector) IsZero() bool { return v == Vector{} }

// Value returns the symbolic value assigned to m.
func (v Vector) Value(m Metric) string { return v.values[m] }

// Weight returns the numeric weight of the value assigned to m.
func (v Vector) Weight(m Metric) float64 {
	if v.IsZero() {
		panic("cvss: Weight called on zero Vector")
	}
	return m.Weight(v.values[m])
}

// HasGroup reports whether any metric of g carries a value other than ND.
// Base is always present.
func (v Vector) HasGroup(g Group) bool {
	for _, m := range MetricsIn(g) {
		if v.values[m] != NotDefined {
			return true
		}
	}
	return false
}

// Builder accumulates metric assignments before they are resolved into a
// Vector. The zero value is ready to use.
type Builder struct {
	values [metricCount]string
	set    [metricCount]bool
}

// Set assigns value to m. It fails if value is outside the metric's domain or
// m has already been assigned.
func (b *Builder) Set(m Metric, value string) error {
	if !m.IsValid(value) {
		return &ParseError{Kind: InvalidValue, Key: m.Key(), Value: value, Allowed: m.AllowedValues()}
	}
	if b.set[m] {
		return &ParseError{Kind: DuplicateMetric, Key: m.Key()}
	}
	b.values[m] = value
	b.set[m] = true
	return nil
}

// IsSet reports whether m has been assigned.
func (b *Builder) IsSet(m Metric) bool { return b.set[m] }

// Resolve checks that every Base metric is present and fills absent optional
// metrics with ND. All missing Base metrics are reported at once.
func (b *Builder) Resolve() (Vector, error) {
	var missing []string
	for _, m := range MetricsIn(GroupBase) {
		if !b.set[m] {
			missing = append(missing, m.Key())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Vector{}, &ParseError{Kind: MissingRequiredMetrics, Missing: missing}
	}

	var v Vector
	for _, m := range Metrics() {
		switch {
		case b.set[m]:
			v.values[m] = b.values[m]
		case m.HasNotDefined():
			v.values[m] = NotDefined
		}
	}
	return v, nil
}
