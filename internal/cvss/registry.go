package cvss

import "sort"

// NotDefined is the value that marks an optional metric as absent.
const NotDefined = "ND"

// Group is one of the three CVSS v2 metric groups.
type Group int

const (
	GroupBase Group = iota
	GroupTemporal
	GroupEnvironmental
)

func (g Group) String() string {
	switch g {
	case GroupBase:
		return "base"
	case GroupTemporal:
		return "temporal"
	case GroupEnvironmental:
		return "environmental"
	}
	return "unknown"
}

// Groups returns the metric groups in canonical order.
func Groups() []Group {
	return []Group{GroupBase, GroupTemporal, GroupEnvironmental}
}

// Metric identifies a CVSS v2 metric. Declaration order is canonical order.
type Metric int

const (
	AccessVector Metric = iota
	AccessComplexity
	Authentication
	Confidentiality
	Integrity
	Availability
	Exploitability
	RemediationLevel
	ReportConfidence
	CollateralDamagePotential
	TargetDistribution
	ConfidentialityRequirement
	IntegrityRequirement
	AvailabilityRequirement

	metricCount
)

// Option is one legal value of a metric together with its weight.
type Option struct {
	Value  string
	Weight float64
	Label  string
}

type definition struct {
	key     string
	name    string
	group   Group
	options []Option
}

var impactOptions = []Option{
	{"N", 0.0, "None"},
	{"P", 0.275, "Partial"},
	{"C", 0.660, "Complete"},
}

var requirementOptions = []Option{
	{"L", 0.5, "Low"},
	{"M", 1.0, "Medium"},
	{"H", 1.51, "High"},
	{NotDefined, 1.0, "Not Defined"},
}

var definitions = [metricCount]definition{
	AccessVector: {"AV", "Access Vector", GroupBase, []Option{
		{"L", 0.395, "Local access"},
		{"A", 0.646, "Adjacent network"},
		{"N", 1.0, "Network"},
	}},
	AccessComplexity: {"AC", "Access Complexity", GroupBase, []Option{
		{"H", 0.35, "High"},
		{"M", 0.61, "Medium"},
		{"L", 0.71, "Low"},
	}},
	Authentication: {"Au", "Authentication", GroupBase, []Option{
		{"M", 0.45, "Multiple instances"},
		{"S", 0.56, "Single instance"},
		{"N", 0.704, "None required"},
	}},
	Confidentiality: {"C", "Confidentiality Impact", GroupBase, impactOptions},
	Integrity:       {"I", "Integrity Impact", GroupBase, impactOptions},
	Availability:    {"A", "Availability Impact", GroupBase, impactOptions},
	Exploitability: {"E", "Exploitability", GroupTemporal, []Option{
		{"U", 0.85, "Unproven"},
		{"POC", 0.9, "Proof-of-concept"},
		{"F", 0.95, "Functional"},
		{"H", 1.0, "High"},
		{NotDefined, 1.0, "Not Defined"},
	}},
	RemediationLevel: {"RL", "Remediation Level", GroupTemporal, []Option{
		{"OF", 0.87, "Official fix"},
		{"TF", 0.90, "Temporary fix"},
		{"W", 0.95, "Workaround"},
		{"U", 1.0, "Unavailable"},
		{NotDefined, 1.0, "Not Defined"},
	}},
	ReportConfidence: {"RC", "Report Confidence", GroupTemporal, []Option{
		{"UC", 0.90, "Unconfirmed"},
		{"UR", 0.95, "Uncorroborated"},
		{"C", 1.0, "Confirmed"},
		{NotDefined, 1.0, "Not Defined"},
	}},
	CollateralDamagePotential: {"CDP", "Collateral Damage Potential", GroupEnvironmental, []Option{
		{"N", 0.0, "None"},
		{"L", 0.1, "Low"},
		{"LM", 0.3, "Low-Medium"},
		{"MH", 0.4, "Medium-High"},
		{"H", 0.5, "High"},
		{NotDefined, 0.0, "Not Defined"},
	}},
	TargetDistribution: {"TD", "Target Distribution", GroupEnvironmental, []Option{
		{"N", 0.0, "None"},
		{"L", 0.25, "Low"},
		{"M", 0.75, "Medium"},
		{"H", 1.0, "High"},
		{NotDefined, 1.0, "Not Defined"},
	}},
	ConfidentialityRequirement: {"CR", "Confidentiality Requirement", GroupEnvironmental, requirementOptions},
	IntegrityRequirement:       {"IR", "Integrity Requirement", GroupEnvironmental, requirementOptions},
	AvailabilityRequirement:    {"AR", "Availability Requirement", GroupEnvironmental, requirementOptions},
}

var byKey = map[string]Metric{
	"AV": AccessVector, "AC": AccessComplexity, "Au": Authentication,
	"C": Confidentiality, "I": Integrity, "A": Availability,
	"E": Exploitability, "RL": RemediationLevel, "RC": ReportConfidence,
	"CDP": CollateralDamagePotential, "TD": TargetDistribution,
	"CR": ConfidentialityRequirement, "IR": IntegrityRequirement, "AR": AvailabilityRequirement,
}

// Metrics returns every metric in canonical order.
func Metrics() []Metric {
	out := make([]Metric, 0, metricCount)
	for m := Metric(0); m < metricCount; m++ {
		out = append(out, m)
	}
	return out
}

// MetricsIn returns the metrics of g in canonical order.
func MetricsIn(g Group) []Metric {
	var out []Metric
	for m := Metric(0); m < metricCount; m++ {
		if definitions[m].group == g {
			out = append(out, m)
		}
	}
	return out
}

// LookupMetric resolves a vector key such as "AV" or "CDP". Keys are case-sensitive.
func LookupMetric(key string) (Metric, bool) {
	m, ok := byKey[key]
	return m, ok
}

func (m Metric) valid() bool { return m >= 0 && m < metricCount }

// Key returns the abbreviation used in vector strings.
func (m Metric) Key() string {
	if !m.valid() {
		return ""
	}
	return definitions[m].key
}

func (m Metric) String() string { return m.Key() }

// Name returns the human-readable metric name.
func (m Metric) Name() string {
	if !m.valid() {
		return ""
	}
	return definitions[m].name
}

func (m Metric) Group() Group { return definitions[m].group }

// Options returns the metric's domain in registry order. Callers must not modify it.
func (m Metric) Options() []Option { return definitions[m].options }

func (m Metric) option(value string) (Option, bool) {
	for _, o := range definitions[m].options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// IsValid reports whether value belongs to the metric's domain.
func (m Metric) IsValid(value string) bool {
	_, ok := m.option(value)
	return ok
}

// Weight returns the numeric weight of value. It panics if value is not in
// the metric's domain.
func (m Metric) Weight(value string) float64 {
	o, ok := m.option(value)
	if !ok {
		panic("cvss: invalid value " + value + " for metric " + m.Key())
	}
	return o.Weight
}

// Label returns the description of value, or "" if value is not in the domain.
func (m Metric) Label(value string) string {
	o, _ := m.option(value)
	return o.Label
}

// HasNotDefined reports whether the metric accepts ND.
func (m Metric) HasNotDefined() bool { return m.IsValid(NotDefined) }

// AllowedValues returns the legal values sorted lexicographically.
func (m Metric) AllowedValues() []string {
	opts := definitions[m].options
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	sort.Strings(out)
	return out
}
