package scoring

import (
	"math"
	"strconv"

	"github.com/MikeSquared-Agency/cvss2/internal/cvss"
)

// Stage names the formula stage that produced a score.
type Stage string

const (
	StageBase          Stage = "base"
	StageTemporal      Stage = "temporal"
	StageEnvironmental Stage = "environmental"
)

// Report captures every score derived from one vector. All values are rounded
// to one decimal place.
type Report struct {
	Vector cvss.Vector `json:"vector"`

	Impact           float64 `json:"impact"`
	Exploitability   float64 `json:"exploitability"`
	Base             float64 `json:"base"`
	Temporal         float64 `json:"temporal"`
	AdjustedImpact   float64 `json:"adjusted_impact"`
	AdjustedBase     float64 `json:"adjusted_base"`
	AdjustedTemporal float64 `json:"adjusted_temporal"`
	Environmental    float64 `json:"environmental"`

	HasTemporal      bool `json:"has_temporal"`
	HasEnvironmental bool `json:"has_environmental"`

	Overall  float64  `json:"overall"`
	Stage    Stage    `json:"stage"`
	Severity Severity `json:"severity"`
}

// StageResult is one row of a report breakdown.
type StageResult struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Present bool    `json:"present"`
}

// Score computes the base, temporal and environmental scores of v.
//
//	impact         = 10.41 * (1 - (1-C)*(1-I)*(1-A))
//	exploitability = 20 * AV * AC * Au
//	base           = round1((0.6*impact + 0.4*exploitability - 1.5) * f(impact))
//
// f(impact) is 0 when impact is 0 and 1.176 otherwise. The environmental
// stage recomputes from an adjusted impact rather than from the base score,
// and always applies the temporal multipliers (ND weighs 1). Score panics if
// v is the zero Vector.
func Score(v cvss.Vector) Report {
	if v.IsZero() {
		panic("scoring: zero cvss.Vector, use cvss.Parse or Builder.Resolve")
	}
	c := v.Weight(cvss.Confidentiality)
	i := v.Weight(cvss.Integrity)
	a := v.Weight(cvss.Availability)

	impact := 10.41 * (1 - (1-c)*(1-i)*(1-a))
	exploitability := 20 * v.Weight(cvss.AccessVector) * v.Weight(cvss.AccessComplexity) * v.Weight(cvss.Authentication)
	fImpact := impactFactor(impact)
	base := round1((0.6*impact + 0.4*exploitability - 1.5) * fImpact)

	r := Report{
		Vector:           v,
		Impact:           round1(impact),
		Exploitability:   round1(exploitability),
		Base:             base,
		HasTemporal:      v.HasGroup(cvss.GroupTemporal),
		HasEnvironmental: v.HasGroup(cvss.GroupEnvironmental),
		Overall:          base,
		Stage:            StageBase,
	}

	if r.HasTemporal {
		r.Temporal = temporalScore(v, base)
		r.Overall = r.Temporal
		r.Stage = StageTemporal
	}

	if r.HasEnvironmental {
		adjustedImpact := math.Min(10, 10.41*(1-
			(1-c*v.Weight(cvss.ConfidentialityRequirement))*
				(1-i*v.Weight(cvss.IntegrityRequirement))*
				(1-a*v.Weight(cvss.AvailabilityRequirement))))
		adjustedBase := round1((0.6*adjustedImpact + 0.4*exploitability - 1.5) * fImpact)
		adjustedTemporal := temporalScore(v, adjustedBase)
		cdp := v.Weight(cvss.CollateralDamagePotential)
		td := v.Weight(cvss.TargetDistribution)

		r.AdjustedImpact = round1(adjustedImpact)
		r.AdjustedBase = adjustedBase
		r.AdjustedTemporal = adjustedTemporal
		r.Environmental = round1((adjustedTemporal + (10-adjustedTemporal)*cdp) * td)
		r.Overall = r.Environmental
		r.Stage = StageEnvironmental
	}

	r.Severity = SeverityOf(r.Overall)
	return r
}

// Breakdown lists every computed score in report order.
func (r Report) Breakdown() []StageResult {
	return []StageResult{
		{Name: "Impact", Score: r.Impact, Present: true},
		{Name: "Exploitability", Score: r.Exploitability, Present: true},
		{Name: "Base", Score: r.Base, Present: true},
		{Name: "Temporal", Score: r.Temporal, Present: r.HasTemporal},
		{Name: "Adjusted Impact", Score: r.AdjustedImpact, Present: r.HasEnvironmental},
		{Name: "Adjusted Base", Score: r.AdjustedBase, Present: r.HasEnvironmental},
		{Name: "Adjusted Temporal", Score: r.AdjustedTemporal, Present: r.HasEnvironmental},
		{Name: "Environmental", Score: r.Environmental, Present: r.HasEnvironmental},
	}
}

func temporalScore(v cvss.Vector, base float64) float64 {
	return round1(base *
		v.Weight(cvss.Exploitability) *
		v.Weight(cvss.RemediationLevel) *
		v.Weight(cvss.ReportConfidence))
}

func impactFactor(impact float64) float64 {
	if impact == 0 {
		return 0
	}
	return 1.176
}

// round1 rounds half away from zero to one decimal place. The scaled value is
// snapped to six decimals first: 8.5*0.9 must round as 7.65, not 7.6499...
func round1(x float64) float64 {
	scaled := math.Round(x*10*1e6) / 1e6
	return math.Round(scaled) / 10
}

// FormatScore renders a score with exactly one fractional digit, e.g. "7.8" or "10.0".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
