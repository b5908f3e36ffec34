package cvss

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseOnly(t *testing.T) {
	v, err := Parse("AV:N/AC:L/Au:N/C:N/I:N/A:C")
	require.NoError(t, err)

	assert.Equal(t, "N", v.Value(AccessVector))
	assert.Equal(t, "C", v.Value(Availability))
	for _, m := range append(MetricsIn(GroupTemporal), MetricsIn(GroupEnvironmental)...) {
		assert.Equal(t, NotDefined, v.Value(m), "metric %s", m)
	}
	assert.False(t, v.HasGroup(GroupTemporal))
	assert.False(t, v.HasGroup(GroupEnvironmental))
	assert.True(t, v.HasGroup(GroupBase))
}

func TestParseOrderIndependent(t *testing.T) {
	a, err := Parse("AV:N/AC:L/Au:N/C:P/I:P/A:P/E:F")
	require.NoError(t, err)
	b, err := Parse("E:F/A:P/I:P/C:P/Au:N/AC:L/AV:N")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParsePartialOptionalGroupFilled(t *testing.T) {
	v, err := Parse("AV:L/AC:H/Au:M/C:C/I:C/A:C/RL:OF/TD:M")
	require.NoError(t, err)

	assert.Equal(t, NotDefined, v.Value(Exploitability))
	assert.Equal(t, "OF", v.Value(RemediationLevel))
	assert.Equal(t, NotDefined, v.Value(ReportConfidence))
	assert.Equal(t, "M", v.Value(TargetDistribution))
	assert.Equal(t, NotDefined, v.Value(CollateralDamagePotential))
	assert.True(t, v.HasGroup(GroupTemporal))
	assert.True(t, v.HasGroup(GroupEnvironmental))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *ParseError
		message string
	}{
		{
			name:    "empty input",
			input:   "",
			want:    &ParseError{Kind: MalformedToken, Token: ""},
			message: `Invalid metric "".`,
		},
		{
			name:    "no colon",
			input:   "AV:N/ACL/Au:N/C:N/I:N/A:C",
			want:    &ParseError{Kind: MalformedToken, Token: "ACL"},
			message: `Invalid metric "ACL".`,
		},
		{
			name:    "two colons",
			input:   "AV:N:L/AC:L/Au:N/C:N/I:N/A:C",
			want:    &ParseError{Kind: MalformedToken, Token: "AV:N:L"},
			message: `Invalid metric "AV:N:L".`,
		},
		{
			name:    "trailing slash",
			input:   "AV:N/AC:L/Au:N/C:N/I:N/A:C/",
			want:    &ParseError{Kind: MalformedToken, Token: ""},
			message: `Invalid metric "".`,
		},
		{
			name:    "unknown metric",
			input:   "AV:N/AC:L/Au:N/C:N/I:N/A:C/XX:Y",
			want:    &ParseError{Kind: UnknownMetric, Key: "XX"},
			message: `Unknown metric "XX".`,
		},
		{
			name:    "lower case key",
			input:   "av:n",
			want:    &ParseError{Kind: UnknownMetric, Key: "av"},
			message: `Unknown metric "av".`,
		},
		{
			name:  "lower case value",
			input: "AV:n",
			want: &ParseError{
				Kind: InvalidValue, Key: "AV", Value: "n",
				Allowed: []string{"A", "L", "N"},
			},
			message: `Invalid value "n" for metric "AV". Available values: A, L, N`,
		},
		{
			name:  "invalid temporal value lists sorted domain",
			input: "AV:N/AC:L/Au:N/C:N/I:N/A:C/E:X",
			want: &ParseError{
				Kind: InvalidValue, Key: "E", Value: "X",
				Allowed: []string{"F", "H", "ND", "POC", "U"},
			},
			message: `Invalid value "X" for metric "E". Available values: F, H, ND, POC, U`,
		},
		{
			name:  "base metric has no ND",
			input: "AV:ND",
			want: &ParseError{
				Kind: InvalidValue, Key: "AV", Value: "ND",
				Allowed: []string{"A", "L", "N"},
			},
			message: `Invalid value "ND" for metric "AV". Available values: A, L, N`,
		},
		{
			name:    "duplicate metric",
			input:   "AV:N/AC:L/Au:N/C:N/I:N/A:C/AV:L",
			want:    &ParseError{Kind: DuplicateMetric, Key: "AV"},
			message: `Duplicate metric "AV".`,
		},
		{
			name:    "duplicate with identical value",
			input:   "E:U/AV:N/E:U",
			want:    &ParseError{Kind: DuplicateMetric, Key: "E"},
			message: `Duplicate metric "E".`,
		},
		{
			name:    "missing one",
			input:   "AV:N/AC:L/Au:N/C:C/A:C",
			want:    &ParseError{Kind: MissingRequiredMetrics, Missing: []string{"I"}},
			message: "Missing required metrics: I",
		},
		{
			name:    "missing several sorted",
			input:   "C:C/E:F",
			want:    &ParseError{Kind: MissingRequiredMetrics, Missing: []string{"A", "AC", "AV", "Au", "I"}},
			message: "Missing required metrics: A, AC, AV, Au, I",
		},
		{
			name:    "first error wins",
			input:   "AV:X/QQ:1",
			want:    &ParseError{Kind: InvalidValue, Key: "AV", Value: "X", Allowed: []string{"A", "L", "N"}},
			message: `Invalid value "X" for metric "AV". Available values: A, L, N`,
		},
		{
			name:    "whitespace is not tolerated",
			input:   "AV:N /AC:L",
			want:    &ParseError{Kind: InvalidValue, Key: "AV", Value: "N ", Allowed: []string{"A", "L", "N"}},
			message: `Invalid value "N " for metric "AV". Available values: A, L, N`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
			if diff := cmp.Diff(tt.want, pe); diff != "" {
				t.Errorf("ParseError mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestParseErrorSentinels(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrMalformedToken},
		{"ZZ:1", ErrUnknownMetric},
		{"AV:Q", ErrInvalidValue},
		{"AV:N/AV:N", ErrDuplicateMetric},
		{"AV:N", ErrMissingRequiredMetrics},
	}
	for _, tt := range tests {
		t.Run(tt.want.Error(), func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, tt.want)
			for _, other := range []error{ErrMalformedToken, ErrUnknownMetric, ErrInvalidValue, ErrDuplicateMetric, ErrMissingRequiredMetrics} {
				if other != tt.want {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestDuplicateDetectedAnywhere(t *testing.T) {
	base := []string{"AV:N", "AC:L", "Au:N", "C:P", "I:P", "A:P"}
	for i := range base {
		for j := range base {
			tokens := append(append([]string{}, base...), base[i])
			// move the repeated token to position j
			tokens[j], tokens[len(tokens)-1] = tokens[len(tokens)-1], tokens[j]
			input := strings.Join(tokens, "/")
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrDuplicateMetric, "input %q", input)
		}
	}
}

func TestMissingEachBaseMetric(t *testing.T) {
	full := map[Metric]string{
		AccessVector: "AV:N", AccessComplexity: "AC:L", Authentication: "Au:N",
		Confidentiality: "C:P", Integrity: "I:P", Availability: "A:P",
	}
	for _, skip := range MetricsIn(GroupBase) {
		var tokens []string
		for _, m := range MetricsIn(GroupBase) {
			if m != skip {
				tokens = append(tokens, full[m])
			}
		}
		_, err := Parse(strings.Join(tokens, "/"))
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, []string{skip.Key()}, pe.Missing)
	}
}

func TestBuilder(t *testing.T) {
	var b Builder
	require.NoError(t, b.Set(AccessVector, "N"))
	assert.True(t, b.IsSet(AccessVector))
	assert.False(t, b.IsSet(AccessComplexity))

	assert.ErrorIs(t, b.Set(AccessVector, "L"), ErrDuplicateMetric)
	assert.ErrorIs(t, b.Set(Confidentiality, "X"), ErrInvalidValue)
	assert.False(t, b.IsSet(Confidentiality))

	_, err := b.Resolve()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"A", "AC", "Au", "C", "I"}, pe.Missing)

	require.NoError(t, b.Set(AccessComplexity, "H"))
	require.NoError(t, b.Set(Authentication, "M"))
	require.NoError(t, b.Set(Confidentiality, "N"))
	require.NoError(t, b.Set(Integrity, "N"))
	require.NoError(t, b.Set(Availability, "P"))
	require.NoError(t, b.Set(ReportConfidence, "UR"))

	v, err := b.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "AV:N/AC:H/Au:M/C:N/I:N/A:P/E:ND/RL:ND/RC:UR", v.String())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("AV:N") })
	assert.NotPanics(t, func() { MustParse("AV:N/AC:L/Au:N/C:N/I:N/A:C") })
}
