package cvss

import "strings"

// String renders the vector in canonical form. Base metrics are always
// emitted; the Temporal and Environmental groups only when HasGroup is true.
// The zero Vector renders as "".
func (v Vector) String() string {
	if v.IsZero() {
		return ""
	}
	var sb strings.Builder
	for _, g := range Groups() {
		if g != GroupBase && !v.HasGroup(g) {
			continue
		}
		for _, m := range MetricsIn(g) {
			if sb.Len() > 0 {
				sb.WriteByte('/')
			}
			sb.WriteString(m.Key())
			sb.WriteByte(':')
			sb.WriteString(v.values[m])
		}
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (v Vector) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via Parse.
func (v *Vector) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
