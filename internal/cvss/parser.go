package cvss

import "strings"

// Parse reads a CVSS v2 vector such as "AV:N/AC:L/Au:N/C:P/I:P/A:P".
//
// Tokens are checked left to right and the first problem is returned as a
// *ParseError. Missing Base metrics are only reported once every token has
// been read, and then all of them together. Keys and values are matched
// case-sensitively.
func Parse(s string) (Vector, error) {
	var b Builder
	for _, token := range strings.Split(s, "/") {
		key, value, ok := splitToken(token)
		if !ok {
			return Vector{}, &ParseError{Kind: MalformedToken, Token: token}
		}
		m, ok := LookupMetric(key)
		if !ok {
			return Vector{}, &ParseError{Kind: UnknownMetric, Key: key}
		}
		if err := b.Set(m, value); err != nil {
			return Vector{}, err
		}
	}
	return b.Resolve()
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Vector {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// splitToken splits "KEY:VALUE". A token with no colon or more than one is malformed.
func splitToken(token string) (key, value string, ok bool) {
	if strings.Count(token, ":") != 1 {
		return "", "", false
	}
	key, value, _ = strings.Cut(token, ":")
	return key, value, true
}
