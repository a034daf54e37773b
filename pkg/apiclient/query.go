package apiclient

import (
	"fmt"
	"strings"
)

// Query is an ordered set of query parameters. Keys keep the position of their
// first Set; setting an existing key replaces its value in place.
type Query struct {
	keys   []string
	values map[string]string
}

// NewQuery returns a Query seeded with alternating key/value pairs.
// A trailing key without a value is ignored.
func NewQuery(pairs ...any) Query {
	var q Query
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(fmt.Sprint(pairs[i]), pairs[i+1])
	}
	return q
}

// Set stores value under key, converted to its string form.
func (q *Query) Set(key string, value any) *Query {
	if q.values == nil {
		q.values = make(map[string]string)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = stringify(value)
	return q
}

// Len reports the number of parameters.
func (q Query) Len() int { return len(q.keys) }

// Encode renders the parameters as application/x-www-form-urlencoded text in
// insertion order.
func (q Query) Encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEscape(k))
		b.WriteByte('=')
		b.WriteString(formEscape(q.values[k]))
	}
	return b.String()
}

// BuildURL appends the encoded query to endpoint. An empty query leaves the
// endpoint untouched.
func BuildURL(endpoint string, q Query) string {
	if q.Len() == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

const upperhex = "0123456789ABCDEF"

// formEscape applies the form-urlencoded byte set: ASCII alphanumerics and
// "*-._" pass through, space becomes '+', everything else is percent-encoded.
func formEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '*', c == '-', c == '.', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}
