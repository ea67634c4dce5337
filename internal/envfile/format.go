package envfile

import "strings"

// Format renders the payload as .env text: one KEY=VALUE line per entry,
// joined by "\n", without a trailing newline.
//
// Empty strings become KEY="" and strings containing a space are wrapped in
// double quotes. Nothing inside the value is escaped, so embedded quotes,
// newlines and shell metacharacters pass through unchanged.
func Format(p Payload) string {
	lines := make([]string, 0, len(p))
	for _, e := range p {
		lines = append(lines, FormatLine(e))
	}
	return strings.Join(lines, "\n")
}

// FormatLine renders a single entry.
func FormatLine(e Entry) string {
	v := e.Value
	switch {
	case v.Kind() == KindString && v.str == "":
		return e.Key + `=""`
	case v.Kind() == KindString && strings.Contains(v.str, " "):
		return e.Key + `="` + v.str + `"`
	default:
		return e.Key + "=" + v.Text()
	}
}
