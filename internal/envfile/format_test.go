package envfile

import (
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Payload {
	t.Helper()
	p, err := Parse([]byte(s))
	require.NoError(t, err)
	return p
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "", Format(Payload{}))
	assert.Equal(t, "", Format(mustParse(t, `{}`)))
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{name: "empty string", value: String(""), expected: `KEY=""`},
		{name: "plain string", value: String("localhost"), expected: `KEY=localhost`},
		{name: "string with space", value: String("abc 123"), expected: `KEY="abc 123"`},
		{name: "only a space", value: String(" "), expected: `KEY=" "`},
		{name: "embedded quotes not escaped", value: String(`say "hi" now`), expected: `KEY="say "hi" now"`},
		{name: "quotes without space stay bare", value: String(`"quoted"`), expected: `KEY="quoted"`},
		{name: "tab is not a space", value: String("a\tb"), expected: "KEY=a\tb"},
		{name: "newline is not quoted", value: String("line1\nline2"), expected: "KEY=line1\nline2"},
		{name: "equals sign", value: String("a=b"), expected: `KEY=a=b`},
		{name: "integer", value: Number(decimal.NewFromInt(5432)), expected: `KEY=5432`},
		{name: "negative float", value: Number(decimal.RequireFromString("-3.14")), expected: `KEY=-3.14`},
		{name: "true", value: Bool(true), expected: `KEY=true`},
		{name: "false", value: Bool(false), expected: `KEY=false`},
		{name: "null", value: Null(), expected: `KEY=null`},
		{name: "nested", value: Raw(`{"a":1}`), expected: `KEY={"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLine(Entry{Key: "KEY", Value: tt.value}))
		})
	}
}

func TestFormat_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "host and port",
			payload:  `{"DB_HOST": "localhost", "DB_PORT": 5432}`,
			expected: "DB_HOST=localhost\nDB_PORT=5432",
		},
		{
			name:     "quoted and empty",
			payload:  `{"API_KEY": "abc 123", "DEBUG": ""}`,
			expected: "API_KEY=\"abc 123\"\nDEBUG=\"\"",
		},
		{
			name:     "mixed scalars keep source order",
			payload:  `{"Z": null, "A": true, "M": 1.50, "B": "x y"}`,
			expected: "Z=null\nA=true\nM=1.5\nB=\"x y\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(mustParse(t, tt.payload)))
		})
	}
}

func TestFormat_OneLinePerKey(t *testing.T) {
	p := mustParse(t, `{"A":"1","B":2,"C":false,"D":null,"E":"","F":"g h","G":[1,2]}`)

	out := Format(p)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, len(p))
	for i, e := range p {
		assert.True(t, strings.HasPrefix(lines[i], e.Key+"="), "line %d should start with %s=", i, e.Key)
	}
	assert.False(t, strings.HasSuffix(out, "\n"), "no trailing newline")
}

func TestFormat_Idempotent(t *testing.T) {
	p := mustParse(t, `{"API_KEY": "abc 123", "DEBUG": "", "PORT": 8080}`)
	assert.Equal(t, Format(p), Format(p))
}

func TestFormat_ReadableByDotenv(t *testing.T) {
	p := mustParse(t, `{"DB_HOST": "localhost", "DB_PORT": 5432, "API_KEY": "abc 123", "DEBUG": "", "VERBOSE": true}`)

	env, err := godotenv.Unmarshal(Format(p))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"DB_HOST": "localhost",
		"DB_PORT": "5432",
		"API_KEY": "abc 123",
		"DEBUG":   "",
		"VERBOSE": "true",
	}, env)
}
