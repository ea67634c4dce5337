package envfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(p Payload) []string {
	out := make([]string, 0, len(p))
	for _, e := range p {
		out = append(out, e.Key)
	}
	return out
}

func TestParse_PreservesOrder(t *testing.T) {
	p, err := Parse([]byte(`{"ZETA":"1","ALPHA":"2","MID":"3"}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"ZETA", "ALPHA", "MID"}, keys(p))
}

func TestParse_ValueKinds(t *testing.T) {
	p, err := Parse([]byte(`{
		"s": "text",
		"n": 5432,
		"f": 2.50,
		"e": 1e3,
		"t": true,
		"x": false,
		"z": null,
		"o": { "a" : [1, 2] },
		"a": [ "x", null ]
	}`))
	require.NoError(t, err)
	require.Len(t, p, 9)

	expected := []struct {
		kind Kind
		text string
	}{
		{KindString, "text"},
		{KindNumber, "5432"},
		{KindNumber, "2.5"},
		{KindNumber, "1000"},
		{KindBool, "true"},
		{KindBool, "false"},
		{KindNull, "null"},
		{KindRaw, `{"a":[1,2]}`},
		{KindRaw, `["x",null]`},
	}
	for i, want := range expected {
		assert.Equal(t, want.kind, p[i].Value.Kind(), "kind of %s", p[i].Key)
		assert.Equal(t, want.text, p[i].Value.Text(), "text of %s", p[i].Key)
	}
}

func TestParse_StringEscapesDecoded(t *testing.T) {
	p, err := Parse([]byte(`{"K":"line1\nline2 \"q\" é"}`))

	require.NoError(t, err)
	assert.Equal(t, "line1\nline2 \"q\" é", p[0].Value.Text())
}

func TestParse_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	p, err := Parse([]byte(`{"A":"1","B":"2","A":"3"}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, keys(p))
	assert.Equal(t, "3", p[0].Value.Text())
}

func TestParse_EmptyObject(t *testing.T) {
	p, err := Parse([]byte(` {} `))

	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty input", payload: ``},
		{name: "array", payload: `["a","b"]`},
		{name: "string", payload: `"hello"`},
		{name: "number", payload: `42`},
		{name: "null", payload: `null`},
		{name: "truncated", payload: `{"A":"1"`},
		{name: "not json", payload: `A=1`},
		{name: "trailing data", payload: `{"A":"1"} {"B":"2"}`},
		{name: "bad value", payload: `{"A": tru}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.payload))
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestParse_NonObjectIsErrNotObject(t *testing.T) {
	_, err := Parse([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestParse_LargeExponentKeepsLiteral(t *testing.T) {
	tests := []struct {
		payload  string
		expected string
	}{
		{payload: `{"N": 1e3}`, expected: "1000"},
		{payload: `{"N": 1E-7}`, expected: "0.0000001"},
		{payload: `{"N": 123456789012345678901234567890}`, expected: "123456789012345678901234567890"},
		{payload: `{"N": 1e400}`, expected: "1e400"},
		{payload: `{"N": 1e50000000}`, expected: "1e50000000"},
		{payload: `{"N": -2.5E-50000000}`, expected: "-2.5E-50000000"},
		{payload: `{"N": 1e99999999999}`, expected: "1e99999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			p, err := Parse([]byte(tt.payload))
			require.NoError(t, err)
			require.Len(t, p, 1)
			assert.Equal(t, KindNumber, p[0].Value.Kind())
			assert.Equal(t, tt.expected, p[0].Value.Text())
			assert.Equal(t, "N="+tt.expected, Format(p))
		})
	}
}
