package envfile

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	// KindRaw holds a nested JSON array or object in compact form.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindRaw:
		return "raw"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single secret value decoded from JSON.
type Value struct {
	kind  Kind
	str   string
	num   decimal.Decimal
	exact bool // num holds the value of the number
	b     bool
}

// maxExpandedDigits bounds the plain decimal rendering of a number. Numbers
// whose expansion would be longer keep their JSON text (e.g. 1e400).
const maxExpandedDigits = 64

func String(s string) Value { return Value{kind: KindString, str: s} }
func Number(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d, exact: true} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Null() Value { return Value{kind: KindNull} }

// NumberLiteral holds a JSON number together with its source text.
func NumberLiteral(lit string) Value {
	v := Value{kind: KindNumber, str: lit}
	if d, err := decimal.NewFromString(lit); err == nil {
		v.num, v.exact = d, true
	}
	return v
}

// Raw wraps compact JSON text of a nested array or object.
func Raw(compactJSON string) Value { return Value{kind: KindRaw, str: compactJSON} }

func (v Value) Kind() Kind { return v.kind }

// Text returns the natural textual form of the value: strings verbatim,
// numbers in canonical decimal notation (or their JSON text when that would
// exceed maxExpandedDigits), JSON literals for bool and null.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindRaw:
		return v.str
	case KindNumber:
		if v.str != "" && (!v.exact || expandedDigits(v.num) > maxExpandedDigits) {
			return v.str
		}
		return v.num.String()
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "null"
	default:
		return ""
	}
}

// expandedDigits is an upper bound on the length of d.String().
func expandedDigits(d decimal.Decimal) int64 {
	coef := int64(len(d.Coefficient().String()))
	exp := int64(d.Exponent())
	switch {
	case exp >= 0:
		return coef + exp
	case -exp >= coef:
		return -exp + 2
	default:
		return coef + 1
	}
}

// Entry is one key of the secret payload.
type Entry struct {
	Key   string
	Value Value
}

// Payload is the decoded secret, in source key order.
type Payload []Entry
