package envfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrNotObject is returned when the secret payload is valid JSON but not an object.
var ErrNotObject = errors.New("secret payload is not a JSON object")

// Parse decodes a JSON object into a Payload, keeping the order in which keys
// appear. A key repeated in the source keeps its first position and takes the
// last value.
func Parse(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode secret payload: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	payload := Payload{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode secret payload: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode secret payload: unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}
		val, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}

		if i, seen := index[key]; seen {
			payload[i].Value = val
			continue
		}
		index[key] = len(payload)
		payload = append(payload, Entry{Key: key, Value: val})
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode secret payload: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode secret payload: unexpected data after JSON object")
	}
	return payload, nil
}

func decodeValue(raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Value{}, errors.New("empty value")
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case 't', 'f':
		b, err := strconv.ParseBool(string(raw))
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case 'n':
		return Null(), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return Value{}, err
		}
		return Raw(buf.String()), nil
	default:
		// syntax already checked by the decoder
		return NumberLiteral(string(raw)), nil
	}
}
