package trello

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	posTop    = "top"
	posBottom = "bottom"
)

// Position places a card within its list, or a list within its board.
// It is either one of the symbolic ends or a positive number.
type Position struct {
	symbol string
	value  float64
}

var (
	// PositionTop places the item first.
	PositionTop = Position{symbol: posTop}
	// PositionBottom places the item last. It is the default for new cards and lists.
	PositionBottom = Position{symbol: posBottom}
)

// PositionAt returns a numeric position. n must be a positive, finite number.
func PositionAt(n float64) (Position, error) {
	if !(n > 0) || math.IsInf(n, 1) {
		return Position{}, invalidPosition(formatScalar(n))
	}
	return Position{value: n}, nil
}

// ParsePosition converts a field value to a Position. It accepts "top",
// "bottom", a Position, or a positive number given as a number or a string.
func ParsePosition(v any) (Position, error) {
	switch val := v.(type) {
	case Position:
		if val.symbol == "" && !(val.value > 0) {
			return Position{}, invalidPosition(val.String())
		}
		return val, nil
	case string:
		switch strings.TrimSpace(val) {
		case posTop:
			return PositionTop, nil
		case posBottom:
			return PositionBottom, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return Position{}, invalidPosition(val)
		}
		return PositionAt(n)
	case float64:
		return PositionAt(val)
	case float32:
		return PositionAt(float64(val))
	case int:
		return PositionAt(float64(val))
	case int64:
		return PositionAt(float64(val))
	case int32:
		return PositionAt(float64(val))
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return Position{}, invalidPosition(val.String())
		}
		return PositionAt(n)
	default:
		return Position{}, invalidPosition(formatScalar(v))
	}
}

// IsNumeric reports whether p is a numeric position.
func (p Position) IsNumeric() bool {
	return p.symbol == ""
}

// Value returns the field value sent to the API: "top", "bottom" or the number.
func (p Position) Value() any {
	if p.symbol != "" {
		return p.symbol
	}
	return p.value
}

func (p Position) String() string {
	if p.symbol != "" {
		return p.symbol
	}
	return strconv.FormatFloat(p.value, 'f', -1, 64)
}

func invalidPosition(v string) *Error {
	return newArgumentError("Invalid pos value %s. Valid Values: A position. top, bottom, or a positive number", v)
}

// normalizePosition defaults the record's pos field to bottom, or validates
// and normalizes the value already present.
func normalizePosition(r *Record) error {
	v := r.Get("pos")
	if isBlank(v) {
		r.Set("pos", posBottom)
		return nil
	}
	p, err := ParsePosition(v)
	if err != nil {
		return err
	}
	r.Set("pos", p.Value())
	return nil
}

// isBlank reports whether a field value counts as missing.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}
