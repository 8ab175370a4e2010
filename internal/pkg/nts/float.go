package nts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Float is a float64 whose JSON form survives round trips for non-finite
// values. Finite values marshal as plain numbers, signed infinity and NaN
// marshal as the quoted sentinels "inf", "-inf" and "nan". Unconstrained
// numeric bounds use the infinity sentinels, never null.
type Float float64

var (
	// PosInf is the positive unconstrained sentinel.
	PosInf = Float(math.Inf(1))
	// NegInf is the negative unconstrained sentinel.
	NegInf = Float(math.Inf(-1))
	// NaN marks optional scalars that were never set.
	NaN = Float(math.NaN())
)

// IsInf reports whether the value is infinite with the given sign
// (see math.IsInf).
func (f Float) IsInf(sign int) bool {
	return math.IsInf(float64(f), sign)
}

// IsNaN reports whether the value is the not-a-number sentinel.
func (f Float) IsNaN() bool {
	return math.IsNaN(float64(f))
}

// Literal renders the value as a bare tuple-literal token.
func (f Float) Literal() string {
	switch {
	case math.IsInf(float64(f), 1):
		return "inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	case math.IsNaN(float64(f)):
		return "nan"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// ParseLiteral parses a bare tuple-literal token back into a Float.
func ParseLiteral(tok string) (Float, error) {
	switch tok {
	case "inf":
		return PosInf, nil
	case "-inf":
		return NegInf, nil
	case "nan":
		return NaN, nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("nts: token %q is not numeric", tok)
	}
	return Float(v), nil
}

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return json.Marshal(f.Literal())
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*f = Float(v)
		return nil
	case string:
		parsed, err := ParseLiteral(v)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}
	return fmt.Errorf("nts: cannot unmarshal %s into Float", string(data))
}
