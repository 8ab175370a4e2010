package nts

import (
	"encoding/json"
	"testing"

	"gotest.tools/assert"
)

func TestFloatMarshalsSentinels(t *testing.T) {
	cases := []struct {
		value Float
		wire  string
	}{
		{42, "42"},
		{0.5, "0.5"},
		{PosInf, `"inf"`},
		{NegInf, `"-inf"`},
		{NaN, `"nan"`},
	}
	for _, c := range cases {
		data, err := json.Marshal(c.value)
		assert.NilError(t, err)
		assert.Equal(t, string(data), c.wire)
	}
}

func TestFloatUnmarshalsSentinels(t *testing.T) {
	var f Float

	assert.NilError(t, json.Unmarshal([]byte(`"inf"`), &f))
	assert.Assert(t, f.IsInf(1))

	assert.NilError(t, json.Unmarshal([]byte(`"-inf"`), &f))
	assert.Assert(t, f.IsInf(-1))

	assert.NilError(t, json.Unmarshal([]byte(`"nan"`), &f))
	assert.Assert(t, f.IsNaN())

	assert.NilError(t, json.Unmarshal([]byte(`1.25`), &f))
	assert.Equal(t, f, Float(1.25))

	assert.Assert(t, json.Unmarshal([]byte(`"bogus"`), &f) != nil)
}

func TestParseLiteral(t *testing.T) {
	f, err := ParseLiteral("inf")
	assert.NilError(t, err)
	assert.Assert(t, f.IsInf(1))

	f, err = ParseLiteral("-2.5")
	assert.NilError(t, err)
	assert.Equal(t, f, Float(-2.5))

	_, err = ParseLiteral("fuel")
	assert.Assert(t, err != nil)
}

func TestPairString(t *testing.T) {
	p := Pair{From: "fuel", To: "electricity"}
	assert.Equal(t, p.String(), "('fuel', 'electricity')")
}

func TestSplitPair(t *testing.T) {
	from, to, err := SplitPair("('fuel', 'electricity')")
	assert.NilError(t, err)
	assert.Equal(t, from, "fuel")
	assert.Equal(t, to, "electricity")

	source, target, err := SplitPair("[Gen, Powerline]")
	assert.NilError(t, err)
	assert.Equal(t, source, "Gen")
	assert.Equal(t, target, "Powerline")

	// inner spaces survive the cleaning
	from, to, err = SplitPair("('bus A', 'bus B')")
	assert.NilError(t, err)
	assert.Equal(t, from, "bus A")
	assert.Equal(t, to, "bus B")

	_, _, err = SplitPair("[a, b, c]")
	assert.ErrorContains(t, err, "does not split")
}

func TestBound(t *testing.T) {
	assert.Assert(t, !Scalar(5).IsSeries())
	assert.Assert(t, Series(1, 2, 3).IsSeries())
	assert.Equal(t, Scalar(5).Constant, Float(5))
	assert.Equal(t, len(Series(1, 2, 3).Steps), 3)
}
