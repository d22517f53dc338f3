package domain

import (
	"bytes"
	"strconv"
	"strings"
)

// The upstream sheet exports numeric columns as either numbers or strings.
// FlexFloat and FlexInt accept both and coerce anything unparseable to zero,
// so a malformed row can never poison an aggregate with NaN.

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(parseFloatField(data))
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }

type FlexInt int64

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	*i = FlexInt(int64(parseFloatField(data)))
	return nil
}

func (i FlexInt) Int64() int64 { return int64(i) }

func parseFloatField(data []byte) float64 {
	raw := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if raw == "" || raw == "null" {
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return parsed
}
