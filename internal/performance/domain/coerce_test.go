package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexFloatUnmarshal(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`123.45`, 123.45},
		{`"123.45"`, 123.45},
		{`" 7 "`, 7},
		{`""`, 0},
		{`null`, 0},
		{`"abc"`, 0},
		{`"12abc"`, 0},
	}

	for _, tc := range cases {
		var f FlexFloat
		err := json.Unmarshal([]byte(tc.raw), &f)
		assert.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, f.Float64(), tc.raw)
	}
}

func TestFlexIntUnmarshal(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{`10`, 10},
		{`"10"`, 10},
		{`10.9`, 10}, // truncated, not rounded
		{`"garbage"`, 0},
		{`null`, 0},
	}

	for _, tc := range cases {
		var i FlexInt
		err := json.Unmarshal([]byte(tc.raw), &i)
		assert.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, i.Int64(), tc.raw)
	}
}

func TestCreateRecordRequestCoercion(t *testing.T) {
	payload := `{
		"staff": "amber",
		"date": "2026-08-15",
		"ad_spend": "100.5",
		"credit_card_amount": 2200,
		"credit_card_orders": "10"
	}`

	var req CreateRecordRequest
	assert.NoError(t, json.Unmarshal([]byte(payload), &req))
	assert.Equal(t, 100.5, req.AdSpend.Float64())
	assert.Equal(t, 2200.0, req.CreditCardAmount.Float64())
	assert.Equal(t, int64(10), req.CreditCardOrders.Int64())
}
