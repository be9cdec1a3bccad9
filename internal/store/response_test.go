package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeList_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape listShape
		wantItems int
		wantTotal int
	}{
		{name: "enveloped", body: `{"data":[{}],"meta":{"total":7}}`, wantShape: shapeEnveloped, wantItems: 1, wantTotal: 7},
		{name: "enveloped zero total", body: `{"data":[{}],"meta":{"total":0}}`, wantShape: shapeEnveloped, wantItems: 1, wantTotal: 0},
		{name: "bare with whitespace", body: "\n  [{}, {}]", wantShape: shapeBare, wantItems: 2, wantTotal: 2},
		{name: "empty bare", body: `[]`, wantShape: shapeBare, wantItems: 0, wantTotal: 0},
		{name: "fractional-free float total", body: `{"data":[{}],"meta":{"total":30.0}}`, wantShape: shapeEnveloped, wantItems: 1, wantTotal: 30},
		{name: "fractional total", body: `{"data":[{},{}],"meta":{"total":2.5}}`, wantShape: shapeUnknown, wantItems: 2, wantTotal: 2},
		{name: "meta not object", body: `{"data":[{}],"meta":"x"}`, wantShape: shapeUnknown, wantItems: 1, wantTotal: 1},
		{name: "data not array", body: `{"data":{"a":1}}`, wantShape: shapeUnknown},
		{name: "scalar", body: `"hello"`, wantShape: shapeUnknown},
		{name: "null", body: `null`, wantShape: shapeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, shape, err := decodeList(json.RawMessage(tt.body))

			require.NoError(t, err)
			require.Equal(t, tt.wantShape, shape)
			require.Len(t, result.Items, tt.wantItems)
			require.Equal(t, tt.wantTotal, result.Total)
		})
	}
}

func TestDecodeList_Malformed(t *testing.T) {
	_, _, err := decodeList(json.RawMessage(`{"data":[{]}`))
	require.Error(t, err)
}

func TestDecodeDetail_RequiresObject(t *testing.T) {
	_, err := decodeDetail(json.RawMessage(`[1]`))
	require.ErrorContains(t, err, "expected object, got array")

	detail, err := decodeDetail(json.RawMessage(` null`))
	require.NoError(t, err)
	require.Nil(t, detail)

	detail, err = decodeDetail(json.RawMessage(`{"uf":"SP"}`))
	require.NoError(t, err)
	require.Equal(t, "SP", detail["uf"])
}

func TestDecodeExpenses_RequiresArray(t *testing.T) {
	_, err := decodeExpenses(json.RawMessage(`{"valor":1}`))
	require.ErrorContains(t, err, "expected array, got object")

	expenses, err := decodeExpenses(json.RawMessage(`[]`))
	require.NoError(t, err)
	require.NotNil(t, expenses)
	require.Empty(t, expenses)
}
