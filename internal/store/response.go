package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"operadoras/internal/domain"
)

// listShape tags which server contract a collection body followed.
type listShape string

const (
	shapeEnveloped listShape = "enveloped"
	shapeBare      listShape = "bare"
	shapeUnknown   listShape = "unknown"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta"`
}

type envelopeMeta struct {
	Total json.RawMessage `json:"total"`
}

// decodeList reconciles the enveloped ({data, meta.total}) and bare ([...])
// collection shapes. Any other body falls back to the bare branch, which for
// a non-array yields no items and a zero total.
func decodeList(body json.RawMessage) (domain.ListResult, listShape, error) {
	switch firstToken(body) {
	case '{':
		var env envelope
		if err := decodeJSON(body, &env); err != nil {
			return domain.ListResult{}, shapeUnknown, err
		}
		if firstToken(env.Data) == '[' {
			items, err := decodeRecords[domain.OperatorSummary](env.Data)
			if err != nil {
				return domain.ListResult{}, shapeEnveloped, err
			}
			total, ok := metaTotal(env.Meta)
			if !ok {
				return domain.ListResult{Items: items, Total: len(items)}, shapeUnknown, nil
			}
			if total < 0 {
				total = len(items)
			}
			return domain.ListResult{Items: items, Total: total}, shapeEnveloped, nil
		}
		return domain.ListResult{Items: []domain.OperatorSummary{}}, shapeUnknown, nil
	case '[':
		items, err := decodeRecords[domain.OperatorSummary](body)
		if err != nil {
			return domain.ListResult{}, shapeBare, err
		}
		return domain.ListResult{Items: items, Total: len(items)}, shapeBare, nil
	default:
		return domain.ListResult{Items: []domain.OperatorSummary{}}, shapeUnknown, nil
	}
}

// metaTotal reads meta.total. It returns -1 when meta or total is absent or
// null, and false when total is present but not a whole number.
func metaTotal(raw json.RawMessage) (int, bool) {
	switch firstToken(raw) {
	case 0, 'n':
		return -1, true
	case '{':
	default:
		return 0, false
	}
	var meta envelopeMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return 0, false
	}
	switch firstToken(meta.Total) {
	case 0, 'n':
		return -1, true
	case '"', '{', '[', 't', 'f':
		return 0, false
	}
	number := json.Number(bytes.TrimSpace(meta.Total))
	if value, err := number.Int64(); err == nil {
		if value < 0 || value > math.MaxInt32 {
			return 0, false
		}
		return int(value), true
	}
	value, err := number.Float64()
	if err != nil || value < 0 || value > math.MaxInt32 || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}

// decodeDetail accepts an object, or null for a record the server has no
// data for.
func decodeDetail(body json.RawMessage) (domain.OperatorDetail, error) {
	if firstToken(body) == 'n' {
		var detail domain.OperatorDetail
		if err := decodeJSON(body, &detail); err != nil {
			return nil, fmt.Errorf("operator detail: %w", err)
		}
		return detail, nil
	}
	if firstToken(body) != '{' {
		return nil, fmt.Errorf("operator detail: expected object, got %s", describe(body))
	}
	var detail domain.OperatorDetail
	if err := decodeJSON(body, &detail); err != nil {
		return nil, fmt.Errorf("operator detail: %w", err)
	}
	return detail, nil
}

func decodeExpenses(body json.RawMessage) ([]domain.Expense, error) {
	if firstToken(body) != '[' {
		return nil, fmt.Errorf("expense history: expected array, got %s", describe(body))
	}
	expenses, err := decodeRecords[domain.Expense](body)
	if err != nil {
		return nil, fmt.Errorf("expense history: %w", err)
	}
	return expenses, nil
}

func decodeRecords[T ~map[string]any](raw json.RawMessage) ([]T, error) {
	records := []T{}
	if err := decodeJSON(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// decodeJSON keeps numbers as json.Number so identifiers and amounts survive
// unchanged.
func decodeJSON(raw json.RawMessage, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	return decoder.Decode(target)
}

func firstToken(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func describe(raw json.RawMessage) string {
	switch firstToken(raw) {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 'n':
		return "null"
	case 0:
		return "empty body"
	default:
		return "scalar"
	}
}
