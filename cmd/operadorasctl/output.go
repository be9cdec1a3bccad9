package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"operadoras/internal/domain"
	"operadoras/internal/store"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// Columns shown first when the records carry them; other keys follow sorted.
var (
	operatorColumns = []string{"registro_ans", "cnpj", "razao_social", "uf", "modalidade"}
	expenseColumns  = []string{"ano", "trimestre", "data_evento", "valor"}
)

type listView struct {
	Items      []domain.OperatorSummary `json:"items" yaml:"items"`
	Total      int                      `json:"total" yaml:"total"`
	Page       int                      `json:"page" yaml:"page"`
	PageSize   int                      `json:"pageSize" yaml:"pageSize"`
	TotalPages int                      `json:"totalPages" yaml:"totalPages"`
	Search     string                   `json:"search,omitempty" yaml:"search,omitempty"`
}

type detailView struct {
	Detail         domain.OperatorDetail `json:"detail" yaml:"detail"`
	ExpenseHistory []domain.Expense      `json:"expenseHistory" yaml:"expenseHistory"`
}

func newListView(snapshot store.Snapshot) listView {
	return listView{
		Items:      snapshot.Items,
		Total:      snapshot.Total,
		Page:       snapshot.Query.Page,
		PageSize:   snapshot.Query.PageSize,
		TotalPages: snapshot.TotalPages,
		Search:     snapshot.Query.SearchText,
	}
}

func printList(w io.Writer, snapshot store.Snapshot, format string) error {
	view := newListView(snapshot)
	switch format {
	case outputJSON:
		return writeJSON(w, view)
	case outputYAML:
		return writeYAML(w, view)
	}
	records := make([]map[string]any, 0, len(view.Items))
	for _, item := range view.Items {
		records = append(records, item)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "no operators found")
	} else if err := writeTable(w, records, operatorColumns); err != nil {
		return err
	}
	fmt.Fprintln(w, pageLine(view))
	return nil
}

func printDetail(w io.Writer, snapshot store.Snapshot, format string) error {
	view := detailView{Detail: snapshot.Detail, ExpenseHistory: snapshot.ExpenseHistory}
	switch format {
	case outputJSON:
		return writeJSON(w, view)
	case outputYAML:
		return writeYAML(w, view)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, key := range orderedKeys([]map[string]any{view.Detail}, operatorColumns) {
		fmt.Fprintf(tw, "%s:\t%s\n", key, formatValue(view.Detail[key]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if len(view.ExpenseHistory) == 0 {
		fmt.Fprintln(w, "no expenses recorded")
		return nil
	}
	fmt.Fprintf(w, "expenses (%d):\n", len(view.ExpenseHistory))
	records := make([]map[string]any, 0, len(view.ExpenseHistory))
	for _, expense := range view.ExpenseHistory {
		records = append(records, expense)
	}
	return writeTable(w, records, expenseColumns)
}

func pageLine(view listView) string {
	return fmt.Sprintf("page %d/%d total %d", view.Page, view.TotalPages, view.Total)
}

func formatStatusLine(status domain.RequestStatus) string {
	if status.ErrorCode == 0 {
		return status.ErrorMessage
	}
	return fmt.Sprintf("%s (status %d)", status.ErrorMessage, status.ErrorCode)
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, value any) error {
	// Round-trip through JSON so json.Number and the json tags drive the output.
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, records []map[string]any, preferred []string) error {
	keys := orderedKeys(records, preferred)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(keys, "\t")))
	for _, record := range records {
		cells := make([]string, len(keys))
		for i, key := range keys {
			cells[i] = formatValue(record[key])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func orderedKeys(records []map[string]any, preferred []string) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		for key := range record {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for _, key := range preferred {
		if _, ok := seen[key]; ok {
			keys = append(keys, key)
			delete(seen, key)
		}
	}
	rest := make([]string, 0, len(seen))
	for key := range seen {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case json.Number:
		return v.String()
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}
