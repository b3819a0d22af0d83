package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/airyra/trello/pkg/trello"
)

// cardSummary is the part of a card shown in card tables.
type cardSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Pos    float64 `json:"pos"`
	Closed bool    `json:"closed"`
	Due    string  `json:"due"`
}

// printRecord prints every field of a single entity
func printRecord(w io.Writer, rec *trello.Record, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(rec)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rec.Range(func(key string, value any) bool {
		fmt.Fprintf(tw, "%s:\t%s\n", key, truncate(formatValue(value), 80))
		return true
	})
	tw.Flush()
}

// printTable prints entities one per row with the given columns
func printTable(w io.Writer, recs []*trello.Record, columns []string, empty string, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(recs)
		return
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, empty)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = strings.ToUpper(col)
		rules[i] = strings.Repeat("-", len(col))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	for _, rec := range recs {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = truncate(formatValue(rec.Get(col)), 40)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// printCards prints cards with their position and due date
func printCards(w io.Writer, recs []*trello.Record, jsonOutput bool) error {
	if jsonOutput || len(recs) == 0 {
		printTable(w, recs, nil, "No cards found", jsonOutput)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tPOS\tDUE\n")
	fmt.Fprintf(tw, "--\t----\t---\t---\n")
	for _, rec := range recs {
		var card cardSummary
		if err := rec.Decode(&card); err != nil {
			return err
		}
		name := truncate(card.Name, 40)
		if card.Closed {
			name += " (closed)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			card.ID, name, strconv.FormatFloat(card.Pos, 'f', -1, 64), card.Due)
	}
	tw.Flush()
	return nil
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": err.Error(),
				"code":    mapErrorToExitCode(err),
			},
		})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"message": message,
		})
		return
	}

	fmt.Fprintln(w, message)
}

// formatValue renders a field value for a table cell
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// recordsOf collects the fields of a list of models.
func recordsOf[T interface{ Fields() *trello.Record }](items []T) []*trello.Record {
	recs := make([]*trello.Record, len(items))
	for i, item := range items {
		recs[i] = item.Fields()
	}
	return recs
}
