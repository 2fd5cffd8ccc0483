// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/skyquery/internal/errors"
)

// tapResponse is the JSON rendering of a TAP synchronous query result.
type tapResponse struct {
	Metadata []struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Data [][]any `json:"data"`
}

// tapRow reads columns of one result row by name.
type tapRow struct {
	cols map[string]int
	row  []any
}

func (r tapRow) value(col string) (any, bool) {
	i, ok := r.cols[col]
	if !ok || i >= len(r.row) || r.row[i] == nil {
		return nil, false
	}
	return r.row[i], true
}

func (r tapRow) str(col string) string {
	v, ok := r.value(col)
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	}
	return ""
}

func (r tapRow) float(col string) (float64, bool) {
	v, ok := r.value(col)
	if !ok {
		return 0, false
	}
	switch v := v.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func (r tapRow) floatPtr(col string) *float64 {
	if f, ok := r.float(col); ok {
		return &f
	}
	return nil
}

// queryTAP runs an ADQL query against a TAP sync endpoint and returns its
// rows.
func queryTAP(ctx context.Context, c client, endpoint, adql string) ([]tapRow, error) {
	form := url.Values{
		"REQUEST": {"doQuery"},
		"LANG":    {"ADQL"},
		"FORMAT":  {"json"},
		"QUERY":   {adql},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var tr tapResponse
	if err := dec.Decode(&tr); err != nil {
		return nil, errors.Wrap(err, "parsing TAP response")
	}

	cols := make(map[string]int, len(tr.Metadata))
	for i, m := range tr.Metadata {
		cols[m.Name] = i
	}
	rows := make([]tapRow, 0, len(tr.Data))
	for _, row := range tr.Data {
		rows = append(rows, tapRow{cols: cols, row: row})
	}
	return rows, nil
}

// adqlString quotes s as an ADQL string literal.
func adqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
