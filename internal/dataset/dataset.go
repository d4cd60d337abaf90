// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

// Package dataset reads the interaction and catalog CSV exports that seed
// the store and feed the offline CLI.
//
// Columns are located by header name, case-insensitively, so extra columns
// and any column order are accepted.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/smartcart/internal/recommend"
	"github.com/tomtom215/smartcart/internal/shopping"
)

// ErrMissingColumn is wrapped when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// ParseError reports a malformed value with its position in the file.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// header maps lower-cased column names to their index.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	names, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: header row expected")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(names))
	for i, n := range names {
		n = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(n, "\ufeff")))
		if _, dup := h[n]; !dup {
			h[n] = i
		}
	}
	return h, nil
}

// find returns the index of the first present name, or -1.
func (h header) find(names ...string) int {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i
		}
	}
	return -1
}

func (h header) require(names ...string) (int, error) {
	if i := h.find(names...); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(names, " or "))
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ReadInteractions reads purchase records. Required columns are user_id
// and product_id. The signal comes from a signal column, else a reordered
// column, else it is 1 per row so that repeated purchases count up.
func ReadInteractions(r io.Reader) ([]recommend.Interaction, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	userCol, err := h.require("user_id")
	if err != nil {
		return nil, err
	}
	productCol, err := h.require("product_id")
	if err != nil {
		return nil, err
	}
	signalCol := h.find("signal", "reordered")
	signalName := "signal"
	if _, ok := h["signal"]; !ok {
		signalName = "reordered"
	}

	var out []recommend.Interaction
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read interactions: %w", err)
		}
		line, _ := cr.FieldPos(0)

		user, err := strconv.Atoi(field(record, userCol))
		if err != nil {
			return nil, &ParseError{Line: line, Column: "user_id", Err: err}
		}
		product, err := strconv.Atoi(field(record, productCol))
		if err != nil {
			return nil, &ParseError{Line: line, Column: "product_id", Err: err}
		}
		signal := 1.0
		if signalCol >= 0 {
			if signal, err = parseNonNegative(field(record, signalCol)); err != nil {
				return nil, &ParseError{Line: line, Column: signalName, Err: err}
			}
		}
		out = append(out, recommend.Interaction{UserID: user, ProductID: product, Signal: signal})
	}
	return out, nil
}

// ReadCatalog reads catalog items. Required columns are product_id,
// product_name, brand, category and price; health_label and
// sustainability_label are optional.
func ReadCatalog(r io.Reader) ([]shopping.Item, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int)
	for _, c := range []struct {
		key     string
		aliases []string
	}{
		{"product_id", []string{"product_id"}},
		{"product_name", []string{"product_name", "name"}},
		{"brand", []string{"brand"}},
		{"category", []string{"category", "department"}},
		{"price", []string{"price", "unit_price"}},
	} {
		i, err := h.require(c.aliases...)
		if err != nil {
			return nil, err
		}
		cols[c.key] = i
	}
	healthCol := h.find("health_label")
	sustainCol := h.find("sustainability_label")

	var out []shopping.Item
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		line, _ := cr.FieldPos(0)

		id, err := strconv.Atoi(field(record, cols["product_id"]))
		if err != nil {
			return nil, &ParseError{Line: line, Column: "product_id", Err: err}
		}
		price, err := parseNonNegative(field(record, cols["price"]))
		if err != nil {
			return nil, &ParseError{Line: line, Column: "price", Err: err}
		}
		out = append(out, shopping.Item{
			ProductID:           id,
			Name:                field(record, cols["product_name"]),
			Brand:               field(record, cols["brand"]),
			Category:            field(record, cols["category"]),
			UnitPrice:           price,
			HealthLabel:         field(record, healthCol),
			SustainabilityLabel: field(record, sustainCol),
		})
	}
	return out, nil
}

func parseNonNegative(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q must be a non-negative number", s)
	}
	return v, nil
}

// LoadInteractionsFile reads interactions from a CSV file.
func LoadInteractionsFile(path string) ([]recommend.Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interactions file: %w", err)
	}
	defer f.Close()

	records, err := ReadInteractions(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadCatalogFile reads catalog items from a CSV file.
func LoadCatalogFile(path string) ([]shopping.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	items, err := ReadCatalog(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
