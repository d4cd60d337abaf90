// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/smartcart/internal/shopping"
)

const (
	ordersCSV = "user_id,product_id\n1,10\n1,11\n2,10\n2,12\n3,13\n"

	productsCSV = "product_id,product_name,brand,category,price,health_label,sustainability_label\n" +
		"1,Apples,Orchard,Produce,2.00,Healthy,\n" +
		"2,Milk,Dairyland,Dairy,3.00,,Sustainable\n" +
		"3,Chips,Crunch,Snacks,4.00,,\n"
)

func writeTestFiles(t *testing.T) (orders, products string) {
	t.Helper()
	dir := t.TempDir()
	orders = filepath.Join(dir, "orders.csv")
	products = filepath.Join(dir, "products.csv")
	if err := os.WriteFile(orders, []byte(ordersCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(products, []byte(productsCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return orders, products
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParsePreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    shopping.CategoryPreference
		wantErr bool
	}{
		{in: "Produce:1", want: shopping.CategoryPreference{Category: "Produce", Rank: 1}},
		{in: "Produce:1:true", want: shopping.CategoryPreference{Category: "Produce", Rank: 1, PreferQuantity: true}},
		{in: " Dairy : 2 : false ", want: shopping.CategoryPreference{Category: "Dairy", Rank: 2}},
		{in: "Snacks:Chips:3", want: shopping.CategoryPreference{Category: "Snacks:Chips", Rank: 3}},
		{in: "Snacks:Chips:3:yes", wantErr: true},
		{in: "Produce", wantErr: true},
		{in: "Produce:first", wantErr: true},
		{in: ":1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parsePreference(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePreference(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePreference(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecommendCommand(t *testing.T) {
	t.Parallel()
	orders, products := writeTestFiles(t)

	out, err := execute(t, "recommend", "--interactions", orders, "--user", "1", "--json")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	var got recommendOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	var ids []int
	for _, it := range got.Items {
		ids = append(ids, it.ProductID)
	}
	if !reflect.DeepEqual(ids, []int{12, 13}) {
		t.Errorf("recommended ids = %v, want [12 13]", ids)
	}

	out, err = execute(t, "recommend", "--interactions", orders, "--catalog", products, "--user", "1", "--top", "1")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	if !strings.Contains(out, "RANK") || !strings.Contains(out, "12") || strings.Contains(out, "13") {
		t.Errorf("table output = %q", out)
	}
}

func TestRecommendCommand_UnknownUser(t *testing.T) {
	t.Parallel()
	orders, _ := writeTestFiles(t)

	out, err := execute(t, "recommend", "--interactions", orders, "--user", "99", "--json")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	var got recommendOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if !got.UnknownUser || len(got.Items) != 0 {
		t.Errorf("output = %+v, want unknown user with no items", got)
	}
}

func TestRecommendCommand_Errors(t *testing.T) {
	t.Parallel()
	orders, _ := writeTestFiles(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing user", []string{"recommend", "--interactions", orders}},
		{"zero top", []string{"recommend", "--interactions", orders, "--user", "1", "--top", "0"}},
		{"missing file", []string{"recommend", "--interactions", orders + ".missing", "--user", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPlanCommand(t *testing.T) {
	t.Parallel()
	_, products := writeTestFiles(t)

	tests := []struct {
		name string
		args []string
		want []int
	}{
		{
			name: "preferences",
			args: []string{"--budget", "5", "--pref", "Produce:1", "--pref", "Dairy:2"},
			want: []int{1, 2},
		},
		{
			name: "healthy only",
			args: []string{"--budget", "5", "--healthy"},
			want: []int{1},
		},
		{
			name: "category filter",
			args: []string{"--budget", "10", "--category", "Snacks"},
			want: []int{3},
		},
		{
			name: "budget only",
			args: []string{"--budget", "5", "--mode", "budget-only", "--pref", "Snacks:1"},
			want: []int{1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"plan", "--catalog", products, "--json"}, tt.args...)
			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("plan error = %v", err)
			}
			var list shopping.ShoppingList
			if err := json.Unmarshal([]byte(out), &list); err != nil {
				t.Fatalf("decode output: %v\n%s", err, out)
			}
			var ids []int
			for _, e := range list.Entries {
				ids = append(ids, e.ProductID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("entries = %v, want %v", ids, tt.want)
			}
			if list.TotalCost > list.Budget {
				t.Errorf("total %v exceeds budget %v", list.TotalCost, list.Budget)
			}
		})
	}
}

func TestPlanCommand_TextOutput(t *testing.T) {
	t.Parallel()
	_, products := writeTestFiles(t)

	out, err := execute(t, "plan", "--catalog", products, "--budget", "5", "--pref", "Produce:1")
	if err != nil {
		t.Fatalf("plan error = %v", err)
	}
	for _, want := range []string{"Apples", "Milk", "Total: 5.00", "Remaining: 0.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "plan", "--catalog", products, "--budget", "3", "--min-budget", "1", "--category", "Snacks")
	if err != nil {
		t.Fatalf("plan error = %v", err)
	}
	if !strings.Contains(out, "No items fit within a budget of 3.00") {
		t.Errorf("output = %q", out)
	}
}

func TestPlanCommand_Errors(t *testing.T) {
	t.Parallel()
	_, products := writeTestFiles(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"below minimum budget", []string{"--budget", "3"}, "--budget must be between"},
		{"above maximum budget", []string{"--budget", "501"}, "--budget must be between"},
		{"negative budget", []string{"--budget", "-1"}, "budget"},
		{"unknown mode", []string{"--budget", "10", "--mode", "bulk"}, "mode"},
		{"malformed pref", []string{"--budget", "10", "--pref", "Produce"}, "CATEGORY:RANK"},
		{"zero rank", []string{"--budget", "10", "--pref", "Produce:0"}, "rank"},
		{"rank above max", []string{"--budget", "10", "--pref", "Produce:10"}, "rank"},
		{"too many categories", []string{"--budget", "10",
			"--category", "a", "--category", "b", "--category", "c", "--category", "d", "--category", "e",
			"--category", "f", "--category", "g", "--category", "h", "--category", "i", "--category", "j"}, "categories"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"plan", "--catalog", products}, tt.args...)
			_, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSimilarityCommand(t *testing.T) {
	t.Parallel()
	orders, _ := writeTestFiles(t)

	out, err := execute(t, "similarity", "--interactions", orders, "--user", "1", "--other", "2")
	if err != nil {
		t.Fatalf("similarity error = %v", err)
	}
	if !strings.Contains(out, "similarity(1, 2) = 0.5000") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "similarity", "--interactions", orders, "--user", "1", "--json")
	if err != nil {
		t.Fatalf("similarity error = %v", err)
	}
	var got similarityOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Neighbors) != 2 || got.Neighbors[0].UserID != 2 || got.Neighbors[1].UserID != 3 {
		t.Errorf("neighbors = %+v, want users 2 then 3", got.Neighbors)
	}

	if _, err := execute(t, "similarity", "--interactions", orders, "--user", "1", "--other", "99"); err == nil {
		t.Error("expected an error for an unknown user")
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	orders, _ := writeTestFiles(t)

	if _, err := execute(t, "--log-level", "loud", "similarity", "--interactions", orders, "--user", "1"); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}
