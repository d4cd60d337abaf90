// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestBuildMatrix_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, input := range [][]Interaction{nil, {}} {
		m, err := BuildMatrix(input)
		if m != nil {
			t.Error("expected nil matrix for empty input")
		}
		var emptyErr *EmptyInputError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("expected *EmptyInputError, got %T (%v)", err, err)
		}
		if !errors.Is(err, ErrEmptyInput) {
			t.Error("expected errors.Is(err, ErrEmptyInput)")
		}
	}
}

func TestBuildMatrix_Aggregation(t *testing.T) {
	t.Parallel()

	m, err := BuildMatrix([]Interaction{
		{UserID: 1, ProductID: 10, Signal: 1},
		{UserID: 1, ProductID: 10, Signal: 1},
		{UserID: 1, ProductID: 11, Signal: 0.5},
		{UserID: 2, ProductID: 10, Signal: 1},
		{UserID: 1, ProductID: 11, Signal: 0.25},
	})
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	tests := []struct {
		user, product int
		want          float64
	}{
		{1, 10, 2},
		{1, 11, 0.75},
		{2, 10, 1},
		{2, 11, 0},  // absent pair
		{3, 10, 0},  // unknown user
		{1, 999, 0}, // unknown product
	}
	for _, tt := range tests {
		if got := m.Value(tt.user, tt.product); got != tt.want {
			t.Errorf("Value(%d, %d) = %v, want %v", tt.user, tt.product, got, tt.want)
		}
	}

	if m.NumUsers() != 2 || m.NumProducts() != 2 || m.NumNonZero() != 3 {
		t.Errorf("shape = (%d users, %d products, %d nonzero), want (2, 2, 3)",
			m.NumUsers(), m.NumProducts(), m.NumNonZero())
	}
}

func TestBuildMatrix_ZeroSignalKeepsRowAndColumn(t *testing.T) {
	t.Parallel()

	m, err := BuildMatrix([]Interaction{
		{UserID: 1, ProductID: 10, Signal: 1},
		{UserID: 7, ProductID: 70, Signal: 0},
	})
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if !m.HasUser(7) {
		t.Error("expected user 7 to have a row")
	}
	if !m.HasProduct(70) {
		t.Error("expected product 70 to have a column")
	}
	if owned := m.Owned(7); len(owned) != 0 {
		t.Errorf("Owned(7) = %v, want empty", owned)
	}
	if got := m.Row(7); !reflect.DeepEqual(got, []float64{0, 0}) {
		t.Errorf("Row(7) = %v, want [0 0]", got)
	}
	if m.NumNonZero() != 1 {
		t.Errorf("NumNonZero() = %d, want 1", m.NumNonZero())
	}
}

func TestBuildMatrix_RowsAlignToProducts(t *testing.T) {
	t.Parallel()

	m, err := BuildMatrix([]Interaction{
		{UserID: 5, ProductID: 30, Signal: 3},
		{UserID: 5, ProductID: 10, Signal: 1},
		{UserID: 6, ProductID: 20, Signal: 2},
	})
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if got := m.Products(); !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Errorf("Products() = %v", got)
	}
	if got := m.Users(); !reflect.DeepEqual(got, []int{5, 6}) {
		t.Errorf("Users() = %v", got)
	}
	if got := m.Row(5); !reflect.DeepEqual(got, []float64{1, 0, 3}) {
		t.Errorf("Row(5) = %v, want [1 0 3]", got)
	}
	if got := m.Row(99); got != nil {
		t.Errorf("Row(99) = %v, want nil", got)
	}
}

func TestBuildMatrix_InvalidSignal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		signal float64
	}{
		{"negative", -1},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildMatrix([]Interaction{
				{UserID: 1, ProductID: 1, Signal: 1},
				{UserID: 2, ProductID: 1, Signal: tt.signal},
			})
			if !errors.Is(err, ErrInvalidInteraction) {
				t.Errorf("expected ErrInvalidInteraction, got %v", err)
			}
		})
	}
}

func TestBuildMatrix_OrderIndependent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	interactions := randomInteractions(rng, 300, 25, 40)

	base, err := BuildMatrix(interactions)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	for trial := 0; trial < 5; trial++ {
		shuffled := append([]Interaction(nil), interactions...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		m, err := BuildMatrix(shuffled)
		if err != nil {
			t.Fatalf("BuildMatrix() error = %v", err)
		}
		if !reflect.DeepEqual(m.Users(), base.Users()) || !reflect.DeepEqual(m.Products(), base.Products()) {
			t.Fatal("index differs after shuffling input")
		}
		for _, u := range base.Users() {
			if !reflect.DeepEqual(m.Row(u), base.Row(u)) {
				t.Fatalf("row %d differs after shuffling input", u)
			}
		}
	}
}

// randomInteractions draws n records over the given user and product id
// ranges with signals in {0, 0.1, ..., 1.0}.
func randomInteractions(rng *rand.Rand, n, users, products int) []Interaction {
	out := make([]Interaction, n)
	for i := range out {
		out[i] = Interaction{
			UserID:    1 + rng.IntN(users),
			ProductID: 100 + rng.IntN(products),
			Signal:    float64(rng.IntN(11)) / 10,
		}
	}
	return out
}
