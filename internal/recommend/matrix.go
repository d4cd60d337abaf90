// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import (
	"fmt"
	"math"
	"sort"
)

// cell is one non-zero matrix entry. col indexes InteractionMatrix.products.
type cell struct {
	col   int
	value float64
}

// InteractionMatrix is an immutable user x product matrix of aggregated
// purchase signal. Rows are stored sparsely; absent pairs read as 0.
type InteractionMatrix struct {
	users    []int // sorted ascending
	products []int // sorted ascending
	userIdx  map[int]int
	prodIdx  map[int]int

	// rows[i] holds the non-zero cells of users[i], sorted by col.
	rows    [][]cell
	nonZero int
}

type pairKey struct {
	user    int
	product int
}

// BuildMatrix aggregates interactions into an InteractionMatrix.
//
// The value of a (user, product) pair is the sum of the signals of all
// matching records. Every user and product that appears in any record gets
// a row or column, even if all of its signals are zero.
func BuildMatrix(interactions []Interaction) (*InteractionMatrix, error) {
	if len(interactions) == 0 {
		return nil, &EmptyInputError{}
	}

	for i, in := range interactions {
		if in.Signal < 0 || math.IsNaN(in.Signal) || math.IsInf(in.Signal, 0) {
			return nil, fmt.Errorf("%w: record %d (user %d, product %d) has signal %v",
				ErrInvalidInteraction, i, in.UserID, in.ProductID, in.Signal)
		}
	}

	// Summing in a canonical order keeps float results bit-identical for
	// any permutation of the input.
	sorted := append([]Interaction(nil), interactions...)
	sort.Slice(sorted, func(a, b int) bool {
		x, y := sorted[a], sorted[b]
		if x.UserID != y.UserID {
			return x.UserID < y.UserID
		}
		if x.ProductID != y.ProductID {
			return x.ProductID < y.ProductID
		}
		return x.Signal < y.Signal
	})

	userSet := make(map[int]struct{})
	prodSet := make(map[int]struct{})
	for _, in := range sorted {
		userSet[in.UserID] = struct{}{}
		prodSet[in.ProductID] = struct{}{}
	}

	m := &InteractionMatrix{
		users:    sortedKeys(userSet),
		products: sortedKeys(prodSet),
	}
	m.userIdx = indexOf(m.users)
	m.prodIdx = indexOf(m.products)
	m.rows = make([][]cell, len(m.users))

	// sorted is grouped by user then product, so each row is appended in
	// ascending column order.
	for i := 0; i < len(sorted); {
		key := pairKey{sorted[i].UserID, sorted[i].ProductID}
		var sum float64
		for ; i < len(sorted) && sorted[i].UserID == key.user && sorted[i].ProductID == key.product; i++ {
			sum += sorted[i].Signal
		}
		if sum == 0 {
			continue
		}
		r := m.userIdx[key.user]
		m.rows[r] = append(m.rows[r], cell{col: m.prodIdx[key.product], value: sum})
		m.nonZero++
	}

	return m, nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func indexOf(ids []int) map[int]int {
	idx := make(map[int]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}

// Users returns the user ids in ascending order.
func (m *InteractionMatrix) Users() []int {
	return append([]int(nil), m.users...)
}

// Products returns the product ids in ascending order.
func (m *InteractionMatrix) Products() []int {
	return append([]int(nil), m.products...)
}

// NumUsers returns the number of rows.
func (m *InteractionMatrix) NumUsers() int { return len(m.users) }

// NumProducts returns the number of columns.
func (m *InteractionMatrix) NumProducts() int { return len(m.products) }

// NumNonZero returns the number of non-zero cells.
func (m *InteractionMatrix) NumNonZero() int { return m.nonZero }

// HasUser reports whether the user has a row.
func (m *InteractionMatrix) HasUser(userID int) bool {
	_, ok := m.userIdx[userID]
	return ok
}

// HasProduct reports whether the product has a column.
func (m *InteractionMatrix) HasProduct(productID int) bool {
	_, ok := m.prodIdx[productID]
	return ok
}

// Value returns the aggregated signal for a pair, or 0 if the pair, the
// user or the product is absent.
func (m *InteractionMatrix) Value(userID, productID int) float64 {
	r, ok := m.userIdx[userID]
	if !ok {
		return 0
	}
	c, ok := m.prodIdx[productID]
	if !ok {
		return 0
	}
	row := m.rows[r]
	i := sort.Search(len(row), func(i int) bool { return row[i].col >= c })
	if i < len(row) && row[i].col == c {
		return row[i].value
	}
	return 0
}

// Row returns a dense copy of the user's row aligned to Products(), or nil
// for an unknown user.
func (m *InteractionMatrix) Row(userID int) []float64 {
	r, ok := m.userIdx[userID]
	if !ok {
		return nil
	}
	dense := make([]float64, len(m.products))
	for _, c := range m.rows[r] {
		dense[c.col] = c.value
	}
	return dense
}

// Owned returns the set of products the user has a positive value for.
func (m *InteractionMatrix) Owned(userID int) map[int]struct{} {
	r, ok := m.userIdx[userID]
	if !ok {
		return map[int]struct{}{}
	}
	owned := make(map[int]struct{}, len(m.rows[r]))
	for _, c := range m.rows[r] {
		if c.value > 0 {
			owned[m.products[c.col]] = struct{}{}
		}
	}
	return owned
}
