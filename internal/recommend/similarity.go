// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Neighbor is another user and their similarity to a target user.
type Neighbor struct {
	UserID     int     `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// SimilarityMatrix holds cosine similarity for every pair of users in an
// InteractionMatrix. It is symmetric, so only the upper triangle (diagonal
// included) is stored.
type SimilarityMatrix struct {
	users   []int
	userIdx map[int]int
	packed  []float64
}

// packedIndex maps (i, j) with i <= j onto the packed upper triangle.
func packedIndex(n, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*n - i*(i-1)/2 + (j - i)
}

// ComputeSimilarity computes pairwise cosine similarity between user rows.
//
// Each row is normalized once and the dot products of normalized rows are
// taken, which is algebraically the same as dot(u,v)/(|u||v|). A row with
// zero magnitude has similarity 0 with every user, itself included. Rows are
// spread over at most workers goroutines; workers <= 0 means GOMAXPROCS.
func ComputeSimilarity(ctx context.Context, m *InteractionMatrix, workers int) (*SimilarityMatrix, error) {
	n := len(m.users)
	s := &SimilarityMatrix{
		users:   m.users,
		userIdx: m.userIdx,
		packed:  make([]float64, n*(n+1)/2),
	}
	if n == 0 {
		return s, nil
	}

	normalized := make([][]cell, n)
	for i, row := range m.rows {
		var sq float64
		for _, c := range row {
			sq += c.value * c.value
		}
		if sq == 0 {
			continue
		}
		norm := math.Sqrt(sq)
		nr := make([]cell, len(row))
		for k, c := range row {
			nr[k] = cell{col: c.col, value: c.value / norm}
		}
		normalized[i] = nr
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			scratch := make([]float64, len(m.products))
			// Strided rows keep the triangle's work balanced across workers.
			for i := w; i < n; i += workers {
				if err := gCtx.Err(); err != nil {
					return err
				}
				row := normalized[i]
				if len(row) == 0 {
					continue
				}
				for _, c := range row {
					scratch[c.col] = c.value
				}
				s.packed[packedIndex(n, i, i)] = 1
				for j := i + 1; j < n; j++ {
					var dot float64
					for _, c := range normalized[j] {
						dot += scratch[c.col] * c.value
					}
					s.packed[packedIndex(n, i, j)] = clampUnit(dot)
				}
				for _, c := range row {
					scratch[c.col] = 0
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute similarity: %w", err)
	}
	return s, nil
}

func clampUnit(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

// CosineSimilarity returns dot(a,b)/(|a||b|) for two dense vectors of equal
// length, or 0 when either has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Users returns the user ids in ascending order.
func (s *SimilarityMatrix) Users() []int {
	return append([]int(nil), s.users...)
}

// HasUser reports whether the user has a similarity row.
func (s *SimilarityMatrix) HasUser(userID int) bool {
	_, ok := s.userIdx[userID]
	return ok
}

// Similarity returns sim(u, v), or 0 if either user is unknown.
func (s *SimilarityMatrix) Similarity(u, v int) float64 {
	i, ok := s.userIdx[u]
	if !ok {
		return 0
	}
	j, ok := s.userIdx[v]
	if !ok {
		return 0
	}
	return s.packed[packedIndex(len(s.users), i, j)]
}

// Neighbors returns every other user ordered by similarity descending, ties
// broken by ascending user id. The target itself is never included. An
// unknown user has no neighbors.
func (s *SimilarityMatrix) Neighbors(userID int) []Neighbor {
	i, ok := s.userIdx[userID]
	if !ok {
		return nil
	}
	n := len(s.users)
	out := make([]Neighbor, 0, n-1)
	for j, other := range s.users {
		if j == i {
			continue
		}
		out = append(out, Neighbor{UserID: other, Similarity: s.packed[packedIndex(n, i, j)]})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Similarity != out[b].Similarity {
			return out[a].Similarity > out[b].Similarity
		}
		return out[a].UserID < out[b].UserID
	})
	return out
}
