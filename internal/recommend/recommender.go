// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package recommend

import (
	"context"
	"sort"
	"time"
)

// Model bundles the two immutable artifacts recommendations are computed
// from. Only Version is written after NewModel, by Engine.Swap before the
// model is published.
type Model struct {
	Matrix     *InteractionMatrix
	Similarity *SimilarityMatrix

	// Version is assigned by the Engine; zero for models built directly.
	Version       int64
	BuiltAt       time.Time
	BuildDuration time.Duration
}

// NewModel builds the interaction matrix and the similarity matrix.
func NewModel(ctx context.Context, interactions []Interaction, workers int) (*Model, error) {
	start := time.Now()

	m, err := BuildMatrix(interactions)
	if err != nil {
		return nil, err
	}
	s, err := ComputeSimilarity(ctx, m, workers)
	if err != nil {
		return nil, err
	}

	return &Model{
		Matrix:        m,
		Similarity:    s,
		BuiltAt:       time.Now(),
		BuildDuration: time.Since(start),
	}, nil
}

// Recommend returns up to topK products the target has not bought, ranked
// by the summed rows of all other users.
//
// Neighbors are visited in similarity order (descending, ties by user id)
// so that the float sum is reproducible. Products with zero summed affinity
// remain candidates and sort last. An unknown target or topK <= 0 yields an
// empty, non-nil slice.
func (md *Model) Recommend(target, topK int) []Recommendation {
	if topK <= 0 || !md.Similarity.HasUser(target) {
		return []Recommendation{}
	}

	m := md.Matrix
	affinity := make([]float64, len(m.products))
	for _, nb := range md.Similarity.Neighbors(target) {
		for _, c := range m.rows[m.userIdx[nb.UserID]] {
			affinity[c.col] += c.value
		}
	}

	owned := make([]bool, len(m.products))
	for _, c := range m.rows[m.userIdx[target]] {
		if c.value > 0 {
			owned[c.col] = true
		}
	}

	candidates := make([]Recommendation, 0, len(m.products))
	for col, pid := range m.products {
		if owned[col] {
			continue
		}
		candidates = append(candidates, Recommendation{ProductID: pid, Affinity: affinity[col]})
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Affinity != candidates[b].Affinity {
			return candidates[a].Affinity > candidates[b].Affinity
		}
		return candidates[a].ProductID < candidates[b].ProductID
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// RecommendIDs is Recommend reduced to the ordered product ids.
func (md *Model) RecommendIDs(target, topK int) []int {
	recs := md.Recommend(target, topK)
	ids := make([]int, len(recs))
	for i, r := range recs {
		ids[i] = r.ProductID
	}
	return ids
}
