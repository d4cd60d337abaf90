// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

/*
Package recommend implements user-based collaborative filtering over grocery
purchase history.

# Pipeline

	[]Interaction -> BuildMatrix -> *InteractionMatrix
	              -> ComputeSimilarity -> *SimilarityMatrix
	              -> Model.Recommend(user, k) -> []Recommendation

BuildMatrix aggregates (user, product, signal) records by summing signals per
pair. The result does not depend on input order.

ComputeSimilarity computes cosine similarity between every pair of user rows.
A user whose row has zero magnitude has similarity 0 with everyone.

Model.Recommend ranks the other users by similarity (descending, ties by
ascending user id), sums the rows of all of them, drops every product the
target already bought, and returns the top k by summed affinity (ties by
ascending product id). An unknown user gets an empty list.

# Sharing

InteractionMatrix, SimilarityMatrix and Model are never mutated after
construction and can be read from any number of goroutines. Engine swaps in a
new Model atomically on rebuild; in-flight requests keep the model they
started with.
*/
package recommend
