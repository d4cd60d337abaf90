// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

/*
Package shopping turns a product catalog and a shopper's category
preferences into a shopping list that fits a budget.

# Pipeline

	catalog -> Filter.Apply -> Dedupe -> ScoreCatalog -> Allocate -> ShoppingList

Planner runs the whole pipeline for one request. Each stage is also
exported on its own.

# Scoring

A category ranked r (1 is best) out of MaxRank gets a base of
(MaxRank+1)-r, plus QuantityBonus when the shopper wants more of that
category. The base is divided by (unit price + 1). Categories the shopper
did not rank score 0 and are only picked when budget is left over.

# Allocation

Allocate is a greedy first-fit pass in score order: an item that does not
fit is skipped and the scan continues, so cheaper items further down can
still use the remaining budget. It never backtracks. In quantity mode an
item whose category prefers quantity is bought twice when affordable.

The total never exceeds the budget. An empty list is reported through
ShoppingList.NoAffordableItems rather than an error.

Malformed input (negative budget or price, unknown mode, rank outside
[1, MaxRank]) fails with *ValidationError before any allocation happens.
*/
package shopping
