// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

/*
Package api exposes recommendations, the catalog and shopping list planning
over HTTP.

Routes are served by a chi router. Every JSON response uses the APIResponse
envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "VALIDATION_FAILED", "message": "..."}}

Endpoints:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/recommendations/user/{userID}?k=5
	GET  /api/v1/recommendations/status
	POST /api/v1/recommendations/rebuild
	POST /api/v1/interactions
	GET  /api/v1/products
	POST /api/v1/products
	POST /api/v1/shopping-list
	GET  /metrics

The handlers depend on small interfaces (Recommender, DataStore,
RebuildRequester) so they can be tested with in-memory fakes.
*/
package api
