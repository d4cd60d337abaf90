// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

/*
Package main is the entry point for the SmartCart server.

SmartCart recommends groceries from purchase history using user-based
collaborative filtering, and turns ranked category preferences into a
shopping list that fits a budget.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("smartcart")
	├── ModelSupervisor ("model-layer")
	│   └── Rebuild service (startup, scheduled and requested rebuilds)
	└── APISupervisor ("api-layer")
	    └── HTTP server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Store: BadgerDB holding interactions and the product catalog
 4. Seeding: CSV files loaded into an empty store
 5. Engine: recommendation engine backed by the store
 6. Planner: shopping list planner
 7. Supervisor tree and HTTP server

# Configuration

Priority: Environment variables > Config file > Defaults

	HTTP_PORT=8080                  # HTTP server port
	LOG_LEVEL=info                  # trace, debug, info, warn, error
	LOG_FORMAT=json                 # json or console
	STORE_PATH=/data/smartcart      # BadgerDB directory
	STORE_IN_MEMORY=false           # keep everything in memory
	INTERACTIONS_FILE=orders.csv    # seed purchase history
	CATALOG_FILE=products.csv       # seed product catalog
	RECOMMEND_REBUILD_INTERVAL=1h   # periodic model rebuilds (0 disables)
	SHOPPING_MIN_BUDGET=5
	SHOPPING_MAX_BUDGET=500

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests, the rebuild service stops, and the store is closed.

# Example Usage

	export STORE_IN_MEMORY=true
	export INTERACTIONS_FILE=testdata/orders.csv
	export CATALOG_FILE=testdata/products.csv
	./smartcart-server

	curl localhost:8080/api/v1/recommendations/user/1?k=5
	curl -X POST localhost:8080/api/v1/shopping-list \
	  -d '{"budget":40,"preferences":[{"category":"Dairy","rank":1,"healthy":true}]}'
*/
package main
