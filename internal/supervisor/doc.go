// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

/*
Package supervisor runs SmartCart's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("smartcart")
	├── ModelSupervisor ("model-layer")
	│   └── RebuildService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with backoff. The two layers count failures
independently, so a rebuild loop that keeps failing never takes the HTTP
server down with it; the API keeps serving the last good model.

Supervisor events are logged through sutureslog, which writes to the zerolog
global logger via logging.NewSlogLogger.
*/
package supervisor
