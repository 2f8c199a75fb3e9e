// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command quadlab solves quadratic equations in closed form, runs the
// secant method against them and serves the same analysis over HTTP.
//
// # Usage
//
//	quadlab solve --a 1 --b -3 --c -4
//	quadlab secant --a 2 --b 4 --c 8 --x0 -2 --x1 1
//	quadlab analyze --preset complex --output yaml
//	quadlab serve --port 12240
//
// # Configuration
//
// Settings are read from ~/.quadlab/quadlab.yaml, created on first run,
// or from --config. QUADLAB_PORT and QUADLAB_LOG_LEVEL override the
// file.
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
