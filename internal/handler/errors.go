// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoServices is returned by NewHandlers when the service layer was not
// constructed. The routes cannot answer without it, so the application
// fails at startup.
var errNoServices = errors.New("services are not initialized")
