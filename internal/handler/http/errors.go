// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrTempDirUnavailable is returned by [Handler.Init] when the upload
// staging directory cannot be created.
var ErrTempDirUnavailable = errors.New("upload temp dir is unavailable")
