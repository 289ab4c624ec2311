// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// ErrAdminDisabled is returned by NewHandlers when no admin address is
// configured. Callers treat it as "run without the admin API", not as a
// startup failure.
var ErrAdminDisabled = errors.New("admin api is disabled")
