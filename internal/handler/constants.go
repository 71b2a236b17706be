package handler

import "time"

// TimeFormat is the standard time format for API responses (RFC3339)
const TimeFormat = time.RFC3339

// HeaderUserID carries the authenticated user's id, set by the API gateway.
const HeaderUserID = "X-User-ID"
