// Package httputil provides HTTP response helpers for the render service.
//
// # Errors
//
// [StatusFor] maps the structured error codes of package errors to HTTP
// status codes:
//
//   - INVALID_* codes are client mistakes and map to 400
//   - DEGENERATE_LAYOUT means the request was well formed but the canvas
//     cannot hold the grid, and maps to 422
//   - NOT_FOUND maps to 404 and UNSUPPORTED to 501
//   - everything else is a 500
//
// [WriteError] writes the matching status with a JSON body:
//
//	{"error": {"code": "INVALID_CONFIG", "message": "...", "request_id": "..."}}
//
// Internal errors never expose their message; clients see a generic text
// and the request ID to quote.
//
// # Request IDs
//
// [RequestID] is middleware that honours an incoming X-Request-ID header or
// assigns a new UUID, echoes it on the response and stores it on the
// request context for [GetRequestID].
package httputil
