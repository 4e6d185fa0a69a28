// Package utils provides small formatting helpers shared by the formatter and
// server packages.
//
// It contains:
//   - ISO8601 timestamp formatting
//   - Human-readable travel durations
package utils
