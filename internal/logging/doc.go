// Package logging builds the slog loggers used across streamsift.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. NewFromConfig tees output to stdout
// and a log file under the configured log directory. Attr helpers and
// standardized field keys keep structured output consistent between packages.
package logging
