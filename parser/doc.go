// Package parser provides generic decoding helpers for the JSON and XML
// documents external tools write.
//
// This package only turns bytes into generic values; validating those values
// against a wire format is the job of the adapter that owns the format.
package parser
