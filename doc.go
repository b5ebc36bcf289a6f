// Package reviewkit runs a project's linters and tests and turns their
// output into review-ready values: lint messages, and test results carrying
// per-line coverage of the files under review.
//
// # Core Concepts
//
//   - Linters: external scripts that print a JSON array of diagnostics
//     (package lint)
//   - Test engine: a build command writing JUnit reports and a Cobertura
//     coverage report (packages unit and coverage)
//   - Configuration: a .reviewkit.yaml file found from the project root
//     upwards (package config)
//   - Rendering: text, JSON and SARIF output (package report)
//
// # Getting Started
//
//	cfg, err := config.LoadFromCurrentDir()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r, err := reviewkit.New(cfg, reviewkit.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	msgs, err := r.Lint(ctx, []string{"src/main/scala/com/acme/Widget.scala"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Runner methods return *Error, whose Kind says what went wrong (a tool
// asked to abort, printed malformed output, or could not run). The tool
// error it wraps is a *toolerr.Error and matches the toolerr sentinels:
//
//	if errors.Is(err, toolerr.ErrAbort) {
//		// the linter refused to continue; err carries its text
//	}
//
// A failed run reports nothing: either every message is returned or an
// error is.
//
// # Observability
//
// Runs are traced and counted with OpenTelemetry, using the global
// providers unless WithTracer or WithMeter is given. Each Lint or Unit call
// gets a run id, attached to its span and log lines.
package reviewkit
