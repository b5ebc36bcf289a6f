// Package unit runs a project's test command and returns its test results
// annotated with line coverage.
//
// Engine drives a whole run: it clears the reports directory, runs the build,
// reconciles the coverage report against the paths under review, parses each
// JUnit report and attaches every result's coverage with Merge. Merge is
// generic so callers with their own result types can reuse it.
package unit
