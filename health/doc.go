// Package health provides the checks behind "reviewkit doctor".
//
// Each check returns a Status that is healthy, degraded or unhealthy:
//
//   - BinaryCheck: a binary exists in PATH
//   - BinaryVersionCheck: a binary meets a minimum version
//   - FileCheck: a file or directory exists
//   - CommandCheck: the program a configured command starts with can run
//   - Combine: aggregate statuses into one
//
// # Usage Example
//
//	checks := []health.Check{
//	    {Name: "sbt", Status: health.BinaryCheck("sbt")},
//	    {Name: "Scalastyle", Status: health.CommandCheck(root, "./bin/scalastyle-json")},
//	}
//	if health.Overall(checks).IsUnhealthy() {
//	    os.Exit(1)
//	}
//
// # Health Status Priority
//
// When combining health checks with Combine(), the result follows this priority:
//
//   - Unhealthy: If any check is unhealthy, the combined result is unhealthy
//   - Degraded: If any check is degraded (and none unhealthy), the result is degraded
//   - Healthy: If all checks are healthy, the result is healthy
//
// # Version Comparison
//
// BinaryVersionCheck runs the binary with a 5-second timeout and compares
// versions numerically on each segment (major.minor.patch). It understands
// output such as "1.2.3", "v2.4.6" or "sbt script version: 1.9.7".
package health
