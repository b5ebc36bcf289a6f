// Package health provides the checks behind "reviewkit doctor": whether the
// binaries, scripts and files a configured run depends on are in place.
package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zero-day-ai/reviewkit/exec"
)

// BinaryCheck verifies that a binary exists and is executable in the system PATH.
// It returns a healthy status if the binary is found, unhealthy otherwise.
//
// Example:
//
//	status := health.BinaryCheck("sbt")
//	if status.IsUnhealthy() {
//	    log.Fatal("sbt is required but not installed")
//	}
func BinaryCheck(name string) Status {
	if name == "" {
		return Unhealthy("binary name cannot be empty", nil)
	}

	path, err := exec.BinaryPath(name)
	if err != nil {
		return Unhealthy(
			fmt.Sprintf("binary '%s' not found in PATH", name),
			map[string]any{
				"binary": name,
				"error":  err.Error(),
			},
		)
	}

	return Healthy(fmt.Sprintf("binary '%s' found at %s", name, path))
}

// BinaryVersionCheck verifies that a binary exists and meets a minimum version requirement.
// It executes the binary with the specified version flag (e.g., "--version") and parses the output.
// The version comparison is basic string-based and expects semver-like format (e.g., "1.2.3").
//
// Parameters:
//   - name: The binary name to check
//   - minVersion: The minimum required version (e.g., "1.9.0")
//   - versionFlag: The flag to get version info (e.g., "--version" or "-v")
func BinaryVersionCheck(ctx context.Context, name, minVersion, versionFlag string) Status {
	binaryStatus := BinaryCheck(name)
	if binaryStatus.IsUnhealthy() {
		return binaryStatus
	}

	if versionFlag == "" {
		versionFlag = "--version"
	}

	res, err := exec.Run(ctx, exec.Config{
		Command: name,
		Args:    []string{versionFlag},
		Timeout: 5 * time.Second,
	})
	if err == nil {
		err = res.Check(name, "version")
	}
	if err != nil {
		return Unhealthy(
			fmt.Sprintf("failed to get version for '%s'", name),
			map[string]any{
				"binary": name,
				"error":  err.Error(),
			},
		)
	}

	output := string(res.Stdout) + string(res.Stderr)
	version := parseVersion(output)
	if version == "" {
		return Degraded(
			fmt.Sprintf("could not parse version from '%s' output", name),
			map[string]any{
				"binary": name,
				"output": output,
			},
		)
	}

	if !versionMeetsMinimum(version, minVersion) {
		return Unhealthy(
			fmt.Sprintf("binary '%s' version %s does not meet minimum requirement %s", name, version, minVersion),
			map[string]any{
				"binary":      name,
				"version":     version,
				"min_version": minVersion,
			},
		)
	}

	return Healthy(fmt.Sprintf("binary '%s' version %s meets requirement %s", name, version, minVersion))
}

// FileCheck verifies that a file or directory exists at the specified path.
// It returns healthy if the path exists, unhealthy otherwise.
func FileCheck(path string) Status {
	if path == "" {
		return Unhealthy("path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Unhealthy(
				fmt.Sprintf("path '%s' does not exist", path),
				map[string]any{"path": path},
			)
		}

		return Unhealthy(
			fmt.Sprintf("failed to stat path '%s'", path),
			map[string]any{
				"path":  path,
				"error": err.Error(),
			},
		)
	}

	fileType := "file"
	if info.IsDir() {
		fileType = "directory"
	}

	return Healthy(fmt.Sprintf("%s '%s' exists", fileType, path))
}

// CommandCheck verifies that the program a shell command line starts with
// can be run from root. A program given as a path ("./bin/lint") must be an
// executable file relative to root; a bare name must be in PATH.
//
// Example:
//
//	status := health.CommandCheck("/repo", "./bin/scalastyle-json --quiet")
func CommandCheck(root, command string) Status {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Unhealthy("command cannot be empty", nil)
	}
	program := fields[0]

	if !strings.ContainsRune(program, '/') {
		return BinaryCheck(program)
	}

	path := program
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, filepath.FromSlash(program))
	}
	status := FileCheck(path)
	if !status.IsHealthy() {
		return status
	}

	info, err := os.Stat(path)
	if err == nil && (info.IsDir() || info.Mode().Perm()&0o111 == 0) {
		return Degraded(
			fmt.Sprintf("'%s' is not executable", program),
			map[string]any{"path": path},
		)
	}
	return Healthy(fmt.Sprintf("script '%s' found", program))
}

// Combine aggregates multiple health checks into a single status.
// The result follows this priority:
//   - If any check is unhealthy, the result is unhealthy
//   - If any check is degraded (and none unhealthy), the result is degraded
//   - If all checks are healthy, the result is healthy
func Combine(checks ...Status) Status {
	if len(checks) == 0 {
		return Healthy("no checks provided")
	}

	var unhealthyChecks []string
	var degradedChecks []string
	var healthyCount int

	for _, check := range checks {
		msg := check.Message
		if msg == "" {
			msg = "unnamed check"
		}
		switch check.Status {
		case StatusUnhealthy:
			unhealthyChecks = append(unhealthyChecks, msg)
		case StatusDegraded:
			degradedChecks = append(degradedChecks, msg)
		case StatusHealthy:
			healthyCount++
		}
	}

	if len(unhealthyChecks) > 0 {
		return Unhealthy(
			fmt.Sprintf("%d check(s) failed", len(unhealthyChecks)),
			map[string]any{
				"total":         len(checks),
				"unhealthy":     len(unhealthyChecks),
				"degraded":      len(degradedChecks),
				"healthy":       healthyCount,
				"failed_checks": unhealthyChecks,
			},
		)
	}

	if len(degradedChecks) > 0 {
		return Degraded(
			fmt.Sprintf("%d check(s) degraded", len(degradedChecks)),
			map[string]any{
				"total":           len(checks),
				"degraded":        len(degradedChecks),
				"healthy":         healthyCount,
				"degraded_checks": degradedChecks,
			},
		)
	}

	return Healthy(fmt.Sprintf("all %d check(s) passed", len(checks)))
}

// Overall combines named checks.
func Overall(checks []Check) Status {
	statuses := make([]Status, len(checks))
	for i, c := range checks {
		statuses[i] = c.Status
	}
	return Combine(statuses...)
}

// parseVersion extracts a version string from command output.
// It looks for common version patterns like "1.2.3" or "v1.2.3".
func parseVersion(output string) string {
	for _, line := range strings.Split(output, "\n") {
		for _, field := range strings.Fields(line) {
			field = strings.TrimPrefix(field, "v")
			field = strings.TrimPrefix(field, "V")

			if strings.Contains(field, ".") && containsDigit(field) {
				if version := extractVersionNumber(field); version != "" {
					return version
				}
			}
		}
	}
	return ""
}

// containsDigit checks if a string contains at least one digit.
func containsDigit(s string) bool {
	for _, c := range s {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}

// extractVersionNumber extracts a semantic version number from a string.
// It handles formats like "1.2.3", "1.2.3-beta", "1.2.3+build", etc.
func extractVersionNumber(s string) string {
	var version strings.Builder
	dotCount := 0

	for i, c := range s {
		if c >= '0' && c <= '9' {
			version.WriteRune(c)
		} else if c == '.' && dotCount < 2 && i > 0 && version.Len() > 0 {
			version.WriteRune(c)
			dotCount++
		} else if version.Len() > 0 {
			break
		}
	}

	result := version.String()
	if strings.Contains(result, ".") && len(result) > 2 {
		return result
	}
	return ""
}

// versionMeetsMinimum performs basic semantic version comparison.
// Returns true if version >= minVersion.
func versionMeetsMinimum(version, minVersion string) bool {
	vParts := strings.Split(version, ".")
	minParts := strings.Split(minVersion, ".")

	n := max(len(vParts), len(minParts))
	for i := 0; i < n; i++ {
		vPart, minPart := 0, 0
		if i < len(vParts) {
			vPart, _ = strconv.Atoi(strings.TrimSpace(vParts[i]))
		}
		if i < len(minParts) {
			minPart, _ = strconv.Atoi(strings.TrimSpace(minParts[i]))
		}

		if vPart > minPart {
			return true
		} else if vPart < minPart {
			return false
		}
	}
	return true
}
