package health

// Health status constants represent the state of a dependency.
const (
	// StatusHealthy indicates the dependency is usable.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the dependency is usable but something looks off.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates the dependency is missing or unusable.
	StatusUnhealthy = "unhealthy"
)

// Status is the outcome of a check.
type Status struct {
	// Status is the current health state (healthy, degraded, or unhealthy).
	Status string `json:"status"`

	// Message provides a human-readable description of the health status.
	Message string `json:"message,omitempty"`

	// Details contains additional context and diagnostic information.
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (h Status) IsHealthy() bool {
	return h.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (h Status) IsDegraded() bool {
	return h.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (h Status) IsUnhealthy() bool {
	return h.Status == StatusUnhealthy
}

// Healthy creates a new healthy status with an optional message.
func Healthy(message string) Status {
	return Status{
		Status:  StatusHealthy,
		Message: message,
	}
}

// Degraded creates a new degraded status with a message and optional details.
func Degraded(message string, details map[string]any) Status {
	return Status{
		Status:  StatusDegraded,
		Message: message,
		Details: details,
	}
}

// Unhealthy creates a new unhealthy status with a message and optional details.
func Unhealthy(message string, details map[string]any) Status {
	return Status{
		Status:  StatusUnhealthy,
		Message: message,
		Details: details,
	}
}

// Check is a named status, one line of a doctor report.
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}
