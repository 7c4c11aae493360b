// Package health aggregates component checks for the health endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates ranking works without aliases.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine itself is broken.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used in Report.Checks.
const (
	ComponentAliasStore = "alias_store"
	ComponentEngine     = "engine"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	aliases DBPinger
	engine  EngineProber
}

// New creates a Service. aliases can be nil when no alias store is configured.
func New(aliases DBPinger, engine EngineProber) *Service {
	return &Service{aliases: aliases, engine: engine}
}

// Check runs health checks against all components. An alias store outage
// only degrades the service; an engine failure makes it unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	status := Healthy

	if s.aliases != nil {
		checks[ComponentAliasStore] = CheckOK
		if err := s.aliases.Ping(ctx); err != nil {
			checks[ComponentAliasStore] = CheckError
			status = Degraded
		}
	}

	checks[ComponentEngine] = CheckOK
	if err := s.engine.Probe(); err != nil {
		checks[ComponentEngine] = CheckError
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
