package health

import (
	"ttlcache/internal/logs"
	"ttlcache/internal/metrics"
)

// Analyzer converts metrics + logs into a health report.
type Analyzer struct {
	metrics *metrics.Registry
	logger  *logs.Logger
	rules   []Rule
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(
	reg *metrics.Registry,
	logger *logs.Logger,
) *Analyzer {
	return &Analyzer{
		metrics: reg,
		logger:  logger,
		rules: []Rule{
			MissRatioRule,
			InvalidTTLRule,
			StalePointRule,
			LoadErrorRule,
		},
	}
}

// Analyze evaluates metrics and logs and returns a health report.
func (a *Analyzer) Analyze() Report {
	snapshot := a.metrics.Snapshot()

	var (
		signals         = []string{}
		recommendations = []string{}
		status          = StatusOK
	)

	for _, rule := range a.rules {
		result := rule(snapshot)
		if !result.Triggered {
			continue
		}

		signals = append(signals, result.Signal)
		recommendations = append(recommendations, result.Recommendation)

		// Escalate status
		if result.Severity == StatusCritical {
			status = StatusCritical
		} else if result.Severity == StatusDegraded && status == StatusOK {
			status = StatusDegraded
		}
	}

	// Any ERROR-level log entry escalates to critical.
	for _, entry := range a.logger.GetLast(100) {
		if entry.Level == logs.ERROR {
			signals = append(signals, "Errors present in cache logs")
			recommendations = append(recommendations, "Inspect recent log entries")
			status = StatusCritical
			break
		}
	}

	summary := "Cache is healthy"
	if status != StatusOK {
		summary = "Cache health issues detected"
	}

	return Report{
		OverallStatus:   status,
		Summary:         summary,
		Signals:         signals,
		Recommendations: recommendations,
	}
}
