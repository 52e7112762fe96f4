package evaluation

import (
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
)

// TestCase is one labeled corpus entry for classification replay.
type TestCase struct {
	Message  string
	Expected agent.Label
	Category string
}

// DetailedResult records one corpus replay outcome.
type DetailedResult struct {
	Message    string
	Expected   agent.Label
	Actual     agent.Label
	Correct    bool
	Category   string
	Confidence float64
}

// CategoryPerformance is per-category classification accuracy.
type CategoryPerformance struct {
	Accuracy float64
	Correct  int
	Total    int
}

// ClassificationReport scores the live classifier against the corpus.
type ClassificationReport struct {
	TotalTests             int
	CorrectClassifications int
	AccuracyPercentage     float64
	DetailedResults        []DetailedResult
	CategoryPerformance    map[string]CategoryPerformance
	NoData                 bool
}

// QualityScores are the averaged response-quality heuristics.
type QualityScores struct {
	Empathy      float64
	Clarity      float64
	Completeness float64
}

// HandlerPerformance is per-handler success over the inspected log window.
type HandlerPerformance struct {
	SuccessRate       float64
	TotalInteractions int
}

// ResponseQualityReport scores recent logged replies.
type ResponseQualityReport struct {
	TotalInteractions  int
	SuccessRate        float64
	QualityScores      QualityScores
	HandlerPerformance map[string]HandlerPerformance
	LabelDistribution  map[string]int
	NoData             bool
}

// RoutingCell is one (label, handler) cell of the routing matrix.
type RoutingCell struct {
	Count      int
	Successful int
}

// RoutingReport compares observed routing against the expected mapping.
type RoutingReport struct {
	TotalRoutings   int
	CorrectRoutings int
	RoutingAccuracy float64
	RoutingMatrix   map[string]map[string]RoutingCell
	NoData          bool
}

// SystemHealth is the aggregate over the three headline percentages.
type SystemHealth struct {
	Score           float64
	Grade           string
	Recommendations []string
}

// ComprehensiveReport composes all three evaluations plus the health score.
// It is recomputed on demand and never persisted.
type ComprehensiveReport struct {
	GeneratedAt     time.Time
	Classification  ClassificationReport
	ResponseQuality ResponseQualityReport
	Routing         RoutingReport
	Health          SystemHealth
}
