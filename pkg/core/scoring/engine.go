package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"tenk_analyzer/pkg/core/agent"
	"tenk_analyzer/pkg/core/utils"
)

// ScoreSet holds all 17 metric values plus the derived composite score and
// grade. Created once per run and never mutated; recomputable bit-identically
// from the same analyses.
type ScoreSet struct {
	Metrics      map[string]float64
	OverallScore float64
	Grade        string
}

// MarshalJSON flattens the metrics alongside overall_score and grade into one
// object, matching the report wire format.
func (s ScoreSet) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(s.Metrics)+2)
	for name, value := range s.Metrics {
		flat[name] = value
	}
	flat["overall_score"] = s.OverallScore
	flat["grade"] = s.Grade
	return json.Marshal(flat)
}

// Recommendation is the categorical verdict derived from a ScoreSet.
type Recommendation struct {
	Rating           string  `json:"rating"`
	Confidence       string  `json:"confidence"`
	OverallScore     float64 `json:"overall_score"`
	Grade            string  `json:"grade"`
	RiskLevel        string  `json:"risk_level"`
	InvestmentThesis string  `json:"investment_thesis"`
}

// Engine maps section analyses onto the rubric. Stateless apart from its
// tables; safe for concurrent use.
type Engine struct {
	rubric Rubric
}

func NewEngine() *Engine {
	return &Engine{rubric: DefaultRubric()}
}

// Score derives the full metric set from the agents' analyses. Agents that
// failed or found no section contribute the neutral default for every metric
// they back; scoring itself never fails.
func (e *Engine) Score(results []agent.SectionAnalysis) ScoreSet {
	byAgent := make(map[string]agent.SectionAnalysis, len(results))
	for _, r := range results {
		byAgent[r.Agent] = r
	}

	metrics := make(map[string]float64, 17)
	var overall float64
	for _, cat := range e.rubric {
		analysis, ok := byAgent[cat.Agent]
		usable := ok && (analysis.Status == agent.StatusSuccess || analysis.Status == agent.StatusTruncated)

		var sum float64
		for _, m := range cat.Metrics {
			value := NeutralScore
			if usable {
				value = clamp(m.Baseline + extractSignal(analysis.Analysis))
			}
			metrics[m.Name] = value
			sum += value
		}
		overall += cat.Weight * (sum / float64(len(cat.Metrics)))
	}

	overall = math.Round(overall*10) / 10
	return ScoreSet{
		Metrics:      metrics,
		OverallScore: overall,
		Grade:        GradeFor(overall),
	}
}

// Recommend derives the rating, confidence, risk level and thesis from the
// score set. Confidence degrades monotonically with each failed or not_found
// agent; it never rises when analyses are replaced by failures.
func (e *Engine) Recommend(scores ScoreSet, results []agent.SectionAnalysis) Recommendation {
	missing := 0
	for _, r := range results {
		if r.Status == agent.StatusFailed || r.Status == agent.StatusNotFound {
			missing++
		}
	}

	thesis := "Mixed signals"
	if scores.OverallScore >= 70 {
		thesis = "Strong fundamentals"
	}

	return Recommendation{
		Rating:           RatingFor(scores.OverallScore),
		Confidence:       e.confidence(scores, missing),
		OverallScore:     scores.OverallScore,
		Grade:            scores.Grade,
		RiskLevel:        e.riskLevel(scores),
		InvestmentThesis: fmt.Sprintf("Score: %.1f/100. %s.", scores.OverallScore, thesis),
	}
}

// confidenceLevels is ordered from highest to lowest.
var confidenceLevels = []string{"High", "Medium-High", "Medium", "Medium-Low", "Low"}

// confidence starts from the dispersion of the category subscores and drops
// two levels per missing agent, flooring at Low. The per-miss penalty equals
// the maximum the spread level can shrink, so replacing a success with a
// failure can never raise the reported confidence.
func (e *Engine) confidence(scores ScoreSet, missing int) string {
	spread := e.subscoreSpread(scores)
	level := 0
	switch {
	case spread <= 15:
		level = 0
	case spread <= 25:
		level = 1
	default:
		level = 2
	}
	level += 2 * missing
	if level >= len(confidenceLevels) {
		level = len(confidenceLevels) - 1
	}
	return confidenceLevels[level]
}

// subscoreSpread is max - min over the category means.
func (e *Engine) subscoreSpread(scores ScoreSet) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, cat := range e.rubric {
		var sum float64
		for _, m := range cat.Metrics {
			sum += scores.Metrics[m.Name]
		}
		mean := sum / float64(len(cat.Metrics))
		lo = math.Min(lo, mean)
		hi = math.Max(hi, mean)
	}
	return hi - lo
}

// riskLevel classifies the mean of the risk-category metrics (higher = lower
// risk) into the four-step label used in reports.
func (e *Engine) riskLevel(scores ScoreSet) string {
	var sum float64
	var n int
	for _, cat := range e.rubric {
		if cat.Name != "risk" {
			continue
		}
		for _, m := range cat.Metrics {
			sum += scores.Metrics[m.Name]
			n++
		}
	}
	avg := sum / float64(n)
	switch {
	case avg >= 75:
		return "Low Risk"
	case avg >= 60:
		return "Moderate Risk"
	case avg >= 45:
		return "Elevated Risk"
	default:
		return "High Risk"
	}
}

// extractSignal is the pure text heuristic: keyword-rule shifts plus a small
// bonus from the structure of the analysis outline (findings and strengths
// add, concerns subtract).
func extractSignal(analysis string) float64 {
	lower := strings.ToLower(analysis)

	var signal float64
	for _, rule := range signalRules {
		for _, term := range rule.Terms {
			if strings.Contains(lower, term) {
				signal += rule.Weight
			}
		}
	}

	outline := utils.ExtractOutline(analysis)
	structural := len(outline.Items("Key Findings")) +
		len(outline.Items("Opportunities/Strengths")) -
		len(outline.Items("Concerns/Risks"))
	if structural > 5 {
		structural = 5
	}
	if structural < -5 {
		structural = -5
	}

	return signal + float64(structural)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
