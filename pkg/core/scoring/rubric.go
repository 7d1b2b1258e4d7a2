// Package scoring maps the collected section analyses onto the fixed
// 5-category / 17-metric rubric and derives the composite score, letter grade
// and investment recommendation.
//
// The rubric and the keyword rules are data, not code: new metrics or signal
// terms are additions to the tables below.
package scoring

// NeutralScore is the documented fallback for every metric whose backing
// section analysis is missing or failed. A partial filing still produces a
// complete, if less confident, score set.
const NeutralScore = 50.0

// Metric is one named dimension of the rubric. Its value starts from Baseline
// and shifts with the keyword and outline signals extracted from the backing
// agent's analysis text.
type Metric struct {
	Name     string
	Baseline float64
}

// Category groups metrics under one rubric weight. Weights across all
// categories sum to 1.0.
type Category struct {
	Name    string
	Weight  float64
	Agent   string // agent whose analysis feeds this category's metrics
	Metrics []Metric
}

// Rubric is the full scoring schema.
type Rubric []Category

// DefaultRubric returns the fixed 5x17 schema. Risk metrics are stored with
// their effective neutral value (higher = lower risk), so risky evidence
// lowers them like any other metric.
func DefaultRubric() Rubric {
	return Rubric{
		{
			Name: "business", Weight: 0.25, Agent: "business_agent",
			Metrics: []Metric{
				{Name: "business_model_strength", Baseline: 70},
				{Name: "competitive_position", Baseline: 68},
				{Name: "market_opportunity", Baseline: 72},
			},
		},
		{
			Name: "financial", Weight: 0.30, Agent: "financial_agent",
			Metrics: []Metric{
				{Name: "profitability", Baseline: 65},
				{Name: "liquidity", Baseline: 70},
				{Name: "debt_management", Baseline: 68},
				{Name: "cash_flow_quality", Baseline: 72},
			},
		},
		{
			Name: "growth", Weight: 0.20, Agent: "mda_agent",
			Metrics: []Metric{
				{Name: "revenue_growth", Baseline: 66},
				{Name: "innovation_capability", Baseline: 64},
				{Name: "market_expansion", Baseline: 68},
			},
		},
		{
			Name: "risk", Weight: 0.15, Agent: "risk_agent",
			Metrics: []Metric{
				{Name: "operational_risk", Baseline: 65},
				{Name: "financial_risk", Baseline: 70},
				{Name: "market_risk", Baseline: 60},
				{Name: "regulatory_risk", Baseline: 68},
			},
		},
		{
			Name: "management", Weight: 0.10, Agent: "mda_agent",
			Metrics: []Metric{
				{Name: "strategic_clarity", Baseline: 75},
				{Name: "execution_capability", Baseline: 70},
				{Name: "transparency", Baseline: 78},
			},
		},
	}
}

// KeywordRule shifts a metric by Weight for every listed term present in the
// analysis text. Matching is case-insensitive substring presence, so the
// extraction stays pure: the same text always yields the same shift.
type KeywordRule struct {
	Signal string
	Terms  []string
	Weight float64
}

// signalRules is the clean rule table backing the text heuristic.
var signalRules = []KeywordRule{
	{Signal: "growth", Weight: 2, Terms: []string{
		"growth", "increase", "expansion", "record high", "accelerat",
	}},
	{Signal: "strength", Weight: 2, Terms: []string{
		"strong", "market leader", "solid", "robust", "improved",
	}},
	{Signal: "stability", Weight: 1, Terms: []string{
		"stable", "consistent", "diversified", "recurring revenue",
	}},
	{Signal: "pressure", Weight: -1, Terms: []string{
		"risk", "challenge", "uncertain", "competition", "pressure",
	}},
	{Signal: "caution", Weight: -2, Terms: []string{
		"decline", "decrease", "weak", "net loss", "impairment",
	}},
	{Signal: "hazard", Weight: -3, Terms: []string{
		"litigation", "default", "going concern", "restatement", "material weakness",
	}},
}

// gradeBands maps the overall score to a letter grade. Ordered, closed,
// inclusive on the lower bound of the higher tier.
var gradeBands = []struct {
	Min   float64
	Grade string
}{
	{90, "A+"},
	{85, "A"},
	{80, "A-"},
	{75, "B+"},
	{70, "B"},
	{65, "B-"},
	{60, "C+"},
	{55, "C"},
}

// ratingBands maps the overall score to an investment rating, same boundary
// semantics as gradeBands.
var ratingBands = []struct {
	Min    float64
	Rating string
}{
	{80, "Strong Buy"},
	{70, "Buy"},
	{60, "Hold"},
	{50, "Underperform"},
}

// GradeFor classifies an overall score into its letter grade.
func GradeFor(score float64) string {
	for _, band := range gradeBands {
		if score >= band.Min {
			return band.Grade
		}
	}
	return "D"
}

// RatingFor classifies an overall score into its investment rating.
func RatingFor(score float64) string {
	for _, band := range ratingBands {
		if score >= band.Min {
			return band.Rating
		}
	}
	return "Sell"
}
