package recruitment

type ChannelCount struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

type Overview struct {
	TotalRequests int     `json:"total_requests"`
	TotalJoined   int     `json:"total_joined"`
	FillRate      float64 `json:"fill_rate"`
	AvgTimeToFill float64 `json:"avg_time_to_fill"`
	AvgTimeToHire float64 `json:"avg_time_to_hire"`
	CostPerHire   int64   `json:"cost_per_hire"`
	ProbationRate float64 `json:"probation_rate"`
	TurnoverRate  float64 `json:"turnover_rate"`
}

type Planning struct {
	TotalRequests       int     `json:"total_requests"`
	TotalBudget         float64 `json:"total_budget"`
	AvgBudgetPerRequest int64   `json:"avg_budget_per_request"`
	OpenPositions       int     `json:"open_positions"`
	ClosedPositions     int     `json:"closed_positions"`
	CanceledPositions   int     `json:"canceled_positions"`
	FillRate            float64 `json:"fill_rate"`
}

type Process struct {
	AvgTimeToFill       float64        `json:"avg_time_to_fill"`
	AvgTimeToHire       float64        `json:"avg_time_to_hire"`
	SLARate             float64        `json:"sla_rate"`
	OfferAcceptanceRate float64        `json:"offer_acceptance_rate"`
	CostPerHire         int64          `json:"cost_per_hire"`
	InProcess           int            `json:"in_process"`
	Channels            []ChannelCount `json:"channels"`
}

type PostHiring struct {
	TotalJoined     int     `json:"total_joined"`
	ProbationRate   float64 `json:"probation_rate"`
	ProbationPassed int     `json:"probation_passed"`
	RetentionRate   float64 `json:"retention_rate"`
	TurnoverRate    float64 `json:"turnover_rate"`
	TurnoverCount   int     `json:"turnover_count"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	ActiveEmployees int     `json:"active_employees"`
}

// Analytics groups the KPIs by hiring phase.
type Analytics struct {
	Overview   Overview   `json:"overview"`
	Planning   Planning   `json:"planning"`
	Process    Process    `json:"process"`
	PostHiring PostHiring `json:"post_hiring"`
}
