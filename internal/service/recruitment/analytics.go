package recruitment

import (
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/recruitment"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// counts is the single pass over the tracker rows that every KPI is derived from.
type counts struct {
	total, joined, closed, open, canceled int

	budget            decimal.Decimal
	offers, accepted  decimal.Decimal
	slaMet            int
	fillDays          int
	fillCount         int
	hireDays          int
	hireCount         int
	probationPassed   int
	turnover          int
	satisfaction      decimal.Decimal
	satisfactionCount int

	channels     map[string]int
	channelOrder []string
}

func tally(records []recruitment.Record) counts {
	c := counts{channels: make(map[string]int)}
	for _, r := range records {
		c.total++
		c.budget = c.budget.Add(decimal.NewFromFloat(r.Budget))
		c.offers = c.offers.Add(decimal.NewFromFloat(r.TotalOffers))
		c.accepted = c.accepted.Add(decimal.NewFromFloat(r.OffersAccepted))
		if r.SLAMet {
			c.slaMet++
		}

		switch r.Status {
		case recruitment.StatusProcess:
			c.open++
		case recruitment.StatusCancel:
			c.canceled++
		}

		if r.Closed {
			c.closed++
			if d, ok := daysBetween(r.RequestDate, r.ClosedDate); ok && d > 0 {
				c.fillDays += d
				c.fillCount++
			}
		}

		if r.Status == recruitment.StatusJoin {
			c.joined++
			if d, ok := daysBetween(r.ApplyDate, r.JoinDate); ok && d > 0 {
				c.hireDays += d
				c.hireCount++
			}
			if r.ProbationPassed {
				c.probationPassed++
			}
			if r.Resigned {
				c.turnover++
			}
		}

		if r.Satisfaction > 0 {
			c.satisfaction = c.satisfaction.Add(decimal.NewFromFloat(r.Satisfaction))
			c.satisfactionCount++
		}

		if _, seen := c.channels[r.Channel]; !seen {
			c.channelOrder = append(c.channelOrder, r.Channel)
		}
		c.channels[r.Channel]++
	}
	return c
}

// Analyze computes the hiring KPIs. Rates are percentages rounded to precision decimals.
// Returns nil when there are no records.
func Analyze(records []recruitment.Record, precision int32) *recruitment.Analytics {
	if len(records) == 0 {
		return nil
	}
	c := tally(records)

	fillRate := percent(decimal.NewFromInt(int64(c.closed)), decimal.NewFromInt(int64(c.total)), precision)
	slaRate := percent(decimal.NewFromInt(int64(c.slaMet)), decimal.NewFromInt(int64(c.total)), precision)
	acceptance := percent(c.accepted, c.offers, precision)
	probationRate := percent(decimal.NewFromInt(int64(c.probationPassed)), decimal.NewFromInt(int64(c.joined)), precision)
	turnoverRate := percent(decimal.NewFromInt(int64(c.turnover)), decimal.NewFromInt(int64(c.joined)), precision)
	retention, _ := hundred.Sub(decimal.NewFromFloat(turnoverRate)).Round(precision).Float64()

	ttf := mean(decimal.NewFromInt(int64(c.fillDays)), c.fillCount, precision)
	tth := mean(decimal.NewFromInt(int64(c.hireDays)), c.hireCount, precision)
	costPerHire := ratioInt(c.budget, c.joined)
	totalBudget, _ := c.budget.Float64()

	channels := make([]recruitment.ChannelCount, 0, len(c.channelOrder))
	for _, ch := range c.channelOrder {
		channels = append(channels, recruitment.ChannelCount{Channel: ch, Count: c.channels[ch]})
	}

	return &recruitment.Analytics{
		Overview: recruitment.Overview{
			TotalRequests: c.total,
			TotalJoined:   c.joined,
			FillRate:      fillRate,
			AvgTimeToFill: ttf,
			AvgTimeToHire: tth,
			CostPerHire:   costPerHire,
			ProbationRate: probationRate,
			TurnoverRate:  turnoverRate,
		},
		Planning: recruitment.Planning{
			TotalRequests:       c.total,
			TotalBudget:         totalBudget,
			AvgBudgetPerRequest: ratioInt(c.budget, c.total),
			OpenPositions:       c.open,
			ClosedPositions:     c.closed,
			CanceledPositions:   c.canceled,
			FillRate:            fillRate,
		},
		Process: recruitment.Process{
			AvgTimeToFill:       ttf,
			AvgTimeToHire:       tth,
			SLARate:             slaRate,
			OfferAcceptanceRate: acceptance,
			CostPerHire:         costPerHire,
			InProcess:           c.open,
			Channels:            channels,
		},
		PostHiring: recruitment.PostHiring{
			TotalJoined:     c.joined,
			ProbationRate:   probationRate,
			ProbationPassed: c.probationPassed,
			RetentionRate:   retention,
			TurnoverRate:    turnoverRate,
			TurnoverCount:   c.turnover,
			AvgSatisfaction: mean(c.satisfaction, c.satisfactionCount, precision),
			ActiveEmployees: c.joined - c.turnover,
		},
	}
}

func percent(num, den decimal.Decimal, precision int32) float64 {
	if den.IsZero() {
		return 0
	}
	f, _ := num.Mul(hundred).Div(den).Round(precision).Float64()
	return f
}

func mean(sum decimal.Decimal, n int, precision int32) float64 {
	if n == 0 {
		return 0
	}
	f, _ := sum.Div(decimal.NewFromInt(int64(n))).Round(precision).Float64()
	return f
}

func ratioInt(sum decimal.Decimal, n int) int64 {
	if n == 0 {
		return 0
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(0).IntPart()
}

// daysBetween counts whole calendar days from a to b, ignoring clock and DST shifts.
func daysBetween(a, b *time.Time) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24), true
}
