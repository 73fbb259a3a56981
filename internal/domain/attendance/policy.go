package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

// ExceptionRule maps label keywords to a category. Rules are tried in order.
type ExceptionRule struct {
	Category ExceptionCategory
	Keywords []string
}

// LeaveTagKeywords lists the substrings counted in each leave tally.
type LeaveTagKeywords struct {
	Sick         []string
	Leave        []string
	BusinessTrip []string
	Unpaid       []string
	WFH          []string
}

// Policy holds the tunable constants of classification and scoring.
type Policy struct {
	StandardDayMinutes   int
	AttendanceWeight     float64
	PunctualityWeight    float64
	RatePrecision        int32
	RecruitmentPrecision int32
	ExceptionRules       []ExceptionRule
	LeaveTags            LeaveTagKeywords
}

// DefaultPolicy: 8.5h standard day, 60/40 compliance split.
func DefaultPolicy() Policy {
	return Policy{
		StandardDayMinutes:   510,
		AttendanceWeight:     0.6,
		PunctualityWeight:    0.4,
		RatePrecision:        2,
		RecruitmentPrecision: 1,
		ExceptionRules: []ExceptionRule{
			// Leave-type labels exclude the day before any other keyword is considered.
			{Category: ExceptionOtherNonWorking, Keywords: []string{"leave", "cuti", "izin", "libur"}},
			{Category: ExceptionSickOrUnpaid, Keywords: []string{"sick", "sakit", "unpaid"}},
			{Category: ExceptionWorking, Keywords: []string{"trip", "dinas", "bleave", "wfh", "work from home", "tugas luar", "personal"}},
		},
		LeaveTags: LeaveTagKeywords{
			Sick:         []string{"sick", "sakit"},
			Leave:        []string{"leave", "cuti"},
			BusinessTrip: []string{"trip", "dinas", "tugas"},
			Unpaid:       []string{"unpaid"},
			WFH:          []string{"wfh", "work from home"},
		},
	}
}

// ResolveException classifies a raw label. Matching is case-insensitive substring.
func (p Policy) ResolveException(label string) Exception {
	label = strings.TrimSpace(label)
	if IsBlankLabel(label) {
		return Exception{}
	}

	lower := strings.ToLower(label)
	exc := Exception{Label: label, Category: ExceptionNote}
	for _, rule := range p.ExceptionRules {
		if containsAny(lower, rule.Keywords) {
			exc.Category = rule.Category
			break
		}
	}

	if containsAny(lower, p.LeaveTags.Sick) {
		exc.Tags |= TagSick
	}
	if containsAny(lower, p.LeaveTags.Leave) {
		exc.Tags |= TagLeave
	}
	if containsAny(lower, p.LeaveTags.BusinessTrip) {
		exc.Tags |= TagBusinessTrip
	}
	if containsAny(lower, p.LeaveTags.Unpaid) {
		exc.Tags |= TagUnpaid
	}
	if containsAny(lower, p.LeaveTags.WFH) {
		exc.Tags |= TagWFH
	}
	return exc
}

func (p Policy) Validate() error {
	var errs validator.ValidationErrors

	if p.StandardDayMinutes <= 0 || p.StandardDayMinutes > 24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_day_minutes",
			Message: "standard_day_minutes must be between 1 and 1440",
		})
	}
	if p.AttendanceWeight < 0 || p.PunctualityWeight < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "weights",
			Message: "compliance weights must not be negative",
		})
	}
	if p.RatePrecision < 0 || p.RatePrecision > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "rate_precision",
			Message: "rate_precision must be between 0 and 6",
		})
	}
	if p.RecruitmentPrecision < 0 || p.RecruitmentPrecision > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "recruitment_precision",
			Message: "recruitment_precision must be between 0 and 6",
		})
	}
	for _, rule := range p.ExceptionRules {
		if !rule.Category.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "exception_rules",
				Message: "unknown exception category: " + string(rule.Category),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
