package config

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/pelletier/go-toml/v2"
)

// policyFile mirrors attendance.Policy; nil fields keep the default.
type policyFile struct {
	StandardDayMinutes   *int               `toml:"standard_day_minutes"`
	AttendanceWeight     *float64           `toml:"attendance_weight"`
	PunctualityWeight    *float64           `toml:"punctuality_weight"`
	RatePrecision        *int32             `toml:"rate_precision"`
	RecruitmentPrecision *int32             `toml:"recruitment_precision"`
	ExceptionRules       []exceptionRuleRow `toml:"exception_rules"`
	LeaveTags            *leaveTagsTable    `toml:"leave_tags"`
}

type exceptionRuleRow struct {
	Category string   `toml:"category"`
	Keywords []string `toml:"keywords"`
}

type leaveTagsTable struct {
	Sick         []string `toml:"sick"`
	Leave        []string `toml:"leave"`
	BusinessTrip []string `toml:"business_trip"`
	Unpaid       []string `toml:"unpaid"`
	WFH          []string `toml:"wfh"`
}

// LoadPolicy returns the default policy, overlaid with the TOML file at path when path is set.
func LoadPolicy(path string) (attendance.Policy, error) {
	policy := attendance.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy overlays TOML data onto the default policy and validates the result.
func ParsePolicy(data []byte) (attendance.Policy, error) {
	policy := attendance.DefaultPolicy()

	var file policyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return policy, fmt.Errorf("%w: %v", attendance.ErrInvalidPolicy, err)
	}

	if file.StandardDayMinutes != nil {
		policy.StandardDayMinutes = *file.StandardDayMinutes
	}
	if file.AttendanceWeight != nil {
		policy.AttendanceWeight = *file.AttendanceWeight
	}
	if file.PunctualityWeight != nil {
		policy.PunctualityWeight = *file.PunctualityWeight
	}
	if file.RatePrecision != nil {
		policy.RatePrecision = *file.RatePrecision
	}
	if file.RecruitmentPrecision != nil {
		policy.RecruitmentPrecision = *file.RecruitmentPrecision
	}

	// A rules list replaces the defaults as a whole: order decides precedence.
	if len(file.ExceptionRules) > 0 {
		policy.ExceptionRules = make([]attendance.ExceptionRule, 0, len(file.ExceptionRules))
		for _, row := range file.ExceptionRules {
			policy.ExceptionRules = append(policy.ExceptionRules, attendance.ExceptionRule{
				Category: attendance.ExceptionCategory(row.Category),
				Keywords: row.Keywords,
			})
		}
	}

	if tags := file.LeaveTags; tags != nil {
		overlay(&policy.LeaveTags.Sick, tags.Sick)
		overlay(&policy.LeaveTags.Leave, tags.Leave)
		overlay(&policy.LeaveTags.BusinessTrip, tags.BusinessTrip)
		overlay(&policy.LeaveTags.Unpaid, tags.Unpaid)
		overlay(&policy.LeaveTags.WFH, tags.WFH)
	}

	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("%w: %v", attendance.ErrInvalidPolicy, err)
	}
	return policy, nil
}

func overlay(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}
