package recruitment

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/recruitment"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/utils"
)

type field int

const (
	fieldRequestNo field = iota + 1
	fieldRequestDate
	fieldClosedDate
	fieldPosition
	fieldStatus
	fieldApplyDate
	fieldJoinDate
	fieldProbation
	fieldResignDate
	fieldBudget
	fieldChannel
	fieldSLA
	fieldTotalOffers
	fieldOffersAccepted
	fieldSatisfaction
)

var headerAliases = map[string]field{
	"norequest":       fieldRequestNo,
	"requestno":       fieldRequestNo,
	"tanggalrequest":  fieldRequestDate,
	"requestdate":     fieldRequestDate,
	"tanggalclosed":   fieldClosedDate,
	"closeddate":      fieldClosedDate,
	"posisi":          fieldPosition,
	"position":        fieldPosition,
	"status":          fieldStatus,
	"tanggalapply":    fieldApplyDate,
	"applydate":       fieldApplyDate,
	"tanggaljoin":     fieldJoinDate,
	"joindate":        fieldJoinDate,
	"lulusprobation":  fieldProbation,
	"probationpassed": fieldProbation,
	"tanggalresign":   fieldResignDate,
	"resigndate":      fieldResignDate,
	"biayarekrutmen":  fieldBudget,
	"budget":          fieldBudget,
	"sumberkandidat":  fieldChannel,
	"channel":         fieldChannel,
	"slaterpenuhi":    fieldSLA,
	"slamet":          fieldSLA,
	"totaloffer":      fieldTotalOffers,
	"totaloffers":     fieldTotalOffers,
	"offerditerima":   fieldOffersAccepted,
	"offersaccepted":  fieldOffersAccepted,
	"kepuasanuser":    fieldSatisfaction,
	"satisfaction":    fieldSatisfaction,
}

// statusAliases maps lowercased status cells onto the tracker's canonical values.
var statusAliases = map[string]string{
	"join":       recruitment.StatusJoin,
	"joined":     recruitment.StatusJoin,
	"proses":     recruitment.StatusProcess,
	"process":    recruitment.StatusProcess,
	"in process": recruitment.StatusProcess,
	"batal":      recruitment.StatusCancel,
	"cancel":     recruitment.StatusCancel,
	"canceled":   recruitment.StatusCancel,
	"cancelled":  recruitment.StatusCancel,
}

func Normalize(row map[string]any) recruitment.Record {
	values := mapFields(row)

	r := recruitment.Record{
		RequestNo: utils.CellText(values[fieldRequestNo]),
		Position:  utils.CellText(values[fieldPosition]),
		Status:    status(values[fieldStatus]),
		Channel:   utils.CellText(values[fieldChannel]),

		RequestDate: date(values[fieldRequestDate]),
		ClosedDate:  date(values[fieldClosedDate]),
		ApplyDate:   date(values[fieldApplyDate]),
		JoinDate:    date(values[fieldJoinDate]),

		Closed:   present(values[fieldClosedDate]),
		Resigned: present(values[fieldResignDate]),

		ProbationPassed: utils.IsTruthy(values[fieldProbation]),
		SLAMet:          utils.IsTruthy(values[fieldSLA]),

		Budget:         utils.CellNumber(values[fieldBudget]),
		TotalOffers:    utils.CellNumber(values[fieldTotalOffers]),
		OffersAccepted: utils.CellNumber(values[fieldOffersAccepted]),
		Satisfaction:   utils.CellNumber(values[fieldSatisfaction]),
	}
	if r.Channel == "" {
		r.Channel = recruitment.DefaultChannel
	}
	return r
}

func NormalizeAll(rows []map[string]any) []recruitment.Record {
	records := make([]recruitment.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Normalize(row))
	}
	return records
}

func mapFields(row map[string]any) map[field]any {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[field]any, len(headerAliases))
	for _, k := range keys {
		f, ok := headerAliases[utils.NormalizeHeader(k)]
		if !ok {
			continue
		}
		if _, taken := values[f]; taken {
			continue
		}
		values[f] = row[k]
	}
	return values
}

func status(v any) string {
	s := utils.CellText(v)
	if canonical, ok := statusAliases[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

func date(v any) *time.Time {
	d, ok := utils.ParseCalendarDate(v)
	if !ok {
		return nil
	}
	return &d
}

func present(v any) bool {
	s := utils.CellText(v)
	return s != "" && !utils.IsEmptySentinel(s)
}
