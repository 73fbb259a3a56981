package dataset

import "time"

// Kind tells which engine consumes a dataset's rows.
type Kind string

const (
	KindAttendance  Kind = "attendance"
	KindRecruitment Kind = "recruitment"
)

func (k Kind) IsValid() bool {
	return k == KindAttendance || k == KindRecruitment
}

// Dataset is one uploaded spreadsheet. Only raw rows are stored; analytics are recomputed per request.
type Dataset struct {
	ID         string
	CompanyID  string
	Kind       Kind
	Name       string
	SheetName  string
	SourcePath *string
	RowCount   int
	Columns    []string
	CreatedAt  time.Time
}

// Row is a raw header-keyed spreadsheet row.
type Row map[string]any
