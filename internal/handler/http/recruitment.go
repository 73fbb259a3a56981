package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/recruitment"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
)

type RecruitmentHandler interface {
	Analyze(w http.ResponseWriter, r *http.Request)
	Summarize(w http.ResponseWriter, r *http.Request)
}

type recruitmentHandlerImpl struct {
	recruitmentService recruitment.RecruitmentService
}

func NewRecruitmentHandler(recruitmentService recruitment.RecruitmentService) RecruitmentHandler {
	return &recruitmentHandlerImpl{
		recruitmentService: recruitmentService,
	}
}

// Analyze handles GET /datasets/{id}/recruitment
func (h *recruitmentHandlerImpl) Analyze(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	result, err := h.recruitmentService.Analyze(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summarize handles POST /analytics/recruitment with a JSON array of rows.
func (h *recruitmentHandlerImpl) Summarize(w http.ResponseWriter, r *http.Request) {
	rows, ok := decodeRows(w, r)
	if !ok {
		return
	}

	result, err := h.recruitmentService.Summarize(r.Context(), rows)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
