package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dataset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type DatasetHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Source(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type datasetHandlerImpl struct {
	datasetService dataset.DatasetService
}

func NewDatasetHandler(datasetService dataset.DatasetService) DatasetHandler {
	return &datasetHandlerImpl{
		datasetService: datasetService,
	}
}

// Upload handles POST /datasets (multipart: file, kind, name)
func (h *datasetHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, dataset.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	req := dataset.UploadRequest{
		Kind: r.FormValue("kind"),
		Name: r.FormValue("name"),
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
	}
	req.File = file
	req.FileHeader = fileHeader

	result, err := h.datasetService.Upload(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Dataset uploaded successfully", result)
}

// List handles GET /datasets
func (h *datasetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := dataset.DatasetFilter{}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter.Kind = &kind
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}

	// Pagination
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	results, err := h.datasetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get handles GET /datasets/{id}
func (h *datasetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	result, err := h.datasetService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Source handles GET /datasets/{id}/source, streaming the archived upload
func (h *datasetHandlerImpl) Source(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	src, err := h.datasetService.Source(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer src.Body.Close()

	w.Header().Set("Content-Type", src.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": src.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, src.Body); err != nil {
		slog.Error("Failed to stream dataset source", "dataset_id", id, "error", err)
	}
}

// Delete handles DELETE /datasets/{id}
func (h *datasetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := datasetID(w, r)
	if !ok {
		return
	}

	if err := h.datasetService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Dataset deleted successfully", nil)
}

// datasetID reads and checks the {id} URL param, writing a 400 when it is not a UUIDv7.
func datasetID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Dataset ID is required", nil)
		return "", false
	}
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid dataset ID", nil)
		return "", false
	}
	return id, true
}
