package handlers

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/services"
)

const (
	maxDocumentSize = 10 << 20
	maxFormMemory   = 32 << 20
)

type CreditHandler struct {
	BaseHandler
	credits *services.CreditService
}

func NewCreditHandler(credits *services.CreditService, log *slog.Logger) *CreditHandler {
	return &CreditHandler{BaseHandler: NewBaseHandler(log), credits: credits}
}

// CreateCredit submits a credit application. Callers without a pyme send
// its data in "pyme" and get one created alongside the credit.
// @Tags Credits
// @Summary Request a credit
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateCreditRequest true "Credit application"
// @Success 201 {object} models.CreditResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/credits [post]
func (h *CreditHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.CreateCreditRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.credits.Create(r.Context(), u, req)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, resp)
}

// @Tags Credits
// @Summary List the caller's credits
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Credit
// @Router /api/v1/credits [get]
func (h *CreditHandler) ListCredits(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	credits, err := h.credits.ListMine(r.Context(), u)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, credits)
}

// @Tags Credits
// @Summary Get a credit
// @Security BearerAuth
// @Produce json
// @Param id path string true "Credit ID"
// @Success 200 {object} models.Credit
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/credits/{id} [get]
func (h *CreditHandler) GetCredit(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.credits.Get(r.Context(), u, id)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

// UploadDocument stores one file for a credit.
// @Tags Credits
// @Summary Upload a credit document
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Credit ID"
// @Param file formData file true "Document"
// @Success 201 {object} models.CreditDocument
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/credits/{id}/documents [post]
func (h *CreditHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize+(1<<20))
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "validation_error", "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxDocumentSize {
		writeJSONError(w, r, http.StatusBadRequest, "validation_error", "file is too large")
		return
	}

	doc, err := h.credits.AttachDocument(r.Context(), u, id, services.Document{
		FileName:    filepath.Base(header.Filename),
		ContentType: contentType(header),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, doc)
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// @Tags Credits
// @Summary List credit documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Credit ID"
// @Success 200 {array} models.CreditDocument
// @Router /api/v1/credits/{id}/documents [get]
func (h *CreditHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	docs, err := h.credits.ListDocuments(r.Context(), u, id)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, docs)
}

// @Tags Credits
// @Summary Review a credit
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Credit ID"
// @Param request body models.CreateReviewRequest true "Decision"
// @Success 201 {object} models.CreditReview
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/credits/{id}/reviews [post]
func (h *CreditHandler) ReviewCredit(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.CreateReviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	review, err := h.credits.Review(r.Context(), u, id, req)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, review)
}

// @Tags Credits
// @Summary List credit reviews
// @Security BearerAuth
// @Produce json
// @Param id path string true "Credit ID"
// @Success 200 {array} models.CreditReview
// @Router /api/v1/credits/{id}/reviews [get]
func (h *CreditHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.credits.ListReviews(r.Context(), u, id)
	if err != nil {
		writeAppError(w, r, h.log, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reviews)
}
