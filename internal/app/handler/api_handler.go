package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"custody/internal/app/ds"
	"custody/internal/app/dto"
	"custody/internal/app/middleware"
	"custody/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler serves the REST API.
type APIHandler struct {
	Service     *service.Service
	AuthHandler *AuthHandler
}

func NewAPIHandler(svc *service.Service, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Service:     svc,
		AuthHandler: authHandler,
	}
}

// ============ Terms ============

// GetTerms
// @Summary List terms
// @Description Administrators see every term, employees only the ones addressed to them
// @Tags Terms
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDENTE, ENVIADO, ASSINADO, RECUSADO or CANCELADO"
// @Success 200 {object} dto.TermListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/terms [get]
func (h *APIHandler) GetTerms(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	terms, err := h.Service.List(c.Request.Context(), actor, ds.TermStatus(c.Query("status")))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]dto.TermResponse, len(terms))
	for i := range terms {
		out[i] = toTermResponse(&terms[i])
	}
	c.JSON(http.StatusOK, dto.TermListResponse{Terms: out, Total: len(out)})
}

// GetTerm
// @Summary Term detail
// @Tags Terms
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Success 200 {object} dto.TermResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/terms/{uuid} [get]
func (h *APIHandler) GetTerm(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	term, err := h.Service.Get(c.Request.Context(), c.Param("uuid"), actor)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTermResponse(term))
}

// CreateTerm
// @Summary Draft a term
// @Description Opens a term in PENDENTE with one custody item per equipment unit
// @Tags Terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTermRequest true "Signer, template and units"
// @Success 201 {object} dto.TermResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/terms [post]
func (h *APIHandler) CreateTerm(c *gin.Context) {
	var req dto.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	term, err := h.Service.CreateDraft(c.Request.Context(), service.DraftRequest{
		SignerID:     req.SignerID,
		TemplateID:   req.TemplateID,
		EquipmentIDs: req.EquipmentIDs,
		Notes:        req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTermResponse(term))
}

// UpdateTerm
// @Summary Edit a draft term
// @Description Signer, template, equipment set and notes of a PENDENTE term. Sent and closed terms are frozen.
// @Tags Terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Param request body dto.UpdateTermRequest true "Changes"
// @Success 200 {object} dto.TermResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/terms/{uuid} [put]
func (h *APIHandler) UpdateTerm(c *gin.Context) {
	var req dto.UpdateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	term, err := h.Service.UpdateDraft(c.Request.Context(), c.Param("uuid"), service.DraftUpdate{
		SignerID:     req.SignerID,
		TemplateID:   req.TemplateID,
		EquipmentIDs: req.EquipmentIDs,
		Notes:        req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTermResponse(term))
}

// SendTerm
// @Summary Send a term for signature
// @Tags Terms
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Success 200 {object} dto.TermResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/send [put]
func (h *APIHandler) SendTerm(c *gin.Context) {
	term, err := h.Service.Send(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTermResponse(term))
}

// CancelTerm
// @Summary Cancel a term
// @Tags Terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Param request body dto.ReasonRequest false "Reason"
// @Success 200 {object} dto.TermResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/cancel [put]
func (h *APIHandler) CancelTerm(c *gin.Context) {
	var req dto.ReasonRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
			return
		}
	}

	term, err := h.Service.Cancel(c.Request.Context(), c.Param("uuid"), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTermResponse(term))
}

// DeclineTerm
// @Summary Decline a term
// @Description Only the bound signer can decline
// @Tags Terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Param request body dto.ReasonRequest false "Reason"
// @Success 200 {object} dto.TermResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/decline [put]
func (h *APIHandler) DeclineTerm(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ReasonRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
			return
		}
	}

	term, err := h.Service.Decline(c.Request.Context(), c.Param("uuid"), actor, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTermResponse(term))
}

// AddTermNote
// @Summary Append an administrative note
// @Tags Terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Param request body dto.NoteRequest true "Note"
// @Success 200 {object} dto.TermResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/notes [put]
func (h *APIHandler) AddTermNote(c *gin.Context) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "fail", Message: "Nota obrigatória", Field: "note"})
		return
	}

	term, err := h.Service.AppendNote(c.Request.Context(), c.Param("uuid"), req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTermResponse(term))
}

// ReturnEquipment
// @Summary Register the return of one unit
// @Tags Terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Param equipment_id path int true "Equipment ID"
// @Param request body dto.ReturnRequest true "Condition at return"
// @Success 200 {object} dto.TermResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/items/{equipment_id}/return [put]
func (h *APIHandler) ReturnEquipment(c *gin.Context) {
	equipmentID, ok := parseID(c, "equipment_id")
	if !ok {
		return
	}

	var req dto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "fail", Message: "Condição obrigatória", Field: "condition"})
		return
	}

	term, err := h.Service.ReturnEquipment(c.Request.Context(), c.Param("uuid"), equipmentID, req.Condition)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTermResponse(term))
}

// ============ Signing ============

// GetSigningForm
// @Summary Signing form
// @Description Returns the term, its units and the identity fields on file. Nothing is written.
// @Tags Signing
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Success 200 {object} dto.SigningFormResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/sign [get]
func (h *APIHandler) GetSigningForm(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	form, err := h.Service.RequestSignature(c.Request.Context(), c.Param("uuid"), actor)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SigningFormResponse{
		Term:    toTermResponse(form.Term),
		Profile: toProfileDTO(form.Profile),
		Items:   toItemResponses(form.Items),
	})
}

// SignTerm
// @Summary Sign a term
// @Description Records the signature and produces the signed PDF. When the document cannot be produced the signature stays recorded and the error carries signed=true.
// @Tags Signing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Param request body dto.SignRequest true "Identity fields and delivery conditions"
// @Success 200 {object} dto.TermResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/sign [post]
func (h *APIHandler) SignTerm(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	conditions := make(map[uint]string, len(req.Conditions))
	for key, condition := range req.Conditions {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "fail", Message: "Equipamento inválido: " + key, Field: "conditions"})
			return
		}
		conditions[uint(id)] = condition
	}

	term, err := h.Service.CommitSignature(c.Request.Context(), c.Param("uuid"), actor,
		service.Submission{Profile: fromProfileDTO(req.ProfileDTO), Conditions: conditions},
		clientInfo(c))
	if err != nil {
		if term == nil {
			fail(c, err)
			return
		}
		// committed; only the document is missing
		status, message := statusFor(err)
		middleware.Logger(c).WithFields(logrus.Fields{"term": term.Token, "error": err}).Error("signed term without document")
		resp := toTermResponse(term)
		c.JSON(status, dto.ErrorResponse{Status: "fail", Message: message, Signed: true, Term: &resp})
		return
	}

	c.JSON(http.StatusOK, toTermResponse(term))
}

// ============ Documents ============

// DownloadTerm
// @Summary Download the signed PDF
// @Tags Documents
// @Produce application/pdf
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/download [get]
func (h *APIHandler) DownloadTerm(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	doc, err := h.Service.Download(c.Request.Context(), c.Param("uuid"), actor)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition("attachment", doc.FileName))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// PreviewTerm
// @Summary Preview the term
// @Description Renders the current state inline without storing anything
// @Tags Documents
// @Produce application/pdf
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/preview [get]
func (h *APIHandler) PreviewTerm(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	strategy, err := h.Service.Preview(c.Request.Context(), c.Param("uuid"), actor, &buf)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition("inline", "preview_"+c.Param("uuid")+".pdf"))
	c.Header("X-Render-Strategy", string(strategy))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// RenderTerm
// @Summary Re-render the signed PDF
// @Description Regenerates the document from committed state and overwrites the stored one
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Success 200 {object} dto.RenderResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/render [post]
func (h *APIHandler) RenderTerm(c *gin.Context) {
	token := c.Param("uuid")
	ref, err := h.Service.Rerender(c.Request.Context(), token)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RenderResponse{Token: token, ArtifactRef: ref})
}

// VerifyTerm
// @Summary Verify the signature hash
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Term token"
// @Success 200 {object} dto.VerifyResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/terms/{uuid}/verify [get]
func (h *APIHandler) VerifyTerm(c *gin.Context) {
	v, err := h.Service.Verify(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerifyResponse{
		Token:       v.Token,
		HashVersion: v.HashVersion,
		Stored:      v.Stored,
		Computed:    v.Computed,
		Valid:       v.Valid,
	})
}
