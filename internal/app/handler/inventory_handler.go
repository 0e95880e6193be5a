package handler

import (
	"io"
	"net/http"

	"custody/internal/app/ds"
	"custody/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// maxTemplateSize caps .docx uploads.
const maxTemplateSize = 10 << 20

// ============ Equipment ============

// GetEquipment
// @Summary List equipment
// @Tags Equipment
// @Produce json
// @Security BearerAuth
// @Param status query string false "DISPONIVEL, EM_USO, MANUTENCAO or INATIVO"
// @Success 200 {array} dto.EquipmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/equipment [get]
func (h *APIHandler) GetEquipment(c *gin.Context) {
	units, err := h.Service.ListEquipment(c.Request.Context(), ds.EquipmentStatus(c.Query("status")))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]dto.EquipmentResponse, len(units))
	for i := range units {
		out[i] = toEquipmentResponse(&units[i])
	}
	c.JSON(http.StatusOK, out)
}

// CreateEquipment
// @Summary Register an equipment unit
// @Tags Equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEquipmentRequest true "Unit"
// @Success 201 {object} dto.EquipmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/equipment [post]
func (h *APIHandler) CreateEquipment(c *gin.Context) {
	var req dto.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	unit := ds.Equipment{
		Category:     ds.EquipmentCategory(req.Category),
		Make:         req.Make,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		Value:        req.Value,
		Status:       ds.EquipmentStatus(req.Status),
		Notes:        req.Notes,
	}
	if req.AcquiredOn != nil {
		unit.AcquiredOn = *req.AcquiredOn
	}

	if err := h.Service.CreateEquipment(c.Request.Context(), &unit); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEquipmentResponse(&unit))
}

// GetEquipmentByID
// @Summary Equipment detail
// @Tags Equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.EquipmentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/equipment/{id} [get]
func (h *APIHandler) GetEquipmentByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	unit, err := h.Service.GetEquipment(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEquipmentResponse(unit))
}

// UpdateEquipment
// @Summary Update an equipment unit
// @Description A unit held by a signer stays EM_USO until it is returned
// @Tags Equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Param request body dto.UpdateEquipmentRequest true "Unit"
// @Success 200 {object} dto.EquipmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/equipment/{id} [put]
func (h *APIHandler) UpdateEquipment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	unit := ds.Equipment{
		ID:           id,
		Category:     ds.EquipmentCategory(req.Category),
		Make:         req.Make,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		Value:        req.Value,
		Status:       ds.EquipmentStatus(req.Status),
		Notes:        req.Notes,
	}
	if req.AcquiredOn != nil {
		unit.AcquiredOn = *req.AcquiredOn
	}

	if err := h.Service.UpdateEquipment(c.Request.Context(), &unit); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEquipmentResponse(&unit))
}

// ============ Templates ============

// GetTemplates
// @Summary List active templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TemplateResponse
// @Router /api/templates [get]
func (h *APIHandler) GetTemplates(c *gin.Context) {
	templates, err := h.Service.ListTemplates(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]dto.TemplateResponse, len(templates))
	for i := range templates {
		out[i] = toTemplateResponse(&templates[i])
	}
	c.JSON(http.StatusOK, out)
}

// CreateTemplate
// @Summary Create a template
// @Description Content is the HTML body used when no .docx file is attached. Active defaults to true.
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/templates [post]
func (h *APIHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	tpl := ds.DocumentTemplate{
		Title:   req.Title,
		Version: req.Version,
		Content: req.Content,
		Active:  req.Active == nil || *req.Active,
	}
	if err := h.Service.CreateTemplate(c.Request.Context(), &tpl); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTemplateResponse(&tpl))
}

// GetTemplate
// @Summary Template detail
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/templates/{id} [get]
func (h *APIHandler) GetTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tpl, err := h.Service.GetTemplate(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTemplateResponse(tpl))
}

// UpdateTemplate
// @Summary Update a template
// @Description The attached .docx file, if any, is kept
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Param request body dto.UpdateTemplateRequest true "Template"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/templates/{id} [put]
func (h *APIHandler) UpdateTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	tpl, err := h.Service.UpdateTemplate(c.Request.Context(), &ds.DocumentTemplate{
		ID:      id,
		Title:   req.Title,
		Version: req.Version,
		Content: req.Content,
		Active:  req.Active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTemplateResponse(tpl))
}

// UploadTemplateFile
// @Summary Attach a .docx file to a template
// @Tags Templates
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Param file formData file true ".docx template"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/templates/{id}/file [post]
func (h *APIHandler) UploadTemplateFile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "fail", Message: "Arquivo obrigatório", Field: "file"})
		return
	}
	if header.Size > maxTemplateSize {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "fail", Message: "Arquivo muito grande", Field: "file"})
		return
	}

	file, err := header.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(c, err)
		return
	}

	tpl, err := h.Service.AttachTemplateFile(c.Request.Context(), id, header.Filename, data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTemplateResponse(tpl))
}
