package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/dto"
	"custody/internal/app/middleware"
	"custody/internal/app/role"
	"custody/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ============ Helpers ============

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "Dados inválidos"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "Registro não encontrado"
	case errors.Is(err, apperr.ErrPermission):
		return http.StatusForbidden, "Acesso negado"
	case errors.Is(err, apperr.ErrAlreadySigned):
		return http.StatusConflict, "Termo já assinado"
	case errors.Is(err, apperr.ErrNotSignable):
		return http.StatusConflict, "Termo não pode mais ser assinado"
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusConflict, "Operação inválida para o status atual do termo"
	case errors.Is(err, apperr.ErrDuplicateSerial):
		return http.StatusConflict, "Número de série já cadastrado"
	case errors.Is(err, apperr.ErrDuplicateLogin):
		return http.StatusConflict, "Login já cadastrado"
	case errors.Is(err, apperr.ErrRender):
		return http.StatusBadGateway, "Falha ao gerar o documento"
	case errors.Is(err, apperr.ErrStorage):
		return http.StatusServiceUnavailable, "Armazenamento de documentos indisponível"
	default:
		return http.StatusInternalServerError, "Erro interno"
	}
}

// fail writes the error response for err. Internal errors are logged, never echoed.
func fail(c *gin.Context, err error) {
	status, message := statusFor(err)
	resp := dto.ErrorResponse{Status: "fail", Message: message}

	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
		resp.Message = verr.Error()
	}

	log := middleware.Logger(c).WithField("status", status)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	} else {
		log.WithError(err).Info("request rejected")
	}
	c.JSON(status, resp)
}

// getActor reads the identity set by the auth middleware.
func getActor(c *gin.Context) (service.Actor, bool) {
	id := c.GetUint(middleware.KeyUserID)
	value, exists := c.Get(middleware.KeyUserRole)
	if id == 0 || !exists {
		return service.Actor{}, false
	}
	r, ok := value.(role.Role)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: id, Role: r}, true
}

func mustActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := getActor(c)
	if !ok {
		errorResponse(c, http.StatusUnauthorized, "Usuário não autenticado")
	}
	return actor, ok
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Status: "fail", Message: "Identificador inválido", Field: param})
		return 0, false
	}
	return uint(id), true
}

// contentDisposition quotes the file name, switching to the RFC 2231 form for non-ASCII names.
func contentDisposition(disposition, fileName string) string {
	return mime.FormatMediaType(disposition, map[string]string{"filename": fileName})
}

func clientInfo(c *gin.Context) service.ClientInfo {
	return service.ClientInfo{
		ForwardedFor: c.GetHeader("X-Forwarded-For"),
		RealIP:       c.GetHeader("X-Real-IP"),
		ClientIP:     c.GetHeader("X-Client-IP"),
		RemoteAddr:   c.Request.RemoteAddr,
		UserAgent:    c.Request.UserAgent(),
	}
}

// ============ Conversions ============

func toProfileDTO(p ds.Profile) dto.ProfileDTO {
	return dto.ProfileDTO{
		CPF:          p.CPF,
		RG:           p.RG,
		Street:       p.Street,
		Number:       p.Number,
		Complement:   p.Complement,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
	}
}

func fromProfileDTO(p dto.ProfileDTO) ds.Profile {
	return ds.Profile{
		CPF:          p.CPF,
		RG:           p.RG,
		Street:       p.Street,
		Number:       p.Number,
		Complement:   p.Complement,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
	}
}

func toUserResponse(u *ds.User) dto.UserResponse {
	profile := toProfileDTO(u.Profile)
	return dto.UserResponse{
		ID:       u.ID,
		Login:    u.Login,
		FullName: u.FullName(),
		Email:    u.Email,
		Role:     u.Role.String(),
		Profile:  &profile,
	}
}

func toItemResponses(items []ds.CustodyItem) []dto.CustodyItemResponse {
	out := make([]dto.CustodyItemResponse, len(items))
	for i, it := range items {
		out[i] = dto.CustodyItemResponse{
			EquipmentID:       it.EquipmentID,
			Description:       it.Equipment.Label(),
			SerialNumber:      it.Equipment.SerialNumber,
			Value:             it.Equipment.Value.StringFixed(2),
			DeliveredOn:       it.DeliveredOn,
			DeliveryCondition: it.DeliveryCondition,
			ReturnedOn:        it.ReturnedOn,
			ReturnCondition:   it.ReturnCondition,
		}
	}
	return out
}

func toTermResponse(t *ds.Term) dto.TermResponse {
	resp := dto.TermResponse{
		Token:         t.Token,
		Status:        string(t.Status),
		SignerID:      t.SignerID,
		SignerName:    t.Signer.FullName(),
		TemplateID:    t.TemplateID,
		TemplateTitle: t.Template.Title,
		CreatedAt:     t.CreatedAt,
		SentAt:        t.SentAt,
		SignedAt:      t.SignedAt,
		SignatureHash: t.SignatureHash,
		HashVersion:   t.HashVersion,
		HasDocument:   t.HasArtifact(),
		Notes:         t.Notes,
	}
	if t.SignatureIP != nil {
		resp.SignatureIP = *t.SignatureIP
	}
	if len(t.Items) > 0 {
		resp.Items = toItemResponses(t.Items)
		total := decimal.Zero
		for _, it := range t.Items {
			total = total.Add(it.Equipment.Value)
		}
		resp.Total = total.StringFixed(2)
	}
	return resp
}

func toEquipmentResponse(e *ds.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:           e.ID,
		Category:     string(e.Category),
		Make:         e.Make,
		Model:        e.Model,
		SerialNumber: e.SerialNumber,
		Description:  e.Description,
		Value:        e.Value.StringFixed(2),
		AcquiredOn:   e.AcquiredOn,
		Status:       string(e.Status),
		Notes:        e.Notes,
		HolderID:     e.HolderID,
	}
}

func toTemplateResponse(t *ds.DocumentTemplate) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:        t.ID,
		Title:     t.Title,
		Version:   t.Version,
		Content:   t.Content,
		Active:    t.Active,
		HasFile:   t.HasBlob(),
		CreatedAt: t.CreatedAt,
	}
}
