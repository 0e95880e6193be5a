package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"custody/internal/app/config"
	"custody/internal/app/ds"
	"custody/internal/app/dto"
	"custody/internal/app/middleware"
	"custody/internal/app/render"
	"custody/internal/app/repository"
	"custody/internal/app/role"
	"custody/internal/app/service"
	"custody/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
}

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) WriteJWTToBlacklist(_ context.Context, jwtStr string, ttl time.Duration) error {
	f.revoked[jwtStr] = ttl
	return nil
}

type testAPI struct {
	router  *gin.Engine
	repo    *repository.Repository
	svc     *service.Service
	revoker *fakeRevoker

	admin  *ds.User
	signer *ds.User
	other  *ds.User
	tpl    *ds.DocumentTemplate
	units  []ds.Equipment
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	repo, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "handler_test.db"))
	require.NoError(t, err)

	f, err := render.NewFormatter(render.DefaultTimezone)
	require.NoError(t, err)
	store := storage.NewFileStore(afero.NewMemMapFs(), "")

	svc := service.New(service.Options{
		Repository: repo,
		Renderer:   render.NewRenderer(render.Options{Formatter: f}),
		Artifacts:  store,
		Templates:  store,
	})

	cfg := &config.Config{JWT: config.JWTConfig{
		Token:         "handler-secret",
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}}
	auth := middleware.NewAuthMiddleware(nil, cfg)
	revoker := &fakeRevoker{revoked: map[string]time.Duration{}}

	api := &testAPI{repo: repo, svc: svc, revoker: revoker}

	hash, err := service.HashPassword("s3nha")
	require.NoError(t, err)
	api.admin, err = repo.CreateUser(ctx, "admin", hash, "Carla", "Admin", role.Admin)
	require.NoError(t, err)
	api.signer, err = repo.CreateUser(ctx, "ana.silva", hash, "Ana", "Silva", role.Employee)
	require.NoError(t, err)
	api.other, err = repo.CreateUser(ctx, "bruno", hash, "Bruno", "Costa", role.Employee)
	require.NoError(t, err)

	api.tpl = &ds.DocumentTemplate{Title: "Termo de Responsabilidade", Version: "1.0",
		Content: "<p>Declaro ter recebido os equipamentos.</p>", Active: true}
	require.NoError(t, svc.CreateTemplate(ctx, api.tpl))
	for _, serial := range []string{"SN-100", "SN-200"} {
		e := ds.Equipment{Category: ds.CategoryNotebook, Make: "Dell", Model: "Latitude",
			SerialNumber: serial, Value: decimal.RequireFromString("1500.00")}
		require.NoError(t, svc.CreateEquipment(ctx, &e))
		api.units = append(api.units, e)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.InlinePDFHeaders())
	NewAPIHandler(svc, NewAuthHandler(repo, revoker, auth, cfg)).RegisterAPIRoutes(r, auth)
	api.router = r
	return api
}

func (a *testAPI) login(t *testing.T, login string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: login, Password: "s3nha"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "handler-test")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// draftAndSend creates a term for the signer over every unit and sends it, as admin.
func (a *testAPI) draftAndSend(t *testing.T, adminToken string) string {
	t.Helper()
	ids := make([]uint, len(a.units))
	for i, u := range a.units {
		ids[i] = u.ID
	}

	w := a.do(t, http.MethodPost, "/api/terms", adminToken, dto.CreateTermRequest{
		SignerID: a.signer.ID, TemplateID: a.tpl.ID, EquipmentIDs: ids,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var term dto.TermResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &term))
	assert.Equal(t, string(ds.TermDraft), term.Status)

	w = a.do(t, http.MethodPut, "/api/terms/"+term.Token+"/send", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return term.Token
}

func completeSignRequest() dto.SignRequest {
	return dto.SignRequest{ProfileDTO: dto.ProfileDTO{
		CPF: "123.456.789-00", RG: "12.345.678-9", Street: "Rua das Flores", Number: "100",
		Neighborhood: "Centro", City: "Curitiba", State: "PR", PostalCode: "80000-000",
	}}
}

func TestSigningFlow(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.login(t, "admin")
	signerToken := api.login(t, "ana.silva")
	token := api.draftAndSend(t, adminToken)

	w := api.do(t, http.MethodGet, "/api/terms/"+token+"/sign", signerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var form dto.SigningFormResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Len(t, form.Items, 2)

	req := completeSignRequest()
	req.Conditions = map[string]string{strconv.FormatUint(uint64(api.units[1].ID), 10): "Usado"}
	w = api.do(t, http.MethodPost, "/api/terms/"+token+"/sign", signerToken, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var signed dto.TermResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signed))
	assert.Equal(t, string(ds.TermSigned), signed.Status)
	assert.Equal(t, "203.0.113.7", signed.SignatureIP)
	assert.Len(t, signed.SignatureHash, 64)
	assert.True(t, signed.HasDocument)

	w = api.do(t, http.MethodPost, "/api/terms/"+token+"/sign", signerToken, completeSignRequest())
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodGet, "/api/terms/"+token+"/download", signerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, "term_Ana_Silva_"+token+".pdf", params["filename"])
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	assert.Empty(t, w.Header().Get("X-Frame-Options"))

	w = api.do(t, http.MethodGet, "/api/terms/"+token+"/verify", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var v dto.VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.True(t, v.Valid)

	w = api.do(t, http.MethodGet, "/api/terms/"+token, signerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.TermResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "3000.00", detail.Total)
	assert.Equal(t, "Usado", detail.Items[1].DeliveryCondition)
}

func TestSignRejectsMissingField(t *testing.T) {
	api := newTestAPI(t)
	token := api.draftAndSend(t, api.login(t, "admin"))

	req := completeSignRequest()
	req.RG = " "
	w := api.do(t, http.MethodPost, "/api/terms/"+token+"/sign", api.login(t, "ana.silva"), req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rg", resp.Field)
}

func TestSignRejectsBadConditionKey(t *testing.T) {
	api := newTestAPI(t)
	token := api.draftAndSend(t, api.login(t, "admin"))

	req := completeSignRequest()
	req.Conditions = map[string]string{"notebook": "Usado"}
	w := api.do(t, http.MethodPost, "/api/terms/"+token+"/sign", api.login(t, "ana.silva"), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOtherEmployeeIsForbidden(t *testing.T) {
	api := newTestAPI(t)
	token := api.draftAndSend(t, api.login(t, "admin"))
	otherToken := api.login(t, "bruno")

	for _, path := range []string{"/api/terms/" + token, "/api/terms/" + token + "/sign", "/api/terms/" + token + "/preview"} {
		w := api.do(t, http.MethodGet, path, otherToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
	w := api.do(t, http.MethodPost, "/api/terms/"+token+"/sign", otherToken, completeSignRequest())
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admin-only routes
	w = api.do(t, http.MethodPut, "/api/terms/"+token+"/cancel", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPreviewIsInline(t *testing.T) {
	api := newTestAPI(t)
	token := api.draftAndSend(t, api.login(t, "admin"))

	w := api.do(t, http.MethodGet, "/api/terms/"+token+"/preview", api.login(t, "ana.silva"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "markup", w.Header().Get("X-Render-Strategy"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestDownloadNameIsQuotedForAnySignerName(t *testing.T) {
	for _, name := range []string{`Ana "Ninha"`, "João"} {
		t.Run(name, func(t *testing.T) {
			api := newTestAPI(t)
			require.NoError(t, api.repo.DB().Model(&ds.User{}).
				Where("id = ?", api.signer.ID).
				Updates(map[string]interface{}{"first_name": name, "last_name": "Silva"}).Error)

			signerToken := api.login(t, "ana.silva")
			token := api.draftAndSend(t, api.login(t, "admin"))
			w := api.do(t, http.MethodPost, "/api/terms/"+token+"/sign", signerToken, completeSignRequest())
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = api.do(t, http.MethodGet, "/api/terms/"+token+"/download", signerToken, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
			require.NoError(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, storage.FileNameFor(token, name+" Silva"), params["filename"])
		})
	}
}

func TestDownloadUnsignedIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	token := api.draftAndSend(t, api.login(t, "admin"))

	w := api.do(t, http.MethodGet, "/api/terms/"+token+"/download", api.login(t, "ana.silva"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeclineAndCancel(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.login(t, "admin")
	signerToken := api.login(t, "ana.silva")

	declined := api.draftAndSend(t, adminToken)
	w := api.do(t, http.MethodPut, "/api/terms/"+declined+"/decline", signerToken, dto.ReasonRequest{Reason: "Equipamento errado"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var term dto.TermResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &term))
	assert.Equal(t, string(ds.TermDeclined), term.Status)
	assert.Contains(t, term.Notes, "Recusado: Equipamento errado")

	w = api.do(t, http.MethodPost, "/api/terms/"+declined+"/sign", signerToken, completeSignRequest())
	assert.Equal(t, http.StatusConflict, w.Code)

	cancelled := api.draftAndSend(t, adminToken)
	w = api.do(t, http.MethodPut, "/api/terms/"+cancelled+"/cancel", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(t, http.MethodPut, "/api/terms/"+cancelled+"/cancel", adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginAndLogout(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: "ana.silva", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: "ninguem", Password: "s3nha"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := api.login(t, "ana.silva")
	w = api.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "ana.silva", user.Login)
	assert.Equal(t, "employee", user.Role)

	w = api.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, api.revoker.revoked, token)
}

func TestEquipmentAndTemplates(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.login(t, "admin")

	w := api.do(t, http.MethodPost, "/api/equipment", adminToken, dto.CreateEquipmentRequest{
		Category: "MONITOR", Make: "LG", Model: "24MK", SerialNumber: "SN-300",
		Value: decimal.RequireFromString("899.90"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var unit dto.EquipmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unit))
	assert.Equal(t, "899.90", unit.Value)
	assert.Equal(t, string(ds.EquipmentAvailable), unit.Status)

	w = api.do(t, http.MethodPost, "/api/equipment", adminToken, dto.CreateEquipmentRequest{
		Category: "MONITOR", Make: "LG", Model: "24MK", SerialNumber: "SN-300",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodGet, "/api/equipment?status=QUEBRADO", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	inactive := false
	w = api.do(t, http.MethodPost, "/api/templates", adminToken, dto.CreateTemplateRequest{Title: "Antigo", Version: "0.9", Active: &inactive})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/templates", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var templates []dto.TemplateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, api.tpl.ID, templates[0].ID)

	w = api.do(t, http.MethodGet, "/api/equipment", api.login(t, "ana.silva"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNotesAndReturn(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.login(t, "admin")
	token := api.draftAndSend(t, adminToken)
	unit := strconv.FormatUint(uint64(api.units[0].ID), 10)

	w := api.do(t, http.MethodPut, "/api/terms/"+token+"/items/"+unit+"/return", adminToken, dto.ReturnRequest{Condition: "Bom"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodPost, "/api/terms/"+token+"/sign", api.login(t, "ana.silva"), completeSignRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(t, http.MethodPut, "/api/terms/"+token+"/notes", adminToken, dto.NoteRequest{Note: "Entregue em mãos"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var term dto.TermResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &term))
	assert.Contains(t, term.Notes, "Assinatura eletrônica registrada")
	assert.Contains(t, term.Notes, "Entregue em mãos")

	w = api.do(t, http.MethodPut, "/api/terms/"+token+"/items/"+unit+"/return", adminToken, dto.ReturnRequest{Condition: "Bom"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &term))
	require.NotNil(t, term.Items[0].ReturnedOn)
	assert.Equal(t, "Bom", term.Items[0].ReturnCondition)
	assert.Nil(t, term.Items[1].ReturnedOn)

	w = api.do(t, http.MethodPut, "/api/terms/"+token+"/items/abc/return", adminToken, dto.ReturnRequest{Condition: "Bom"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditDraftTerm(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.login(t, "admin")

	w := api.do(t, http.MethodPost, "/api/terms", adminToken, dto.CreateTermRequest{
		SignerID: api.signer.ID, TemplateID: api.tpl.ID, EquipmentIDs: []uint{api.units[0].ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var term dto.TermResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &term))

	notes := "Entrega na sede"
	w = api.do(t, http.MethodPut, "/api/terms/"+term.Token, adminToken, dto.UpdateTermRequest{
		SignerID:     &api.other.ID,
		EquipmentIDs: []uint{api.units[0].ID, api.units[1].ID},
		Notes:        &notes,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var edited dto.TermResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edited))
	assert.Equal(t, api.other.ID, edited.SignerID)
	assert.Equal(t, "Bruno Costa", edited.SignerName)
	assert.Equal(t, notes, edited.Notes)
	assert.Len(t, edited.Items, 2)
	assert.Equal(t, "3000.00", edited.Total)

	w = api.do(t, http.MethodPut, "/api/terms/"+term.Token, adminToken, dto.UpdateTermRequest{EquipmentIDs: []uint{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPut, "/api/terms/"+term.Token, api.login(t, "bruno"), dto.UpdateTermRequest{Notes: &notes})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPut, "/api/terms/"+term.Token+"/send", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = api.do(t, http.MethodPut, "/api/terms/"+term.Token, adminToken, dto.UpdateTermRequest{Notes: &notes})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEquipmentAndTemplateDetail(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.login(t, "admin")
	unitPath := "/api/equipment/" + strconv.FormatUint(uint64(api.units[0].ID), 10)

	w := api.do(t, http.MethodGet, unitPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var unit dto.EquipmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unit))
	assert.Equal(t, "SN-100", unit.SerialNumber)

	w = api.do(t, http.MethodPut, unitPath, adminToken, dto.UpdateEquipmentRequest{
		Category: "NOTEBOOK", Make: "Dell", Model: "Latitude 7420", SerialNumber: "SN-100",
		Value: decimal.RequireFromString("2100.00"), Status: "MANUTENCAO", Notes: "Bateria",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unit))
	assert.Equal(t, "Latitude 7420", unit.Model)
	assert.Equal(t, "2100.00", unit.Value)
	assert.Equal(t, string(ds.EquipmentMaintenance), unit.Status)
	assert.Equal(t, "Bateria", unit.Notes)

	w = api.do(t, http.MethodPut, unitPath, adminToken, dto.UpdateEquipmentRequest{
		Category: "NOTEBOOK", Make: "Dell", Model: "Latitude", SerialNumber: "SN-200",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodGet, "/api/equipment/9999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	tplPath := "/api/templates/" + strconv.FormatUint(uint64(api.tpl.ID), 10)
	w = api.do(t, http.MethodGet, tplPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tpl dto.TemplateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tpl))
	assert.Equal(t, api.tpl.Content, tpl.Content)

	w = api.do(t, http.MethodPut, tplPath, adminToken, dto.UpdateTemplateRequest{
		Title: "Termo de Responsabilidade", Version: "1.1", Content: "<p>Nova redação.</p>", Active: true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tpl))
	assert.Equal(t, "1.1", tpl.Version)
	assert.Equal(t, "<p>Nova redação.</p>", tpl.Content)

	w = api.do(t, http.MethodPut, tplPath, adminToken, dto.UpdateTemplateRequest{Title: "Sem versão"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, tplPath, api.login(t, "ana.silva"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserManagement(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.login(t, "admin")

	w := api.do(t, http.MethodPost, "/api/users", adminToken, dto.UserRequest{
		Login: "diego", Password: "s3nha", FirstName: "Diego", LastName: "Reis", Email: "diego@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Diego Reis", created.FullName)
	assert.Equal(t, "employee", created.Role)

	// the new account can log in with the password it was given
	api.login(t, "diego")

	w = api.do(t, http.MethodPost, "/api/users", adminToken, dto.UserRequest{Login: "diego", Password: "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodPost, "/api/users", adminToken, dto.UserRequest{Login: "sem.senha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/users", adminToken, dto.UserRequest{Login: "x", Password: "x", Role: "root"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 4, list.Total)

	userPath := "/api/users/" + strconv.FormatUint(uint64(created.ID), 10)
	w = api.do(t, http.MethodPut, userPath, adminToken, dto.UserRequest{
		Login: "diego", FirstName: "Diego", LastName: "Reis", Role: "admin",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "admin", updated.Role)
	api.login(t, "diego")

	w = api.do(t, http.MethodGet, userPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/users", api.login(t, "ana.silva"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateOwnProfile(t *testing.T) {
	api := newTestAPI(t)
	signerToken := api.login(t, "ana.silva")

	w := api.do(t, http.MethodPut, "/api/auth/profile", signerToken, dto.ContactRequest{
		FirstName: "Ana", LastName: "Souza", Email: "ana@example.com", City: "Londrina", State: "PR",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, api.signer.ID, user.ID)
	assert.Equal(t, "Ana Souza", user.FullName)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "Londrina", user.Profile.City)
	assert.Equal(t, role.Employee.String(), user.Role)

	w = api.do(t, http.MethodPut, "/api/auth/profile", signerToken, dto.ContactRequest{Email: "nao-e-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPut, "/api/auth/profile", "", dto.ContactRequest{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
