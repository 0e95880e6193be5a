package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/render"
	"custody/internal/app/repository"
	"custody/internal/app/role"
	"custody/internal/app/storage"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2025, 3, 10, 15, 4, 5, 123456789, time.UTC)

type testEnv struct {
	svc      *Service
	repo     *repository.Repository
	fs       afero.Fs
	store    *storage.FileStore
	renderer *render.Renderer

	admin  *ds.User
	signer *ds.User
	other  *ds.User
	tpl    *ds.DocumentTemplate
	units  []ds.Equipment
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "service_test.db"))
	require.NoError(t, err)

	f, err := render.NewFormatter(render.DefaultTimezone)
	require.NoError(t, err)

	env := &testEnv{
		repo:     repo,
		fs:       afero.NewMemMapFs(),
		renderer: render.NewRenderer(render.Options{Formatter: f, Logger: quietLogger()}),
	}
	env.store = storage.NewFileStore(env.fs, "")
	env.svc = env.service(env.renderer)

	env.admin, err = repo.CreateUser(ctx, "admin", "hash", "Carla", "Admin", role.Admin)
	require.NoError(t, err)
	env.signer, err = repo.CreateUser(ctx, "ana.silva", "hash", "Ana", "Silva", role.Employee)
	require.NoError(t, err)
	env.other, err = repo.CreateUser(ctx, "bruno", "hash", "Bruno", "Costa", role.Employee)
	require.NoError(t, err)

	env.tpl = &ds.DocumentTemplate{Title: "Termo de Responsabilidade", Version: "1.0",
		Content: "<p>Declaro ter recebido os equipamentos.</p>", Active: true}
	require.NoError(t, env.svc.CreateTemplate(ctx, env.tpl))

	for i, v := range []string{"1500.00", "300.50"} {
		e := ds.Equipment{
			Category:     ds.CategoryNotebook,
			Make:         "Dell",
			Model:        "Latitude",
			SerialNumber: []string{"SN-100", "SN-200"}[i],
			Value:        decimal.RequireFromString(v),
		}
		require.NoError(t, env.svc.CreateEquipment(ctx, &e))
		env.units = append(env.units, e)
	}
	return env
}

// service builds another Service over the same database and store.
func (e *testEnv) service(r Renderer) *Service {
	return New(Options{
		Repository: e.repo,
		Renderer:   r,
		Artifacts:  e.store,
		Templates:  e.store,
		Logger:     quietLogger(),
		Now:        func() time.Time { return testClock },
	})
}

func (e *testEnv) draft(t *testing.T) *ds.Term {
	t.Helper()
	term, err := e.svc.CreateDraft(context.Background(), DraftRequest{
		SignerID:     e.signer.ID,
		TemplateID:   e.tpl.ID,
		EquipmentIDs: []uint{e.units[0].ID, e.units[1].ID},
	})
	require.NoError(t, err)
	return term
}

func (e *testEnv) sentTerm(t *testing.T) *ds.Term {
	t.Helper()
	term, err := e.svc.Send(context.Background(), e.draft(t).Token)
	require.NoError(t, err)
	return term
}

func (e *testEnv) reload(t *testing.T, token string) *ds.Term {
	t.Helper()
	term, err := e.repo.GetTermByToken(context.Background(), token)
	require.NoError(t, err)
	return term
}

func actorOf(u *ds.User) Actor { return Actor{UserID: u.ID, Role: u.Role} }

func completeSubmission() Submission {
	return Submission{Profile: ds.Profile{
		CPF:          "111.222.333-44",
		RG:           "12.345.678-9",
		Street:       "Rua das Flores",
		Number:       "10",
		Neighborhood: "Centro",
		City:         "Campinas",
		State:        "SP",
		PostalCode:   "13000-000",
	}}
}

type failingRenderer struct{ Renderer }

func (failingRenderer) Render(context.Context, render.Snapshot) ([]byte, render.Strategy, error) {
	return nil, render.StrategyMarkup, &apperr.RenderError{Err: errors.New("layout engine down")}
}
