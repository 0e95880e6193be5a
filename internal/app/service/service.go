package service

import (
	"context"
	"io"
	"time"

	"custody/internal/app/ds"
	"custody/internal/app/render"
	"custody/internal/app/repository"
	"custody/internal/app/role"
	"custody/internal/app/storage"

	"github.com/sirupsen/logrus"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uint
	Role   role.Role
}

func (a Actor) IsAdmin() bool { return a.Role == role.Admin }

// Renderer is the document pipeline as seen by the services. *render.Renderer implements it.
type Renderer interface {
	Render(ctx context.Context, snap render.Snapshot) ([]byte, render.Strategy, error)
	RenderTo(ctx context.Context, snap render.Snapshot, w io.Writer) (render.Strategy, error)
	Formatter() render.Formatter
}

type Options struct {
	Repository *repository.Repository
	Renderer   Renderer
	Artifacts  storage.ArtifactStore
	Templates  storage.TemplateStore
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

type Service struct {
	repo      *repository.Repository
	renderer  Renderer
	artifacts storage.ArtifactStore
	templates storage.TemplateStore
	log       logrus.FieldLogger
	now       func() time.Time
}

func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		repo:      opts.Repository,
		renderer:  opts.Renderer,
		artifacts: opts.Artifacts,
		templates: opts.Templates,
		log:       opts.Logger,
		now:       opts.Now,
	}
}

// canAccess reports whether the actor is the bound signer or an administrator.
func canAccess(term *ds.Term, actor Actor) bool {
	return actor.IsAdmin() || term.SignerID == actor.UserID
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
