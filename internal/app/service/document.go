package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"custody/internal/app/apperr"
	"custody/internal/app/ds"
	"custody/internal/app/render"
	"custody/internal/app/storage"

	"github.com/sirupsen/logrus"
)

// Document is a stored artifact ready to be served as an attachment.
type Document struct {
	FileName string
	Data     []byte
}

// Verification compares the stored signature hash with one recomputed from the committed fields.
type Verification struct {
	Token       string
	HashVersion string
	Stored      string
	Computed    string
	Valid       bool
}

// snapshot expects term to carry its Signer and Template.
func (s *Service) snapshot(ctx context.Context, term *ds.Term) (render.Snapshot, error) {
	items, err := s.repo.ItemsFor(ctx, term.ID)
	if err != nil {
		return render.Snapshot{}, err
	}
	return render.NewSnapshot(term, &term.Signer, &term.Template, items), nil
}

// RenderAndStore renders committed state, stores the bytes and records the artifact reference.
func (s *Service) RenderAndStore(ctx context.Context, term *ds.Term) (string, error) {
	snap, err := s.snapshot(ctx, term)
	if err != nil {
		return "", err
	}

	data, strategy, err := s.renderer.Render(ctx, snap)
	if err != nil {
		return "", err
	}

	ref, err := s.artifacts.Store(ctx, term.Token, data)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetArtifactRef(ctx, term.ID, ref); err != nil {
		return "", &apperr.StorageError{Op: "record artifact", Err: err}
	}
	term.ArtifactRef = &ref

	s.log.WithFields(logrus.Fields{
		"term":     term.Token,
		"strategy": strategy,
		"bytes":    len(data),
	}).Info("document stored")
	return ref, nil
}

// Preview renders the current state into w. Unsigned terms show placeholder evidence.
// Nothing is stored and no record is written.
func (s *Service) Preview(ctx context.Context, token string, actor Actor, w io.Writer) (render.Strategy, error) {
	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return "", err
	}
	if !canAccess(term, actor) {
		return "", fmt.Errorf("preview of %s: %w", token, apperr.ErrPermission)
	}

	snap, err := s.snapshot(ctx, term)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderTo(ctx, snap, w)
}

// Download returns the signed document. A missing artifact is regenerated from committed
// state and read back once.
func (s *Service) Download(ctx context.Context, token string, actor Actor) (*Document, error) {
	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !canAccess(term, actor) {
		return nil, fmt.Errorf("download of %s: %w", token, apperr.ErrPermission)
	}
	if !term.IsSigned() {
		return nil, fmt.Errorf("term %s has no signed document: %w", token, apperr.ErrNotFound)
	}

	doc := &Document{FileName: storage.FileNameFor(term.Token, term.Signer.FullName())}

	if term.HasArtifact() {
		data, err := s.artifacts.Retrieve(ctx, *term.ArtifactRef)
		if err == nil {
			doc.Data = data
			return doc, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		s.log.WithField("term", token).Warn("artifact missing from store, regenerating")
	}

	ref, err := s.RenderAndStore(ctx, term)
	if err != nil {
		return nil, err
	}
	data, err := s.artifacts.Retrieve(ctx, ref)
	if err != nil {
		return nil, err
	}
	doc.Data = data
	return doc, nil
}

// Rerender regenerates the document of a signed term, overwriting the stored one.
func (s *Service) Rerender(ctx context.Context, token string) (string, error) {
	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return "", err
	}
	if !term.IsSigned() {
		return "", fmt.Errorf("term %s is %s: %w", token, term.Status, apperr.ErrInvalidTransition)
	}
	return s.RenderAndStore(ctx, term)
}

func (s *Service) Verify(ctx context.Context, token string) (*Verification, error) {
	term, err := s.repo.GetTermByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !term.IsSigned() || term.SignedAt == nil {
		return nil, fmt.Errorf("term %s is %s: %w", token, term.Status, apperr.ErrInvalidTransition)
	}

	v := &Verification{
		Token:       term.Token,
		HashVersion: term.HashVersion,
		Stored:      term.SignatureHash,
	}
	if term.HashVersion != HashVersion {
		return v, nil
	}

	address := ""
	if term.SignatureIP != nil {
		address = *term.SignatureIP
	}
	v.Computed = SignatureHash(term.Token, term.Signer.Login, *term.SignedAt, address)
	v.Valid = v.Computed == v.Stored
	return v, nil
}

// Sweep renders up to limit signed terms that have no stored document. Failures are
// logged and joined; the rest of the batch still runs.
func (s *Service) Sweep(ctx context.Context, limit int) (int, error) {
	pending, err := s.repo.ListSignedWithoutArtifact(ctx, limit)
	if err != nil {
		return 0, err
	}

	var errs []error
	rendered := 0
	for _, t := range pending {
		if err := s.repo.MarkRenderAttempt(ctx, t.ID, s.now()); err != nil {
			return rendered, err
		}
		if _, err := s.Rerender(ctx, t.Token); err != nil {
			s.log.WithFields(logrus.Fields{"term": t.Token, "error": err}).Error("sweep render failed")
			errs = append(errs, err)
			continue
		}
		rendered++
	}
	return rendered, errors.Join(errs...)
}
