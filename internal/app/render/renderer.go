package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"custody/internal/app/apperr"

	"github.com/sirupsen/logrus"
)

type Strategy string

const (
	StrategyStructured Strategy = "structured"
	StrategyMarkup     Strategy = "markup"
)

// BlobSource reads structured template blobs from template storage.
type BlobSource interface {
	Blob(ctx context.Context, key string) ([]byte, error)
}

type Options struct {
	Capabilities Capabilities
	Blobs        BlobSource
	Converter    Converter
	Formatter    Formatter
	Title        string
	TempDir      string
	Logger       logrus.FieldLogger
}

// Renderer turns snapshots into PDF bytes. It never touches persisted state.
type Renderer struct {
	caps      Capabilities
	blobs     BlobSource
	converter Converter
	format    Formatter
	title     string
	tempDir   string
	log       logrus.FieldLogger
}

func NewRenderer(opts Options) *Renderer {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Formatter.zero() {
		opts.Formatter = defaultFormatter()
	}
	return &Renderer{
		caps:      opts.Capabilities,
		blobs:     opts.Blobs,
		converter: opts.Converter,
		format:    opts.Formatter,
		title:     opts.Title,
		tempDir:   opts.TempDir,
		log:       opts.Logger,
	}
}

func (r *Renderer) Formatter() Formatter { return r.format }

// Render tries the structured template first when the template has one and the host can
// convert it; any failure there falls through to the markup layout. Only a markup failure
// is returned, as *apperr.RenderError.
func (r *Renderer) Render(ctx context.Context, snap Snapshot) ([]byte, Strategy, error) {
	if snap.TemplateBlobKey != "" {
		if r.caps.StructuredDocuments {
			data, err := r.renderStructured(ctx, snap)
			if err == nil {
				return data, StrategyStructured, nil
			}
			r.log.WithFields(logrus.Fields{"term": snap.Token, "error": err}).
				Warn("structured render failed, falling back to markup")
		} else {
			r.log.WithField("term", snap.Token).Debug("structured documents unavailable, using markup")
		}
	}

	var buf bytes.Buffer
	if err := WritePDF(snap.View(r.format, r.title), &buf); err != nil {
		return nil, StrategyMarkup, &apperr.RenderError{Err: err}
	}
	return buf.Bytes(), StrategyMarkup, nil
}

// RenderTo writes the document to w. Used for previews, whose output never reaches the
// artifact store.
func (r *Renderer) RenderTo(ctx context.Context, snap Snapshot, w io.Writer) (Strategy, error) {
	data, strategy, err := r.Render(ctx, snap)
	if err != nil {
		return strategy, err
	}
	if _, err := w.Write(data); err != nil {
		return strategy, fmt.Errorf("write preview: %w", err)
	}
	return strategy, nil
}

func (r *Renderer) renderStructured(ctx context.Context, snap Snapshot) ([]byte, error) {
	if r.blobs == nil || r.converter == nil {
		return nil, errors.New("structured engine not configured")
	}

	blob, err := r.blobs.Blob(ctx, snap.TemplateBlobKey)
	if err != nil {
		return nil, fmt.Errorf("load template blob: %w", err)
	}

	populated, err := PopulateDocx(blob, snap.Placeholders(r.format))
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(r.tempDir, "term-render-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "term_"+snap.Token+".docx")
	if err := os.WriteFile(in, populated, 0o600); err != nil {
		return nil, fmt.Errorf("write populated template: %w", err)
	}

	out, err := r.converter.Convert(ctx, in, dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read converted document: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("converter produced an empty document")
	}
	return data, nil
}
