package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	pdfContentType  = "application/pdf"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ArtifactStore keeps one rendered document per term, keyed by the term token.
type ArtifactStore interface {
	// Store overwrites any previous artifact of the term and returns its reference.
	Store(ctx context.Context, token string, data []byte) (string, error)
	// Retrieve fails with apperr.ErrNotFound when nothing is stored under ref.
	Retrieve(ctx context.Context, ref string) ([]byte, error)
}

// TemplateStore holds uploaded structured templates.
type TemplateStore interface {
	UploadTemplate(ctx context.Context, templateID uint, data []byte) (string, error)
	Blob(ctx context.Context, key string) ([]byte, error)
}

// ArtifactKey is the storage key of a term's document.
func ArtifactKey(token string) string {
	return "terms/term_" + token + ".pdf"
}

func templateKey(templateID uint) string {
	return fmt.Sprintf("templates/template_%d_%s_%d.docx", templateID, uuid.New().String()[:8], time.Now().Unix())
}

// FileNameFor is the download name: term_<display name, whitespace as _>_<token>.pdf.
func FileNameFor(token, signerDisplayName string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(signerDisplayName))
	return "term_" + name + "_" + token + ".pdf"
}
