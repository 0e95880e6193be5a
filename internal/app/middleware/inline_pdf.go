package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// InlinePDFHeaders hardens every PDF served inline: no caching and same-origin framing only.
// It inspects the response headers when the body is first written, so handlers only set
// Content-Type and Content-Disposition.
func InlinePDFHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &inlinePDFWriter{ResponseWriter: c.Writer}
		c.Next()
	}
}

type inlinePDFWriter struct {
	gin.ResponseWriter
	applied bool
}

func (w *inlinePDFWriter) apply() {
	if w.applied {
		return
	}
	w.applied = true

	h := w.Header()
	if !strings.HasPrefix(h.Get("Content-Type"), "application/pdf") {
		return
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(h.Get("Content-Disposition"))), "inline") {
		return
	}

	h.Set("X-Frame-Options", "SAMEORIGIN")
	h.Set("Content-Security-Policy", "frame-ancestors 'self'")
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

// gin's WriteHeader only records the status, so headers are still open until one of these.

func (w *inlinePDFWriter) WriteHeaderNow() {
	w.apply()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *inlinePDFWriter) Write(data []byte) (int, error) {
	w.apply()
	return w.ResponseWriter.Write(data)
}

func (w *inlinePDFWriter) WriteString(s string) (int, error) {
	w.apply()
	return w.ResponseWriter.WriteString(s)
}

func (w *inlinePDFWriter) Flush() {
	w.apply()
	w.ResponseWriter.Flush()
}
