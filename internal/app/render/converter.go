package render

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Converter turns a populated .docx on disk into a PDF inside outDir and returns its path.
type Converter interface {
	Convert(ctx context.Context, inPath, outDir string) (string, error)
}

// converterWaitDelay bounds how long Convert waits for the output pipes once the
// converter was killed.
const converterWaitDelay = 5 * time.Second

// SofficeConverter shells out to a headless LibreOffice.
type SofficeConverter struct {
	Path    string
	Timeout time.Duration
}

func (c SofficeConverter) Convert(ctx context.Context, inPath, outDir string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// a private profile dir lets several conversions run at once
	profile := "-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(outDir, "lo-profile"))
	cmd := exec.CommandContext(ctx, c.Path, profile, "--headless", "--convert-to", "pdf", "--outdir", outDir, inPath)
	killProcessGroup(cmd)
	cmd.WaitDelay = converterWaitDelay
	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("converter timed out after %s", timeout)
	}
	if err != nil {
		return "", fmt.Errorf("converter: %w: %s", err, strings.TrimSpace(string(output)))
	}

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	return filepath.Join(outDir, base+".pdf"), nil
}

// Capabilities describes which rendering paths the host can run.
type Capabilities struct {
	StructuredDocuments bool
}

// DetectCapabilities checks whether the converter binary is installed.
func DetectCapabilities(converterPath string) Capabilities {
	if converterPath == "" {
		return Capabilities{}
	}
	_, err := exec.LookPath(converterPath)
	return Capabilities{StructuredDocuments: err == nil}
}
