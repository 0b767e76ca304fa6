// Package widget publishes the standalone rating-widget build so the
// server can serve it.
package widget

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rating-dashboard/infrastructure/logger"
)

const (
	ScriptName    = "rating-widget.js"
	SourceMapName = ScriptName + ".map"
)

// FileResult records what happened to one file.
type FileResult struct {
	Name    string `json:"name"`
	Target  string `json:"target,omitempty"`
	Copied  bool   `json:"copied"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Report is the outcome of a deploy. A failed copy is recorded, not
// returned as an error.
type Report struct {
	PublicDir string       `json:"public_dir"`
	Files     []FileResult `json:"files"`
}

// OK reports whether every attempted copy succeeded.
func (r Report) OK() bool {
	for _, f := range r.Files {
		if f.Error != "" {
			return false
		}
	}
	return true
}

// Deploy copies the script from distDir into publicDir, creating it when
// missing, and the source map too when the build produced one.
func Deploy(distDir, publicDir string) (Report, error) {
	report := Report{PublicDir: publicDir}
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		logger.GetLogger().WithField("error", err).WithField("dir", publicDir).Error("Error while creating public directory")
		return report, fmt.Errorf("failed to create public directory: %w", err)
	}

	report.Files = append(report.Files, copyFile(distDir, publicDir, ScriptName, false))
	report.Files = append(report.Files, copyFile(distDir, publicDir, SourceMapName, true))

	logger.GetLogger().WithField("files", report.Files).Info("Widget deployment complete")
	return report, nil
}

// WriteScript publishes script as the widget build, for deployments
// without a separate build step.
func WriteScript(publicDir string, script []byte) (FileResult, error) {
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return FileResult{Name: ScriptName}, fmt.Errorf("failed to create public directory: %w", err)
	}
	target := filepath.Join(publicDir, ScriptName)
	if err := os.WriteFile(target, script, 0o644); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while writing widget script")
		return FileResult{Name: ScriptName, Target: target, Error: err.Error()}, err
	}
	return FileResult{Name: ScriptName, Target: target, Copied: true}, nil
}

func copyFile(distDir, publicDir, name string, optional bool) FileResult {
	src := filepath.Join(distDir, name)
	dst := filepath.Join(publicDir, name)
	result := FileResult{Name: name, Target: dst}

	if optional {
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			result.Skipped = true
			return result
		}
	}

	if err := copyContents(src, dst); err != nil {
		logger.GetLogger().WithField("error", err).WithField("file", name).Error("Failed to copy widget file")
		result.Error = err.Error()
		return result
	}
	logger.GetLogger().WithField("file", name).Info("Widget file copied to public directory")
	result.Copied = true
	return result
}

func copyContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
