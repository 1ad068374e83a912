package rendering

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CompilationTimeout is the maximum time to wait for one pdflatex pass
	CompilationTimeout = 60 * time.Second

	maxDiagnosticLines = 5
)

// CompilePDF writes texSource into a disposable working directory, runs
// pdflatex twice (second pass resolves references), and returns the PDF
// bytes. The directory is removed regardless of outcome, so concurrent
// compilations never share state.
func CompilePDF(ctx context.Context, texSource string) ([]byte, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, &RenderError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	workDir, err := os.MkdirTemp("", "resume-build-*")
	if err != nil {
		return nil, &RenderError{Message: "failed to create build directory", Cause: err}
	}
	defer os.RemoveAll(workDir)

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0644); err != nil {
		return nil, &RenderError{Message: "failed to write LaTeX source", Cause: err}
	}

	var runErr error
	for pass := 0; pass < 2; pass++ {
		passCtx, cancel := context.WithTimeout(ctx, CompilationTimeout)
		// Use -interaction=nonstopmode to prevent interactive prompts
		cmd := exec.CommandContext(passCtx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)
		cmd.Dir = workDir
		runErr = cmd.Run()
		cancel()
	}

	pdfPath := filepath.Join(workDir, "resume.pdf")
	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, &RenderError{
			Message:    "PDF compilation failed",
			Diagnostic: compileDiagnostic(filepath.Join(workDir, "resume.log")),
			Cause:      runErr,
		}
	}

	return pdfBytes, nil
}

// compileDiagnostic pulls the error lines (the ones starting with "!") out
// of a pdflatex log file.
func compileDiagnostic(logPath string) string {
	logContent, err := os.ReadFile(logPath)
	if err != nil {
		return ""
	}

	var errorLines []string
	for _, line := range strings.Split(string(logContent), "\n") {
		if strings.HasPrefix(line, "!") {
			errorLines = append(errorLines, line)
			if len(errorLines) >= maxDiagnosticLines {
				break
			}
		}
	}
	return strings.Join(errorLines, "\n")
}
