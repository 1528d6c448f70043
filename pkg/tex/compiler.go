package tex

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// compileTimeout bounds one pdflatex invocation.
	compileTimeout = 120 * time.Second
	// compilePasses is how many times pdflatex runs per compile; the second
	// pass resolves references and stabilizes the log output.
	compilePasses = 2
	// minPDFSize filters out truncated artifacts from failed runs.
	minPDFSize = 500
)

// ErrToolMissing indicates pdflatex is not installed. Callers degrade to
// returning the raw .tex source instead of failing.
var ErrToolMissing = errors.New("pdflatex not found in PATH (install TeX Live or MiKTeX to generate PDFs)")

// Result describes a successful compilation.
type Result struct {
	PDFPath   string
	PageCount int
}

// Compiler runs pdflatex and reports page counts from its log output.
type Compiler struct {
	outputDir string
}

// NewCompiler creates a compiler writing artifacts into outputDir.
func NewCompiler(outputDir string) (compiler *Compiler) {
	compiler = &Compiler{outputDir: outputDir}
	return compiler
}

// OutputDir returns the directory compiled artifacts land in.
func (c *Compiler) OutputDir() (dir string) {
	dir = c.outputDir
	return dir
}

// Compile compiles texPath into <outputDir>/<jobName>.pdf and reports the
// resulting page count. Returns ErrToolMissing when pdflatex is absent.
func (c *Compiler) Compile(ctx context.Context, texPath, jobName string) (result Result, err error) {
	_, err = exec.LookPath("pdflatex")
	if err != nil {
		err = ErrToolMissing
		return result, err
	}

	err = os.MkdirAll(c.outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", c.outputDir)
		return result, err
	}

	pdfPath := filepath.Join(c.outputDir, jobName+".pdf")

	ctx, cancel := context.WithTimeout(ctx, compileTimeout)
	defer cancel()

	// pdflatex can exit nonzero on warnings while still producing a usable
	// PDF, so the exit code alone does not fail the compile.
	for pass := 0; pass < compilePasses; pass++ {
		cmd := exec.CommandContext(
			ctx,
			"pdflatex",
			"-interaction=nonstopmode",
			"-output-directory="+c.outputDir,
			"-jobname="+jobName,
			texPath,
		)

		var output []byte
		output, err = cmd.CombinedOutput()
		if ctx.Err() != nil {
			err = errors.Wrap(ctx.Err(), "pdflatex timed out")
			return result, err
		}
		if err != nil {
			if usablePDF(pdfPath) {
				err = nil
				continue
			}
			err = errors.Errorf("pdflatex failed: %s", lastLines(string(output), 40))
			return result, err
		}
	}

	if !usablePDF(pdfPath) {
		err = errors.New("pdflatex ran but no PDF was produced")
		return result, err
	}

	result = Result{
		PDFPath:   pdfPath,
		PageCount: c.pageCountFromLog(jobName),
	}
	return result, err
}

// CleanupAux removes pdflatex byproducts for a job, keeping only the PDF.
func (c *Compiler) CleanupAux(jobName string) {
	suffixes := []string{".aux", ".log", ".out", ".fls", ".synctex.gz", ".fdb_latexmk"}
	for _, suffix := range suffixes {
		// Best effort; a missing byproduct is not an error.
		_ = os.Remove(filepath.Join(c.outputDir, jobName+suffix))
	}
}

// pageCountRegex matches the page total pdflatex prints on success.
var pageCountRegex = regexp.MustCompile(`(?i)Output written on .+ \((\d+)\s+page`)

// pageCountFromLog reads the job's .log and returns the page count,
// defaulting to 1 when the log is missing or unreadable.
func (c *Compiler) pageCountFromLog(jobName string) (pages int) {
	pages = 1

	data, err := os.ReadFile(filepath.Join(c.outputDir, jobName+".log"))
	if err != nil {
		return pages
	}

	match := pageCountRegex.FindSubmatch(data)
	if match == nil {
		return pages
	}

	parsed, err := strconv.Atoi(string(match[1]))
	if err == nil && parsed > 0 {
		pages = parsed
	}
	return pages
}

// usablePDF reports whether a non-truncated PDF exists at path.
func usablePDF(path string) (ok bool) {
	info, err := os.Stat(path)
	ok = err == nil && info.Size() > minPDFSize
	return ok
}

// lastLines returns the trailing n lines of s.
func lastLines(s string, n int) (tail string) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	tail = strings.Join(lines, "\n")
	return tail
}
