package tailor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/kriti1799/Resume-Builder/pkg/tex"
	"github.com/pkg/errors"
)

// MaxCompileAttempts bounds the compile-and-fit loop. After the budget is
// spent the multi-page artifact is returned as-is, never an error.
const MaxCompileAttempts = 3

// Rewriter is the language-model boundary for the two content stages.
type Rewriter interface {
	Enhance(ctx context.Context, profileJSON []byte, jobDescription string) (enhancedJSON []byte, err error)
	RenderTemplate(ctx context.Context, enhancedJSON []byte, template string) (texSource string, err error)
}

// Compiler is the document-compiler boundary.
type Compiler interface {
	Compile(ctx context.Context, texPath, jobName string) (result tex.Result, err error)
	CleanupAux(jobName string)
	OutputDir() (dir string)
}

// Artifact is the outcome of one tailoring run. PDFPath is empty when the
// compiler is not installed; TexPath always points at the rendered source.
type Artifact struct {
	JobName      string
	EnhancedJSON []byte
	TexSource    string
	TexPath      string
	PDFPath      string
	PageCount    int
	Attempts     int
}

// Pipeline runs enhance, render, and the compile-and-fit loop, strictly in
// that order with no concurrency.
type Pipeline struct {
	rewriter Rewriter
	compiler Compiler
}

// NewPipeline creates a tailoring pipeline.
func NewPipeline(rewriter Rewriter, compiler Compiler) (pipeline *Pipeline) {
	pipeline = &Pipeline{
		rewriter: rewriter,
		compiler: compiler,
	}
	return pipeline
}

// Run tailors a profile to a job description using the template's structure
// and produces a single-page document artifact, best effort.
func (p *Pipeline) Run(ctx context.Context, prof profile.CandidateProfile, jobDescription, template string) (artifact Artifact, err error) {
	// Stage 1: enhance content for the job. Degrades to the source profile
	// on failure, never fails the pipeline.
	enhancedJSON := p.enhance(ctx, prof, jobDescription)

	// Stage 2: fill the template's structural skeleton. Degrades to the
	// bare skeleton on failure.
	texSource := p.render(ctx, enhancedJSON, template)

	artifact = Artifact{
		JobName:      jobName(prof),
		EnhancedJSON: enhancedJSON,
		TexSource:    texSource,
	}

	// Stage 3: compile, measure, tighten, retry.
	err = p.compileAndFit(ctx, &artifact)
	return artifact, err
}

// compileAndFit repeatedly compiles the source, tightening spacing between
// attempts, until the document fits one page or the budget runs out.
func (p *Pipeline) compileAndFit(ctx context.Context, artifact *Artifact) (err error) {
	texPath := filepath.Join(p.compiler.OutputDir(), artifact.JobName+".tex")

	err = os.MkdirAll(p.compiler.OutputDir(), 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", p.compiler.OutputDir())
		return err
	}

	for attempt := 1; attempt <= MaxCompileAttempts; attempt++ {
		artifact.Attempts = attempt

		err = os.WriteFile(texPath, []byte(artifact.TexSource), 0600)
		if err != nil {
			err = errors.Wrapf(err, "failed to write tex source: %s", texPath)
			return err
		}
		artifact.TexPath = texPath

		var result tex.Result
		result, err = p.compiler.Compile(ctx, texPath, artifact.JobName)
		if errors.Is(err, tex.ErrToolMissing) {
			// No compiler installed: hand back the raw source artifact.
			err = nil
			return err
		}
		if err != nil {
			err = errors.Wrapf(err, "compile failed for %s", artifact.JobName)
			return err
		}

		artifact.PDFPath = result.PDFPath
		artifact.PageCount = result.PageCount

		if result.PageCount <= 1 {
			break
		}
		if attempt < MaxCompileAttempts {
			artifact.TexSource = tex.ReduceSpacing(artifact.TexSource)
		}
	}

	p.compiler.CleanupAux(artifact.JobName)
	return err
}

// jobName derives a collision-safe artifact name from the candidate name.
// Concurrent runs for different candidates (or the same one) get distinct
// names so one run's compiler never overwrites another's artifact.
func jobName(prof profile.CandidateProfile) (name string) {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name = "resume_" + prof.SafeName() + "_" + suffix
	return name
}
