package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kriti1799/Resume-Builder/pkg/config"
	"github.com/kriti1799/Resume-Builder/pkg/jd"
	"github.com/kriti1799/Resume-Builder/pkg/llm"
	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/kriti1799/Resume-Builder/pkg/tailor"
	"github.com/kriti1799/Resume-Builder/pkg/tex"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var profilePath string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var templatePath string

//nolint:gochecknoglobals // Cobra boilerplate
var tailorCmd = &cobra.Command{
	Use:   "tailor <jd-file-or-url>",
	Short: "Tailor a profile to a job description and compile a PDF",
	Long: `Tailor a candidate profile to a job description and compile a
one-page resume PDF from the configured LaTeX template.

The job description can be provided as:
- A file path (e.g., jd.txt)
- A URL (e.g., https://example.com/jobs/123)

Example:
  resume-builder tailor jd.txt --profile profile.json
  resume-builder tailor https://example.com/jobs/123 --profile profile.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTailor,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tailorCmd)
	tailorCmd.Flags().StringVar(&profilePath, "profile", "profile.json", "Candidate profile JSON (from 'interview')")
	tailorCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	tailorCmd.Flags().StringVar(&templatePath, "template", "", "LaTeX template file (default from config)")
}

func runTailor(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	jdInput := args[0]

	// Load configuration
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	// Load candidate profile
	var prof profile.CandidateProfile
	prof, err = profile.Load(profilePath)
	if err != nil {
		err = errors.Wrap(err, "failed to load profile")
		return err
	}

	// Fetch job description
	var jobDescription string
	jobDescription, err = fetchAndLogJD(jdInput)
	if err != nil {
		return err
	}

	// Read LaTeX template
	tmplPath := templatePath
	if tmplPath == "" {
		tmplPath = cfg.TemplatePath
	}
	var tmplBytes []byte
	tmplBytes, err = os.ReadFile(tmplPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read template: %s", tmplPath)
		return err
	}

	outDir := outputDir
	if outDir == "" {
		outDir = cfg.Defaults.OutputDir
	}

	client := llm.NewClient(cfg.AnthropicAPIKey, cfg.GetTailoringModel())
	compiler := tex.NewCompiler(outDir)
	pipeline := tailor.NewPipeline(client, compiler)

	// Show spinner during tailoring unless in verbose mode
	var tailorSpinner *spinner
	if !getVerbose() {
		tailorSpinner = newSpinner("Tailoring resume with Claude API...")
		tailorSpinner.start()
	} else {
		fmt.Println("Tailoring resume with Claude API...")
	}

	var artifact tailor.Artifact
	artifact, err = pipeline.Run(ctx, prof, jobDescription, string(tmplBytes))

	if tailorSpinner != nil {
		tailorSpinner.stopSpinner()
	}

	if err != nil {
		err = errors.Wrap(err, "tailoring failed")
		return err
	}

	reportArtifact(artifact)
	return err
}

// reportArtifact prints what the pipeline produced.
func reportArtifact(artifact tailor.Artifact) {
	if artifact.PDFPath == "" {
		fmt.Println("\npdflatex is not installed; LaTeX source saved instead:")
		fmt.Printf("  Source: %s\n", artifact.TexPath)
		return
	}

	fmt.Println("\nTailoring complete!")
	fmt.Printf("  PDF: %s\n", artifact.PDFPath)
	if getVerbose() {
		fmt.Printf("  Source: %s\n", artifact.TexPath)
		fmt.Printf("  Compile attempts: %d\n", artifact.Attempts)
	}
	if artifact.PageCount > 1 {
		fmt.Printf("Warning: resume is %d pages after %d attempts; consider trimming the profile.\n",
			artifact.PageCount, artifact.Attempts)
	}
}

// fetchAndLogJD fetches the job description, falling back to manual paste
// when the URL cannot be scraped.
func fetchAndLogJD(jdInput string) (jobDescription string, err error) {
	if getVerbose() {
		fmt.Printf("Loading job description from: %s\n", jdInput)
	}

	jobDescription, err = jd.Fetch(jdInput)
	if err != nil {
		// If fetching failed, offer to accept manual input
		fmt.Printf("\nWarning: Failed to fetch job description: %v\n", err)
		fmt.Println("This often happens with JavaScript-rendered pages (Lever, Workable, etc.)")
		fmt.Println("\nPlease paste the job description text below.")
		fmt.Println("When finished, press Ctrl+D (Unix/Mac) or Ctrl+Z then Enter (Windows):")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}

		if scanner.Err() != nil {
			err = errors.Wrap(scanner.Err(), "failed to read job description from stdin")
			return jobDescription, err
		}

		jobDescription = strings.TrimSpace(strings.Join(lines, "\n"))
		if jobDescription == "" {
			err = errors.New("no job description provided")
			return jobDescription, err
		}

		fmt.Printf("\nJob description received (%d characters)\n", len(jobDescription))
		err = nil
		return jobDescription, err
	}

	if getVerbose() {
		fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
	}

	return jobDescription, err
}

// spinner provides a simple text-based progress indicator.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line and ensure cursor is at start of new line
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
