package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kriti1799/Resume-Builder/pkg/config"
	"github.com/kriti1799/Resume-Builder/pkg/llm"
	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/kriti1799/Resume-Builder/pkg/upskill"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var upskillProfilePath string

//nolint:gochecknoglobals // Cobra boilerplate
var planOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var upskillCmd = &cobra.Command{
	Use:   "upskill <target-jd-file-or-url>",
	Short: "Build an upskilling plan toward a target job",
	Long: `Work out a practical upskilling plan toward a target job.

Claude compares your profile against the target job description, asks a
few questions about gaps and learning capacity, then proposes a plan
with a timeline, resources, and checkpoints. Keep answering to refine
the plan; type 'done' to accept it.

Example:
  resume-builder upskill target-jd.txt --profile profile.json`,
	Args: cobra.ExactArgs(1),
	RunE: runUpskill,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(upskillCmd)
	upskillCmd.Flags().StringVar(&upskillProfilePath, "profile", "profile.json", "Candidate profile JSON (from 'interview')")
	upskillCmd.Flags().StringVar(&planOutput, "output", "", "Optional path to save the final plan")
}

func runUpskill(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	// Load configuration
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	// Load candidate profile
	var prof profile.CandidateProfile
	prof, err = profile.Load(upskillProfilePath)
	if err != nil {
		err = errors.Wrap(err, "failed to load profile")
		return err
	}

	// Fetch target job description
	var targetJD string
	targetJD, err = fetchAndLogJD(args[0])
	if err != nil {
		return err
	}

	client := llm.NewClient(cfg.AnthropicAPIKey, cfg.GetTailoringModel())
	agent := upskill.NewAgent(client)

	var question string
	question, err = agent.Start(ctx, prof, targetJD)
	if err != nil {
		err = errors.Wrap(err, "failed to start upskill conversation")
		return err
	}

	fmt.Printf("\n%s\n", question)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			if scanner.Err() != nil {
				err = errors.Wrap(scanner.Err(), "failed to read input")
				return err
			}
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if agent.Stage() == upskill.StageRefinement && strings.EqualFold(input, "done") {
			break
		}

		var reply string
		reply, err = agent.HandleResponse(ctx, input)
		if err != nil {
			err = errors.Wrap(err, "upskill conversation failed")
			return err
		}

		fmt.Printf("\n%s\n", reply)
		if agent.Stage() == upskill.StageRefinement {
			fmt.Println("\n(Reply with feedback to refine the plan, or 'done' to accept it.)")
		}
	}

	if agent.Plan() == "" {
		fmt.Println("\nNo plan was generated.")
		return err
	}

	if planOutput != "" {
		err = os.WriteFile(planOutput, []byte(agent.Plan()), 0600)
		if err != nil {
			err = errors.Wrapf(err, "failed to write plan: %s", planOutput)
			return err
		}
		fmt.Printf("\nPlan saved to %s\n", planOutput)
	}

	return err
}
