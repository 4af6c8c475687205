package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/logging"
	"github.com/quorumhq/quorum/internal/research"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Run one research question from the terminal",
	Long: `Ask runs the full research pipeline for a single question and prints
the synthesized report.

The question is decomposed into sub-questions, every configured engine
researches the combined prompt concurrently, and the answers are
synthesized into one report that calls out consensus and disagreement.

Examples:
  # Ask directly
  quorum ask "What causes tidal locking?"

  # Prompt interactively
  quorum ask

  # Include every engine's raw output
  quorum ask --show-raw "What causes tidal locking?"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

var askShowRaw bool

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askShowRaw, "show-raw", false, "Print each engine's raw output after the report")
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

func runAsk(cmd *cobra.Command, args []string) error {
	var question string
	if len(args) > 0 {
		question = strings.TrimSpace(args[0])
	} else {
		var err error
		question, err = promptQuestion()
		if err != nil {
			return err
		}
	}
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(os.Stderr, logging.LevelWarn)
	pipeline, err := buildPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	fmt.Println(mutedStyle.Render(fmt.Sprintf("Researching across %d engines...", len(pipeline.Engines()))))

	result, err := pipeline.Run(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	printResult(question, result)
	return nil
}

// promptQuestion reads the question interactively. It requires a terminal;
// piping an empty stdin should fail rather than hang.
func promptQuestion() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no question given and stdin is not a terminal")
	}

	fmt.Println("\nQuorum Research")
	fmt.Println("===============")
	fmt.Println("Enter a research question. It will be decomposed, researched by")
	fmt.Println("every configured engine, and synthesized into one report.")
	fmt.Println()
	fmt.Print("Question: ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(input), nil
}

func printResult(question string, result *research.Result) {
	fmt.Println()
	fmt.Println(titleStyle.Render(question))
	fmt.Println()

	fmt.Println(sectionStyle.Render("Sub-questions"))
	for i, sq := range result.SubQuestions {
		fmt.Printf("  %d. %s\n", i+1, sq)
	}
	fmt.Println()

	sections := []struct {
		title string
		body  string
	}{
		{"Executive Summary", result.ExecutiveSummary},
		{"Key Findings", result.KeyFindings},
		{"Tool Comparison", result.ToolComparison},
		{"Risks & Uncertainties", result.RisksUncertainties},
		{"Recommendations", result.Recommendations},
	}
	for _, s := range sections {
		fmt.Println(sectionStyle.Render(s.title))
		fmt.Println(s.body)
		fmt.Println()
	}

	if result.FullSynthesisRaw != "" {
		fmt.Println(noticeStyle.Render("The synthesis was not structured; full raw text follows."))
		fmt.Println(result.FullSynthesisRaw)
		fmt.Println()
	}

	if askShowRaw {
		fmt.Println(titleStyle.Render("Engine outputs"))
		ids := make([]string, 0, len(result.ToolResponses))
		for id := range result.ToolResponses {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Println()
			fmt.Println(sectionStyle.Render(id))
			fmt.Println(result.ToolResponses[id])
		}
	}
}
