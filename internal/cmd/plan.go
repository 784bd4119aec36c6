package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/allenday/mtf/internal/errors"
	"github.com/allenday/mtf/internal/log"
	"github.com/allenday/mtf/internal/plan"
	"github.com/allenday/mtf/internal/schema"
	"github.com/allenday/mtf/internal/tui"
	"github.com/allenday/mtf/internal/ux"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Work with plan documents",
	Long: `Build dependency graphs from XML work breakdowns and query them.

Use 'mtf plan validate' to check a document against the schema.
Use 'mtf plan ready' to list tasks whose dependencies are complete.
Use 'mtf plan outline' to print the epic/story/task hierarchy.
Use 'mtf plan mermaid' to render the graph as a mermaid flowchart.
Use 'mtf plan dot' to render the graph as a Graphviz digraph.
Use 'mtf plan fingerprint' to hash the graph for change detection.
Use 'mtf plan browse' to walk the graph in a terminal UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var planValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a plan document against the schema",
	Long: `Validate a plan document for well-formedness and schema conformance.

Checks:
- The document is well-formed XML
- Elements nest as plan > epic > story > task
- Every epic, story, and task carries id and status attributes
- No unexpected elements or attributes appear`,
	RunE: runPlanValidate,
}

var planReadyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List tasks that can start now",
	Long: `List the tasks whose dependencies are all complete.

A task is ready when it is not complete itself and every task it depends
on has status complete. Dependencies on unknown ids count as unmet.
In-progress tasks are reported only with --include-in-progress.`,
	RunE: runPlanReady,
}

var planOutlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Print the plan hierarchy as an indented list",
	RunE:  runPlanOutline,
}

var planMermaidCmd = &cobra.Command{
	Use:   "mermaid",
	Short: "Render the plan graph as a mermaid flowchart",
	Long: `Render the plan graph as a mermaid flowchart.

Containment edges draw solid, dependency edges draw dashed. Paste the
output into any mermaid renderer, for example a GitHub comment.`,
	RunE: runPlanMermaid,
}

var planDotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Render the plan graph as a Graphviz digraph",
	Long: `Render the plan graph in DOT syntax for Graphviz.

Containment edges draw solid, dependency edges draw dashed. Pipe the
output to 'dot -Tsvg' to produce an image.`,
	RunE: runPlanDot,
}

var planFingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Hash the plan graph for change detection",
	Long: `Compute a stable hash of the plan graph.

The hash covers nodes and edges in a canonical order, so reordering
document elements without changing the plan leaves it untouched. Store
it next to generated artifacts to detect when a plan has moved on.`,
	RunE: runPlanFingerprint,
}

var planBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Walk the plan graph in a terminal UI",
	RunE:  runPlanBrowse,
}

var (
	readyIncludeInProgress bool
	readyFormat            string
	outlineStatus          bool
	outlineOut             string
	mermaidDescriptions    bool
	mermaidOut             string
	dotDescriptions        bool
	dotOut                 string
	fingerprintFormat      string
)

// readyReport is the structured payload for json and yaml output
type readyReport struct {
	Plan  string   `json:"plan" yaml:"plan"`
	Count int      `json:"count" yaml:"count"`
	Tasks []string `json:"tasks" yaml:"tasks"`
}

// fingerprintReport is the structured payload for json and yaml output
type fingerprintReport struct {
	Plan        string `json:"plan" yaml:"plan"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

func runPlanValidate(cmd *cobra.Command, args []string) error {
	path := resolvePlanPath(cmd)

	fmt.Printf("Validating plan: %s\n\n", path)

	pg := plan.New()
	err := pg.BuildFromFile(path)
	if err == nil {
		g := pg.Graph()
		fmt.Printf("✓ Plan is valid (%d nodes, %d edges)\n", g.Len(), len(g.Edges()))
		fmt.Println("\nNext steps:")
		fmt.Printf("  1. List unblocked tasks: mtf plan ready\n")
		fmt.Printf("  2. Print the hierarchy: mtf plan outline\n")
		return nil
	}

	// Schema violations get listed one by one; everything else is fatal
	// before validation even starts.
	var serr *schema.Error
	if errors.As(err, &serr) && serr.Kind == schema.SchemaViolation {
		fmt.Printf("❌ Found %d violation(s):\n", len(serr.Reasons))
		for _, reason := range serr.Reasons {
			fmt.Printf("  • %s\n", reason)
		}
		fmt.Println("\nRecommendations:")
		fmt.Printf("  1. Every epic, story, and task needs id and status attributes\n")
		fmt.Printf("  2. Fix the elements above and re-run: mtf plan validate --in %s\n", path)
		return fmt.Errorf("plan %s violates the schema", path)
	}

	return planBuildError(path, err)
}

func runPlanReady(cmd *cobra.Command, args []string) error {
	path := resolvePlanPath(cmd)
	g, err := buildGraph(path)
	if err != nil {
		return err
	}

	req := plan.DefaultReadyTasksRequest()
	req.IncludeInProgress = cfg.Plan.IncludeInProgress
	if cmd.Flags().Changed("include-in-progress") {
		req.IncludeInProgress = readyIncludeInProgress
	}

	tasks, err := g.ReadyTasks(req)
	if err != nil {
		return err
	}

	formatter, err := ux.NewFormatter(readyFormat, &ux.FormatterOptions{})
	if err != nil {
		return ux.EnhanceError(err)
	}

	if readyFormat == "json" || readyFormat == "yaml" {
		if tasks == nil {
			tasks = []string{}
		}
		return formatter.Format(readyReport{
			Plan:  path,
			Count: len(tasks),
			Tasks: tasks,
		})
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks are ready")
		return nil
	}
	return formatter.Format(tasks)
}

func runPlanOutline(cmd *cobra.Command, args []string) error {
	path := resolvePlanPath(cmd)
	g, err := buildGraph(path)
	if err != nil {
		return err
	}

	req := plan.DefaultOutlineRequest()
	req.IncludeStatus = cfg.Plan.Status
	if cmd.Flags().Changed("status") {
		req.IncludeStatus = outlineStatus
	}

	rendered, err := g.Outline(req)
	if err != nil {
		return ux.FormatError(err, "rendering outline")
	}
	return writeRendered(outlineOut, rendered)
}

func runPlanMermaid(cmd *cobra.Command, args []string) error {
	path := resolvePlanPath(cmd)
	g, err := buildGraph(path)
	if err != nil {
		return err
	}

	req := plan.DefaultMermaidRequest()
	req.IncludeDescriptions = cfg.Plan.Descriptions
	if cmd.Flags().Changed("descriptions") {
		req.IncludeDescriptions = mermaidDescriptions
	}

	rendered, err := g.Mermaid(req)
	if err != nil {
		return ux.FormatError(err, "rendering mermaid flowchart")
	}
	return writeRendered(mermaidOut, rendered)
}

func runPlanDot(cmd *cobra.Command, args []string) error {
	path := resolvePlanPath(cmd)
	g, err := buildGraph(path)
	if err != nil {
		return err
	}

	req := plan.DefaultGraphvizRequest()
	req.IncludeDescriptions = cfg.Plan.Descriptions
	if cmd.Flags().Changed("descriptions") {
		req.IncludeDescriptions = dotDescriptions
	}

	rendered, err := g.Graphviz(req)
	if err != nil {
		return ux.FormatError(err, "rendering DOT digraph")
	}
	return writeRendered(dotOut, rendered)
}

func runPlanFingerprint(cmd *cobra.Command, args []string) error {
	path := resolvePlanPath(cmd)
	g, err := buildGraph(path)
	if err != nil {
		return err
	}

	formatter, err := ux.NewFormatter(fingerprintFormat, &ux.FormatterOptions{})
	if err != nil {
		return ux.EnhanceError(err)
	}

	sum, err := g.Fingerprint()
	if err != nil {
		return ux.FormatError(err, "fingerprinting plan graph")
	}

	if fingerprintFormat == "json" || fingerprintFormat == "yaml" {
		return formatter.Format(fingerprintReport{Plan: path, Fingerprint: sum})
	}

	fmt.Println(sum)
	return nil
}

func runPlanBrowse(cmd *cobra.Command, args []string) error {
	if !tui.IsInteractive() {
		return fmt.Errorf("plan browse needs an interactive terminal; try 'mtf plan outline' instead")
	}

	path := resolvePlanPath(cmd)
	g, err := buildGraph(path)
	if err != nil {
		return err
	}

	return tui.RunBrowse(g)
}

// resolvePlanPath picks the plan document: the --in flag when set,
// otherwise the configured plan file.
func resolvePlanPath(cmd *cobra.Command) string {
	if cmd.Flags().Changed("in") {
		return cmd.Flags().Lookup("in").Value.String()
	}
	if cfg.Plan.File != "" {
		return cfg.Plan.File
	}
	return ux.NewPathDefaults().PlanFile()
}

// buildGraph builds the dependency graph from the document at path,
// mapping build failures onto coded errors.
func buildGraph(path string) (*plan.Graph, error) {
	if err := ux.ValidateRequiredFile(path, "Plan file", "mtf init"); err != nil {
		return nil, err
	}

	pg := plan.New()
	if err := pg.BuildFromFile(path); err != nil {
		return nil, planBuildError(path, err)
	}

	g := pg.Graph()
	log.DefaultLogger().Debug("built plan graph",
		"path", path,
		"nodes", g.Len(),
		"edges", len(g.Edges()),
	)
	return g, nil
}

// planBuildError maps a build failure onto the matching coded error
func planBuildError(path string, err error) error {
	var berr *plan.BuildError
	if !errors.As(err, &berr) {
		return ux.FormatError(err, "building plan graph")
	}

	switch berr.Kind {
	case schema.IOFailure:
		if errors.Is(berr.Cause, fs.ErrNotExist) {
			return apperrors.NewPlanNotFoundError(path)
		}
		return apperrors.NewPlanBuildError(path, berr.Cause)
	case schema.MalformedDocument:
		return apperrors.NewPlanMalformedError(path, berr.Cause)
	case schema.SchemaViolation:
		return apperrors.NewPlanSchemaError(path, berr.Cause)
	}
	return apperrors.NewPlanBuildError(path, err)
}

// writeRendered prints content to stdout, or writes it to outPath when set
func writeRendered(outPath, content string) error {
	if outPath == "" {
		fmt.Println(content)
		return nil
	}

	if err := os.WriteFile(outPath, []byte(content+"\n"), 0644); err != nil {
		return apperrors.NewFileWriteError(outPath, err)
	}
	fmt.Printf("✓ Wrote %s\n", outPath)
	return nil
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planValidateCmd)
	planCmd.AddCommand(planReadyCmd)
	planCmd.AddCommand(planOutlineCmd)
	planCmd.AddCommand(planMermaidCmd)
	planCmd.AddCommand(planDotCmd)
	planCmd.AddCommand(planFingerprintCmd)
	planCmd.AddCommand(planBrowseCmd)

	// Every plan subcommand reads the same document
	for _, sub := range []*cobra.Command{
		planValidateCmd, planReadyCmd, planOutlineCmd,
		planMermaidCmd, planDotCmd, planFingerprintCmd, planBrowseCmd,
	} {
		sub.Flags().StringP("in", "i", "plan.xml", "plan document to read")
	}

	// plan ready flags
	planReadyCmd.Flags().BoolVar(&readyIncludeInProgress, "include-in-progress", false, "also list tasks already in progress")
	planReadyCmd.Flags().StringVarP(&readyFormat, "format", "f", "text", "output format (text, json, yaml)")

	// plan outline flags
	planOutlineCmd.Flags().BoolVar(&outlineStatus, "status", true, "append each node's status")
	planOutlineCmd.Flags().StringVarP(&outlineOut, "out", "o", "", "write output to file instead of stdout")

	// plan mermaid flags
	planMermaidCmd.Flags().BoolVar(&mermaidDescriptions, "descriptions", true, "attach node descriptions as labels")
	planMermaidCmd.Flags().StringVarP(&mermaidOut, "out", "o", "", "write output to file instead of stdout")

	// plan dot flags
	planDotCmd.Flags().BoolVar(&dotDescriptions, "descriptions", true, "attach node descriptions as labels")
	planDotCmd.Flags().StringVarP(&dotOut, "out", "o", "", "write output to file instead of stdout")

	// plan fingerprint flags
	planFingerprintCmd.Flags().StringVarP(&fingerprintFormat, "format", "f", "text", "output format (text, json, yaml)")
}
