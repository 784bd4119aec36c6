package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/allenday/mtf/internal/config"
	"github.com/allenday/mtf/internal/ux"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an mtf project in the current directory",
	Long: `Initialize an mtf project in the current directory.

Creates:
- .mtf.yaml with the default configuration
- .mtf/registry/ for component descriptors
- plan.xml with a starter work breakdown, unless one already exists`,
	RunE: runInit,
}

// starterPlan is written by init so 'mtf plan outline' works immediately.
const starterPlan = `<plan version="1.0">
  <epic id="getting-started" status="in_progress">
    <description>Replace this with your first initiative</description>
    <story id="first-story" status="in_progress">
      <description>Replace this with a feature slice</description>
      <points>3</points>
      <task id="first-task" status="pending">
        <description>Replace this with a concrete work item</description>
      </task>
      <task id="second-task" status="pending">
        <description>This one waits for the first</description>
        <depends_on>first-task</depends_on>
      </task>
    </story>
  </epic>
</plan>
`

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(config.DefaultFileName); err == nil && !initForce {
		return fmt.Errorf("%s already exists\nUse --force to overwrite it", config.DefaultFileName)
	}

	if err := ux.EnsureMTFDir(); err != nil {
		return ux.FormatError(err, "creating .mtf directory")
	}

	if err := config.Save(config.Default(), config.DefaultFileName); err != nil {
		return ux.FormatError(err, "writing config file")
	}

	defaults := ux.NewPathDefaults()
	wrotePlan := false
	if _, err := os.Stat(defaults.PlanFile()); os.IsNotExist(err) {
		if err := os.WriteFile(defaults.PlanFile(), []byte(starterPlan), 0644); err != nil {
			return ux.FormatError(err, "writing starter plan")
		}
		wrotePlan = true
	}

	fmt.Println("✓ Initialized mtf project")
	fmt.Printf("  %s (configuration)\n", config.DefaultFileName)
	fmt.Printf("  %s (component registry)\n", defaults.RegistryDir())
	if wrotePlan {
		fmt.Printf("  %s (starter work breakdown)\n", defaults.PlanFile())
	}

	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s with your epics, stories, and tasks\n", defaults.PlanFile())
	fmt.Printf("  2. Check it: mtf plan validate\n")
	fmt.Printf("  3. See what is unblocked: mtf plan ready\n")

	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing configuration")

	rootCmd.AddCommand(initCmd)
}
