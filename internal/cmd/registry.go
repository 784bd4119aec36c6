package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/allenday/mtf/internal/errors"
	"github.com/allenday/mtf/internal/log"
	"github.com/allenday/mtf/internal/registry"
	"github.com/allenday/mtf/internal/tui"
	"github.com/allenday/mtf/internal/ux"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the component registry",
	Long: `Store and look up reusable component descriptors.

Use 'mtf registry new' to register a component.
Use 'mtf registry validate' to check a descriptor file.
Use 'mtf registry list' to see what is registered.
Use 'mtf registry show' to inspect one component.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var registryNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Register a component",
	Long: `Register a component descriptor in the registry.

Without flags this opens an interactive form. With --name and
--description set it runs non-interactively, which suits scripts and CI.`,
	RunE: runRegistryNew,
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a component descriptor file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegistryValidate,
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered components",
	RunE:  runRegistryList,
}

var registryShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one component descriptor",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRegistryShow,
}

var (
	registryDir    string
	newID          string
	newType        string
	newName        string
	newDescription string
	newOutputType  string
	newTags        string
	newDeps        string
	listTag        string
	listFormat     string
	showFormat     string
)

// registryStore opens the store at the --dir flag when set, otherwise at
// the configured directory.
func registryStore() *registry.Store {
	dir := cfg.Registry.Dir
	if registryDir != "" {
		dir = registryDir
	}
	return registry.NewStore(dir)
}

func runRegistryNew(cmd *cobra.Command, args []string) error {
	c := &registry.Component{
		ID:            newID,
		ComponentType: newType,
		Name:          newName,
		Description:   newDescription,
		OutputType:    newOutputType,
		Tags:          tui.SplitList(newTags),
		Dependencies:  tui.ParseDependencies(newDeps),
	}

	if c.Name == "" || c.Description == "" {
		if !tui.ShouldPrompt() {
			return fmt.Errorf("--name and --description are required when running non-interactively")
		}
		if err := tui.RunComponentForm(c); err != nil {
			return err
		}
	}

	if err := registry.ValidateDescriptor(c); err != nil {
		return apperrors.NewDescriptorInvalidError(err)
	}

	store := registryStore()
	if err := store.Add(c); err != nil {
		return apperrors.NewFileWriteError(store.Dir(), err)
	}

	log.DefaultLogger().Debug("registered component",
		"id", c.ID,
		"name", c.Name,
		"registry", store.Dir(),
	)

	fmt.Printf("✓ Registered component %s\n", c.ID)
	fmt.Printf("  %s (%s)\n", c.Name, c.ComponentType)
	if len(c.Tags) > 0 {
		fmt.Printf("  tags: %s\n", strings.Join(c.Tags, ", "))
	}
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Inspect it: mtf registry show %s\n", c.ID)
	fmt.Printf("  2. See everything registered: mtf registry list\n")

	return nil
}

func runRegistryValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.NewFileNotFoundError(path)
		}
		return ux.FormatError(err, "reading descriptor file")
	}

	if err := registry.ValidateDescriptorBytes(data); err != nil {
		fmt.Printf("❌ %v\n", err)
		fmt.Println("\nRecommendations:")
		fmt.Printf("  1. component_type, name, and description are required fields\n")
		fmt.Printf("  2. Fix the fields above and re-run: mtf registry validate %s\n", path)
		return fmt.Errorf("descriptor %s failed validation", path)
	}

	fmt.Printf("✓ %s is a valid component descriptor\n", path)
	return nil
}

func runRegistryList(cmd *cobra.Command, args []string) error {
	store := registryStore()

	var components []*registry.Component
	var err error
	if listTag != "" {
		components, err = store.FindByTag(listTag)
	} else {
		components, err = store.List()
	}
	if err != nil {
		return ux.FormatError(err, "listing components")
	}

	formatter, err := ux.NewFormatter(listFormat, &ux.FormatterOptions{})
	if err != nil {
		return ux.EnhanceError(err)
	}

	if listFormat == "json" || listFormat == "yaml" {
		if components == nil {
			components = []*registry.Component{}
		}
		return formatter.Format(components)
	}

	if len(components) == 0 {
		if listTag != "" {
			fmt.Printf("No components tagged %q\n", listTag)
		} else {
			fmt.Println("No components registered. Run 'mtf registry new' to add one")
		}
		return nil
	}

	for _, c := range components {
		line := fmt.Sprintf("%-36s  %s (%s)", c.ID, c.Name, c.ComponentType)
		if len(c.Tags) > 0 {
			line += "  [" + strings.Join(c.Tags, ", ") + "]"
		}
		fmt.Println(line)
	}
	return nil
}

func runRegistryShow(cmd *cobra.Command, args []string) error {
	store := registryStore()

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		// No id given: offer a picker when a human is attached
		if !tui.ShouldPrompt() {
			return fmt.Errorf("component id is required when running non-interactively")
		}
		components, err := store.List()
		if err != nil {
			return ux.FormatError(err, "listing components")
		}
		if len(components) == 0 {
			return fmt.Errorf("no components registered; run 'mtf registry new' first")
		}
		options := make([]string, len(components))
		for i, c := range components {
			options[i] = c.ID
		}
		id, err = tui.PromptForSelect("Which component?", options)
		if err != nil {
			return err
		}
	}

	c, err := store.Get(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return apperrors.NewComponentNotFoundError(id)
		}
		return ux.FormatError(err, "loading component")
	}

	formatter, err := ux.NewFormatter(showFormat, &ux.FormatterOptions{})
	if err != nil {
		return ux.EnhanceError(err)
	}

	if showFormat == "json" || showFormat == "yaml" {
		return formatter.Format(c)
	}

	printComponent(c)
	return nil
}

// printComponent renders a descriptor as labelled rows
func printComponent(c *registry.Component) {
	fmt.Printf("%-13s %s\n", "ID:", c.ID)
	fmt.Printf("%-13s %s\n", "Name:", c.Name)
	fmt.Printf("%-13s %s\n", "Type:", c.ComponentType)
	fmt.Printf("%-13s %s\n", "Description:", c.Description)
	if c.OutputType != "" {
		fmt.Printf("%-13s %s\n", "Output:", c.OutputType)
	}
	if len(c.Tags) > 0 {
		fmt.Printf("%-13s %s\n", "Tags:", strings.Join(c.Tags, ", "))
	}
	if len(c.Dependencies) > 0 {
		fmt.Println("Dependencies:")
		for _, d := range c.Dependencies {
			if d.Version != "" {
				fmt.Printf("  • %s@%s\n", d.Name, d.Version)
			} else {
				fmt.Printf("  • %s\n", d.Name)
			}
		}
	}
	if len(c.InputParameters) > 0 {
		fmt.Println("Parameters:")
		for _, p := range c.InputParameters {
			fmt.Printf("  • %s (%s) - %s\n", p.Name, p.ParamType, p.Description)
		}
	}
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryNewCmd)
	registryCmd.AddCommand(registryValidateCmd)
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryShowCmd)

	registryCmd.PersistentFlags().StringVar(&registryDir, "dir", "", "registry directory (default from .mtf.yaml)")

	// registry new flags
	registryNewCmd.Flags().StringVar(&newID, "id", "", "component id (generated when empty)")
	registryNewCmd.Flags().StringVar(&newType, "type", "function", "component type (function, class, module)")
	registryNewCmd.Flags().StringVar(&newName, "name", "", "component name")
	registryNewCmd.Flags().StringVar(&newDescription, "description", "", "what the component does")
	registryNewCmd.Flags().StringVar(&newOutputType, "output-type", "", "type of the component's output")
	registryNewCmd.Flags().StringVar(&newTags, "tags", "", "comma separated tags")
	registryNewCmd.Flags().StringVar(&newDeps, "deps", "", "comma separated name@version dependencies")

	// registry list flags
	registryListCmd.Flags().StringVar(&listTag, "tag", "", "only list components with this tag")
	registryListCmd.Flags().StringVarP(&listFormat, "format", "f", "text", "output format (text, json, yaml)")

	// registry show flags
	registryShowCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "output format (text, json, yaml)")
}
