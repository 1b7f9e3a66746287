package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vvka-141/tvload/internal/scaffold"
	"github.com/vvka-141/tvload/internal/tui"
	"github.com/vvka-141/tvload/internal/tui/components"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Initialize a new tvload project",
	Long: `Initialize a tvload project into the specified directory.

The init command initializes a tvload project with:
- A sample channel listings file
- tvload.yaml with connection and load settings
- README with usage instructions

Target directory must be empty or non-existent.

Examples:
  tvload init .                    # Initialize in current directory
  tvload init ./mychannels         # Initialize in ./mychannels
  tvload init /absolute/path       # Initialize at absolute path

Available templates:
  basic    - Single listings file next to tvload.yaml
  advanced - listings/ directory with per-provider files

Use 'tvload templates list' to see all available templates with descriptions.`,
	Args: cobra.MinimumNArgs(0),
	RunE: runInit,
}

var (
	initTemplate string
	initList     bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.ValidArgsFunction = completeDirectories

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "basic", "Template to use (basic, advanced)")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates")

	// Flag completion sees any positional args already typed; ignore them.
	_ = initCmd.RegisterFlagCompletionFunc("template",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeTemplateNames(cmd, nil, toComplete)
		})
}

func runInit(cmd *cobra.Command, args []string) error {
	// Handle --list flag
	if initList {
		return runTemplatesList(cmd, args)
	}

	// Require target path if not listing
	if len(args) == 0 {
		return fmt.Errorf("target path required\n\nUsage: tvload init <target_path> [flags]\n\nExamples:\n  tvload init .            # Current directory\n  tvload init ./mychannels # Subdirectory\n\nUse 'tvload init --list' to see available templates")
	}

	targetPath := args[0]

	// Determine project name from target path
	projectName := filepath.Base(targetPath)
	if projectName == "." || projectName == ".." {
		cwd, err := os.Getwd()
		if err == nil {
			projectName = filepath.Base(cwd)
		} else {
			projectName = "project"
		}
	}
	verbose := getVerboseFlag(cmd)

	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	// Offer a picker when a human is attached and no template was chosen
	if tui.IsInteractive() && !cmd.Flags().Changed("template") {
		picked, err := pickTemplate(templates)
		if err != nil {
			return err
		}
		initTemplate = picked
	}

	validTemplate := false
	for _, t := range templates {
		if t == initTemplate {
			validTemplate = true
			break
		}
	}

	if !validTemplate {
		return fmt.Errorf("invalid template '%s'. Available templates: %v\n\nUse 'tvload templates list' for detailed descriptions", initTemplate, templates)
	}

	scaffolder := scaffold.NewScaffolder(verbose)

	if err := scaffolder.CreateProject(projectName, initTemplate, targetPath); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	// Display file tree
	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		// Non-fatal - just skip tree display
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized successfully in '%s' using template '%s'\n\n", targetPath, initTemplate)
	} else {
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized successfully using template '%s'\n\n", initTemplate)
		fmt.Fprintln(os.Stderr, "Created structure:")
		fmt.Fprint(os.Stderr, tree)
	}

	// Next steps
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(os.Stderr, "  tvload validate ./channels.csv")
	fmt.Fprintln(os.Stderr, "  tvload load ./channels.csv --database tvdb")

	return nil
}

// pickTemplate runs the interactive template selector.
func pickTemplate(templates []string) (string, error) {
	descriptions := getTemplateDescriptions()

	options := make([]components.Option, 0, len(templates))
	for _, t := range templates {
		desc := ""
		if d, ok := descriptions[t]; ok {
			desc = d.Short
		}
		options = append(options, components.Option{Label: t, Description: desc, Value: t})
	}

	p := tea.NewProgram(components.NewSelector("Choose a project template", options))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("template selection failed: %w", err)
	}

	selector, ok := finalModel.(components.Selector)
	if !ok || selector.Cancelled() || !selector.Submitted() {
		return "", fmt.Errorf("template selection cancelled")
	}
	return selector.Value(), nil
}
