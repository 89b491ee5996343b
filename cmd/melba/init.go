package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/melba-ui/melba/internal/config"
	"github.com/melba-ui/melba/internal/errors"
	"github.com/melba-ui/melba/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template    string
		module      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new Melba project",
		Long: `Create a new Melba project with the specified name.

Templates:
  minimal   A bare host program wired to the toast engine
  demo      The minimal host plus the interactive demo page (default)

Examples:
  melba init my-app
  melba init my-app --template=minimal
  melba init my-app --module=github.com/acme/my-app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], template, module, description)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "demo", "Project template (minimal, demo)")
	cmd.Flags().StringVarP(&module, "module", "m", "", "Go module path (default: project name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	return cmd
}

func runInit(name, templateName, modulePath, description string) error {
	printBanner()
	fmt.Println("  Creating a new Melba project...")
	fmt.Println()

	// Validate project name
	if !isValidProjectName(name) {
		return errors.New("E022").
			WithDetail("Project name must be a valid Go module name").
			WithSuggestion("Use lowercase letters, numbers, and hyphens")
	}

	// Check if directory exists
	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("E020").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	// Set defaults
	if modulePath == "" {
		modulePath = name
	}
	if description == "" {
		description = "Toast notifications with Melba"
	}

	// Get template
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	// Create project directory
	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	tcfg := templates.Config{
		ProjectName: name,
		ModulePath:  modulePath,
		Description: description,
		AllowShow:   templateName == "demo",
	}

	info("Creating project from '%s' template...", templateName)
	if err := tmpl.Create(projectDir, tcfg); err != nil {
		// Clean up on error
		os.RemoveAll(projectDir)
		return err
	}

	// Write melba.yaml
	info("Writing melba.yaml...")
	cfg := config.New()
	cfg.Name = name
	cfg.Server.AllowShow = tcfg.AllowShow
	if err := cfg.SaveTo(filepath.Join(projectDir, config.ConfigFileName)); err != nil {
		os.RemoveAll(projectDir)
		return err
	}

	// Print success message
	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    go mod tidy")
	fmt.Println("    go run .")
	fmt.Println()
	fmt.Printf("  Your toasts will be served at %s\n", cfg.URL())
	fmt.Println()

	return nil
}

func isValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	// Basic validation: no spaces, no starting with number
	for i, r := range name {
		if r == ' ' || r == '/' || r == '\\' {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}
