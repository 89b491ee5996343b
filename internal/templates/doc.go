// Package templates provides project scaffolding templates.
//
// This package contains embedded templates for creating new Melba projects.
// Templates include all necessary files for a working application.
//
// # Available Templates
//
//   - minimal: a bare host program wired to the toast engine
//   - demo: the minimal host plus the interactive demo page
//
// # Usage
//
//	tmpl, err := templates.Get("demo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tmpl.Create(projectDir, config); err != nil {
//	    log.Fatal(err)
//	}
//
// # Template Variables
//
// Templates support variable substitution:
//
//	{{.ProjectName}}     - Name of the project
//	{{.ModulePath}}      - Go module path
//	{{.Description}}     - Project description
//	{{.AllowShow}}       - Whether the demo page exposes the show form
package templates
