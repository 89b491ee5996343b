// Package errors provides structured, actionable error messages for the
// melba command line tools.
//
// Every registered error carries a short code (e.g., "E001") that maps
// to a message, a longer explanation, and a documentation link. Errors
// raised while reading melba.yaml additionally point at the offending
// line and show the surrounding file content.
//
// # Error Categories
//
// Errors are organized into categories:
//   - config: melba.yaml problems (malformed YAML, invalid values)
//   - cli: command usage errors (bad project names, existing targets)
//
// # Error Codes
//
// Each error has a unique code (e.g., "E001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E001").
//	    WithLocationFromYAML("melba.yaml", yamlErr).
//	    WithSuggestion("Check the indentation around the reported line")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Invalid melba.yaml
//	//
//	//   melba.yaml:4
//	//
//	//        2 │ server:
//	//        3 │   addr: ":8620"
//	//   →    4 │   debug: maybe
//	//        5 │ toast:
//	//        6 │   position: bottom-right
//	//
//	//   Hint: Check the indentation around the reported line
//	//
//	//   Learn more: https://melba-ui.dev/docs/errors/E001
package errors
