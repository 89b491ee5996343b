package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryConfig,
		Message:  "Invalid melba.yaml",
		Detail:   "The melba.yaml configuration file is malformed and could not be parsed.",
		DocURL:   "https://melba-ui.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryConfig,
		Message:  "Invalid listen address",
		Detail:   "The configured server address is not a valid host:port pair.",
		DocURL:   "https://melba-ui.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Unknown animation preset",
		Detail:   "The animation preset must be one of: slide, fade, bounce, none.",
		DocURL:   "https://melba-ui.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryConfig,
		Message:  "Invalid toast position",
		Detail:   "The position must be one of the six screen anchors, such as bottom-right or top-center.",
		DocURL:   "https://melba-ui.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "A duration value could not be parsed. Use Go syntax such as 5s or 300ms.",
		DocURL:   "https://melba-ui.dev/docs/errors/E005",
	},
	"E006": {
		Category: CategoryConfig,
		Message:  "Value out of range",
		Detail:   "A numeric configuration value is outside its allowed range.",
		DocURL:   "https://melba-ui.dev/docs/errors/E006",
	},
	"E007": {
		Category: CategoryConfig,
		Message:  "Unknown theme",
		Detail:   "The theme must be light or dark.",
		DocURL:   "https://melba-ui.dev/docs/errors/E007",
	},
	"E008": {
		Category: CategoryConfig,
		Message:  "Unknown toast type",
		Detail:   "The toast type must be one of: info, success, warning, danger.",
		DocURL:   "https://melba-ui.dev/docs/errors/E008",
	},

	// ============================================
	// CLI Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryCLI,
		Message:  "Target directory already exists",
		Detail:   "A file or directory with this name already exists.",
		DocURL:   "https://melba-ui.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryCLI,
		Message:  "Not a melba project",
		Detail:   "The current directory is not a melba project. Run this command from a directory with melba.yaml.",
		DocURL:   "https://melba-ui.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names must be valid Go module names.",
		DocURL:   "https://melba-ui.dev/docs/errors/E022",
	},
	"E023": {
		Category: CategoryCLI,
		Message:  "Unknown scaffold template",
		Detail:   "The requested scaffold template is not registered.",
		DocURL:   "https://melba-ui.dev/docs/errors/E023",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
