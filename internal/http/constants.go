package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome      = "home"
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageAdmin     = "admin"
)

// Page template names, one full-page template per CurrentPage.
//
//nolint:gochecknoglobals // static read-only lookup; avoids per-call allocations
var pageTemplates = map[string]string{
	PageHome:      "home-page",
	PageLogin:     "login-page",
	PageDashboard: "dashboard-page",
	PageAdmin:     "admin-page",
}

// PageTemplateFor returns the template name for the given CurrentPage.
// Falls back to the home page for unknown pages.
func PageTemplateFor(currentPage string) string {
	if name, ok := pageTemplates[currentPage]; ok {
		return name
	}
	return "home-page"
}

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)
