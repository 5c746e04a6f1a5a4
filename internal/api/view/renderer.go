// Package view renders the portal with html/template. Every customer-supplied
// field (names, phones, problem descriptions) passes through the template
// engine's contextual escaping; no markup is built by string concatenation.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS exposes the embedded stylesheet for the router to serve.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer satisfies echo.Renderer.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// LoginPage is the data for the login view.
type LoginPage struct {
	Error string
}

// Filters echoes the currently selected filter controls back into the form.
type Filters struct {
	OrderStatus         string
	OrderAvailability   string
	OrderCustomer       string
	MaintenanceStatus   string
	MaintenancePriority string
	MaintenanceCustomer string
	HistoryType         string
	HistoryLimit        int
}

// Page is the data for the main portal view. Exactly one section is rendered
// visible, matching Active; the nav entry for Active is the only highlighted
// one.
type Page struct {
	Username string
	Role     string
	Active   domain.Section
	Phase    domain.SnapshotPhase
	Error    string

	Dashboard   *DashboardView
	Orders      []OrderRow
	Maintenance []MaintenanceRow
	History     []HistoryRow
	Filters     Filters
}

// OrderModal is the data for the order edit overlay.
type OrderModal struct {
	Order domain.Order
}

// MaintenanceModal is the data for the maintenance edit overlay.
type MaintenanceModal struct {
	Request domain.MaintenanceRequest
}
