// Package catalog holds the event's content tables: presenters, their local
// document files, externally hosted video links, and reference links. The
// tables are fixed at build time; document paths are resolved against the
// configured data directory at startup.
package catalog

import "path/filepath"

// Presenter is a speaker whose materials the menu exposes.
type Presenter struct {
	ID   string
	Name string
}

// Link is a titled external URL rendered as a URL button.
type Link struct {
	Title string
	URL   string
}

// Document is a named local file offered for delivery.
type Document struct {
	Title string
	Path  string
}

// Presenters in menu order.
var Presenters = []Presenter{
	{ID: "p1", Name: "Juan Pablo Vieira"},
	{ID: "p2", Name: "Juan José Puerta"},
	{ID: "p3", Name: "Carlos Andrés Pérez"},
	{ID: "p4", Name: "Jorge Mario Rubio"},
	{ID: "p5", Name: "Jair Viana"},
}

// PresenterName resolves a presenter ID to its display name, with a generic
// fallback for unknown IDs so a stale button never breaks a render.
func PresenterName(id string) string {
	for _, p := range Presenters {
		if p.ID == id {
			return p.Name
		}
	}
	return "Presentador"
}

// videoLinks are externally hosted: pure navigation, no delivery involved.
var videoLinks = map[string][]Link{
	"p1": {
		{Title: "Crear Cuenta en Interactive Brokers", URL: "https://drive.google.com/file/d/1thOot6PZdxLgutH3c3JuCrIwXwRGcxeb/view?usp=sharing"},
		{Title: "Crear Cuenta en TRII", URL: "https://drive.google.com/file/d/1thOot6PZdxLgutH3c3JuCrIwXwRGcxeb/view?usp=sharing"},
	},
	"p2": {
		{Title: "DATOS DE EMPRESAS Y MACRO", URL: "https://drive.google.com/file/d/1S-LncN3dd3eYBBCO_YgYuv5n6d2DSGAM/view?usp=sharing"},
		{Title: "DATOS DE EMPRESAS", URL: "https://drive.google.com/file/d/1Yo1CxNipafXdbcoXK6ahpGgaHdJqdbzj/view?usp=sharing"},
		{Title: "FRED", URL: "https://drive.google.com/file/d/12SRmvSbdhrS0qeM4dFE1EMSkScH4hKcL/view?usp=sharing"},
		{Title: "HERRAMIENTA D.O.O.R", URL: "https://drive.google.com/file/d/1zwejfDpdC7Z0CVsCb4t0UqQD0yqdPBBe/view?usp=sharing"},
		{Title: "MORNINGSTAR", URL: "https://drive.google.com/file/d/1POiz8YG7xYZpjxaBZ7YiZqmI7RpCQgLa/view?usp=sharing"},
		{Title: "MOVIMIENTOS DE SENADORES USA", URL: "https://drive.google.com/file/d/1zGIZWRRs3EiMAv-i9DDe5N57XxYWkqx5/view?usp=sharing"},
		{Title: "PAGINA MORDOR INTELLIGENCE", URL: "https://drive.google.com/file/d/17HMRzdBHknyxLeoB7JA0V9h-gtQrgZX4/view?usp=sharing"},
		{Title: "PORTAFOLIO GRANDES INVERSORES", URL: "https://drive.google.com/file/d/1-qcP4LNAlCaqajgepQYcREC8fdzwpgY-/view?usp=sharing"},
		{Title: "SCREENER, MAPS Y DATOS", URL: "https://drive.google.com/file/d/1Mn_SmvqXEijzAOPoNtsnoW3mWksqPdTl/view?usp=sharing"},
		{Title: "SEC", URL: "https://drive.google.com/file/d/1OwIZ_Bk94RHjQZf0zmxtlH38frrxzb70/view?usp=sharing"},
		{Title: "VALORACIÓN COMPAÑIA", URL: "https://drive.google.com/file/d/1mqG03xZB8urE7_VA1a8YcRO4nalxnSWD/view?usp=sharing"},
	},
}

// presenterLinks are per-presenter reference links.
var presenterLinks = map[string][]Link{
	"p1": {
		{Title: "Web", URL: "https://ttrading.co"},
		{Title: "YouTube", URL: "https://www.youtube.com/@JPTacticalTrading"},
	},
	"p2": {
		{Title: "FRED", URL: "https://fred.stlouisfed.org/"},
		{Title: "MACRO TRENDS", URL: "https://www.macrotrends.net/"},
		{Title: "MORNINGSTAR", URL: "https://www.morningstar.com/"},
		{Title: "Web", URL: "https://ttrading.co"},
		{Title: "YouTube", URL: "https://www.youtube.com/@JPTacticalTrading"},
	},
	"p3": {
		{Title: "Web", URL: "https://ttrading.co"},
		{Title: "YouTube", URL: "https://www.youtube.com/@JPTacticalTrading"},
	},
}

// documents maps presenter ID to files under <dataDir>/docs. File names are
// relative; Catalog resolves them at construction.
var documents = map[string][]Document{}

// Event-level URLs.
const (
	LocationURL      = "https://maps.app.goo.gl/GS2k9sL38zchErH89"
	ExnessAccountURL = "https://one.exnessonelink.com/a/s3wj0b5qry"
)

// Catalog resolves catalog entries against the data directory.
type Catalog struct {
	docsDir string
}

func New(dataDir string) *Catalog {
	return &Catalog{docsDir: filepath.Join(dataDir, "docs")}
}

// VideoLinks returns the hosted video links for a presenter; an empty slice
// means "none yet".
func (c *Catalog) VideoLinks(presenterID string) []Link {
	return videoLinks[presenterID]
}

// PresenterLinks returns the reference links for a presenter.
func (c *Catalog) PresenterLinks(presenterID string) []Link {
	return presenterLinks[presenterID]
}

// Documents returns the deliverable documents for a presenter with paths
// resolved under the docs directory.
func (c *Catalog) Documents(presenterID string) []Document {
	docs := documents[presenterID]
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Document{Title: d.Title, Path: filepath.Join(c.docsDir, d.Path)})
	}
	return out
}

// Document looks up a single deliverable by title.
func (c *Catalog) Document(presenterID, title string) (Document, bool) {
	for _, d := range c.Documents(presenterID) {
		if d.Title == title {
			return d, true
		}
	}
	return Document{}, false
}
