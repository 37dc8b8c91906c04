package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tourscout/config"
	"tourscout/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server exposes the stored dataset over four form-driven routes.
type Server struct {
	cfg      *config.Config
	store    storage.Store
	sessions *sessionStore
	echo     *echo.Echo
}

func NewServer(cfg *config.Config, store storage.Store) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		sessions: newSessionStore(),
		echo:     echo.New(),
	}

	s.echo.HideBanner = true
	s.echo.Renderer = newRenderer()

	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/sites", s.handleSites)
	s.echo.POST("/sort", s.handleSort)
	s.echo.POST("/results", s.handleResults)

	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// ServeHTTP lets tests drive the server without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.renderIndex(c, "")
}

func (s *Server) renderIndex(c echo.Context, errMsg string) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"States": s.cfg.States,
		"Error":  errMsg,
	})
}

func (s *Server) handleSites(c echo.Context) error {
	state := s.cfg.State(c.FormValue("state"))
	if state == nil {
		return s.renderIndex(c, "Please choose one of the supported states")
	}

	sess := s.sessions.session(c)
	sess.State = state.ID
	sess.SiteName = ""

	sites, err := s.store.SitesByState(c.Request().Context(), state.ID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "sites.html", map[string]interface{}{
		"StateName": state.Name,
		"Sites":     sites,
	})
}

func (s *Server) handleSort(c echo.Context) error {
	sess := s.sessions.session(c)
	if sess.State == "" {
		return s.renderIndex(c, "Please choose a state first")
	}

	sites, err := s.store.SitesByState(c.Request().Context(), sess.State)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.FormValue("site"))
	if err != nil || index < 1 || index > len(sites) {
		state := s.cfg.State(sess.State)
		return c.Render(http.StatusOK, "sites.html", map[string]interface{}{
			"StateName": state.Name,
			"Sites":     sites,
		})
	}

	sess.SiteName = sites[index-1].Name

	return c.Render(http.StatusOK, "sort.html", map[string]interface{}{
		"SiteName": sess.SiteName,
		"SortKeys": storage.SortKeys(),
	})
}

func (s *Server) handleResults(c echo.Context) error {
	sess := s.sessions.session(c)
	if sess.SiteName == "" {
		return s.renderIndex(c, "Please choose a state and an attraction first")
	}

	sortKey := c.FormValue("sortkey")
	direction := c.FormValue("direction")

	result, err := s.store.Query(c.Request().Context(), sortKey, direction, sess.SiteName)
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"SiteName": sess.SiteName,
		"NoResult": result == nil,
	}
	if result != nil {
		data["Columns"] = result.Columns
		data["Rows"] = result.Rows
	}
	return c.Render(http.StatusOK, "results.html", data)
}

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}
	return &renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
