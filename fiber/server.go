// Package fiber serves the resume preview over HTTP: upload extraction,
// sanitized HTML, PDF composition, a zoomable preview page, and the login
// throttle.
package fiber

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/compose"
	"github.com/fwojciec/resumekit/guard"
	"github.com/gofiber/fiber/v2"
)

// DocumentPath is the route prefix composed PDFs are served from.
const DocumentPath = "/api/documents/"

// Server is the preview HTTP server. Services are assigned after
// NewServer and read on every request.
type Server struct {
	app *fiber.App

	Extractor resumekit.Extractor
	Sanitizer resumekit.Sanitizer
	Markup    resumekit.MarkupRenderer
	Previewer *compose.Previewer
	Guard     *guard.Guard
	Logger    *slog.Logger
}

// NewServer creates a Server with all routes registered.
func NewServer() *Server {
	s := &Server{Logger: slog.New(slog.DiscardHandler)}
	s.app = fiber.New(fiber.Config{
		AppName:               "resumekit",
		BodyLimit:             resumekit.MaxUploadSize + 1<<20,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(s.logRequest)

	api := s.app.Group("/api")
	api.Post("/extract", s.handleExtract)
	api.Post("/sanitize", s.handleSanitize)
	api.Post("/compose", s.handleCompose)
	api.Get("/documents/:id", s.handleDocument)

	login := api.Group("/login")
	login.Get("/status", s.handleLoginStatus)
	login.Post("/check", s.handleLoginCheck)
	login.Post("/failure", s.handleLoginFailure)
	login.Post("/success", s.handleLoginSuccess)

	s.app.Get("/preview", s.handlePreview)
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) logRequest(c *fiber.Ctx) (err error) {
	defer func(begin time.Time) {
		s.Logger.Debug("http request",
			"method", c.Method(),
			"path", c.Path(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.Next()
}

func (s *Server) handleExtract(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return resumekit.Errorf(resumekit.EINVALID, "Choose a file to upload.")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, resumekit.MaxUploadSize+1))
	if err != nil {
		return err
	}

	text, err := s.Extractor.Extract(c.UserContext(), &resumekit.UploadedDocument{
		Name:      fh.Filename,
		MediaType: fh.Header.Get(fiber.HeaderContentType),
		Data:      data,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"name": fh.Filename, "text": text})
}

type contentRequest struct {
	Content string `json:"content"`
}

type blockedResponse struct {
	Kind   string `json:"kind"`
	Tag    string `json:"tag,omitempty"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason"`
}

func (s *Server) handleSanitize(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return resumekit.Errorf(resumekit.EINVALID, "invalid payload")
	}

	doc := s.Sanitizer.Sanitize(req.Content)
	html, err := s.Markup.Render(doc)
	if err != nil {
		return err
	}

	blocked := make([]blockedResponse, 0, len(doc.Blocked))
	for _, b := range doc.Blocked {
		blocked = append(blocked, blockedResponse{Kind: string(b.Kind), Tag: b.Tag, URL: b.URL, Reason: b.Reason})
	}
	return c.JSON(fiber.Map{"html": html, "empty": doc.Empty(), "blocked": blocked})
}

func (s *Server) handleCompose(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return resumekit.Errorf(resumekit.EINVALID, "invalid payload")
	}

	doc, err := s.Previewer.Generate(c.UserContext(), req.Content)
	if errors.Is(err, compose.ErrSuperseded) {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	} else if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       doc.ID,
		"pages":    doc.PageCount,
		"filename": doc.Filename,
		"url":      documentURL(doc),
		"preview":  "/preview?zoom=" + strconv.Itoa(int(resumekit.DefaultZoom)),
	})
}

func (s *Server) handleDocument(c *fiber.Ctx) error {
	id := strings.TrimSuffix(c.Params("id"), ".pdf")
	doc := s.Previewer.Current()
	if doc == nil || doc.ID != id {
		return resumekit.Errorf(resumekit.ENOTFOUND, "Document not found.")
	}

	disposition := "inline"
	if c.QueryBool("download") {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, disposition+`; filename="`+strings.ReplaceAll(doc.Filename, `"`, "")+`"`)
	return c.Send(doc.Data)
}

type previewData struct {
	Src   string
	Zoom  resumekit.Zoom
	In    resumekit.Zoom
	Out   resumekit.Zoom
	Pages int
}

var previewTmpl = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Resume preview</title>
<style>
body { margin: 0; font-family: sans-serif; background: #eee; }
nav { padding: 8px; background: #fff; border-bottom: 1px solid #ccc; }
iframe { display: block; width: 100%; height: calc(100vh - 42px); border: 0; }
</style>
</head>
<body>
<nav>
<a href="/preview?zoom={{.Out}}" aria-label="Zoom out">&minus;</a>
<span class="zoom">{{.Zoom}}%</span>
<a href="/preview?zoom={{.In}}" aria-label="Zoom in">+</a>
<span class="pages">{{.Pages}} page(s)</span>
</nav>
<iframe title="Resume PDF" src="{{.Src}}"></iframe>
</body>
</html>
`))

func (s *Server) handlePreview(c *fiber.Ctx) error {
	doc := s.Previewer.Current()
	if doc == nil {
		return resumekit.Errorf(resumekit.ENOTFOUND, "No preview has been generated yet.")
	}

	z := resumekit.ParseZoom(c.Query("zoom"))
	var sb strings.Builder
	if err := previewTmpl.Execute(&sb, previewData{
		Src:   resumekit.PreviewURL(documentURL(doc), z),
		Zoom:  z,
		In:    z.In(),
		Out:   z.Out(),
		Pages: doc.PageCount,
	}); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(sb.String())
}

type loginStatusResponse struct {
	Locked                  bool       `json:"locked"`
	Attempts                int        `json:"attempts"`
	RemainingAttempts       int        `json:"remainingAttempts"`
	RemainingLockoutMinutes int        `json:"remainingLockoutMinutes"`
	LockedUntil             *time.Time `json:"lockedUntil"`
}

func newLoginStatusResponse(st resumekit.LoginStatus) loginStatusResponse {
	return loginStatusResponse{
		Locked:                  st.Locked,
		Attempts:                st.Attempts,
		RemainingAttempts:       st.RemainingAttempts,
		RemainingLockoutMinutes: st.RemainingLockoutMinutes(),
		LockedUntil:             st.LockedUntil,
	}
}

func (s *Server) handleLoginStatus(c *fiber.Ctx) error {
	st, err := s.Guard.Status(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(newLoginStatusResponse(st))
}

func (s *Server) handleLoginCheck(c *fiber.Ctx) error {
	if err := s.Guard.Check(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleLoginFailure(c *fiber.Ctx) error {
	st, err := s.Guard.RecordFailure(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(newLoginStatusResponse(st))
}

func (s *Server) handleLoginSuccess(c *fiber.Ctx) error {
	if err := s.Guard.RecordSuccess(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleError writes err as a JSON body with the status for its code.
// Internal errors are logged and reported with a generic message.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	code := resumekit.ErrorCode(err)
	if code == resumekit.EINTERNAL {
		s.Logger.Error("http error", "method", c.Method(), "path", c.Path(), "err", err)
	}
	return c.Status(StatusCode(code)).JSON(fiber.Map{
		"code":  code,
		"error": resumekit.ErrorMessage(err),
	})
}

var codes = map[string]int{
	resumekit.EINVALID:     fiber.StatusBadRequest,
	resumekit.ENOTFOUND:    fiber.StatusNotFound,
	resumekit.EUNSUPPORTED: fiber.StatusUnsupportedMediaType,
	resumekit.EMALFORMED:   fiber.StatusUnprocessableEntity,
	resumekit.EEMPTY:       fiber.StatusUnprocessableEntity,
	resumekit.EAUTH:        fiber.StatusUnauthorized,
	resumekit.ETIMEOUT:     fiber.StatusGatewayTimeout,
	resumekit.ESERVER:      fiber.StatusBadGateway,
	resumekit.EUNREACHABLE: fiber.StatusServiceUnavailable,
	resumekit.ERATELIMITED: fiber.StatusTooManyRequests,
}

// StatusCode returns the HTTP status for an application error code.
func StatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return fiber.StatusInternalServerError
}

func documentURL(doc *resumekit.PDFDocument) string {
	return DocumentPath + doc.ID + ".pdf"
}
