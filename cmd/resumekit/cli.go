package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/compose"
	"github.com/fwojciec/resumekit/guard"
)

// Verifier checks a composed PDF for bullets split across pages.
type Verifier interface {
	Verify(content string, doc *resumekit.PDFDocument) ([]compose.SplitBullet, error)
}

// Exporter renders content through the sanitizer back to markdown.
type Exporter interface {
	Export(src string) (string, error)
}

// Server is the preview HTTP server.
type Server interface {
	Listen(addr string) error
	Shutdown() error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Extractor resumekit.Extractor
	Sanitizer resumekit.Sanitizer
	Markup    resumekit.MarkupRenderer
	Composer  resumekit.Composer
	Verifier  Verifier
	Exporter  Exporter
	Rewriter  resumekit.Rewriter
	Guard     *guard.Guard
	Server    Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	DB           string `name:"db" env:"RESUMEKIT_DB" help:"SQLite database path"`
	Store        string `env:"RESUMEKIT_STORE" enum:"sqlite,postgres,file" default:"sqlite" help:"Login throttle storage (sqlite, postgres, file)"`
	DatabaseURL  string `name:"database-url" env:"DATABASE_URL" help:"Postgres connection string"`
	ExtractURL   string `name:"extract-url" env:"RESUMEKIT_EXTRACT_URL" help:"PDF extraction endpoint"`
	APIKey       string `name:"api-key" env:"RESUMEKIT_API_KEY" help:"PDF extraction API key"`
	Token        string `env:"RESUMEKIT_TOKEN" help:"Signed-in access token"`
	TokenExpires string `name:"token-expires" env:"RESUMEKIT_TOKEN_EXPIRES" help:"Access token expiry (RFC3339)"`
	Renderer     string `env:"RESUMEKIT_RENDERER" enum:"rod,chromedp" default:"rod" help:"PDF print backend (rod, chromedp)"`
	ChromePath   string `name:"chrome-path" env:"CHROME_PATH" help:"Chrome or Chromium binary"`
	GeminiAPIKey string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for rewrite"`

	Extract  ExtractCmd  `cmd:"" help:"Extract plain text from .txt, .docx or .pdf files"`
	Sanitize SanitizeCmd `cmd:"" help:"Render resume markdown as sanitized HTML"`
	Compose  ComposeCmd  `cmd:"" help:"Compose an A4 PDF from resume markdown"`
	Export   ExportCmd   `cmd:"" help:"Write resume markdown to a .md file"`
	Rewrite  RewriteCmd  `cmd:"" help:"Rewrite resume markdown with Gemini"`
	Login    LoginCmd    `cmd:"" help:"Inspect or update the sign-in throttle"`
	Serve    ServeCmd    `cmd:"" help:"Serve the preview over HTTP"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files       []string `arg:"" type:"existingfile" help:"Files to extract"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// SanitizeCmd is the "sanitize" subcommand.
type SanitizeCmd struct {
	File string `arg:"" default:"-" help:"Markdown file, or - for stdin"`
}

// ComposeCmd is the "compose" subcommand.
type ComposeCmd struct {
	File   string `arg:"" default:"-" help:"Markdown file, or - for stdin"`
	Output string `short:"o" default:"." help:"Output directory"`
	Verify bool   `help:"Check that no bullet is split across pages"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	File      string `arg:"" default:"-" help:"Markdown file, or - for stdin"`
	Output    string `short:"o" default:"." help:"Output directory"`
	Name      string `short:"n" help:"File name (default optimized-resume.md)"`
	Sanitized bool   `help:"Export the sanitized rendering instead of the raw text"`
}

// RewriteCmd is the "rewrite" subcommand.
type RewriteCmd struct {
	File         string `arg:"" default:"-" help:"Markdown file, or - for stdin"`
	Instructions string `short:"i" help:"What to change, e.g. a target job description"`
}

// LoginCmd groups the sign-in throttle subcommands.
type LoginCmd struct {
	Status  LoginStatusCmd  `cmd:"" default:"1" help:"Show the throttle status"`
	Fail    LoginFailCmd    `cmd:"" help:"Record a failed sign-in attempt"`
	Succeed LoginSucceedCmd `cmd:"" help:"Record a successful sign-in"`
}

// LoginStatusCmd is the "login status" subcommand.
type LoginStatusCmd struct{}

// LoginFailCmd is the "login fail" subcommand.
type LoginFailCmd struct{}

// LoginSucceedCmd is the "login succeed" subcommand.
type LoginSucceedCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"RESUMEKIT_ADDR" help:"Listen address"`
}
