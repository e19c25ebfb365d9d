package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/chromedp"
	"github.com/fwojciec/resumekit/compose"
	"github.com/fwojciec/resumekit/etree"
	"github.com/fwojciec/resumekit/extract"
	rkfiber "github.com/fwojciec/resumekit/fiber"
	"github.com/fwojciec/resumekit/fs"
	"github.com/fwojciec/resumekit/gemini"
	"github.com/fwojciec/resumekit/goldmark"
	"github.com/fwojciec/resumekit/guard"
	"github.com/fwojciec/resumekit/html"
	"github.com/fwojciec/resumekit/htmltomarkdown"
	rkhttp "github.com/fwojciec/resumekit/http"
	"github.com/fwojciec/resumekit/jsonschema"
	"github.com/fwojciec/resumekit/layout"
	"github.com/fwojciec/resumekit/pdfcpu"
	"github.com/fwojciec/resumekit/pdftext"
	"github.com/fwojciec/resumekit/postgres"
	"github.com/fwojciec/resumekit/rod"
	rkslog "github.com/fwojciec/resumekit/slog"
	"github.com/fwojciec/resumekit/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Login throttle storage, opened on demand.
	DB *sqlite.DB
	PG *postgres.DB

	// Browser used to print PDFs, started on demand.
	Renderer resumekit.Renderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	if m.Renderer != nil {
		if err := m.Renderer.Close(); err != nil {
			firstErr = err
		}
	}
	if m.PG != nil {
		if err := m.PG.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("resumekit"),
		kong.Description("Extract, sanitize, rewrite and compose resumes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'resumekit --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	defer m.Close()

	deps.Sanitizer = rkslog.NewLoggingSanitizer(goldmark.NewSanitizer(), logger)
	deps.Markup = html.NewRenderer()
	deps.Exporter = compose.NewMarkdownExporter(deps.Sanitizer, deps.Markup, htmltomarkdown.NewConverter())

	if cmd == "extract" || cmd == "serve" {
		ext, err := newExtractor(cli)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: RESUMEKIT_TOKEN_EXPIRES must be an RFC3339 timestamp")
			return err
		}
		deps.Extractor = rkslog.NewLoggingExtractor(ext, logger)
	}

	if cmd == "compose" || cmd == "serve" {
		if err := m.openRenderer(cli); err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed (set CHROME_PATH to pick a binary)")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		resumes := goldmark.NewResumeParser()
		composer := compose.NewComposer(resumes, layout.NewEngine(),
			rkslog.NewLoggingRenderer(m.Renderer, logger), pdfcpu.NewInspector())
		deps.Composer = rkslog.NewLoggingComposer(composer, logger)
		deps.Verifier = compose.NewVerifier(resumes, pdftext.NewReader(), resumekit.DefaultBulletStyle().Symbol)
	}

	if cmd == "login" || cmd == "serve" {
		store, err := m.openStore(ctx, cli)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set RESUMEKIT_STORE and RESUMEKIT_DB or DATABASE_URL to choose the throttle storage")
			return err
		}
		codec, err := jsonschema.NewCodec()
		if err != nil {
			return fmt.Errorf("failed to compile record schema: %w", err)
		}
		deps.Guard = guard.NewGuard(rkslog.NewLoggingKeyValueStore(store, logger), codec)
	}

	if cmd == "rewrite" {
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var opts []gemini.Option
		if counter, err := gemini.NewTokenCounter(tokenizerModel); err != nil {
			logger.Warn("token counter unavailable", "model", tokenizerModel, "err", err)
		} else {
			opts = append(opts, gemini.WithTokenBudget(counter, maxRewriteTokens))
		}
		deps.Rewriter = rkslog.NewLoggingRewriter(gemini.NewRewriter(client.Models, opts...), logger)
	}

	if cmd == "serve" {
		srv := rkfiber.NewServer()
		srv.Extractor = deps.Extractor
		srv.Sanitizer = deps.Sanitizer
		srv.Markup = deps.Markup
		srv.Previewer = compose.NewPreviewer(deps.Composer)
		srv.Guard = deps.Guard
		srv.Logger = logger
		deps.Server = srv
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting. The local tokenizer lags
// behind the served models.
const tokenizerModel = "gemini-2.5-flash"

// maxRewriteTokens bounds the rewrite prompt.
const maxRewriteTokens = 32000

func newExtractor(cli *CLI) (*extract.Router, error) {
	router := &extract.Router{
		PlainText:   extract.NewPlainText(),
		WordPackage: etree.NewExtractor(),
	}
	if cli.ExtractURL == "" {
		return router, nil
	}

	creds := &rkhttp.StaticCredential{Token: cli.Token}
	if cli.TokenExpires != "" {
		t, err := time.Parse(time.RFC3339, cli.TokenExpires)
		if err != nil {
			return nil, resumekit.Errorf(resumekit.EINVALID, "invalid token expiry %q", cli.TokenExpires)
		}
		creds.ExpiresAt = t
	}
	router.PDF = rkhttp.NewExtractor(cli.ExtractURL, creds, rkhttp.WithAPIKey(cli.APIKey))
	return router, nil
}

func (m *Main) openRenderer(cli *CLI) error {
	switch cli.Renderer {
	case "chromedp":
		var opts []chromedp.Option
		if cli.ChromePath != "" {
			opts = append(opts, chromedp.WithExecPath(cli.ChromePath))
		}
		r, err := chromedp.NewRenderer(opts...)
		if err != nil {
			return err
		}
		m.Renderer = r
	default:
		var opts []rod.ManagerOption
		if cli.ChromePath != "" {
			opts = append(opts, rod.WithBrowserBin(cli.ChromePath))
		}
		r, err := rod.NewRenderer(opts...)
		if err != nil {
			return err
		}
		m.Renderer = r
	}
	return nil
}

func (m *Main) openStore(ctx context.Context, cli *CLI) (resumekit.KeyValueStore, error) {
	switch cli.Store {
	case "postgres":
		m.PG = postgres.NewDB(cli.DatabaseURL)
		if err := m.PG.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return postgres.NewKeyValueStore(m.PG), nil
	case "file":
		return fs.NewKeyValueStore(filepath.Join(filepath.Dir(m.DBPath), "store")), nil
	default:
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		return sqlite.NewKeyValueStore(m.DB), nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("RESUMEKIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "resumekit.db"
	}
	dir := filepath.Join(home, ".resumekit")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "resumekit.db")
}
