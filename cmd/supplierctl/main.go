package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/vendora/supplierctl/internal/config"
	"github.com/vendora/supplierctl/internal/database"
	"github.com/vendora/supplierctl/internal/manifest"
	"github.com/vendora/supplierctl/internal/mutate"
	"github.com/vendora/supplierctl/internal/repository"
	"github.com/vendora/supplierctl/internal/services"
	"github.com/vendora/supplierctl/internal/sheets"
	"github.com/vendora/supplierctl/internal/storage"
	"github.com/vendora/supplierctl/pkg/logger"
)

// Exit codes: 0 success, 1 missing input/validation, 2 subject not found,
// 3 transactional failure after rollback.
const (
	exitOK          = 0
	exitValidation  = 1
	exitNotFound    = 2
	exitTransaction = 3
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitValidation)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(exitValidation)
	}

	logger.Setup(cfg.Environment)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := run(cfg, os.Args[1], os.Args[2:]); err != nil {
		if cfg.SentryDSN != "" {
			sentry.CaptureException(err)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func run(cfg *config.Config, command string, args []string) error {
	ctx := context.Background()

	// Audit reports read manifest files only; no database needed.
	if command == "audit" {
		return runAudit(cfg, args)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)

	store, err := storage.NewLocalStorage(cfg.ManifestDir)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(db)
	svcs := services.NewServices(repos, db, store, cfg)

	switch command {
	case "bootstrap":
		if err := database.Bootstrap(db); err != nil {
			return err
		}
		logger.Info("schema bootstrap complete")
		return nil

	case "import":
		fs := flag.NewFlagSet("import", flag.ContinueOnError)
		file := fs.String("file", "", "workbook to import (required)")
		country := fs.String("country", "", "country code selecting the worksheet")
		opts := mutationFlags(fs, cfg)
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *file == "" {
			return errors.New("-file is required")
		}
		result, err := svcs.Import.ImportSuppliers(ctx, *file, *country, 0, "supplierctl", *opts)
		if err != nil {
			return err
		}
		fmt.Printf("total=%d eligible=%d requiredMissing=%d affected=%d dryRun=%t\n",
			result.Total, result.Eligible, result.RequiredMissing, result.Affected, result.DryRun)
		return nil

	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		out := fs.String("out", "", "output workbook path (required)")
		country := fs.String("country", "", "filter by country code")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *out == "" {
			return errors.New("-out is required")
		}
		n, err := svcs.Export.ExportSuppliers(ctx, *out, *country)
		if err != nil {
			return err
		}
		fmt.Printf("exported %d suppliers to %s\n", n, *out)
		return nil

	case "reset-password":
		fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
		email := fs.String("email", "", "subject email (required)")
		password := fs.String("password", "", "new password (required)")
		opts := mutationFlags(fs, cfg)
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *email == "" || *password == "" {
			return errors.New("-email and -password are required")
		}
		return svcs.UserAdmin.ResetPassword(ctx, *email, *password, *opts)

	case "entitlements":
		fs := flag.NewFlagSet("entitlements", flag.ContinueOnError)
		email := fs.String("email", "", "subject email (required)")
		add := fs.String("add", "", "comma-separated country codes to add")
		remove := fs.String("remove", "", "comma-separated country codes to remove")
		opts := mutationFlags(fs, cfg)
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *email == "" {
			return errors.New("-email is required")
		}
		return svcs.UserAdmin.UpdateCountries(ctx, *email, splitList(*add), splitList(*remove), *opts)

	case "set-role":
		fs := flag.NewFlagSet("set-role", flag.ContinueOnError)
		email := fs.String("email", "", "subject email (required)")
		role := fs.String("role", "", "new role (required)")
		opts := mutationFlags(fs, cfg)
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *email == "" || *role == "" {
			return errors.New("-email and -role are required")
		}
		return svcs.UserAdmin.SetRole(ctx, *email, *role, *opts)

	case "truncate":
		fs := flag.NewFlagSet("truncate", flag.ContinueOnError)
		tables := fs.String("tables", "", "comma-separated table names (required)")
		opts := mutationFlags(fs, cfg)
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *tables == "" {
			return errors.New("-tables is required")
		}
		return svcs.Maintenance.TruncateTables(ctx, splitList(*tables), *opts)

	case "health":
		if err := svcs.Maintenance.Health(ctx); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil

	case "serve":
		return serveHealth(cfg, svcs)

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runAudit(cfg *config.Config, args []string) error {
	if len(args) < 1 || args[0] != "report" {
		return errors.New("usage: supplierctl audit report [-out FILE] [-limit N]")
	}
	fs := flag.NewFlagSet("audit report", flag.ContinueOnError)
	out := fs.String("out", "audit_report.pdf", "output PDF path")
	limit := fs.Int("limit", 50, "number of manifests to include")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(cfg.ManifestDir)
	if err != nil {
		return err
	}
	svc := services.NewReportService(manifest.NewWriter(store))
	n, err := svc.ManifestReport(*out, *limit)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d manifests to %s\n", n, *out)
	return nil
}

// serveHealth exposes liveness and readiness endpoints for orchestration.
func serveHealth(cfg *config.Config, svcs *services.Services) error {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		if err := svcs.Maintenance.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("health server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", "error", err)
			os.Exit(exitValidation)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down health server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// mutationFlags registers the shared safety flags. The environment override
// SUPPLIERCTL_ASSUME_YES pre-confirms, matching unattended cron usage.
func mutationFlags(fs *flag.FlagSet, cfg *config.Config) *services.MutationOptions {
	opts := &services.MutationOptions{}
	fs.BoolVar(&opts.Confirmed, "yes", cfg.AssumeYes, "confirm the mutation")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "validate and write the manifest, then roll back")
	fs.BoolVar(&opts.AllowUnaudited, "allow-unaudited", false, "commit even if the audit manifest cannot be written")
	return opts
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound) || errors.Is(err, mutate.ErrNotFound):
		return exitNotFound
	case errors.Is(err, mutate.ErrTransactionFailed):
		return exitTransaction
	case errors.Is(err, config.ErrConfigurationMissing),
		errors.Is(err, mutate.ErrConfirmationRequired),
		errors.Is(err, sheets.ErrSheetNotFound):
		return exitValidation
	default:
		return exitValidation
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `supplierctl - supplier database operations toolkit

Usage: supplierctl <command> [flags]

Commands:
  bootstrap        create or update the database schema
  import           import a supplier workbook (-file, -country, -dry-run, -yes)
  export           export suppliers to a workbook (-out, -country)
  reset-password   reset a user's password (-email, -password, -dry-run, -yes)
  entitlements     edit country entitlements (-email, -add, -remove, -dry-run, -yes)
  set-role         change a user's role (-email, -role, -dry-run, -yes)
  truncate         empty tables (-tables, -dry-run, -yes)
  health           check database connectivity and schema
  audit report     render recent change manifests to PDF (-out, -limit)
  serve            run the health endpoint server
`)
}
