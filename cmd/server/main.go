package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/django/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/mitesh1409/stateless-auth"
	"github.com/mitesh1409/stateless-auth/middleware/authgate"
)

//go:embed views
var viewsFS embed.FS

// tokenValidator adapts the auth token service to the gate's validator
// interface.
type tokenValidator struct {
	svc auth.TokenService
}

func (v tokenValidator) Validate(raw string) (authgate.AuthClaims, error) {
	claims, err := v.svc.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func main() {
	cfg, err := auth.ConfigFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := openDatabase(getenv("AUTH_DB_DSN", "file:stateless_auth.db?cache=shared"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := createSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	repos := auth.NewRepositoryManager(db)
	provider := auth.NewUserProvider(repos.Users())
	auther := auth.NewAuthenticator(provider, cfg)

	httpAuth, err := auth.NewHTTPAuthenticator(auther, cfg)
	if err != nil {
		log.Fatalf("http authenticator: %v", err)
	}

	registrar := auth.NewRegisterUserHandler(repos)
	seedAdmin(context.Background(), registrar)

	ctrl := auth.NewUsersController(httpAuth, auther, registrar, cfg.GetContextKey())

	app := newApp(cfg, auther, ctrl)

	addr := net.JoinHostPort(getenv("AUTH_HOST", "127.0.0.1"), getenv("AUTH_PORT", "3000"))
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func newApp(cfg *auth.AppConfig, auther *auth.Auther, ctrl *auth.UsersController) *fiber.App {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		log.Fatalf("views: %v", err)
	}

	engine := django.NewFileSystem(http.FS(sub), ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				return c.Status(code).Render("errors/500", fiber.Map{
					"metaTitle": "Stateless Authentication Example | Error",
				})
			}
			return c.Status(code).SendString(err.Error())
		},
	})

	app.Use(logger.New(logger.Config{
		Format: "Request Method: ${method}\n" +
			"Request URL: ${url}\n" +
			"Request Headers: ${reqHeaders}\n" +
			"Request Params: ${queryParams}\n" +
			"Request Body: ${body}\n" +
			"Request Time: ${latency}\n" +
			"------------------------------\n",
		Output: requestLogOutput(),
	}))

	app.Use(authgate.New(authgate.Config{
		TokenValidator: tokenValidator{svc: auther.TokenService()},
		CookieName:     cfg.GetContextKey(),
		ContextKey:     cfg.GetContextKey(),
		OnInvalidToken: authgate.TreatAsAnonymous,
		ContextEnricher: func(ctx context.Context, claims authgate.AuthClaims) context.Context {
			if ac, ok := claims.(auth.AuthClaims); ok {
				return auth.WithClaimsContext(ctx, ac)
			}
			return ctx
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("home", fiber.Map{
			"metaTitle": "Stateless Authentication Example | Home",
		})
	})

	adminOnly := authgate.RequireRole(cfg.GetContextKey(), string(auth.RoleAdmin))
	auth.RegisterUserRoutes(app, ctrl, adminOnly)

	return app
}

func openDatabase(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func createSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*auth.User)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// requestLogOutput appends request logs to AUTH_LOG_FILE, falling back to
// stderr when the file cannot be opened.
func requestLogOutput() io.Writer {
	path := getenv("AUTH_LOG_FILE", "logs/requests.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("request log dir: %v", err)
		return os.Stderr
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("request log file: %v", err)
		return os.Stderr
	}
	return f
}

// seedAdmin registers a bootstrap administrator when credentials are set in
// the environment. Already-registered admins make this a no-op.
func seedAdmin(ctx context.Context, registrar *auth.RegisterUserHandler) {
	email := os.Getenv("AUTH_ADMIN_EMAIL")
	password := os.Getenv("AUTH_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	msg := auth.RegisterUserMessage{
		FirstName:   "System",
		LastName:    "Admin",
		Gender:      "other",
		DateOfBirth: "1970-01-01",
		Email:       email,
		Password:    password,
		Role:        string(auth.RoleAdmin),
		UseHashid:   true,
	}

	if err := registrar.Execute(ctx, msg); err != nil {
		log.Printf("admin seed: %v", err)
	}
}

func getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
