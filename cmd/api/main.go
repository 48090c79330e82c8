package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"github.com/casastock/casastock-backend/internal/config"
	"github.com/casastock/casastock-backend/internal/modules/auth"
	"github.com/casastock/casastock-backend/internal/modules/batch"
	"github.com/casastock/casastock-backend/internal/modules/billing"
	"github.com/casastock/casastock-backend/internal/modules/capital"
	"github.com/casastock/casastock-backend/internal/modules/catalog"
	"github.com/casastock/casastock-backend/internal/modules/expense"
	"github.com/casastock/casastock-backend/internal/modules/ledger"
	"github.com/casastock/casastock-backend/internal/modules/order"
	"github.com/casastock/casastock-backend/internal/modules/product"
	"github.com/casastock/casastock-backend/internal/modules/profile"
	"github.com/casastock/casastock-backend/internal/modules/report"
	"github.com/casastock/casastock-backend/internal/modules/upload"
	"github.com/casastock/casastock-backend/internal/modules/user"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Ledger core ─────────────────────────────────────────
	store := ledger.NewPostgresStore(db)
	engine := ledger.NewEngine(store)

	// ── Identity ────────────────────────────────────────────
	profileRepo := profile.NewPostgresRepository(db)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, profileRepo)

	authService := auth.NewService(userRepo, []byte(cfg.JWTSecret))

	// ── Billing ─────────────────────────────────────────────
	gateway := billing.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)
	billingRepo := billing.NewPostgresRepository(db)
	billingService := billing.NewService(billingRepo, gateway, cfg.RazorpayKeyID, cfg.RazorpayPlanID)
	billingHandler := billing.NewHandler(billingService)

	// ── Public routes ───────────────────────────────────────
	user.NewHandler(userService).RegisterRoutes(router)
	auth.NewHandler(authService).RegisterRoutes(router)
	billingHandler.RegisterWebhook(router)

	productRepo := product.NewPostgresRepository(db)
	catalogService := catalog.NewService(profileRepo, productRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	storage := upload.NewDiskStorage(cfg.UploadDir, cfg.UploadBaseURL)
	router.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	// ── Session-bound, before the subscription gate ─────────
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authService))
		billingHandler.RegisterRoutes(r)
	})

	// ── Session-bound, behind the subscription gate ─────────
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authService))
		r.Use(billing.RequireActiveSubscription(billingService))

		batchRepo := batch.NewPostgresRepository(db)
		batch.NewHandler(batch.NewService(batchRepo)).RegisterRoutes(r)

		product.NewHandler(product.NewService(engine, productRepo)).RegisterRoutes(r)

		orderRepo := order.NewPostgresRepository(db)
		order.NewHandler(order.NewService(engine, orderRepo)).RegisterRoutes(r)

		expenseRepo := expense.NewPostgresRepository(db)
		expense.NewHandler(expense.NewService(engine, expenseRepo)).RegisterRoutes(r)

		capitalRepo := capital.NewPostgresRepository(db)
		capital.NewHandler(capital.NewService(engine, capitalRepo)).RegisterRoutes(r)

		reportRepo := report.NewPostgresRepository(db)
		report.NewHandler(report.NewService(reportRepo)).RegisterRoutes(r)

		profile.NewHandler(profile.NewService(profileRepo)).RegisterRoutes(r)

		upload.NewHandler(storage).RegisterRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	fmt.Printf("CasaStock API server starting on :%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
