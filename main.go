package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"spendbook/backend/config"
	"spendbook/backend/database"
	"spendbook/backend/handlers"
	"spendbook/backend/middleware"
	"spendbook/backend/repository"
	"spendbook/backend/services"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "Run database migrations and exit")
	flag.Parse()

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := database.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	if *migrateOnly {
		log.Println("Migrations completed successfully. Exiting.")
		return
	}

	categories := repository.NewCategories(db)
	expenses := repository.NewExpenses(db)
	users := repository.NewUsers(db)

	invoices := services.NewInvoiceStore(cfg.InvoiceUploadDir)
	categoryService := services.NewCategoryService(categories, logger)
	expenseService := services.NewExpenseService(expenses, categories, invoices, logger)

	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	r := mux.NewRouter()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	registerRoutes(r, categoryHandler, expenseHandler, users)

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Starting server on port %s...", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes. Expense routes require an
// authenticated user; category routes do not.
func registerRoutes(r *mux.Router, ch *handlers.CategoryHandler, eh *handlers.ExpenseHandler, users repository.UserRepository) {
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Category routes
	r.HandleFunc("/categories", ch.Create).Methods("POST")
	r.HandleFunc("/categories", ch.List).Methods("GET")
	r.HandleFunc("/categories/active", ch.ListActive).Methods("GET")
	r.HandleFunc("/categories/by-name/{name}", ch.GetByName).Methods("GET")
	r.HandleFunc("/categories/{id}", ch.Get).Methods("GET")
	r.HandleFunc("/categories/{id}", ch.Update).Methods("PUT")
	r.HandleFunc("/categories/{id}", ch.MarkInactive).Methods("PATCH")

	// Protected expense routes
	protected := r.PathPrefix("/expenses").Subrouter()
	protected.Use(middleware.Auth(users))
	protected.HandleFunc("", eh.Create).Methods("POST")
	protected.HandleFunc("", eh.List).Methods("GET")
	protected.HandleFunc("/{id}", eh.Get).Methods("GET")
	protected.HandleFunc("/{id}", eh.Update).Methods("PUT")
	protected.HandleFunc("/{id}", eh.Delete).Methods("DELETE")
}
