package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Mostafalol1233/resturant/app/auth"
	"github.com/Mostafalol1233/resturant/app/categories"
	"github.com/Mostafalol1233/resturant/app/dashboard"
	"github.com/Mostafalol1233/resturant/app/inventory"
	"github.com/Mostafalol1233/resturant/app/notifications"
	"github.com/Mostafalol1233/resturant/app/orders"
	"github.com/Mostafalol1233/resturant/app/products"
	"github.com/Mostafalol1233/resturant/app/restaurant"
	"github.com/Mostafalol1233/resturant/backup"
	"github.com/Mostafalol1233/resturant/config"
	"github.com/Mostafalol1233/resturant/models"
)

type Server struct {
	cfg *config.Config
	db  *gorm.DB
	srv *http.Server
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	return &Server{
		cfg: cfg,
		db:  db,
	}
}

// Run wires the routes, starts the HTTP server and the backup scheduler, and
// blocks until a shutdown signal drains in-flight requests.
func (s *Server) Run() error {
	blobs, err := backup.NewLocalBlobStore(s.cfg.BackupDir)
	if err != nil {
		return fmt.Errorf("failed to prepare backup storage: %w", err)
	}

	backupService := backup.NewService(backup.Repos{
		Restaurant: models.NewRestaurantRepository(s.db),
		Categories: models.NewCategoriesRepository(s.db),
		Products:   models.NewProductsRepository(s.db),
		Orders:     models.NewOrdersRepository(s.db),
		Inventory:  models.NewInventoryRepository(s.db),
	}, blobs)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.cfg.Port),
		Handler: s.router(backupService),
	}

	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(func() error {
		log.Printf("server started and is listening at port %s...", s.cfg.Port)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	errGrp.Go(func() error {
		backupService.RunScheduler(shutdownCtx, s.cfg.BackupInterval, s.cfg.BackupKeep)
		return nil
	})

	errGrp.Go(func() error {
		<-shutdownCtx.Done()
		log.Println("server is gracefully shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server failed to shut down gracefully: %w", err)
		}
		return nil
	})

	if err := errGrp.Wait(); err != nil {
		return err
	}
	log.Println("all pending requests completed, server has shut down")
	return nil
}

func (s *Server) router(backupService *backup.Service) *chi.Mux {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.StripSlashes)

	usersRepo := models.NewUsersRepository(s.db)
	productsRepo := models.NewProductsRepository(s.db)
	categoriesRepo := models.NewCategoriesRepository(s.db)
	ordersRepo := models.NewOrdersRepository(s.db)
	inventoryRepo := models.NewInventoryRepository(s.db)
	analyticsRepo := models.NewAnalyticsRepository(s.db)
	notificationsRepo := models.NewNotificationsRepository(s.db)
	restaurantRepo := models.NewRestaurantRepository(s.db)

	authHandler := auth.NewAuthHandler(usersRepo, auth.NewMemoryStore(), s.cfg.SessionTTL)
	productsHandler := products.NewProductsHandler(productsRepo)
	categoriesHandler := categories.NewCategoryHandler(categoriesRepo)
	ordersHandler := orders.NewOrdersHandler(ordersRepo)
	inventoryHandler := inventory.NewInventoryHandler(inventoryRepo)
	dashboardHandler := dashboard.NewDashboardHandler(analyticsRepo, productsRepo)
	notificationsHandler := notifications.NewNotificationsHandler(notificationsRepo)
	restaurantHandler := restaurant.NewRestaurantHandler(restaurantRepo)
	backupHandler := backup.NewBackupHandler(backupService)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Post("/auto-login", authHandler.HandleAutoLogin)

		// Everything below requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(authHandler.RequireAuth)

			r.Get("/auth/user", authHandler.HandleCurrentUser)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productsHandler.HandleGetAll)
				r.Post("/", productsHandler.HandleCreate)
				r.Get("/low-stock", productsHandler.HandleGetLowStock)
				r.Get("/{id}", productsHandler.HandleGet)
				r.Put("/{id}", productsHandler.HandleUpdate)
				r.Delete("/{id}", productsHandler.HandleDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoriesHandler.HandleGetAll)
				r.Post("/", categoriesHandler.HandleCreate)
				r.Put("/{id}", categoriesHandler.HandleUpdate)
				r.Delete("/{id}", categoriesHandler.HandleDelete)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordersHandler.HandleGetAll)
				r.Post("/", ordersHandler.HandleCreate)
				r.Get("/{id}", ordersHandler.HandleGet)
				r.Put("/{id}/status", ordersHandler.HandleUpdateStatus)
				r.Delete("/{id}", ordersHandler.HandleDelete)
			})

			r.Route("/inventory/transactions", func(r chi.Router) {
				r.Get("/", inventoryHandler.HandleGetAll)
				r.Post("/", inventoryHandler.HandleCreate)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.HandleGetStats)
				r.Get("/top-products", dashboardHandler.HandleGetTopProducts)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationsHandler.HandleGetAll)
				r.Post("/", notificationsHandler.HandleCreate)
				r.Put("/{id}/read", notificationsHandler.HandleMarkRead)
			})

			r.Route("/restaurant", func(r chi.Router) {
				r.Get("/", restaurantHandler.HandleGet)
				r.Post("/", restaurantHandler.HandleCreate)
				r.Put("/", restaurantHandler.HandleUpdate)
			})

			r.Route("/backup", func(r chi.Router) {
				r.Post("/create", backupHandler.HandleCreate)
				r.Get("/list", backupHandler.HandleList)
				r.Post("/restore/{fileName}", backupHandler.HandleRestore)
				r.Get("/download/{fileName}", backupHandler.HandleDownload)
				r.Delete("/delete/{fileName}", backupHandler.HandleDelete)
			})
		})
	})

	return router
}
