package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/cart"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/config"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/httpx"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/images"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/kafkax"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/menu"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/postgres"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/ratings"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/redisx"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/session"
	"github.com/ariefcatur/go-restaurant-orders.git/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	placedProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	placedProd.Start(ctx)
	statusProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	statusProd.Start(ctx)

	// Repos & shared state
	menuRepo := &menu.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	ratingRepo := &ratings.Repo{DB: db}
	userRepo := &users.Repo{DB: db}
	carts := cart.NewStore()
	imageStore := &images.Store{Dir: cfg.ImagesDir}
	sessions := session.NewManager(cfg.JWTSecret)

	// Handlers
	ah := &httpx.AuthHandler{
		Users:         userRepo,
		Sessions:      sessions,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}
	mh := &httpx.MenuHandler{Repo: menuRepo, Images: imageStore}
	ch := &httpx.CartHandler{Menu: menuRepo, Carts: carts}
	oh := &httpx.OrdersHandler{
		Repo:           orderRepo,
		Carts:          carts,
		PlacedProducer: placedProd,
		StatusProducer: statusProd,
		Redis:          rdb,
		Service:        cfg.ServiceName,
	}
	rh := &httpx.RatingsHandler{Ratings: ratingRepo, Orders: orderRepo}
	ph := &httpx.ProfileHandler{Users: userRepo}

	router := httpx.NewRouter()
	ah.Register(router)
	router.Group(func(g chi.Router) {
		g.Use(httpx.Auth(sessions))
		mh.Register(g)
		ch.Register(g)
		oh.Register(g)
		rh.Register(g)
		ph.Register(g)
	})
	router.Group(func(g chi.Router) {
		g.Use(httpx.Auth(sessions), httpx.RequireAdmin)
		mh.RegisterAdmin(g)
		oh.RegisterAdmin(g)
	})

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	placedProd.Close()
	statusProd.Close()
	cancel()
	placedProd.WaitClosed()
	statusProd.WaitClosed()
}
