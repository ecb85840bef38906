package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files in development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/avicena/clinic-ops/internal/config"     // Internal config loader
    "github.com/avicena/clinic-ops/internal/database"   // MySQL connection setup
    "github.com/avicena/clinic-ops/internal/event"      // Queue event consumer
    "github.com/avicena/clinic-ops/internal/handler"    // HTTP handlers
    "github.com/avicena/clinic-ops/internal/middleware" // Rate limiting and response caching
    "github.com/avicena/clinic-ops/internal/repository" // Data access layer
    "github.com/avicena/clinic-ops/internal/router"     // Route registration
)

func main() {
    // Load the local .env if present; in production the environment is
    // injected by the deployment and the file simply does not exist.
    _ = godotenv.Load()

    cfg := config.Load()   // Load environment config
    loc := cfg.Location()  // Clinic timezone for day boundaries

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    defer db.Close()

    // Redis is optional: when unreachable, rate limiting and response
    // caching are simply disabled.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and caching disabled")
    }

    // Repositories
    queueRepo := repository.NewQueueEntryRepo(db)
    apptRepo := repository.NewAppointmentRepo(db)
    patientRepo := repository.NewPatientRepo(db)
    doctorRepo := repository.NewDoctorRepo(db)
    billRepo := repository.NewBillRepo(db)
    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)

    // Handlers
    authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
    queueH := handler.NewQueueHandler(queueRepo, apptRepo, doctorRepo, patientRepo, billRepo, loc)
    patientH := handler.NewPatientHandler(patientRepo)
    doctorH := handler.NewDoctorHandler(doctorRepo)
    apptH := handler.NewAppointmentHandler(apptRepo, patientRepo, doctorRepo, loc)
    billingH := handler.NewBillingHandler(billRepo, queueRepo, apptRepo)

    e := echo.New() // Create Echo instance
    e.HideBanner = true

    // Cross-cutting middleware: token-bucket rate limiting on every
    // route, response caching only on the public doctor directory.
    var publicCache []echo.MiddlewareFunc
    if rdb != nil {
        e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
        publicCache = append(publicCache, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    }

    // Routes
    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterQueue(e, queueH, cfg.JWTSecret)
    router.RegisterRegistry(e, patientH, doctorH, cfg.JWTSecret, publicCache...)
    router.RegisterAppointments(e, apptH, cfg.JWTSecret)
    router.RegisterBilling(e, billingH, cfg.JWTSecret)

    // Background consumer mirrors queue lifecycle events to the local
    // audit log; it reconnects on broker failure.
    go func() {
        if err := event.StartQueueConsumer(); err != nil {
            log.Printf("queue consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
