package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/avicena/clinic-ops/internal/handler"    // import the handlers that implement business logic
    "github.com/avicena/clinic-ops/internal/middleware" // import middleware for JWT authentication and role enforcement
    "github.com/avicena/clinic-ops/internal/model"      // staff role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Map the GET request at path "/healthz" to the Health handler.  This
    // endpoint can be used by load balancers or monitoring systems to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Create a route group under the /v1/auth prefix for operations that do
    // not require an existing session (register, login, refresh).  Each of
    // these handlers is responsible for generating or exchanging tokens.
    g := e.Group("/v1/auth")
    // Register a POST endpoint to handle staff registration at /v1/auth/register.
    g.POST("/register", a.Register)
    // Register a POST endpoint to handle staff login at /v1/auth/login.
    g.POST("/login", a.Login)
    // Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // Register a POST endpoint to log out using a refresh token.  The
    // handler accepts a JSON body containing a `refresh_token` and will
    // invalidate that token; logout does not require JWT authentication.
    g.POST("/logout", a.Logout)

    // Create another group for routes that require a valid access token.
    // Any staff role may fetch its own profile.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist, model.RoleDoctor))
    // Register a GET endpoint at /v1/me that returns the authenticated staff member's information.
    auth.GET("/me", a.Me)
}

// RegisterQueue registers the daily waiting-line endpoints.  Check-in,
// reordering and removal are reception-side operations; starting and
// completing a consultation belongs to doctors; status listing and the
// administrative status patch are open to all staff roles.
func RegisterQueue(e *echo.Echo, q *handler.QueueHandler, jwtSecret string) {
    g := e.Group("/v1/queue")
    g.Use(middleware.JWTAuth(jwtSecret))

    reception := middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist)
    clinical := middleware.RequireRole(model.RoleAdmin, model.RoleDoctor)
    anyStaff := middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist, model.RoleDoctor)

    // Walk-in check-in appends to the end of the doctor's line.
    g.POST("/check-in", q.CheckIn, reception)
    // Priority check-in inserts a scheduled patient at the first waiting slot.
    g.POST("/priority-check-in", q.PriorityCheckIn, reception)
    // Live queue status for a doctor and day.
    g.GET("", q.Status, anyStaff)
    // Consultation lifecycle.
    g.POST("/:id/start", q.MarkStarted, clinical)
    g.POST("/:id/complete", q.MarkCompleted, clinical)
    // Administrative status correction (e.g. no-show).
    g.PATCH("/:id/status", q.UpdateStatus, anyStaff)
    // Manual reordering of a doctor's line.
    g.PUT("/order", q.Reorder, reception)
    // Remove an entry; the line behind it closes up.
    g.DELETE("/:id", q.Remove, reception)
}

// RegisterRegistry registers the patient and doctor directory routes.
// The doctor listing is public so that waiting-room displays and the
// booking site can browse it without a session.
func RegisterRegistry(e *echo.Echo, p *handler.PatientHandler, d *handler.DoctorHandler, jwtSecret string, public ...echo.MiddlewareFunc) {
    // Public doctor directory; optional middleware (e.g. response cache)
    // applies here only.
    e.GET("/v1/doctors", d.List, public...)
    e.GET("/v1/doctors/:id", d.Get, public...)

    admin := middleware.RequireRole(model.RoleAdmin)
    reception := middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist)

    dg := e.Group("/v1/doctors")
    dg.Use(middleware.JWTAuth(jwtSecret))
    dg.POST("", d.Create, admin)
    dg.PUT("/:id", d.Update, admin)

    pg := e.Group("/v1/patients")
    pg.Use(middleware.JWTAuth(jwtSecret))
    pg.POST("", p.Create, reception)
    pg.GET("", p.List, reception)
    pg.GET("/:id", p.Get, reception)
    pg.PUT("/:id", p.Update, reception)
}

// RegisterAppointments registers booking routes.  All of them require a
// staff session; the public booking site goes through reception.
func RegisterAppointments(e *echo.Echo, a *handler.AppointmentHandler, jwtSecret string) {
    g := e.Group("/v1/appointments")
    g.Use(middleware.JWTAuth(jwtSecret))

    reception := middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist)
    anyStaff := middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist, model.RoleDoctor)

    g.GET("/availability", a.Availability, anyStaff)
    g.POST("", a.Create, reception)
    g.GET("", a.List, anyStaff)
    g.GET("/:id", a.Get, anyStaff)
    g.POST("/:id/cancel", a.Cancel, reception)
}

// RegisterBilling registers bill settlement routes for the reception desk.
func RegisterBilling(e *echo.Echo, b *handler.BillingHandler, jwtSecret string) {
    g := e.Group("/v1/bills")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleReceptionist))

    g.GET("", b.List)
    g.POST("/:id/pay", b.Pay)
}
