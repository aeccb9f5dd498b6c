package routes

import (
	"time"

	"stayhub/handlers"
	"stayhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router mounts.
type HandlerBundle struct {
	Session     *handlers.SessionHandler
	Reservation *handlers.ReservationHandler
	Location    *handlers.LocationHandler
	Admin       *handlers.AdminHandler
}

// RegisterRoutes mounts all endpoints.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	users := r.Group("/api/users")
	{
		users.POST("/register", hb.Session.RegisterHandler)
		users.POST("/login", hb.Session.LoginHandler)

		users.Use(middleware.JWTAuthMiddleware())
		users.POST("/logout", hb.Session.LogoutHandler)
		users.GET("/me", hb.Session.MeHandler)
	}

	locations := r.Group("/api/locations")
	{
		locations.GET("", hb.Location.ListLocationsHandler)
		locations.GET("/:id", hb.Location.GetLocationHandler)
		locations.GET("/:id/blocked-ranges", hb.Location.BlockedRangesHandler)
		locations.GET("/:id/rating", hb.Location.LocationRatingHandler)

		locations.Use(middleware.JWTAuthMiddleware())
		locations.POST("", hb.Location.CreateLocationHandler)
		locations.GET("/mine", hb.Location.MyLocationsHandler)
		locations.GET("/:id/reservations", hb.Location.LocationReservationsHandler)
	}

	reservations := r.Group("/api/reservations")
	reservations.Use(middleware.JWTAuthMiddleware())
	{
		reservations.POST("", hb.Reservation.CreateReservationHandler)
		reservations.GET("/mine", hb.Reservation.MyTripsHandler)
		reservations.GET("/:id", hb.Reservation.GetReservationHandler)
		reservations.PUT("/:id/state", hb.Reservation.TransitionHandler)
		reservations.PUT("/:id/rating/client", hb.Reservation.ClientRatingHandler)
		reservations.PUT("/:id/rating/host", hb.Reservation.HostRatingHandler)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnlyMiddleware())
	{
		admin.GET("/reservations", hb.Reservation.AllReservationsHandler)
		admin.GET("/users", hb.Admin.ListUsersHandler)
		admin.DELETE("/users/:id", hb.Admin.DeleteUserHandler)
	}
}
