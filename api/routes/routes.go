package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
	"github.com/nayanchoudhary31/raffle-service/internal/handlers"
	"github.com/nayanchoudhary31/raffle-service/internal/middleware"
)

// HandlerDependencies bundles the constructed handlers for SetupRouter
type HandlerDependencies struct {
	RaffleHandler *handlers.RaffleHandler
	VRFHandler    *handlers.VRFHandler
	EventHandler  *handlers.EventHandler
	AuthHandler   *handlers.AuthHandler
	AdminHandler  *handlers.AdminHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps *HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Raffle routes
		raffle := public.Group("/raffle")
		{
			raffle.GET("", deps.RaffleHandler.GetRaffle)
			raffle.POST("/entries", middleware.RateLimitMiddleware(cfg), deps.RaffleHandler.Enter)

			// The upkeep pair is deliberately public: trigger networks and
			// keepers race on it, the round gate arbitrates.
			raffle.GET("/upkeep", deps.RaffleHandler.CheckUpkeep)
			raffle.POST("/upkeep", deps.RaffleHandler.PerformUpkeep)

			raffle.GET("/participants", deps.RaffleHandler.GetParticipants)
			raffle.GET("/participants/:index", deps.RaffleHandler.GetParticipant)
			raffle.GET("/winner", deps.RaffleHandler.GetLastWinner)
			raffle.GET("/winners", deps.EventHandler.GetWinners)
			raffle.GET("/events", deps.EventHandler.GetEvents)
			raffle.GET("/events/stream", deps.EventHandler.StreamEvents)
		}

		// Randomness coordinator callback
		vrf := public.Group("/vrf")
		{
			vrf.POST("/fulfillments", deps.VRFHandler.HandleFulfillment)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1/admin")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		raffle := protected.Group("/raffle")
		{
			raffle.POST("/reopen", deps.AdminHandler.ForceReopen)
			raffle.POST("/payout/retry", deps.AdminHandler.RetryPayout)
		}
	}

	return router
}
