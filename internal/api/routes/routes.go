// server/internal/api/routes/routes.go
package routes

import (
	"log/slog"
	"net/http"
	"time"

	"station-request-api-server/config"
	"station-request-api-server/internal/api/handlers"
	"station-request-api-server/internal/api/middleware"
	"station-request-api-server/internal/auth"
	"station-request-api-server/internal/metrics"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/s3"
	"station-request-api-server/internal/session"
	"station-request-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the router wires into the handlers.
type Deps struct {
	Cfg      config.Config
	Station  *session.Station
	Source   repository.Source
	Tokens   *auth.TokenManager
	Hub      *socket.Hub
	Archiver *s3.Archiver
	Metrics  *metrics.Metrics
	Log      *slog.Logger
	Now      func() time.Time
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Hub != nil {
		d.Station.OnSessionEnd(d.Hub.CloseSession)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(d.Cfg.CORS.AllowOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if d.Cfg.Metrics.Enabled && d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	authHandler := &handlers.AuthHandler{Station: d.Station, Tokens: d.Tokens, Metrics: d.Metrics, Log: d.Log}
	navigationHandler := &handlers.NavigationHandler{Station: d.Station}
	workflowHandler := &handlers.WorkflowHandler{Station: d.Station, Source: d.Source, Log: d.Log}
	catalogHandler := &handlers.CatalogHandler{Source: d.Source, Log: d.Log}
	cartHandler := &handlers.CartHandler{Station: d.Station, Source: d.Source, Log: d.Log}
	requestHandler := &handlers.RequestHandler{
		Station:  d.Station,
		Source:   d.Source,
		Hub:      d.Hub,
		Archiver: d.Archiver,
		Metrics:  d.Metrics,
		Log:      d.Log,
		Now:      d.Now,
	}
	approvalHandler := &handlers.ApprovalHandler{Source: d.Source, Hub: d.Hub, Metrics: d.Metrics, Log: d.Log}
	stagingHandler := &handlers.StagingHandler{Station: d.Station, Source: d.Source, Log: d.Log}
	inventoryHandler := &handlers.InventoryHandler{Source: d.Source, Log: d.Log}
	webSocketHandler := &handlers.WebSocketHandler{Hub: d.Hub, Tokens: d.Tokens, Station: d.Station, Log: d.Log}

	authenticate := middleware.Authenticate(d.Tokens, d.Station)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)
		apiV1.GET("/navigate", navigationHandler.Navigate)
		apiV1.POST("/auth/login", authHandler.Login)

		protected := apiV1.Group("/")
		protected.Use(authenticate)
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.Me)

			protected.GET("/workflows", workflowHandler.ListWorkflows)
			protected.PUT("/workflows/active", workflowHandler.SetActiveWorkflow)

			protected.GET("/staging-areas", stagingHandler.ListStagingAreas)
			protected.GET("/staging-areas/:id/grid", stagingHandler.GetGrid)
			protected.GET("/inventory", inventoryHandler.GetInventory)
		}

		// Request creation and history: requester and dispatcher tablets.
		requester := apiV1.Group("/")
		requester.Use(authenticate, middleware.Authorize(models.RoleRequester, models.RoleDispatcher))
		{
			requester.GET("/materials", catalogHandler.ListMaterials)
			requester.GET("/containers", catalogHandler.ListContainers)

			cart := requester.Group("/cart")
			{
				cart.GET("", cartHandler.GetCart)
				cart.DELETE("", cartHandler.ClearCart)
				cart.POST("/items", cartHandler.AddItem)
				cart.PUT("/items/:id", cartHandler.UpdateItem)
				cart.DELETE("/items/:id", cartHandler.RemoveItem)
				cart.POST("/items/:id/step", cartHandler.StepItem)
				cart.POST("/selection", cartHandler.ReplaceSelection)
				cart.PUT("/containers", cartHandler.SetContainers)
				cart.DELETE("/containers", cartHandler.ClearContainers)
				cart.PUT("/return-trolley", cartHandler.SetReturnTrolley)
			}

			requests := requester.Group("/requests")
			{
				requests.GET("", requestHandler.ListRequests)
				requests.GET("/counts", requestHandler.Counts)
				requests.POST("/material", requestHandler.SubmitMaterial)
				requests.POST("/container", requestHandler.SubmitContainer)
				requests.POST("/return-trolley", requestHandler.SubmitReturnTrolley)
			}
		}

		approvals := apiV1.Group("/approvals")
		approvals.Use(authenticate, middleware.Authorize(models.RoleApprover))
		{
			approvals.GET("", approvalHandler.ListApprovals)
			approvals.POST("/:id/approve", approvalHandler.Approve)
			approvals.POST("/:id/reject", approvalHandler.Reject)
		}
	}

	return router
}

// corsConfig allows every origin when origins is empty or contains "*";
// credentials are only allowed for an explicit origin list.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
