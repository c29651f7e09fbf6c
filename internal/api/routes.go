package api

import (
	"alcyxob/gym-admin/internal/metrics"
	"alcyxob/gym-admin/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Plans     service.PlanService
	Content   service.ContentService
	Meetings  service.MeetingService
	Payments  service.PaymentService
	Dashboard service.DashboardService
}

// SetupRoutes registers middleware and every endpoint on router. gatherer
// backs /metrics; pass nil to leave the endpoint out.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	svc Services,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	planHandler := NewPlanHandler(svc.Plans)
	contentHandler := NewContentHandler(svc.Content)
	meetingHandler := NewMeetingHandler(svc.Meetings)
	paymentHandler := NewPaymentHandler(svc.Payments)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)

	router.Use(RequestLogger(logger), MetricsMiddleware(m))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret), RoleMiddleware(service.AdminRole))
	{
		protected.GET("/dashboard", dashboardHandler.GetDashboard)

		users := protected.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/workouts", userHandler.GetProgress)
			users.POST("/:id/workouts", userHandler.LogWorkout)
		}

		plans := protected.Group("/plans")
		{
			plans.GET("", planHandler.ListPlans)
			plans.POST("", planHandler.CreatePlan)
			plans.GET("/:id", planHandler.GetPlan)
			plans.PUT("/:id", planHandler.UpdatePlan)
			plans.DELETE("/:id", planHandler.DeletePlan)
		}

		content := protected.Group("/content")
		{
			content.GET("", contentHandler.ListContent)
			content.POST("", contentHandler.CreateContent)
			// Static segment, registered alongside /:id.
			content.POST("/thumbnail-upload-url", contentHandler.RequestThumbnailUpload)
			content.GET("/:id", contentHandler.GetContent)
			content.DELETE("/:id", contentHandler.DeleteContent)
		}

		meetings := protected.Group("/meetings")
		{
			meetings.GET("", meetingHandler.ListMeetings)
			meetings.POST("", meetingHandler.CreateMeeting)
			meetings.GET("/upcoming", meetingHandler.UpcomingMeetings)
			meetings.GET("/:id", meetingHandler.GetMeeting)
			meetings.DELETE("/:id", meetingHandler.DeleteMeeting)
		}

		payments := protected.Group("/payments")
		{
			payments.GET("", paymentHandler.ListPayments)
			payments.POST("", paymentHandler.SubmitPayment)
			payments.GET("/:id", paymentHandler.GetPayment)
			payments.PUT("/:id", paymentHandler.UpdatePayment)
			payments.POST("/:id/approve", paymentHandler.ApprovePayment)
			payments.POST("/:id/reject", paymentHandler.RejectPayment)
		}
	}
}

// WithCORS wraps the router for browser access from the console origins.
// An empty list allows any origin.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	}).Handler(h)
}
