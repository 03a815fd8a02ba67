package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/cafe-demo/docs"
	"github.com/MikeMC777/cafe-demo/internal/auth"
	"github.com/MikeMC777/cafe-demo/internal/catalog"
	"github.com/MikeMC777/cafe-demo/internal/chat"
	"github.com/MikeMC777/cafe-demo/internal/content"
	"github.com/MikeMC777/cafe-demo/internal/httpx"
	"github.com/MikeMC777/cafe-demo/internal/inquiry"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/order"
	"github.com/MikeMC777/cafe-demo/internal/reservation"
)

// app carries the services the routes are built from.
type app struct {
	log           logger.Logger
	catalog       *catalog.Service
	orders        *order.Service
	reservations  *reservation.Service
	notifications *notification.Service
	inquiries     *inquiry.Service
	content       *content.Service
	chat          *chat.Resolver
	chatModel     string
	auth          *auth.Service
	limiter       httpx.Limiter // nil disables the chat rate limit
	origins       []string
	proxies       []string // empty trusts no X-Forwarded-For
	now           func() time.Time
}

func newRouter(a *app) *gin.Engine {
	if a.now == nil {
		a.now = time.Now
	}
	r := gin.New()
	if err := r.SetTrustedProxies(a.proxies); err != nil {
		a.log.WithError(err).Error("invalid trusted proxies, trusting none", map[string]interface{}{"proxies": a.proxies})
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(a.log), httpx.Metrics())
	if len(a.origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     a.origins,
			AllowWildcard:    true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", healthHandler(a.now))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// public storefront
	r.GET("/products", listProductsHandler(a.catalog, a.log))
	r.GET("/products/:id", getProductHandler(a.catalog, a.log))
	r.GET("/specials", listSpecialsHandler(a.catalog, a.log))
	r.GET("/categories", listCategoriesHandler(a.catalog, a.log))
	r.POST("/orders", createOrderHandler(a.orders, a.log))
	r.POST("/reservations", createReservationHandler(a.reservations, a.log))
	r.GET("/reservations/availability/:date", availabilityHandler(a.reservations, a.log))
	r.POST("/contact", contactHandler(a.inquiries, a.log))
	r.POST("/newsletter/subscribe", subscribeHandler(a.inquiries, a.log))
	r.POST("/jobs/apply", applyHandler(a.inquiries, a.log))
	r.GET("/news", listNewsHandler(a.content, a.log))
	r.GET("/news/:id", getNewsHandler(a.content, a.log))
	r.GET("/content", pageContentHandler(a.content, a.log))

	chatChain := []gin.HandlerFunc{}
	if a.limiter != nil {
		chatChain = append(chatChain, httpx.RateLimit(a.limiter, a.log))
	}
	chatChain = append(chatChain, chatHandler(a.chat, a.now, a.log))
	r.POST("/chat", chatChain...)
	r.GET("/chatbot/status", chatStatusHandler(a.chat, a.chatModel))

	r.POST("/admin/login", loginHandler(a.auth, a.log))

	adm := r.Group("/admin", httpx.RequireAdmin(a.auth))
	{
		adm.GET("/dashboard", dashboardHandler(a.catalog, a.log))

		adm.GET("/products", adminListProductsHandler(a.catalog, a.log))
		adm.POST("/products", createProductHandler(a.catalog, a.log))
		adm.PUT("/products/:id", updateProductHandler(a.catalog, a.log))
		adm.DELETE("/products/:id", deleteProductHandler(a.catalog, a.log))

		adm.GET("/categories", listCategoriesHandler(a.catalog, a.log))
		adm.POST("/categories", createCategoryHandler(a.catalog, a.log))
		adm.PUT("/categories/:id", updateCategoryHandler(a.catalog, a.log))
		adm.DELETE("/categories/:id", deleteCategoryHandler(a.catalog, a.log))

		adm.GET("/specials", adminListSpecialsHandler(a.catalog, a.log))
		adm.POST("/specials", createSpecialHandler(a.catalog, a.log))
		adm.DELETE("/specials/:id", deleteSpecialHandler(a.catalog, a.log))

		adm.GET("/orders", listOrdersHandler(a.orders, a.log))
		adm.GET("/orders/stats", orderStatsHandler(a.orders, a.log))
		adm.GET("/orders/:id", getOrderHandler(a.orders, a.log))
		adm.PUT("/orders/:id/status", updateOrderStatusHandler(a.orders, a.log))
		adm.DELETE("/orders/:id", deleteOrderHandler(a.orders, a.log))

		adm.GET("/reservations", listReservationsHandler(a.reservations, a.log))
		adm.GET("/reservations/stats", reservationStatsHandler(a.reservations, a.log))
		adm.GET("/reservations/:id", getReservationHandler(a.reservations, a.log))
		adm.PUT("/reservations/:id/status", updateReservationStatusHandler(a.reservations, a.log))
		adm.PUT("/reservations/:id", updateReservationHandler(a.reservations, a.log))
		adm.DELETE("/reservations/:id", deleteReservationHandler(a.reservations, a.log))

		adm.GET("/notifications", listNotificationsHandler(a.notifications, a.log))
		adm.GET("/notifications/unread", unreadNotificationsHandler(a.notifications, a.log))
		adm.PUT("/notifications/mark-all-read", markAllReadHandler(a.notifications, a.log))
		adm.PUT("/notifications/:id/read", markReadHandler(a.notifications, a.log))
		adm.DELETE("/notifications/clear-all", clearNotificationsHandler(a.notifications, a.log))
		adm.DELETE("/notifications/:id", deleteNotificationHandler(a.notifications, a.log))

		adm.GET("/contacts", listContactsHandler(a.inquiries, a.log))
		adm.DELETE("/contacts/:id", deleteContactHandler(a.inquiries, a.log))
		adm.GET("/newsletter/subscribers", listSubscribersHandler(a.inquiries, a.log))
		adm.DELETE("/newsletter/subscribers/:id", deleteSubscriberHandler(a.inquiries, a.log))
		adm.POST("/newsletter/send", sendNewsletterHandler(a.inquiries, a.log))
		adm.GET("/job-applications", listApplicationsHandler(a.inquiries, a.log))
		adm.DELETE("/job-applications/:id", deleteApplicationHandler(a.inquiries, a.log))

		adm.GET("/news", adminListNewsHandler(a.content, a.log))
		adm.POST("/news", createNewsHandler(a.content, a.log))
		adm.PUT("/news/:id", updateNewsHandler(a.content, a.log))
		adm.DELETE("/news/:id", deleteNewsHandler(a.content, a.log))
		adm.GET("/content", pageContentHandler(a.content, a.log))
		adm.POST("/content", createPageHandler(a.content, a.log))
		adm.PUT("/content/:id", updatePageHandler(a.content, a.log))
		adm.DELETE("/content/:id", deletePageHandler(a.content, a.log))
	}
	return r
}
