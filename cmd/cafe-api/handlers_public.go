package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/catalog"
	"github.com/MikeMC777/cafe-demo/internal/chat"
	"github.com/MikeMC777/cafe-demo/internal/content"
	"github.com/MikeMC777/cafe-demo/internal/httpx"
	"github.com/MikeMC777/cafe-demo/internal/inquiry"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/order"
	"github.com/MikeMC777/cafe-demo/internal/reservation"
)

// bind decodes the JSON body into dst, answering 400 on failure.
func bind(c *gin.Context, log logger.Logger, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httpx.Fail(c, log, httpx.BadJSON(err))
		return false
	}
	return true
}

// healthHandler godoc
// @Summary Health check
// @Tags public
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthHandler(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": now().Format(time.RFC3339)})
	}
}

// listProductsHandler godoc
// @Summary Available products, optionally by category
// @Tags catalog
// @Param category query string false "category id"
// @Success 200 {array} catalog.Product
// @Router /products [get]
func listProductsHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Products(c.Request.Context(), strings.TrimSpace(c.Query("category")))
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// getProductHandler godoc
// @Summary Product by id
// @Tags catalog
// @Param id path int true "product id"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func getProductHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		p, err := svc.Product(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// listSpecialsHandler godoc
// @Summary Today's specials, highest discount first
// @Tags catalog
// @Success 200 {array} catalog.Special
// @Router /specials [get]
func listSpecialsHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.TodaySpecials(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// listCategoriesHandler godoc
// @Summary Product categories
// @Tags catalog
// @Success 200 {array} catalog.Category
// @Router /categories [get]
func listCategoriesHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Categories(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// createOrderHandler godoc
// @Summary Place an order
// @Tags orders
// @Accept json
// @Param body body order.CreateOrderRequest true "order"
// @Success 201 {object} order.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func createOrderHandler(svc *order.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if !bind(c, log, &req) {
			return
		}
		o, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// createReservationHandler godoc
// @Summary Book a table
// @Tags reservations
// @Accept json
// @Param body body reservation.CreateReservationRequest true "reservation"
// @Success 201 {object} reservation.Reservation
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func createReservationHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reservation.CreateReservationRequest
		if !bind(c, log, &req) {
			return
		}
		r, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}

// availabilityHandler godoc
// @Summary Half-hour slots of a day with their occupancy
// @Tags reservations
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} reservation.Availability
// @Router /reservations/availability/{date} [get]
func availabilityHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Availability(c.Request.Context(), c.Param("date"))
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// chatHandler godoc
// @Summary Ask the assistant
// @Tags chat
// @Accept json
// @Param body body chatRequest true "message"
// @Success 200 {object} map[string]string
// @Router /chat [post]
func chatHandler(r *chat.Resolver, now func() time.Time, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if !bind(c, log, &req) {
			return
		}
		reply, tier := r.Reply(c.Request.Context(), req.Message)
		status := "success"
		if tier == chat.TierError {
			status = "error"
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   reply,
			"timestamp": now().Format(time.RFC3339),
			"status":    status,
		})
	}
}

// chatStatusHandler godoc
// @Summary Assistant configuration
// @Tags chat
// @Success 200 {object} chat.Status
// @Router /chatbot/status [get]
func chatStatusHandler(r *chat.Resolver, model string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, r.Status(c.Request.Context(), model))
	}
}

// contactHandler godoc
// @Summary Send a contact message
// @Tags inquiries
// @Accept json
// @Param body body inquiry.ContactRequest true "message"
// @Success 201 {object} map[string]interface{}
// @Router /contact [post]
func contactHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inquiry.ContactRequest
		if !bind(c, log, &req) {
			return
		}
		m, err := svc.Contact(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Mensaje enviado correctamente", "id": m.ID})
	}
}

// subscribeHandler godoc
// @Summary Subscribe to the newsletter
// @Tags inquiries
// @Accept json
// @Param body body inquiry.SubscribeRequest true "subscriber"
// @Success 200 {object} inquiry.SubscribeResult
// @Failure 409 {object} map[string]string
// @Router /newsletter/subscribe [post]
func subscribeHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inquiry.SubscribeRequest
		if !bind(c, log, &req) {
			return
		}
		res, err := svc.Subscribe(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// applyHandler godoc
// @Summary Apply for a job
// @Tags inquiries
// @Accept json
// @Param body body inquiry.JobApplicationRequest true "application"
// @Success 201 {object} map[string]interface{}
// @Router /jobs/apply [post]
func applyHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inquiry.JobApplicationRequest
		if !bind(c, log, &req) {
			return
		}
		a, err := svc.Apply(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Aplicación enviada correctamente", "id": a.ID})
	}
}

// listNewsHandler godoc
// @Summary Published news
// @Tags content
// @Param featured_only query bool false "only featured"
// @Param limit query int false "max items (default 50)"
// @Success 200 {array} content.Article
// @Router /news [get]
func listNewsHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		featured := false
		if raw := c.Query("featured_only"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				httpx.Fail(c, log, apperr.Validation("Parámetro featured_only inválido"))
				return
			}
			featured = v
		}
		limit, err := httpx.QueryInt(c, "limit", 0)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		out, err := svc.News(c.Request.Context(), featured, limit)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// getNewsHandler godoc
// @Summary Published article by id
// @Tags content
// @Param id path int true "article id"
// @Success 200 {object} content.Article
// @Router /news/{id} [get]
func getNewsHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		a, err := svc.Article(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// pageContentHandler godoc
// @Summary Editable page texts
// @Tags content
// @Param page query string false "page"
// @Param section query string false "section"
// @Success 200 {array} content.Page
// @Router /content [get]
func pageContentHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Pages(c.Request.Context(), c.Query("page"), c.Query("section"))
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
