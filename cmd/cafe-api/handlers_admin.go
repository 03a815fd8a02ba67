package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/cafe-demo/internal/auth"
	"github.com/MikeMC777/cafe-demo/internal/catalog"
	"github.com/MikeMC777/cafe-demo/internal/content"
	"github.com/MikeMC777/cafe-demo/internal/httpx"
	"github.com/MikeMC777/cafe-demo/internal/inquiry"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/notification"
	"github.com/MikeMC777/cafe-demo/internal/order"
	"github.com/MikeMC777/cafe-demo/internal/reservation"
)

type adminUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResponse struct {
	*auth.Token
	User adminUser `json:"user"`
}

// loginHandler godoc
// @Summary Administrator login
// @Tags admin
// @Accept json
// @Param body body auth.Credentials true "credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func loginHandler(svc *auth.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.Credentials
		if !bind(c, log, &req) {
			return
		}
		tok, err := svc.Login(req)
		if err != nil {
			log.Warn("admin login rejected", map[string]interface{}{"rid": httpx.RID(c), "ip": c.ClientIP()})
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, loginResponse{Token: tok, User: adminUser{Username: req.Username, Role: "admin"}})
	}
}

// dashboardHandler godoc
// @Summary Catalog counters
// @Tags admin
// @Security BearerAuth
// @Success 200 {object} catalog.DashboardStats
// @Router /admin/dashboard [get]
func dashboardHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Dashboard(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// ---- catalog ----

func adminListProductsHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.AllProducts(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// createProductHandler godoc
// @Summary Create a product
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param body body catalog.ProductRequest true "product"
// @Success 201 {object} catalog.Product
// @Router /admin/products [post]
func createProductHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.ProductRequest
		if !bind(c, log, &req) {
			return
		}
		p, err := svc.CreateProduct(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		var req catalog.ProductRequest
		if !bind(c, log, &req) {
			return
		}
		p, err := svc.UpdateProduct(c.Request.Context(), id, req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.DeleteProduct(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado exitosamente"})
	}
}

func createCategoryHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CategoryRequest
		if !bind(c, log, &req) {
			return
		}
		cat, err := svc.CreateCategory(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func updateCategoryHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CategoryRequest
		if !bind(c, log, &req) {
			return
		}
		cat, err := svc.UpdateCategory(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// deleteCategoryHandler godoc
// @Summary Delete a category not referenced by any product
// @Tags admin
// @Security BearerAuth
// @Param id path string true "category id"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/categories/{id} [delete]
func deleteCategoryHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Categoría eliminada exitosamente"})
	}
}

func adminListSpecialsHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.AllSpecials(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func createSpecialHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.SpecialRequest
		if !bind(c, log, &req) {
			return
		}
		sp, err := svc.CreateSpecial(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, sp)
	}
}

func deleteSpecialHandler(svc *catalog.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.DeleteSpecial(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Especial eliminado exitosamente"})
	}
}

// ---- orders ----

// listOrdersHandler godoc
// @Summary Orders, newest first
// @Tags admin
// @Security BearerAuth
// @Param limit query int false "max items (default 100)"
// @Success 200 {array} order.Order
// @Router /admin/orders [get]
func listOrdersHandler(svc *order.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := httpx.QueryInt(c, "limit", 0)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		out, err := svc.List(c.Request.Context(), limit)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getOrderHandler(svc *order.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		o, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// updateOrderStatusHandler godoc
// @Summary Change an order's status
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path int true "order id"
// @Param body body order.StatusRequest true "status"
// @Success 200 {object} map[string]interface{}
// @Router /admin/orders/{id}/status [put]
func updateOrderStatusHandler(svc *order.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		var req order.StatusRequest
		if !bind(c, log, &req) {
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Estado del pedido #%d actualizado", id), "status": req.Status})
	}
}

func deleteOrderHandler(svc *order.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Pedido #%d eliminado exitosamente", id)})
	}
}

func orderStatsHandler(svc *order.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Stats(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// ---- reservations ----

func listReservationsHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := httpx.QueryInt(c, "limit", 0)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		out, err := svc.List(c.Request.Context(), limit)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getReservationHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		r, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func updateReservationStatusHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		var req reservation.StatusRequest
		if !bind(c, log, &req) {
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Estado de la reserva #%d actualizado", id), "status": req.Status})
	}
}

// updateReservationHandler godoc
// @Summary Partial reservation update
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path int true "reservation id"
// @Param body body reservation.UpdateReservationRequest true "fields to change"
// @Success 200 {object} reservation.Reservation
// @Router /admin/reservations/{id} [put]
func updateReservationHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		var req reservation.UpdateReservationRequest
		if !bind(c, log, &req) {
			return
		}
		r, err := svc.Update(c.Request.Context(), id, req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

func deleteReservationHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Reserva #%d eliminada exitosamente", id)})
	}
}

func reservationStatsHandler(svc *reservation.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Stats(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// ---- notifications ----

// listNotificationsHandler godoc
// @Summary Admin inbox, newest first
// @Tags admin
// @Security BearerAuth
// @Param limit query int false "max items (default 50)"
// @Success 200 {array} notification.Notification
// @Router /admin/notifications [get]
func listNotificationsHandler(svc *notification.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := httpx.QueryInt(c, "limit", 50)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		out, err := svc.List(c.Request.Context(), limit)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// unreadNotificationsHandler godoc
// @Summary Unread notification counts by type
// @Tags admin
// @Security BearerAuth
// @Success 200 {object} notification.UnreadSummary
// @Router /admin/notifications/unread [get]
func unreadNotificationsHandler(svc *notification.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := svc.Unread(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

func markReadHandler(svc *notification.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.MarkRead(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notificación marcada como leída", "id": id})
	}
}

func markAllReadHandler(svc *notification.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.MarkAllRead(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d notificaciones marcadas como leídas", n), "count": n})
	}
}

func deleteNotificationHandler(svc *notification.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notificación eliminada exitosamente"})
	}
}

func clearNotificationsHandler(svc *notification.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.ClearAll(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d notificaciones eliminadas", n), "count": n})
	}
}

// ---- inquiries ----

func listContactsHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Contacts(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteContactHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.DeleteContact(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Mensaje eliminado exitosamente"})
	}
}

func listSubscribersHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Subscribers(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteSubscriberHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.Unsubscribe(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Suscriptor desactivado exitosamente"})
	}
}

// sendNewsletterHandler godoc
// @Summary Queue the newsletter for every active subscriber
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param body body inquiry.NewsletterRequest true "newsletter"
// @Success 200 {object} inquiry.SendResult
// @Router /admin/newsletter/send [post]
func sendNewsletterHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inquiry.NewsletterRequest
		if !bind(c, log, &req) {
			return
		}
		res, err := svc.SendNewsletter(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func listApplicationsHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Applications(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteApplicationHandler(svc *inquiry.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.DeleteApplication(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Aplicación eliminada exitosamente"})
	}
}

// ---- content ----

func adminListNewsHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.AllNews(c.Request.Context())
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func createNewsHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req content.ArticleRequest
		if !bind(c, log, &req) {
			return
		}
		a, err := svc.CreateArticle(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

func updateNewsHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		var req content.ArticleRequest
		if !bind(c, log, &req) {
			return
		}
		a, err := svc.UpdateArticle(c.Request.Context(), id, req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func deleteNewsHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		if err := svc.DeleteArticle(c.Request.Context(), id); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Noticia eliminada exitosamente"})
	}
}

func createPageHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req content.PageRequest
		if !bind(c, log, &req) {
			return
		}
		p, err := svc.CreatePage(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updatePageHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req content.PageRequest
		if !bind(c, log, &req) {
			return
		}
		p, err := svc.UpdatePage(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deletePageHandler(svc *content.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeletePage(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Contenido eliminado exitosamente"})
	}
}
