package handlers

import (
	"net/http"

	"lumera_back_end/internal/checkout"
	"lumera_back_end/internal/common"
	"lumera_back_end/internal/middleware"
	"lumera_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// POST /api/orders : lance l'orchestrateur de checkout.
func (h *Handler) CreateOrder(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	order, err := h.Checkout.Checkout(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GET /api/orders : historique du principal, plus récent d'abord.
func (h *Handler) ListOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := h.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id : propriétaire ou admin.
func (h *Handler) GetOrder(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	order, err := h.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if !canAccessOrder(user, order) {
		respondError(c, common.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, order)
}

// PUT /api/orders/:id/status : propriétaire ou admin. Seule
// l'appartenance aux énumérations est vérifiée : aucune table de
// transitions, n'importe quel statut peut suivre n'importe quel autre.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	user, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Status == "" && input.PaymentStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun statut fourni"})
		return
	}
	if input.Status != "" && !models.IsValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de commande inconnu"})
		return
	}
	if input.PaymentStatus != "" && !models.IsValidPaymentStatus(input.PaymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de paiement inconnu"})
		return
	}

	order, err := h.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !canAccessOrder(user, order) {
		respondError(c, common.ErrForbidden)
		return
	}

	if err := h.Orders.UpdateStatus(c.Request.Context(), order.ID, input.Status, input.PaymentStatus); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour"})
}

// Garde de propriété : admin OU propriétaire de la ressource.
func canAccessOrder(user *models.User, order *models.Order) bool {
	return user.IsAdmin() || user.ID == order.UserID
}
