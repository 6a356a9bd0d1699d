package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/cart
// La lecture passe d'abord par la réconciliation : une commande créée
// juste avant un crash du vidage de panier est rattrapée ici.
func (h *Handler) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.Checkout.Reconcile(c.Request.Context(), userID); err != nil {
		log.Printf("⚠️ Réconciliation panier ratée pour %s: %v", userID, err)
	}

	items, err := h.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// POST /api/cart/add
func (h *Handler) AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// Le produit doit exister avant d'entrer au panier
	if _, err := h.Products.GetProduct(c.Request.Context(), input.ProductID); err != nil {
		respondError(c, err)
		return
	}

	items, err := h.Carts.AddItem(c.Request.Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   items,
	})
}

// PUT /api/cart/update
// Une quantité ≤ 0 retire l'article du panier.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	items, err := h.Carts.UpdateItem(c.Request.Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier mis à jour",
		"items":   items,
	})
}

// DELETE /api/cart/remove/:productId
func (h *Handler) RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	items, err := h.Carts.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   items,
	})
}

// DELETE /api/cart/clear
func (h *Handler) ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.Carts.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé"})
}
