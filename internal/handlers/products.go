package handlers

import (
	"net/http"
	"time"

	"lumera_back_end/internal/models"
	"lumera_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /api/products/search?q=...
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' requis"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// POST /api/products : admin uniquement (garde de rôle en amont).
func (h *Handler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if product.Name == "" || product.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix requis"})
		return
	}

	product.ID = uuid.NewString()
	now := time.Now()
	product.CreatedAt = &now
	product.UpdatedAt = &now

	if err := h.Catalog.CreateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	h.afterProductMutation(c, product)
	c.JSON(http.StatusCreated, product)
}

// PUT /api/products/:id : admin uniquement.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	product.ID = c.Param("id")
	now := time.Now()
	product.UpdatedAt = &now

	if err := h.Catalog.UpdateProduct(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	h.afterProductMutation(c, product)
	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id : admin uniquement.
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := h.Catalog.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	if h.InvalidateProduct != nil {
		h.InvalidateProduct(c.Request.Context(), productID)
	}
	if h.DeleteIndex != nil {
		h.DeleteIndex(productID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

func (h *Handler) afterProductMutation(c *gin.Context, product models.Product) {
	if h.InvalidateProduct != nil {
		h.InvalidateProduct(c.Request.Context(), product.ID)
	}
	if h.IndexProduct != nil {
		go h.IndexProduct(product)
	}
}
