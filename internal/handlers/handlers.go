// Package handlers porte la surface HTTP gin. Les dépendances sont
// injectées pour que les tests tournent sur les stores en mémoire.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"lumera_back_end/internal/auth"
	"lumera_back_end/internal/checkout"
	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// ProductReader est le chemin de lecture publique du catalogue ; en
// production c'est le catalogue derrière Redis, en test le store mémoire.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type Handler struct {
	Auth     *auth.Service
	Tokens   *auth.TokenService
	Checkout *checkout.Orchestrator
	Carts    store.Carts
	Orders   store.Orders
	Catalog  store.Catalog
	Products ProductReader

	// Facultatifs : branchés en production, laissés nil en test.
	InvalidateProduct func(ctx context.Context, productID string)
	IndexProduct      func(p models.Product)
	DeleteIndex       func(productID string)
}

// respondError traduit la taxonomie d'erreurs en code HTTP, avec un
// message stable : jamais de détail interne dans la réponse.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrEmptyCart),
		errors.Is(err, common.ErrMissingAddress),
		errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": kindMessage(err)})
	case errors.Is(err, common.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrConflict.Error()})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrInvalidCredentials.Error()})
	case errors.Is(err, common.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrUnauthenticated.Error()})
	case errors.Is(err, common.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrForbidden.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrNotFound.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
}

func kindMessage(err error) string {
	for _, kind := range []error{common.ErrEmptyCart, common.ErrMissingAddress, common.ErrValidation} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return common.ErrValidation.Error()
}
