package routes

import (
	"os"
	"strings"
	"time"

	"lumera_back_end/internal/auth"
	"lumera_back_end/internal/handlers"
	"lumera_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes câble la surface HTTP. Chaque route protégée passe par
// AuthRequired (vérification bearer + résolution du principal) avant
// toute garde de rôle ou de propriété.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, verifier auth.TokenVerifier) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", h.Signup)
	authGroup.POST("/login", h.Login)
	authGroup.GET("/me", middleware.AuthRequired(verifier), h.Me)
	authGroup.PUT("/profile", middleware.AuthRequired(verifier), h.UpdateProfile)

	// Panier
	cart := api.Group("/cart", middleware.AuthRequired(verifier))
	cart.GET("", h.GetCart)
	cart.POST("/add", h.AddToCart)
	cart.PUT("/update", h.UpdateCartItem)
	cart.DELETE("/remove/:productId", h.RemoveFromCart)
	cart.DELETE("/clear", h.ClearCart)

	// Commandes
	orders := api.Group("/orders", middleware.AuthRequired(verifier))
	orders.POST("", h.CreateOrder)
	orders.GET("", h.ListOrders)
	orders.GET("/:id", h.GetOrder)
	orders.PUT("/:id/status", h.UpdateOrderStatus)

	// Catalogue : lecture publique, mutation admin
	products := api.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/search", h.SearchProducts)
	products.GET("/:id", h.GetProduct)
	products.POST("", middleware.AuthRequired(verifier), middleware.RequireAdmin, h.CreateProduct)
	products.PUT("/:id", middleware.AuthRequired(verifier), middleware.RequireAdmin, h.UpdateProduct)
	products.DELETE("/:id", middleware.AuthRequired(verifier), middleware.RequireAdmin, h.DeleteProduct)
}

func allowedOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"http://localhost:5173", "http://localhost:3000"}
}
