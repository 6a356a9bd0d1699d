package main

import (
	"log"
	"os"

	"lumera_back_end/internal/auth"
	"lumera_back_end/internal/cache"
	"lumera_back_end/internal/checkout"
	"lumera_back_end/internal/config"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/handlers"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/routes"
	"lumera_back_end/internal/services"
	"lumera_back_end/internal/store"
	"lumera_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ JWT_SECRET manquant dans .env")
	}

	database.ConnectDatabases()

	users := store.NewScyllaUsers()
	carts := store.NewRedisCarts(database.Redis)
	orders := store.NewScyllaOrders()
	catalog := store.NewScyllaCatalog()

	authService := auth.NewService(users)
	tokenService := auth.NewTokenService([]byte(secret), users)
	orchestrator := checkout.NewOrchestrator(carts, orders, catalog, sendConfirmation)

	h := &handlers.Handler{
		Auth:              authService,
		Tokens:            tokenService,
		Checkout:          orchestrator,
		Carts:             carts,
		Orders:            orders,
		Catalog:           catalog,
		Products:          cache.NewCachedCatalog(catalog),
		InvalidateProduct: cache.InvalidateProduct,
		IndexProduct:      services.IndexProduct,
		DeleteIndex:       services.DeleteProductIndex,
	}

	r := gin.Default()
	routes.RegisterRoutes(r, h, tokenService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Lumera lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Arrêt du serveur:", err)
	}
}

// Confirmation de commande best effort : un échec d'envoi ne remet
// jamais en cause le checkout.
func sendConfirmation(email string, order models.Order) {
	if os.Getenv("SMTP_HOST") == "" {
		return
	}
	if err := utils.SendOrderConfirmationEmail(email, order); err != nil {
		log.Printf("⚠️ Échec envoi confirmation pour la commande %s: %v", order.ID, err)
	}
}
