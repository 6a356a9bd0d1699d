package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load charge le fichier .env s'il existe ; sinon on s'appuie sur les
// variables d'environnement du système.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec l'environnement système")
	} else {
		log.Println("✅ Fichier .env chargé")
	}
}
