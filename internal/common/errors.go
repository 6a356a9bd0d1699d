// Package common définit les erreurs sentinelles partagées entre les
// couches du backend. Les appelants les comparent avec errors.Is.
package common

import "errors"

var (
	// Erreurs de validation / d'entrée.
	ErrValidation = errors.New("données invalides")
	ErrConflict   = errors.New("un compte avec cet email existe déjà")

	// Erreurs d'authentification. ErrInvalidCredentials est volontairement
	// unique pour email inconnu ET mot de passe erroné.
	ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
	ErrUnauthenticated    = errors.New("non authentifié")
	ErrForbidden          = errors.New("accès refusé")

	// Erreurs de ressources / persistance.
	ErrNotFound    = errors.New("ressource introuvable")
	ErrPersistence = errors.New("erreur de persistance")

	// Erreurs du checkout.
	ErrEmptyCart      = errors.New("panier vide")
	ErrMissingAddress = errors.New("adresse de livraison manquante ou incomplète")
)
