package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// Un CartItem ne référence que le produit et la quantité ;
// nom/prix/image sont résolus depuis le catalogue au moment voulu.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
