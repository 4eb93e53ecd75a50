package models

// Favorite marks a catalog product as favorited by a family. The document
// id is the product id; its existence is the favorite flag.
type Favorite struct {
	ProductID string `json:"id" firestore:"id" db:"product_id"`
}
