package models

// CartItem is one line of a user's cart. Relational backends keep it in its own
// table keyed by (user_id, product_id); document backends embed it in the user.
type CartItem struct {
	ID        uint   `gorm:"primaryKey" bson:"-" json:"-"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product" bson:"-" json:"-"`
	ProductID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product;index:idx_cart_product" bson:"productId" json:"productId"`
	Quantity  int    `gorm:"not null" bson:"quantity" json:"quantity"`
	Position  int    `gorm:"not null" bson:"-" json:"-"` // insertion order
}

// CartLine is a cart item with its product resolved.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// FindCartItem returns the index of productID in cart, or -1.
func FindCartItem(cart []CartItem, productID string) int {
	for i := range cart {
		if cart[i].ProductID == productID {
			return i
		}
	}
	return -1
}
