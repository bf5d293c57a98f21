package models

// InventoryItem is a catalog entry. Quantity is the amount the shopper has
// selected but not yet moved into the cart.
type InventoryItem struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Content  string `json:"content" gorm:"not null"`
	Quantity int    `json:"quantity" gorm:"not null;default:0"`
}
