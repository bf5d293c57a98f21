package models

// CartItem mirrors the InventoryItem it was added from; ID is shared.
type CartItem struct {
	ID       int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Content  string `json:"content" gorm:"not null"`
	Quantity int    `json:"quantity" gorm:"not null"`
}

// QuantityUpdate is the body of PUT /cart/{id}.
type QuantityUpdate struct {
	Quantity int `json:"quantity"`
}
