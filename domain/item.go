package domain

type InventoryItem struct {
	ID          string  `db:"id" json:"id"`
	UserID      string  `db:"user_id" json:"-"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	CreatedAt   string  `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}
