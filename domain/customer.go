package domain

type Customer struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"-"`
	Name      string `db:"name" json:"name"`
	Address   string `db:"address" json:"address"`
	Mobile    string `db:"mobile" json:"mobile"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}
