package domain

import "time"

// Role is the closed set of account roles. Authorization is an explicit
// capability check at each entry point, not middleware chaining.
type Role string

const (
	RoleClient  Role = "client"
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

// IsStaff reports whether the role may post purchases, register device
// returns and confirm redemptions.
func (r Role) IsStaff() bool {
	return r == RoleCashier || r == RoleAdmin
}

// IsAdmin reports whether the role may manage rewards, promotions and
// network-wide statistics.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	TelegramID int64     `json:"telegram_id" gorm:"uniqueIndex;not null"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Username   string    `json:"username"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Role       Role      `json:"role" gorm:"type:varchar(16);default:client"`
	Points     int       `json:"points" gorm:"not null;default:0"`
	StoreID    *string   `json:"store_id" gorm:"index"` // home store, staff only
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
