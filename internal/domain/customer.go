package domain

import (
	"time"
)

type Customer struct {
	ID       int64  `json:"id,string" form:"id"`
	Name     string `json:"name" form:"name"`
	Email    string `gorm:"index" json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Password string `json:"-" form:"-"`
	Level    string `json:"level" form:"level"`
	Status   string `json:"status" form:"status"`
	Remark   string `json:"remark" form:"remark"`

	// Aggregate stats maintained by store-side triggers, read-only here
	TotalOrders       int64   `json:"total_orders"`
	TotalSpent        float64 `json:"total_spent"`
	AverageOrderValue float64 `json:"average_order_value"`

	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customer"
}

// IsAdmin reports whether the customer carries the admin level flag
func (c Customer) IsAdmin() bool {
	return c.Level == "admin" || c.Level == "super"
}

type CustomerAddress struct {
	ID         int64     `json:"id,string" form:"id"`
	CustomerId int64     `gorm:"index" json:"customer_id,string" form:"customer_id"`
	Label      string    `json:"label" form:"label"`
	Line1      string    `json:"line1" form:"line1"`
	Line2      string    `json:"line2" form:"line2"`
	City       string    `json:"city" form:"city"`
	State      string    `json:"state" form:"state"`
	Postal     string    `json:"postal" form:"postal"`
	Country    string    `json:"country" form:"country"`
	IsDefault  bool      `json:"is_default" form:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CustomerAddress) TableName() string {
	return "customer_address"
}

// CustomerSession binds a bearer token to a customer. Only the sha256 of the
// token is stored; the raw token never touches the database.
type CustomerSession struct {
	ID         int64     `json:"id,string" form:"id"`
	CustomerId int64     `gorm:"index" json:"customer_id,string" form:"customer_id"`
	TokenHash  string    `gorm:"index" json:"-" form:"-"`
	UserAgent  string    `json:"user_agent"`
	Ipaddr     string    `json:"ipaddr"`
	LastSeenAt time.Time `json:"last_seen_at"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CustomerSession) TableName() string {
	return "customer_session"
}
