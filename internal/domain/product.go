package domain

import (
	"time"
)

type Product struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Flavor      string    `json:"flavor" form:"flavor"`
	Description string    `json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	Stock       int       `json:"stock" form:"stock"`
	Image       string    `json:"image" form:"image"`
	Status      string    `gorm:"index" json:"status" form:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}

type ProductReview struct {
	ID         int64     `json:"id,string" form:"id"`
	ProductId  int64     `gorm:"index" json:"product_id,string" form:"product_id"`
	CustomerId int64     `gorm:"index" json:"customer_id,string" form:"customer_id"`
	Rating     int       `json:"rating" form:"rating"`
	Title      string    `json:"title" form:"title"`
	Body       string    `json:"body" form:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ProductReview) TableName() string {
	return "product_review"
}

type WishlistItem struct {
	ID         int64     `json:"id,string" form:"id"`
	CustomerId int64     `gorm:"index:idx_wishlist_customer_product,unique" json:"customer_id,string" form:"customer_id"`
	ProductId  int64     `gorm:"index:idx_wishlist_customer_product,unique" json:"product_id,string" form:"product_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist_item"
}
