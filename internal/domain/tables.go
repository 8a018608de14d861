package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpLog{},
	// Catalog
	&Product{},
	&ProductReview{},
	&WishlistItem{},
	// Customers
	&Customer{},
	&CustomerAddress{},
	&CustomerSession{},
	// Orders
	&Order{},
	&DiscountCode{},
	// Analytics
	&AnalyticsEvent{},
}
