package models

type AdminStats struct {
	TotalRevenue float64 `json:"totalRevenue"`
	UserCount    int64   `json:"userCount"`
	ProductCount int64   `json:"productCount"`
	OrderCount   int64   `json:"orderCount"`
}

// CategoryStat is one row of the per-category order report.
type CategoryStat struct {
	Category string  `json:"category" bson:"category"`
	Quantity int64   `json:"quantity" bson:"quantity"`
	Total    float64 `json:"total" bson:"total"`
}
