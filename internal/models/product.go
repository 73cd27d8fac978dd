package models

import "time"

type Product struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"shortDescription,omitempty"`
	Price            float64    `json:"price"`
	Images           StringList `json:"images"`
	Category         string     `json:"category"`
	Stock            int        `json:"stock"`
	InStock          bool       `json:"inStock"`
	Featured         bool       `json:"featured"`
	IsBestseller     bool       `json:"isBestseller"`
	IsNew            bool       `json:"isNew"`
	ViewCount        int        `json:"viewCount"`
	ReviewCount      int        `json:"reviewCount"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
