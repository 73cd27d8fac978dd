package models

import "time"

type Review struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"productId"`
	CustomerName string    `json:"customerName,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
