package models

import "time"

// SaleItem is one line of a sale.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Sale is the event emitted by the sales subsystem.
type Sale struct {
	ID            string     `json:"id"`
	SalesPersonID string     `json:"salesPersonId"`
	Total         float64    `json:"total"`
	Subtotal      float64    `json:"subtotal"`
	Items         []SaleItem `json:"items"`
	Date          time.Time  `json:"date"`
}

// SaleRecord is a sale as retained for reporting.
type SaleRecord struct {
	ID            string    `json:"id" bson:"id"`
	SalesPersonID string    `json:"salesPersonId" bson:"salesPersonId"`
	Total         float64   `json:"total" bson:"total"`
	Profit        float64   `json:"profit" bson:"profit"`
	Date          time.Time `json:"date" bson:"date"`
}
