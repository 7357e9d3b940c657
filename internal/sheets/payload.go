// Package sheets mirrors the order book to a spreadsheet webhook.
//
// Sync is one-way and best effort. A Syncer keeps a single pending slot:
// newer state replaces older state that has not been sent, and an in-flight
// send of older state is cancelled, so the sheet only ever receives the
// latest order book.
package sheets

import (
	"fmt"
	"strings"

	"github.com/bakeryhq/orderdesk/internal/export"
	"github.com/bakeryhq/orderdesk/internal/models"
)

// Row is one order as the spreadsheet script expects it
type Row struct {
	ID        string `json:"id"`
	Fecha     string `json:"fecha"`
	Dia       string `json:"dia"`
	Cliente   string `json:"cliente"`
	Productos string `json:"productos"`
}

// Payload is the webhook request body
type Payload struct {
	Timestamp string `json:"timestamp"`
	Orders    []Row  `json:"orders"`
}

// BuildRows flattens orders into sheet rows, resolving client and product names
func BuildRows(orders []models.Order, products []models.Product, clients []models.Client) []Row {
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, Row{
			ID:        o.ID,
			Fecha:     o.Date,
			Dia:       o.Day(),
			Cliente:   models.ClientName(clients, o.ClientID),
			Productos: describeItems(o.Items, products),
		})
	}
	return rows
}

// describeItems renders "<name> (x<qty> <unit>), ..."
func describeItems(items []models.OrderItem, products []models.Product) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		var name, unit string
		if p := models.FindProduct(products, it.ProductID); p != nil {
			name, unit = p.Name, string(p.Unit)
		}
		parts = append(parts, fmt.Sprintf("%s (x%s %s)", name, export.FormatQuantity(it.Quantity), unit))
	}
	return strings.Join(parts, ", ")
}
