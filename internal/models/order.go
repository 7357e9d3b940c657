package models

import "github.com/bakeryhq/orderdesk/internal/calendar"

// OrderRequest is the body accepted when creating or updating an order
type OrderRequest struct {
	ClientID string      `json:"clientId"`
	Date     string      `json:"date"`
	Items    []OrderItem `json:"items"`
}

// OrderItem represents a single product line of an order
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// Order is a dated request from a client for a set of product quantities.
// The weekday is not stored; see Day.
type Order struct {
	ID       string      `json:"id"`
	ClientID string      `json:"clientId"`
	Date     string      `json:"date"`
	Items    []OrderItem `json:"items"`
}

// Day derives the weekday name from Date on every read
func (o Order) Day() string {
	return calendar.Weekday(o.Date)
}

// Clone returns a copy that shares no item storage with o
func (o Order) Clone() Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}

// OrderView is the outward representation of an order
type OrderView struct {
	Order
	Day string `json:"day"`
}

// View pairs the order with its derived weekday
func (o Order) View() OrderView {
	return OrderView{Order: o, Day: o.Day()}
}

// Views converts a slice of orders
func Views(orders []Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, o.View())
	}
	return views
}
