// Package assistant wraps the hosted language model used to read free-text
// orders and to comment on production plans.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/bakeryhq/orderdesk/internal/models"
)

var ErrUnavailable = errors.New("assistant is not configured")

// ParseError reports model output that does not match the order schema
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable order suggestion: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Generator produces text for a prompt. A non-nil schema asks for JSON
// output conforming to it.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Suggestion is one line the model read out of the order text
type Suggestion struct {
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
}

// OrderSchema is the fixed response schema for order parsing
var OrderSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"productName": {Type: genai.TypeString},
			"quantity":    {Type: genai.TypeNumber},
		},
		Required: []string{"productName", "quantity"},
	},
}

// Assistant turns model output into order items and advice
type Assistant struct {
	gen Generator
	log *slog.Logger
}

// New creates an assistant. A nil generator makes every call return ErrUnavailable.
func New(gen Generator, log *slog.Logger) *Assistant {
	return &Assistant{gen: gen, log: log}
}

// Available reports whether a model is configured
func (a *Assistant) Available() bool {
	return a != nil && a.gen != nil
}

// ParseOrder reads free text into order items over the given catalog.
// Suggestions that match no product are dropped.
func (a *Assistant) ParseOrder(ctx context.Context, text string, products []models.Product) ([]models.OrderItem, error) {
	if !a.Available() {
		return nil, ErrUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return []models.OrderItem{}, nil
	}

	raw, err := a.gen.Generate(ctx, orderPrompt(text, products), OrderSchema)
	if err != nil {
		return nil, fmt.Errorf("order parse request failed: %w", err)
	}

	suggestions, err := DecodeSuggestions(raw)
	if err != nil {
		return nil, err
	}

	items := MatchProducts(suggestions, products)
	a.log.Debug("order text parsed", "suggestions", len(suggestions), "matched", len(items))
	return items, nil
}

// Insights asks for short production advice on a per-product total mapping
func (a *Assistant) Insights(ctx context.Context, totals map[string]float64) (string, error) {
	if !a.Available() {
		return "", ErrUnavailable
	}

	data, err := json.Marshal(totals)
	if err != nil {
		return "", fmt.Errorf("failed to encode production totals: %w", err)
	}

	text, err := a.gen.Generate(ctx, insightsPrompt(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("insights request failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// rawSuggestion uses pointers so missing required fields are detectable
type rawSuggestion struct {
	ProductName *string  `json:"productName"`
	Quantity    *float64 `json:"quantity"`
}

// DecodeSuggestions strictly decodes a JSON array of {productName, quantity}.
// Unknown fields, missing fields, blank names, non-positive quantities and
// trailing data are all rejected with a *ParseError.
func DecodeSuggestions(raw string) ([]Suggestion, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(raw))))
	dec.DisallowUnknownFields()

	var parsed []rawSuggestion
	if err := dec.Decode(&parsed); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Raw: raw, Err: errors.New("trailing data after array")}
	}

	out := make([]Suggestion, 0, len(parsed))
	for i, p := range parsed {
		switch {
		case p.ProductName == nil:
			return nil, &ParseError{Raw: raw, Err: fmt.Errorf("item %d: missing productName", i)}
		case p.Quantity == nil:
			return nil, &ParseError{Raw: raw, Err: fmt.Errorf("item %d: missing quantity", i)}
		case strings.TrimSpace(*p.ProductName) == "":
			return nil, &ParseError{Raw: raw, Err: fmt.Errorf("item %d: blank productName", i)}
		case *p.Quantity <= 0:
			return nil, &ParseError{Raw: raw, Err: fmt.Errorf("item %d: quantity must be positive", i)}
		}
		out = append(out, Suggestion{ProductName: *p.ProductName, Quantity: *p.Quantity})
	}
	return out, nil
}

// MatchProducts maps each suggestion to the first product whose name
// contains the suggested name, ignoring case.
func MatchProducts(suggestions []Suggestion, products []models.Product) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(suggestions))
	for _, s := range suggestions {
		needle := strings.ToLower(strings.TrimSpace(s.ProductName))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				items = append(items, models.OrderItem{ProductID: p.ID, Quantity: s.Quantity})
				break
			}
		}
	}
	return items
}

func orderPrompt(text string, products []models.Product) string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return fmt.Sprintf(`Analizá este pedido de panadería y extraé cada producto con su cantidad.
Productos disponibles: %s.
Si un producto no coincide exactamente, usá el nombre disponible más parecido.

Pedido: %q`, strings.Join(names, ", "), text)
}

func insightsPrompt(plan string) string {
	return fmt.Sprintf(`Sos jefe de producción de una panadería. Revisá este plan de producción y
dá tres consejos breves para organizar el trabajo (fermentación, uso de hornos, preparación de masas).

Plan de producción: %s`, plan)
}
