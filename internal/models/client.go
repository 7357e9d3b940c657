package models

// UnknownClientName is shown wherever an order points at a deleted client
const UnknownClientName = "Desconocido"

// Client represents a customer placing orders
type Client struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// FindClient returns the client with the given id, or nil
func FindClient(clients []Client, id string) *Client {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i]
		}
	}
	return nil
}

// ClientName resolves id to a display name, falling back to UnknownClientName
func ClientName(clients []Client, id string) string {
	if c := FindClient(clients, id); c != nil {
		return c.Name
	}
	return UnknownClientName
}
