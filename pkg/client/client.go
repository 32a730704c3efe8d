// Package client is a Go client for the ArtNiva REST API with a file-backed
// session, the way the browser frontend keeps its login and cart badge in
// local storage.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/services"
)

// Client talks to one ArtNiva server on behalf of one session.
type Client struct {
	baseURL string
	http    *http.Client
	store   *SessionStore
}

// New creates a Client for the given server using the given session store.
func New(baseURL string, store *SessionStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// Session returns the current persisted session.
func (c *Client) Session() Session {
	return c.store.Current()
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account and starts a session for it.
func (c *Client) Register(name, email, password, role string) error {
	var resp authResponse
	err := c.do(http.MethodPost, "/api/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}, &resp, false)
	if err != nil {
		return err
	}
	return c.startSession(resp)
}

// Login starts a session for an existing account.
func (c *Client) Login(email, password string) error {
	var resp authResponse
	err := c.do(http.MethodPost, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp, false)
	if err != nil {
		return err
	}
	return c.startSession(resp)
}

// Logout clears the persisted session. Tokens are stateless, so nothing is
// sent to the server.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Profile fetches the logged-in account.
func (c *Client) Profile() (*models.User, error) {
	var user models.User
	if err := c.do(http.MethodGet, "/api/users/profile", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// Shop fetches the combined storefront listing.
func (c *Client) Shop() (*services.ShopListing, error) {
	var listing services.ShopListing
	if err := c.do(http.MethodGet, "/api/shop", nil, &listing, false); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Products fetches the artwork listing.
func (c *Client) Products() ([]models.CatalogItem, error) {
	return c.listing("/api/products")
}

// Materials fetches the art-supply listing.
func (c *Client) Materials() ([]models.CatalogItem, error) {
	return c.listing("/api/materials")
}

func (c *Client) listing(path string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := c.do(http.MethodGet, path, nil, &items, false); err != nil {
		return nil, err
	}
	return items, nil
}

// ToggleLike flips the logged-in user's like on a catalog entry and returns
// the updated entry.
func (c *Client) ToggleLike(ref models.ItemRef) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := c.do(http.MethodPost, fmt.Sprintf("/api/%ss/%s/like", ref.Kind, ref.ID), nil, &item, true)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddReview submits the logged-in user's review of a catalog entry.
func (c *Client) AddReview(ref models.ItemRef, rating float64, comment string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := c.do(http.MethodPost, fmt.Sprintf("/api/%ss/%s/reviews", ref.Kind, ref.ID), map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	}, &item, true)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type cartResponse struct {
	Items []models.CartLine `json:"items"`
}

// Cart fetches the logged-in user's line items and refreshes the persisted
// cart count.
func (c *Client) Cart() ([]models.CartLine, error) {
	var resp cartResponse
	if err := c.do(http.MethodGet, "/api/cart", nil, &resp, true); err != nil {
		return nil, err
	}
	if err := c.persistCartCount(resp.Items); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// AddToCart adds quantity of the referenced catalog entry.
func (c *Client) AddToCart(ref models.ItemRef, quantity int) error {
	err := c.do(http.MethodPost, "/api/cart", map[string]interface{}{
		"productId": ref.ID,
		"itemType":  ref.Kind,
		"quantity":  quantity,
	}, nil, true)
	if err != nil {
		return err
	}
	return c.refreshCartCount()
}

// UpdateCartItem overwrites the quantity of one line.
func (c *Client) UpdateCartItem(ref models.ItemRef, quantity int) error {
	err := c.do(http.MethodPut, "/api/cart/"+ref.ID, map[string]interface{}{
		"itemType": ref.Kind,
		"quantity": quantity,
	}, nil, true)
	if err != nil {
		return err
	}
	return c.refreshCartCount()
}

// RemoveCartItem removes one line.
func (c *Client) RemoveCartItem(ref models.ItemRef) error {
	err := c.do(http.MethodDelete, "/api/cart/"+ref.ID, map[string]interface{}{
		"itemType": ref.Kind,
	}, nil, true)
	if err != nil {
		return err
	}
	return c.refreshCartCount()
}

// ClearCart empties the cart.
func (c *Client) ClearCart() error {
	if err := c.do(http.MethodDelete, "/api/cart", nil, nil, true); err != nil {
		return err
	}
	return c.refreshCartCount()
}

func (c *Client) startSession(resp authResponse) error {
	return c.store.Update(func(s *Session) {
		s.Token = resp.Token
		s.UserID = resp.User.ID
		s.Name = resp.User.Name
		s.Role = resp.User.Role
		s.CartCount = 0
	})
}

// refreshCartCount re-fetches the cart after a mutation so the persisted
// badge count tracks the server.
func (c *Client) refreshCartCount() error {
	var resp cartResponse
	if err := c.do(http.MethodGet, "/api/cart", nil, &resp, true); err != nil {
		return err
	}
	return c.persistCartCount(resp.Items)
}

func (c *Client) persistCartCount(items []models.CartLine) error {
	count := 0
	for _, line := range items {
		count += line.Quantity
	}
	return c.store.Update(func(s *Session) {
		s.CartCount = count
	})
}

// do performs one JSON round trip. Non-2xx replies are decoded into an error
// from the server's message envelope.
func (c *Client) do(method, path string, body interface{}, out interface{}, authed bool) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		session := c.store.Current()
		if !session.LoggedIn() {
			return fmt.Errorf("not logged in")
		}
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			if apiErr.Error != "" {
				return fmt.Errorf("%s: %s (status %d)", apiErr.Message, apiErr.Error, resp.StatusCode)
			}
			return fmt.Errorf("%s (status %d)", apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
