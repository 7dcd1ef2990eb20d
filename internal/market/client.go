package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API is the surface of the remote persistence service the application
// consumes. It is implemented by *Client and by test fakes.
type API interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, productID string) error

	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, u User) error

	ListThreads(ctx context.Context) ([]MessageThread, error)
	CreateThread(ctx context.Context, t MessageThread) (MessageThread, error)
	CreateMessage(ctx context.Context, threadID, senderID, text string) (Message, error)

	ListSavedProductIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	SaveProduct(ctx context.Context, userID, productID string) error
	UnsaveProduct(ctx context.Context, userID, productID string) error

	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the marketplace HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "kasuwa/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. A bare host:port value is
// treated as http.
func NewClient(apiURL string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListProducts retrieves all listings, newest first.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []productWire
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &payload); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(payload))
	for _, w := range payload {
		products = append(products, w.toProduct())
	}
	return products, nil
}

// CreateProduct stores a new listing and returns the authoritative record,
// including the server-assigned id.
func (c *Client) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if c == nil {
		return Product{}, fmt.Errorf("client is nil")
	}
	body := productWire{
		Title:       p.Title,
		Price:       p.Price,
		Category:    p.Category,
		Image:       imagePayload(p.Images),
		Location:    p.Location,
		Date:        p.Date,
		Description: p.Description,
		SellerID:    p.SellerID,
	}
	var created productWire
	if err := c.do(ctx, http.MethodPost, "/api/products", body, &created); err != nil {
		return Product{}, err
	}
	return created.toProduct(), nil
}

// UpdateProduct replaces the mutable fields of a listing.
func (c *Client) UpdateProduct(ctx context.Context, p Product) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if p.ID == "" {
		return fmt.Errorf("product id required")
	}
	body := productWire{
		Title:       p.Title,
		Price:       p.Price,
		Category:    p.Category,
		Image:       imagePayload(p.Images),
		Description: p.Description,
	}
	return c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(p.ID), body, nil)
}

// DeleteProduct removes a listing permanently.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if productID == "" {
		return fmt.Errorf("product id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(productID), nil, nil)
}

// ListUsers retrieves all registered users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []userWire
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &payload); err != nil {
		return nil, err
	}
	users := make([]User, 0, len(payload))
	for _, w := range payload {
		users = append(users, w.toUser())
	}
	return users, nil
}

// CreateUser registers an account and returns the authoritative record.
func (c *Client) CreateUser(ctx context.Context, u User) (User, error) {
	if c == nil {
		return User{}, fmt.Errorf("client is nil")
	}
	body := userWire{Name: u.Name, Username: u.Username, ProfilePicture: u.ProfilePicture}
	var created userWire
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &created); err != nil {
		return User{}, err
	}
	return created.toUser(), nil
}

// UpdateUser replaces a user's profile fields.
func (c *Client) UpdateUser(ctx context.Context, u User) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if u.ID == "" {
		return fmt.Errorf("user id required")
	}
	body := userWire{Name: u.Name, Username: u.Username, ProfilePicture: u.ProfilePicture}
	return c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(u.ID), body, nil)
}

// ListThreads retrieves every thread with its messages nested in timestamp
// order.
func (c *Client) ListThreads(ctx context.Context) ([]MessageThread, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []threadWire
	if err := c.do(ctx, http.MethodGet, "/api/threads", nil, &payload); err != nil {
		return nil, err
	}
	threads := make([]MessageThread, 0, len(payload))
	for _, w := range payload {
		threads = append(threads, w.toThread())
	}
	return threads, nil
}

// CreateThread stores a thread shell. The caller supplies the canonical id;
// the remaining fields come back as stored.
func (c *Client) CreateThread(ctx context.Context, t MessageThread) (MessageThread, error) {
	if c == nil {
		return MessageThread{}, fmt.Errorf("client is nil")
	}
	body := threadWire{
		ID:                   t.ID,
		ProductID:            t.ProductID,
		ProductTitle:         t.ProductTitle,
		Participant1ID:       t.Participants[0],
		Participant2ID:       t.Participants[1],
		LastMessageTimestamp: t.LastMessageTimestamp,
	}
	var created threadWire
	if err := c.do(ctx, http.MethodPost, "/api/threads", body, &created); err != nil {
		return MessageThread{}, err
	}
	return created.toThread(), nil
}

// CreateMessage appends a message to a thread. The server assigns the id and
// timestamp and bumps the thread's last-message cache.
func (c *Client) CreateMessage(ctx context.Context, threadID, senderID, text string) (Message, error) {
	if c == nil {
		return Message{}, fmt.Errorf("client is nil")
	}
	if threadID == "" {
		return Message{}, fmt.Errorf("thread id required")
	}
	body := messageWire{SenderID: senderID, Text: text}
	var created messageWire
	if err := c.do(ctx, http.MethodPost, "/api/threads/"+url.PathEscape(threadID)+"/messages", body, &created); err != nil {
		return Message{}, err
	}
	return created.toMessage(), nil
}

type savedWire struct {
	ProductID string `json:"product_id"`
}

// ListSavedProductIDs retrieves the saved-product set for a user.
func (c *Client) ListSavedProductIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if userID == "" {
		return map[string]struct{}{}, nil
	}
	var payload []savedWire
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/saved", nil, &payload); err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(payload))
	for _, w := range payload {
		ids[w.ProductID] = struct{}{}
	}
	return ids, nil
}

// SaveProduct adds a product to a user's saved set.
func (c *Client) SaveProduct(ctx context.Context, userID, productID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, savedPath(userID, productID), nil, nil)
}

// UnsaveProduct removes a product from a user's saved set.
func (c *Client) UnsaveProduct(ctx context.Context, userID, productID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, savedPath(userID, productID), nil, nil)
}

func savedPath(userID, productID string) string {
	return "/api/users/" + url.PathEscape(userID) + "/saved/" + url.PathEscape(productID)
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload stores a binary object under a random name derived from filename's
// extension and returns the retrievable URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	name := uuid.NewString()
	if ext := path.Ext(filename); ext != "" {
		name += ext
	}
	rel := &url.URL{Path: "/api/uploads", RawQuery: url.Values{"name": {name}}.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	var payload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return payload.URL, nil
}

func (c *Client) do(ctx context.Context, method, p string, body, dest any) error {
	rel := &url.URL{Path: p}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", p, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
