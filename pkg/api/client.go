// Package api is a thin client for the mesto HTTP API. Every method performs
// exactly one request with the stored bearer token; there is no retry and no
// caching.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Ошибка: %d", e.Status)
}

// User is the public profile returned by the API.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// Card is a shared picture with its likes.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client calls the API at a fixed base URL.
type Client struct {
	baseURL string
	tokens  TokenStore
	http    *fiber.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for baseURL that reads its token from tokens.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &fiber.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns its public profile.
func (c *Client) Register(email, password string) (*User, error) {
	var user User
	if err := c.send(fiber.MethodPost, "/signup", credentials{Email: email, Password: password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authorize signs in and keeps the issued token for the next calls.
func (c *Client) Authorize(email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.send(fiber.MethodPost, "/signin", credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if err := c.tokens.SetToken(resp.Token); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// CheckToken returns the user token belongs to, ignoring the stored token.
func (c *Client) CheckToken(token string) (*User, error) {
	var user User
	if err := c.do(fiber.MethodGet, "/users/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserInfo returns the profile of the current user.
func (c *Client) GetUserInfo() (*User, error) {
	var user User
	if err := c.send(fiber.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetInitialCards returns every card, oldest first.
func (c *Client) GetInitialCards() ([]Card, error) {
	var cards []Card
	if err := c.send(fiber.MethodGet, "/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// SetUserInfo updates the name and about of the current user.
func (c *Client) SetUserInfo(name, about string) (*User, error) {
	var user User
	body := map[string]string{"name": name, "about": about}
	if err := c.send(fiber.MethodPatch, "/users/me", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserAvatar updates the avatar of the current user.
func (c *Client) SetUserAvatar(avatar string) (*User, error) {
	var user User
	body := map[string]string{"avatar": avatar}
	if err := c.send(fiber.MethodPatch, "/users/me/avatar", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateNewCard creates a card owned by the current user.
func (c *Client) CreateNewCard(name, link string) (*Card, error) {
	var card Card
	body := map[string]string{"name": name, "link": link}
	if err := c.send(fiber.MethodPost, "/cards", body, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteMyCard deletes a card of the current user and returns the server message.
func (c *Client) DeleteMyCard(id string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.send(fiber.MethodDelete, "/cards/"+id, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ChangeLikeCardStatus likes the card when isLiked is true and unlikes it otherwise.
func (c *Client) ChangeLikeCardStatus(id string, isLiked bool) (*Card, error) {
	method := fiber.MethodDelete
	if isLiked {
		method = fiber.MethodPut
	}
	var card Card
	if err := c.send(method, "/cards/"+id+"/likes", nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// send performs a request with the stored token.
func (c *Client) send(method, path string, body, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	return c.do(method, path, token, body, out)
}

func (c *Client) do(method, path, token string, body, out any) error {
	url := c.baseURL + path

	var agent *fiber.Agent
	switch method {
	case fiber.MethodGet:
		agent = c.http.Get(url)
	case fiber.MethodPost:
		agent = c.http.Post(url)
	case fiber.MethodPatch:
		agent = c.http.Patch(url)
	case fiber.MethodPut:
		agent = c.http.Put(url)
	case fiber.MethodDelete:
		agent = c.http.Delete(url)
	default:
		return fmt.Errorf("unsupported method %s", method)
	}

	agent.Timeout(c.timeout)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		agent.JSON(body)
	} else {
		agent.ContentType(fiber.MIMEApplicationJSON)
	}

	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	if status < 200 || status > 299 {
		return &StatusError{Status: status}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
