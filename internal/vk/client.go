// Package vk adapts the VK Callback API to the platform-agnostic
// command vocabulary and delivers outbound content through the VK
// messages API. No VK SDK is used; the API surface we need is two
// methods over plain HTTP.
package vk

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiVersion = "5.131"

// Client is a minimal VK group API client.
type Client struct {
	Token      string
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    "https://api.vk.com/method",
	}
}

type apiResponse struct {
	Response json.RawMessage `json:"response"`
	Error    *apiError       `json:"error"`
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

// call invokes one VK API method with form-encoded params.
func (c *Client) call(method string, params url.Values) (json.RawMessage, error) {
	params.Set("access_token", c.Token)
	params.Set("v", apiVersion)

	resp, err := c.HTTPClient.PostForm(c.BaseURL+"/"+method, params)
	if err != nil {
		return nil, fmt.Errorf("vk: %s: %w", method, err)
	}
	defer resp.Body.Close()

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("vk: %s: decode: %w", method, err)
	}
	if body.Error != nil {
		return nil, fmt.Errorf("vk: %s: api error %d: %s", method, body.Error.Code, body.Error.Message)
	}
	return body.Response, nil
}

// SendMessage sends a text message, optionally with an attachment
// reference. random_id deduplicates retries on VK's side.
func (c *Client) SendMessage(userID, text, attachment string) error {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("random_id", fmt.Sprint(rand.Int31()))
	if text != "" {
		params.Set("message", text)
	}
	if attachment != "" {
		params.Set("attachment", attachment)
	}
	_, err := c.call("messages.send", params)
	return err
}

// UserDisplayName fetches a user's first and last name.
func (c *Client) UserDisplayName(userID string) (string, error) {
	params := url.Values{}
	params.Set("user_ids", userID)

	raw, err := c.call("users.get", params)
	if err != nil {
		return "", err
	}
	var users []struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.Unmarshal(raw, &users); err != nil || len(users) == 0 {
		return "", fmt.Errorf("vk: users.get returned no rows")
	}
	return strings.TrimSpace(users[0].FirstName + " " + users[0].LastName), nil
}
