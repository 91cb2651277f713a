package greenapi

import (
	"context"
	"net/http"
)

// SendMessageRequest is the body of the sendMessage call
type SendMessageRequest struct {
	PhoneNumber string `json:"phoneNumber" example:"79001234567"`
	MessageText string `json:"messageText" example:"hello"`
}

// SendFileByURLRequest is the body of the sendFileByUrl call
type SendFileByURLRequest struct {
	PhoneNumber string `json:"phoneNumber" example:"79001234567"`
	FileURL     string `json:"fileUrl" example:"https://example.com/picture.png"`
}

// GetSettings returns the instance settings
func (c *Client) GetSettings(ctx context.Context, creds Credentials) (Result, error) {
	return c.Call(ctx, EndpointGetSettings, creds, CallOptions{})
}

// GetStateInstance returns the connection state of the instance
func (c *Client) GetStateInstance(ctx context.Context, creds Credentials) (Result, error) {
	return c.Call(ctx, EndpointGetStateInstance, creds, CallOptions{})
}

func (c *Client) SendMessage(ctx context.Context, creds Credentials, req SendMessageRequest) (Result, error) {
	return c.Call(ctx, EndpointSendMessage, creds, CallOptions{
		Method: http.MethodPost,
		Body:   req,
	})
}

func (c *Client) SendFileByURL(ctx context.Context, creds Credentials, req SendFileByURLRequest) (Result, error) {
	return c.Call(ctx, EndpointSendFileByURL, creds, CallOptions{
		Method: http.MethodPost,
		Body:   req,
	})
}
