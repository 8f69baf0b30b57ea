package services

import (
	"context"
	"net/url"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// ConnectionAPI covers the farmer-buyer introduction flow: pending
// requests and the established connections they turn into.
//
// Accept and Reject carry no double-submission guard here; the backend
// owns the pending -> accepted/rejected transition.
type ConnectionAPI struct {
	client *transport.Client
}

func NewConnectionAPI(client *transport.Client) *ConnectionAPI {
	return &ConnectionAPI{client: client}
}

// Incoming fetches requests addressed to the user.
func (a *ConnectionAPI) Incoming(ctx context.Context, userID string) ([]core.ConnectionRequest, error) {
	var requests []core.ConnectionRequest
	if err := a.client.Get(ctx, "/connections/incoming/"+url.PathEscape(userID), &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Sent fetches requests the user has sent.
func (a *ConnectionAPI) Sent(ctx context.Context, userID string) ([]core.ConnectionRequest, error) {
	var requests []core.ConnectionRequest
	if err := a.client.Get(ctx, "/connections/sent/"+url.PathEscape(userID), &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Send creates a new connection request. An empty message goes out as the
// default greeting, so the recipient never sees a blank request.
func (a *ConnectionAPI) Send(ctx context.Context, input core.SendConnectionInput) (*core.ConnectionRequest, error) {
	if input.RecipientID == "" {
		return nil, core.ErrRecipientRequired
	}
	if input.Message == "" {
		input.Message = core.DefaultConnectionMessage
	}
	var request core.ConnectionRequest
	if err := a.client.Post(ctx, "/connections/send", input, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Accept moves a pending request to accepted and returns the resulting
// connection.
func (a *ConnectionAPI) Accept(ctx context.Context, requestID string) (*core.Connection, error) {
	var conn core.Connection
	if err := a.client.Patch(ctx, "/connections/accept/"+url.PathEscape(requestID), nil, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// Reject moves a pending request to rejected.
func (a *ConnectionAPI) Reject(ctx context.Context, requestID string) error {
	return a.client.Patch(ctx, "/connections/reject/"+url.PathEscape(requestID), nil, nil)
}

// List fetches the user's established connections.
func (a *ConnectionAPI) List(ctx context.Context, userID string) ([]core.Connection, error) {
	var conns []core.Connection
	if err := a.client.Get(ctx, "/connections/user/"+url.PathEscape(userID), &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// Remove deletes an established connection.
func (a *ConnectionAPI) Remove(ctx context.Context, connectionID string) error {
	return a.client.Delete(ctx, "/connections/"+url.PathEscape(connectionID), nil)
}
