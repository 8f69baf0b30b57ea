package services

import (
	"context"
	"net/url"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// NotificationAPI covers the per-user notification feed.
type NotificationAPI struct {
	client *transport.Client
}

func NewNotificationAPI(client *transport.Client) *NotificationAPI {
	return &NotificationAPI{client: client}
}

// ListByUser fetches a user's notifications.
func (a *NotificationAPI) ListByUser(ctx context.Context, userID string) ([]core.Notification, error) {
	var notifications []core.Notification
	if err := a.client.Get(ctx, "/notifications/user/"+url.PathEscape(userID), &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks one notification as read.
func (a *NotificationAPI) MarkRead(ctx context.Context, notificationID string) error {
	return a.client.Patch(ctx, "/notifications/read/"+url.PathEscape(notificationID), nil, nil)
}

// MarkAllRead marks every notification for a user as read.
func (a *NotificationAPI) MarkAllRead(ctx context.Context, userID string) error {
	return a.client.Patch(ctx, "/notifications/read-all/"+url.PathEscape(userID), nil, nil)
}

// Delete removes one notification.
func (a *NotificationAPI) Delete(ctx context.Context, notificationID string) error {
	return a.client.Delete(ctx, "/notifications/"+url.PathEscape(notificationID), nil)
}
