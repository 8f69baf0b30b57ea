// Package services contains the typed resource API groups. Each group
// builds paths and payloads for one backend domain and delegates every
// call to the shared transport client.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// AuthAPI covers signup, login, verification, password recovery, and
// profile management for both roles. The backend exposes parallel
// /farmer/* and /buyer/* route trees; every method takes the role and
// picks the tree.
type AuthAPI struct {
	client *transport.Client
}

func NewAuthAPI(client *transport.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// loginResponse is the wire shape of a successful signup or login.
type loginResponse struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
	Role  core.Role `json:"role"`
}

func (r loginResponse) session(role core.Role) *core.Session {
	user := r.User
	if user.Role == "" {
		user.Role = role
	}
	if r.Role != "" {
		user.Role = r.Role
	}
	return &core.Session{Token: r.Token, User: user, Role: user.Role}
}

// Signup registers a new user and returns the session the backend opens
// for it. The caller decides whether to persist it via SessionStore.Login.
func (a *AuthAPI) Signup(ctx context.Context, role core.Role, input core.SignupInput) (*core.Session, error) {
	if !role.Valid() {
		return nil, core.ErrInvalidRole
	}
	var resp loginResponse
	if err := a.client.Post(ctx, "/"+role.String()+"/signup", input, &resp); err != nil {
		return nil, err
	}
	return resp.session(role), nil
}

// Login authenticates an existing user.
func (a *AuthAPI) Login(ctx context.Context, role core.Role, input core.LoginInput) (*core.Session, error) {
	if !role.Valid() {
		return nil, core.ErrInvalidRole
	}
	var resp loginResponse
	if err := a.client.Post(ctx, "/"+role.String()+"/login", input, &resp); err != nil {
		return nil, err
	}
	return resp.session(role), nil
}

// Verify confirms an email verification token.
func (a *AuthAPI) Verify(ctx context.Context, role core.Role, token string) error {
	if !role.Valid() {
		return core.ErrInvalidRole
	}
	if token == "" {
		return core.ErrTokenRequired
	}
	path := fmt.Sprintf("/%s/verify?token=%s", role, url.QueryEscape(token))
	return a.client.Get(ctx, path, nil)
}

// GetAll lists every profile for the role. The backend names the two list
// routes differently.
func (a *AuthAPI) GetAll(ctx context.Context, role core.Role) ([]core.User, error) {
	var path string
	switch role {
	case core.RoleFarmer:
		path = "/farmer/getFarmers"
	case core.RoleBuyer:
		path = "/buyer/getAll"
	default:
		return nil, core.ErrInvalidRole
	}

	var users []core.User
	if err := a.client.Get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID fetches one profile.
func (a *AuthAPI) GetByID(ctx context.Context, role core.Role, id string) (*core.User, error) {
	if !role.Valid() {
		return nil, core.ErrInvalidRole
	}
	var user core.User
	if err := a.client.Get(ctx, fmt.Sprintf("/%s/%s", role, url.PathEscape(id)), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update patches a profile and returns the updated document.
func (a *AuthAPI) Update(ctx context.Context, role core.Role, id string, patch core.UserPatch) (*core.User, error) {
	if !role.Valid() {
		return nil, core.ErrInvalidRole
	}
	var user core.User
	if err := a.client.Patch(ctx, fmt.Sprintf("/%s/update/%s", role, url.PathEscape(id)), patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes an account.
func (a *AuthAPI) Delete(ctx context.Context, role core.Role, id string) error {
	if !role.Valid() {
		return core.ErrInvalidRole
	}
	return a.client.Delete(ctx, fmt.Sprintf("/%s/delete/%s", role, url.PathEscape(id)), nil)
}

// ForgotPassword starts the password reset flow for an email address.
func (a *AuthAPI) ForgotPassword(ctx context.Context, role core.Role, email string) error {
	if !role.Valid() {
		return core.ErrInvalidRole
	}
	body := map[string]string{"email": email}
	return a.client.Post(ctx, "/"+role.String()+"/forgot-password", body, nil)
}

// ResetPassword sets a new password using a reset token from email.
func (a *AuthAPI) ResetPassword(ctx context.Context, role core.Role, token, password string) error {
	if !role.Valid() {
		return core.ErrInvalidRole
	}
	if token == "" {
		return core.ErrTokenRequired
	}
	path := fmt.Sprintf("/%s/reset-password?token=%s", role, url.QueryEscape(token))
	body := map[string]string{"password": password}
	return a.client.Post(ctx, path, body, nil)
}
