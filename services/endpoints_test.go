package services

import (
	"context"
	"testing"

	"github.com/mandiconnect/mandi-go/core"
)

// apiSet bundles every API group over one fake backend.
type apiSet struct {
	auth          *AuthAPI
	catalog       *CatalogAPI
	prices        *PriceAPI
	stats         *StatsAPI
	farmerMarket  *FarmerMarketAPI
	buyerMarket   *BuyerMarketAPI
	notifications *NotificationAPI
	connections   *ConnectionAPI
}

func newAPISet(backend *FakeBackend) *apiSet {
	client := backend.Transport()
	return &apiSet{
		auth:          NewAuthAPI(client),
		catalog:       NewCatalogAPI(client),
		prices:        NewPriceAPI(client),
		stats:         NewStatsAPI(client),
		farmerMarket:  NewFarmerMarketAPI(client),
		buyerMarket:   NewBuyerMarketAPI(client),
		notifications: NewNotificationAPI(client),
		connections:   NewConnectionAPI(client),
	}
}

// Requirement: every operation hits its documented method and path.
func TestEndpointRouting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(*apiSet) error
		wantMethod string
		wantPath   string
		wantQuery  string
	}{
		{
			name:       "farmer login",
			call:       func(s *apiSet) error { _, err := s.auth.Login(ctx, core.RoleFarmer, core.LoginInput{}); return err },
			wantMethod: "POST",
			wantPath:   "/farmer/login",
		},
		{
			name:       "buyer signup",
			call:       func(s *apiSet) error { _, err := s.auth.Signup(ctx, core.RoleBuyer, core.SignupInput{}); return err },
			wantMethod: "POST",
			wantPath:   "/buyer/signup",
		},
		{
			name:       "farmer verify",
			call:       func(s *apiSet) error { return s.auth.Verify(ctx, core.RoleFarmer, "tok") },
			wantMethod: "GET",
			wantPath:   "/farmer/verify",
			wantQuery:  "token=tok",
		},
		{
			name:       "farmer list route",
			call:       func(s *apiSet) error { _, err := s.auth.GetAll(ctx, core.RoleFarmer); return err },
			wantMethod: "GET",
			wantPath:   "/farmer/getFarmers",
		},
		{
			name:       "buyer list route",
			call:       func(s *apiSet) error { _, err := s.auth.GetAll(ctx, core.RoleBuyer); return err },
			wantMethod: "GET",
			wantPath:   "/buyer/getAll",
		},
		{
			name:       "farmer delete",
			call:       func(s *apiSet) error { return s.auth.Delete(ctx, core.RoleFarmer, "f1") },
			wantMethod: "DELETE",
			wantPath:   "/farmer/delete/f1",
		},
		{
			name:       "buyer reset password",
			call:       func(s *apiSet) error { return s.auth.ResetPassword(ctx, core.RoleBuyer, "tok", "pw") },
			wantMethod: "POST",
			wantPath:   "/buyer/reset-password",
			wantQuery:  "token=tok",
		},
		{
			name:       "all crops",
			call:       func(s *apiSet) error { _, err := s.catalog.GetAllCrops(ctx); return err },
			wantMethod: "GET",
			wantPath:   "/getAllCrop",
		},
		{
			name:       "add market",
			call:       func(s *apiSet) error { _, err := s.catalog.AddMarket(ctx, core.AddMarketInput{}); return err },
			wantMethod: "POST",
			wantPath:   "/addMarket",
		},
		{
			name:       "add price entry",
			call:       func(s *apiSet) error { _, err := s.prices.Add(ctx, core.AddPriceEntryInput{}); return err },
			wantMethod: "POST",
			wantPath:   "/farmer-entries/add",
		},
		{
			name:       "all price entries",
			call:       func(s *apiSet) error { _, err := s.prices.GetAll(ctx); return err },
			wantMethod: "GET",
			wantPath:   "/farmer-entries/getAllEntries",
		},
		{
			name:       "entries by crop and market",
			call:       func(s *apiSet) error { _, err := s.prices.GetByCropAndMarket(ctx, "c1", "m1"); return err },
			wantMethod: "GET",
			wantPath:   "/farmer-entries/getByCropAndMarket/c1/m1",
		},
		{
			name:       "price agree vote",
			call:       func(s *apiSet) error { return s.prices.Agree(ctx, "e1", "f1") },
			wantMethod: "POST",
			wantPath:   "/farmer-entries/agree/e1/f1",
		},
		{
			name:       "price disagree vote",
			call:       func(s *apiSet) error { return s.prices.Disagree(ctx, "e1", "f1") },
			wantMethod: "POST",
			wantPath:   "/farmer-entries/disagree/e1/f1",
		},
		{
			name:       "stats by pair",
			call:       func(s *apiSet) error { _, err := s.stats.ByCropAndMarket(ctx, "c1", "m1"); return err },
			wantMethod: "GET",
			wantPath:   "/stats/getByCropIdAndMarketid/c1/m1",
		},
		{
			name:       "create listing",
			call:       func(s *apiSet) error { _, err := s.farmerMarket.CreateListing(ctx, core.CreateListingInput{}); return err },
			wantMethod: "POST",
			wantPath:   "/marketplace/farmer/cropListing",
		},
		{
			name:       "all listings",
			call:       func(s *apiSet) error { _, err := s.farmerMarket.GetAllListings(ctx); return err },
			wantMethod: "GET",
			wantPath:   "/marketplace/farmer/getAllListing",
		},
		{
			name:       "delete listing",
			call:       func(s *apiSet) error { return s.farmerMarket.DeleteListing(ctx, "l1") },
			wantMethod: "DELETE",
			wantPath:   "/marketplace/farmer/listing/l1",
		},
		{
			name:       "delete image",
			call:       func(s *apiSet) error { return s.farmerMarket.DeleteImage(ctx, "img/1 a") },
			wantMethod: "DELETE",
			wantPath:   "/marketplace/farmer/delete",
			wantQuery:  "public_id=img%2F1+a",
		},
		{
			name:       "add demand",
			call:       func(s *apiSet) error { _, err := s.buyerMarket.AddDemand(ctx, core.AddDemandInput{}); return err },
			wantMethod: "POST",
			wantPath:   "/marketplace/buyer/add",
		},
		{
			name:       "demands by status",
			call:       func(s *apiSet) error { _, err := s.buyerMarket.GetDemandsByStatus(ctx, "active"); return err },
			wantMethod: "GET",
			wantPath:   "/marketplace/buyer/status/active",
		},
		{
			name:       "notifications for user",
			call:       func(s *apiSet) error { _, err := s.notifications.ListByUser(ctx, "u1"); return err },
			wantMethod: "GET",
			wantPath:   "/notifications/user/u1",
		},
		{
			name:       "mark notification read",
			call:       func(s *apiSet) error { return s.notifications.MarkRead(ctx, "n1") },
			wantMethod: "PATCH",
			wantPath:   "/notifications/read/n1",
		},
		{
			name:       "mark all notifications read",
			call:       func(s *apiSet) error { return s.notifications.MarkAllRead(ctx, "u1") },
			wantMethod: "PATCH",
			wantPath:   "/notifications/read-all/u1",
		},
		{
			name:       "incoming connection requests",
			call:       func(s *apiSet) error { _, err := s.connections.Incoming(ctx, "u1"); return err },
			wantMethod: "GET",
			wantPath:   "/connections/incoming/u1",
		},
		{
			name:       "sent connection requests",
			call:       func(s *apiSet) error { _, err := s.connections.Sent(ctx, "u1"); return err },
			wantMethod: "GET",
			wantPath:   "/connections/sent/u1",
		},
		{
			name: "send connection request",
			call: func(s *apiSet) error {
				_, err := s.connections.Send(ctx, core.SendConnectionInput{RecipientID: "u2", RecipientRole: core.RoleBuyer})
				return err
			},
			wantMethod: "POST",
			wantPath:   "/connections/send",
		},
		{
			name:       "accept connection request",
			call:       func(s *apiSet) error { _, err := s.connections.Accept(ctx, "r1"); return err },
			wantMethod: "PATCH",
			wantPath:   "/connections/accept/r1",
		},
		{
			name:       "reject connection request",
			call:       func(s *apiSet) error { return s.connections.Reject(ctx, "r1") },
			wantMethod: "PATCH",
			wantPath:   "/connections/reject/r1",
		},
		{
			name:       "remove connection",
			call:       func(s *apiSet) error { return s.connections.Remove(ctx, "c1") },
			wantMethod: "DELETE",
			wantPath:   "/connections/c1",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			backend := NewFakeBackend()
			defer backend.Close()
			apis := newAPISet(backend)

			// Act
			if err := test.call(apis); err != nil {
				t.Fatalf("call error = %v", err)
			}

			// Assert
			last := backend.Last()
			if last.Method != test.wantMethod {
				t.Errorf("method = %q, want %q", last.Method, test.wantMethod)
			}
			if last.Path != test.wantPath {
				t.Errorf("path = %q, want %q", last.Path, test.wantPath)
			}
			if test.wantQuery != "" && last.RawQuery != test.wantQuery {
				t.Errorf("query = %q, want %q", last.RawQuery, test.wantQuery)
			}
		})
	}
}

// Requirement: invalid roles are rejected before any request is built.
func TestRoleValidation(t *testing.T) {
	backend := NewFakeBackend()
	defer backend.Close()
	apis := newAPISet(backend)
	ctx := context.Background()

	calls := map[string]func() error{
		"login":  func() error { _, err := apis.auth.Login(ctx, core.Role("admin"), core.LoginInput{}); return err },
		"signup": func() error { _, err := apis.auth.Signup(ctx, core.Role(""), core.SignupInput{}); return err },
		"getAll": func() error { _, err := apis.auth.GetAll(ctx, core.Role("vendor")); return err },
		"delete": func() error { return apis.auth.Delete(ctx, core.Role("x"), "id") },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); err != core.ErrInvalidRole {
				t.Errorf("error = %v, want ErrInvalidRole", err)
			}
		})
	}

	if got := len(backend.Requests()); got != 0 {
		t.Errorf("backend saw %d requests, want 0", got)
	}
}
