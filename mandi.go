// Package mandi is a Go client for the MandiConnect produce marketplace
// API. It centralizes session persistence, bearer-token injection, error
// classification, and normalization of the backend's inconsistently shaped
// payloads; callers work with the typed API groups on Client.
package mandi

import (
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mandiconnect/mandi-go/adapters/memory"
	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/pkg/logging"
	"github.com/mandiconnect/mandi-go/services"
	"github.com/mandiconnect/mandi-go/transport"
)

// DefaultBaseURL is the hosted MandiConnect backend.
const DefaultBaseURL = "https://mandiconnect.onrender.com"

// interfaces
type (
	KeyValueStore = core.KeyValueStore
)

// structs
type (
	User              = core.User
	UserPatch         = core.UserPatch
	Session           = core.Session
	SessionStore      = core.SessionStore
	Role              = core.Role
	EntityRef         = core.EntityRef
	Crop              = core.Crop
	Market            = core.Market
	PriceEntry        = core.PriceEntry
	PriceStats        = core.PriceStats
	FarmerListing     = core.FarmerListing
	BuyerDemand       = core.BuyerDemand
	Notification      = core.Notification
	ConnectionRequest = core.ConnectionRequest
	Connection        = core.Connection
	UploadedImage     = core.UploadedImage
	APIError          = core.APIError
	RetryPolicy       = transport.RetryPolicy
)

// inputs
type (
	SignupInput         = core.SignupInput
	LoginInput          = core.LoginInput
	AddCropInput        = core.AddCropInput
	AddMarketInput      = core.AddMarketInput
	AddPriceEntryInput  = core.AddPriceEntryInput
	CreateListingInput  = core.CreateListingInput
	ListingPatch        = core.ListingPatch
	AddDemandInput      = core.AddDemandInput
	SendConnectionInput = core.SendConnectionInput
)

const (
	RoleFarmer = core.RoleFarmer
	RoleBuyer  = core.RoleBuyer
)

// Helpers (convenience re-exports)
var (
	UserMessage            = core.UserMessage
	ExtractUserID          = core.ExtractUserID
	ExtractCropInfo        = core.ExtractCropInfo
	ExtractMarketInfo      = core.ExtractMarketInfo
	BuildConnectionRequest = core.BuildConnectionRequest
	DefaultRetryPolicy     = transport.DefaultRetryPolicy
)

var (
	ErrInvalidRole       = core.ErrInvalidRole
	ErrTokenRequired     = core.ErrTokenRequired
	ErrRecipientRequired = core.ErrRecipientRequired
	ErrKeyNotFound       = core.ErrKeyNotFound
)

// Config configures the client. The zero value targets the hosted backend
// with an in-memory session store and a production logger.
type Config struct {
	// BaseURL overrides the backend address.
	BaseURL string

	// Timeout overrides the 30 second per-request timeout.
	Timeout time.Duration

	// Storage holds the persisted session. Defaults to an in-memory store;
	// pass the file or pgx adapter for sessions that survive a restart.
	Storage core.KeyValueStore

	// Logger overrides the configured logger.
	Logger *logrus.Logger

	// Development switches logging to debug-level text output.
	Development bool

	// Retry opts in to retrying failed requests. Nil disables retries.
	Retry *transport.RetryPolicy
}

// Client bundles the session store and the typed API groups over one
// shared HTTP client.
type Client struct {
	Sessions *core.SessionStore

	Auth          *services.AuthAPI
	Catalog       *services.CatalogAPI
	Prices        *services.PriceAPI
	Stats         *services.StatsAPI
	FarmerMarket  *services.FarmerMarketAPI
	BuyerMarket   *services.BuyerMarketAPI
	Notifications *services.NotificationAPI
	Connections   *services.ConnectionAPI
}

func New(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}

	storage := config.Storage
	if storage == nil {
		storage = memory.New()
	}

	log := config.Logger
	if log == nil {
		log = logging.New(config.Development)
	}

	sessions := core.NewSessionStore(storage, log)

	http := transport.New(transport.Options{
		BaseURL:  baseURL,
		Timeout:  config.Timeout,
		Storage:  storage,
		Sessions: sessions,
		Logger:   log,
		Retry:    config.Retry,
	})

	return &Client{
		Sessions:      sessions,
		Auth:          services.NewAuthAPI(http),
		Catalog:       services.NewCatalogAPI(http),
		Prices:        services.NewPriceAPI(http),
		Stats:         services.NewStatsAPI(http),
		FarmerMarket:  services.NewFarmerMarketAPI(http),
		BuyerMarket:   services.NewBuyerMarketAPI(http),
		Notifications: services.NewNotificationAPI(http),
		Connections:   services.NewConnectionAPI(http),
	}, nil
}
