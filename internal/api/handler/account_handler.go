package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tinyboard/account-registry/internal/core/domain"
	"github.com/tinyboard/account-registry/internal/core/ports"
)

// ActivityEnqueuer hands a last-seen touch to the background dispatcher.
type ActivityEnqueuer interface {
	Enqueue(touch ports.ActivityTouch)
}

// AccountHandler handles HTTP requests for account registration and listing.
type AccountHandler struct {
	registration ports.RegistrationService
	listing      ports.ListingService
	activity     ActivityEnqueuer
}

func NewAccountHandler(registration ports.RegistrationService, listing ports.ListingService, activity ActivityEnqueuer) *AccountHandler {
	return &AccountHandler{registration: registration, listing: listing, activity: activity}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Candidate username"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.registration.Register(c.Request().Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidUsername):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrAccountExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: "account already exists"})
		}
		// Never echo storage error text back to the client.
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	c.Response().Header().Set(echo.HeaderLocation, result.Location)
	return c.JSON(http.StatusCreated, registerResponse{
		Account:  toAccountResponse(result.Account),
		Location: result.Location,
	})
}

// List returns the first page of accounts, ordered ascending by username.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   accountResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.listing.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	resp := make([]accountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, toAccountResponse(&accounts[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single account by username. A successful read also records an
// asynchronous last-seen touch; the response never waits for it.
//
// @Summary      Get an account by username
// @Tags         accounts
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  accountResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/users/{username} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	username := c.Param("username")

	account, err := h.listing.Lookup(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	h.activity.Enqueue(ports.ActivityTouch{Username: account.Username, Timestamp: time.Now().UTC()})

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		Username:   a.Username,
		LastSeenAt: a.LastSeenAt,
		CreatedAt:  a.CreatedAt,
		Role:       int(a.Role),
	}
}
