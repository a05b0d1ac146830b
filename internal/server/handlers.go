package server

import (
	"errors"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"grocery-planner/internal/auth"
	"grocery-planner/internal/grocery"
	"grocery-planner/internal/planner"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/suggest"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := s.authn.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return fail(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmptyEmail):
			return fail(c, fiber.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to register user", "error", err)
			return fail(c, fiber.StatusInternalServerError, "failed to register user")
		}
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "user": user})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := s.authn.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (s *Server) listItems(c *fiber.Ctx) error {
	items, err := s.items.ListItems(c.UserContext(), currentUserID(c))
	if err != nil {
		slog.Error("failed to list items", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to list items")
	}
	if items == nil {
		items = []grocery.Item{}
	}
	return c.JSON(items)
}

func (s *Server) createItem(c *fiber.Ctx) error {
	var item grocery.Item
	if err := c.BodyParser(&item); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	item.UserID = currentUserID(c)

	if err := s.items.AddItem(c.UserContext(), &item); err != nil {
		return itemError(c, err, "failed to add item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (s *Server) updateItem(c *fiber.Ctx) error {
	var item grocery.Item
	if err := c.BodyParser(&item); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	item.ID = c.Params("id")
	item.UserID = currentUserID(c)

	if err := s.items.UpdateItem(c.UserContext(), &item); err != nil {
		return itemError(c, err, "failed to update item")
	}
	return c.JSON(item)
}

func (s *Server) deleteItem(c *fiber.Ctx) error {
	err := s.items.DeleteItem(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return itemError(c, err, "failed to delete item")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) togglePurchased(c *fiber.Ctx) error {
	item, err := s.items.TogglePurchased(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return itemError(c, err, "failed to toggle item")
	}
	return c.JSON(item)
}

func (s *Server) getPreferences(c *fiber.Ctx) error {
	prefs, err := s.prefs.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		slog.Error("failed to get preferences", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to get preferences")
	}
	return c.JSON(prefs)
}

func (s *Server) putPreferences(c *fiber.Ctx) error {
	var prefs preferences.Preferences
	if err := c.BodyParser(&prefs); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	prefs.UserID = currentUserID(c)

	if err := s.prefs.Save(c.UserContext(), prefs); err != nil {
		if errors.Is(err, preferences.ErrNegativeBudget) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("failed to save preferences", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to save preferences")
	}
	return c.JSON(prefs)
}

func (s *Server) listStores(c *fiber.Ctx) error {
	stores, err := s.items.ListStores(c.UserContext())
	if err != nil {
		slog.Error("failed to list stores", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to list stores")
	}
	if stores == nil {
		stores = []grocery.Store{}
	}
	return c.JSON(stores)
}

func (s *Server) getSuggestions(c *fiber.Ctx) error {
	prefs, err := s.prefs.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		slog.Error("failed to get preferences for suggestions", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to get preferences")
	}
	return c.JSON(s.cache.Get(c.UserContext(), prefs))
}

func (s *Server) acceptSuggestion(c *fiber.Ctx) error {
	var food suggest.FoodItem
	if err := c.BodyParser(&food); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	item := grocery.Item{
		UserID:   currentUserID(c),
		Name:     food.Name,
		Category: food.Category,
		Store:    food.Store,
	}
	if price, err := strconv.ParseFloat(food.Price, 64); err == nil && price >= 0 {
		item.Price = &price
	}

	if err := s.items.AddItem(c.UserContext(), &item); err != nil {
		return itemError(c, err, "failed to accept suggestion")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (s *Server) comparePrices(c *fiber.Ctx) error {
	name := c.Params("item")
	if decoded, err := url.QueryUnescape(name); err == nil {
		name = decoded
	}

	comparisons, err := s.prices.Compare(c.UserContext(), name)
	if err != nil {
		slog.Error("failed to compare prices", "item", name, "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to compare prices")
	}
	return c.JSON(comparisons)
}

func (s *Server) getPlan(c *fiber.Ctx) error {
	userID := currentUserID(c)
	items, err := s.items.ListItems(c.UserContext(), userID)
	if err != nil {
		slog.Error("failed to list items for plan", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to build plan")
	}
	prefs, err := s.prefs.Get(c.UserContext(), userID)
	if err != nil {
		slog.Error("failed to get preferences for plan", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to build plan")
	}

	plan := planner.Plan(items)
	if plan == nil {
		plan = []planner.StorePlan{}
	}
	return c.JSON(fiber.Map{
		"plan":   plan,
		"budget": planner.Summarize(plan, prefs.Budget),
	})
}

func (s *Server) getExpirationAlerts(c *fiber.Ctx) error {
	items, err := s.items.ListItems(c.UserContext(), currentUserID(c))
	if err != nil {
		slog.Error("failed to list items for alerts", "error", err)
		return fail(c, fiber.StatusInternalServerError, "failed to build alerts")
	}

	expiring := planner.ExpiringSoon(items, s.now())
	if expiring == nil {
		expiring = []planner.ExpiringItem{}
	}
	return c.JSON(expiring)
}

func itemError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, grocery.ErrDuplicateName):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, grocery.ErrEmptyName):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, grocery.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	default:
		slog.Error(fallback, "error", err)
		return fail(c, fiber.StatusInternalServerError, fallback)
	}
}
