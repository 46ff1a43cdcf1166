package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"interior-catalog-service/internal/catalog"
	"interior-catalog-service/internal/domain"
	"interior-catalog-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalogStore store.CatalogStorer
	filterStore  store.FilterStorer
	validate     *validator.Validate
	logger       logrus.FieldLogger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(cs store.CatalogStorer, fs store.FilterStorer, logger logrus.FieldLogger) *HTTPHandler {
	return &HTTPHandler{
		catalogStore: cs,
		filterStore:  fs,
		validate:     validator.New(),
		logger:       logger,
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.logger.WithError(err).Error("Failed to encode JSON response")
		}
	}
}

// --- Catalog Handlers ---

func (h *HTTPHandler) ListDoors(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	minPrice, maxPrice, err := parsePriceRange(qParams)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter := catalog.DoorFilter{
		RoomType: optionalString(qParams, "room_type"),
		Style:    optionalString(qParams, "style"),
		Material: optionalString(qParams, "material"),
		Brand:    optionalString(qParams, "brand"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}

	doors, err := h.catalogStore.ListDoors(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("ListDoors store operation failed")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to retrieve doors")
		return
	}
	if doors == nil {
		doors = []domain.Door{}
	}
	h.respondWithJSON(w, http.StatusOK, doors)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	if !qParams.Has("category_name") {
		h.respondWithError(w, http.StatusBadRequest, "category_name is required")
		return
	}
	minPrice, maxPrice, err := parsePriceRange(qParams)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter := catalog.ProductFilter{
		CategoryName: qParams.Get("category_name"),
		Style:        optionalString(qParams, "style"),
		Brand:        optionalString(qParams, "brand"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
	}

	products, err := h.catalogStore.ListProducts(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			h.respondWithError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.WithError(err).WithField("category", filter.CategoryName).Error("ListProducts store operation failed")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	h.respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, catalog.Categories())
}

// --- Saved Filter Handlers ---

// SaveFilterInput defines the expected body for saving a filter.
type SaveFilterInput struct {
	Name    string                 `json:"name" validate:"required,max=255"`
	Filters map[string]interface{} `json:"filters" validate:"required"`
}

// SaveFilterResponse confirms a stored filter.
type SaveFilterResponse struct {
	Status     string `json:"status"`
	FilterName string `json:"filter_name"`
}

func (h *HTTPHandler) SaveFilter(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r.URL.Query())
	if err != nil {
		h.respondUserIDError(w, err)
		return
	}

	var input SaveFilterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	filter := &domain.SavedFilter{
		UserID:  userID,
		Name:    input.Name,
		Filters: domain.FilterPayload(input.Filters),
	}
	if err := h.filterStore.SaveFilter(r.Context(), filter); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondWithError(w, http.StatusNotFound, store.ErrUserNotFound.Error())
			return
		}
		h.logger.WithError(err).WithField("user_id", userID).Error("SaveFilter store operation failed")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to save filter")
		return
	}

	h.respondWithJSON(w, http.StatusCreated, SaveFilterResponse{Status: "saved", FilterName: filter.Name})
}

func (h *HTTPHandler) ListFilters(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r.URL.Query())
	if err != nil {
		h.respondUserIDError(w, err)
		return
	}

	filters, err := h.filterStore.ListFilters(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("ListFilters store operation failed")
		h.respondWithError(w, http.StatusInternalServerError, "Failed to retrieve filters")
		return
	}
	if filters == nil {
		filters = []domain.SavedFilter{}
	}
	h.respondWithJSON(w, http.StatusOK, filters)
}

func (h *HTTPHandler) respondUserIDError(w http.ResponseWriter, err error) {
	if errors.Is(err, errMissingUserID) {
		h.respondWithError(w, http.StatusUnauthorized, "User ID is required")
		return
	}
	h.respondWithError(w, http.StatusBadRequest, err.Error())
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
// Each route answers both with and without the trailing slash.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/doors", func(r chi.Router) {
		r.Get("/", h.ListDoors) // GET /doors/
	})
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts) // GET /products/?category_name=
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories) // GET /categories/
	})
	r.Route("/filters", func(r chi.Router) {
		r.Post("/", h.SaveFilter) // POST /filters/?user_id=
		r.Get("/", h.ListFilters) // GET /filters/?user_id=
	})
}
