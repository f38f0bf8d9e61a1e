package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/internal/usecase"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/response"
	"github.com/Mattyonemillion/henlo/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type listingImageRequest struct {
	URL          string `json:"url" validate:"required,url"`
	Path         string `json:"path" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

type createListingRequest struct {
	Title             string                `json:"title" validate:"required,min=5,max=100"`
	Description       string                `json:"description" validate:"required,min=20"`
	Price             float64               `json:"price" validate:"required,gt=0"`
	Condition         string                `json:"condition" validate:"required,oneof=new like_new good fair poor"`
	CategoryID        string                `json:"category_id" validate:"required"`
	Location          string                `json:"location" validate:"required,max=100"`
	ShippingAvailable bool                  `json:"shipping_available"`
	PickupAvailable   bool                  `json:"pickup_available"`
	Images            []listingImageRequest `json:"images" validate:"omitempty,max=10,dive"`
}

type updateListingRequest struct {
	Title             string                `json:"title" validate:"omitempty,min=5,max=100"`
	Description       string                `json:"description" validate:"omitempty,min=20"`
	Price             *float64              `json:"price" validate:"omitempty,gt=0"`
	Condition         string                `json:"condition" validate:"omitempty,oneof=new like_new good fair poor"`
	CategoryID        string                `json:"category_id"`
	Location          string                `json:"location" validate:"omitempty,max=100"`
	ShippingAvailable *bool                 `json:"shipping_available"`
	PickupAvailable   *bool                 `json:"pickup_available"`
	Images            []listingImageRequest `json:"images" validate:"omitempty,max=10,dive"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), uid, usecase.CreateListingInput{
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		Condition:         req.Condition,
		CategoryID:        req.CategoryID,
		Location:          req.Location,
		ShippingAvailable: req.ShippingAvailable,
		PickupAvailable:   req.PickupAvailable,
		Images:            toImageInputs(req.Images),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), id, uid, usecase.UpdateListingInput{
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		Condition:         req.Condition,
		CategoryID:        req.CategoryID,
		Location:          req.Location,
		ShippingAvailable: req.ShippingAvailable,
		PickupAvailable:   req.PickupAvailable,
		Images:            toImageInputs(req.Images),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), id, uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted",
	})
}

func (h *ListingHandler) SetStatus(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	var req struct {
		Status string `json:"status" validate:"required,oneof=active inactive"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.SetStatus(c.Request().Context(), id, uid, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	detail, err := h.listingUseCase.GetListingByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

func (h *ListingHandler) GetListingBySlug(c echo.Context) error {
	detail, err := h.listingUseCase.GetListingBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

// ListListings serves the browse page. Every query param is an optional
// filter and they combine with AND.
func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := repository.ListingFilter{
		Condition:  c.QueryParam("condition"),
		CategoryID: c.QueryParam("category"),
		Location:   c.QueryParam("location"),
		Query:      c.QueryParam("q"),
	}

	if raw := c.QueryParam("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return response.Error(c, errors.BadRequest("min_price must be a non-negative number", err))
		}
		filter.PriceMin = &v
	}

	if raw := c.QueryParam("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return response.Error(c, errors.BadRequest("max_price must be a non-negative number", err))
		}
		filter.PriceMax = &v
	}

	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return response.Error(c, errors.BadRequest("min_price cannot exceed max_price", nil))
	}

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), filter, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListMyListings(c.Request().Context(), uid, c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func toImageInputs(images []listingImageRequest) []usecase.ListingImageInput {
	result := make([]usecase.ListingImageInput, len(images))
	for i, img := range images {
		result[i] = usecase.ListingImageInput{
			URL:          img.URL,
			Path:         img.Path,
			DisplayOrder: img.DisplayOrder,
		}
	}
	return result
}
