package handler

import (
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/usecase"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// Dutch phone numbers: +31 or 0 prefix followed by nine digits.
var dutchPhonePattern = regexp.MustCompile(`^(\+31|0)[1-9][0-9]{8}$`)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type updateProfileRequest struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=20"`
	FullName  string `json:"full_name" validate:"omitempty,min=2,max=50"`
	Phone     string `json:"phone" validate:"omitempty"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
	Location  string `json:"location" validate:"omitempty,max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if req.Username != "" && !usernamePattern.MatchString(req.Username) {
		return response.Error(c, errors.BadRequest("Username may only contain letters, digits and underscores", nil))
	}

	if req.Phone != "" && !dutchPhonePattern.MatchString(req.Phone) {
		return response.Error(c, errors.BadRequest("Phone must be a valid Dutch number", nil))
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Username:  req.Username,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Bio:       req.Bio,
		Location:  req.Location,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateNotificationPrefs(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		NotifyNewMessage    *bool `json:"notify_new_message"`
		NotifyPaymentUpdate *bool `json:"notify_payment_update"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	user, err := h.userUseCase.UpdateNotificationPrefs(c.Request().Context(), uid, usecase.NotificationPrefsInput{
		NotifyNewMessage:    req.NotifyNewMessage,
		NotifyPaymentUpdate: req.NotifyPaymentUpdate,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.UpdatePassword(c.Request().Context(), uid, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Password updated",
	})
}

// publicUser is the profile shape exposed to other users. No email, no
// phone.
type publicUser struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name,omitempty"`
	Bio         string  `json:"bio,omitempty"`
	Location    string  `json:"location,omitempty"`
	AvatarURL   string  `json:"avatar_url,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	SaleCount   int     `json:"sale_count"`
	MemberSince string  `json:"member_since"`
}

func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	userID := c.Param("id")

	profile, err := h.userUseCase.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user": publicUser{
			ID:          profile.User.ID,
			Username:    profile.User.Username,
			FullName:    profile.User.FullName,
			Bio:         profile.User.Bio,
			Location:    profile.User.Location,
			AvatarURL:   profile.User.AvatarURL,
			Rating:      profile.User.Rating,
			ReviewCount: profile.User.ReviewCount,
			SaleCount:   profile.User.SaleCount,
			MemberSince: profile.User.CreatedAt.Format("2006-01-02"),
		},
		"listings": profile.Listings,
	})
}
