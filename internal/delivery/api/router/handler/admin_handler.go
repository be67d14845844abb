package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storerating/internal/delivery/api/response"
	"storerating/internal/errors"
	"storerating/internal/usecase"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var input usecase.CreateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid user input")
	}

	summary, err := h.uc.CreateAccount(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, summary, "User created successfully")
}

func (h *AdminHandler) CreateStore(c echo.Context) error {
	var input usecase.CreateStoreInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid store input")
	}

	store, err := h.uc.CreateStore(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, store, "Store created successfully")
}
