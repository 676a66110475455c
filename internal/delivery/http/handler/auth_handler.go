package handler

import (
	"encoding/json"
	"net/http"

	"cleaning-service-scheduler/internal/delivery/dto"
	"cleaning-service-scheduler/internal/delivery/http/middleware"
	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/usecase"
	"cleaning-service-scheduler/pkg/response"
	"cleaning-service-scheduler/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// loginRoles maps the {role} path segment of the login routes.
var loginRoles = map[string]entity.Role{
	"admins":    entity.RoleAdmin,
	"customers": entity.RoleCustomer,
	"employees": entity.RoleEmployee,
}

type AuthHandler struct {
	base
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		base:        base{validator: validator, log: log},
		authUsecase: authUsecase,
	}
}

// RegisterCustomer handles customer self-registration
// @Summary Register a customer
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterCustomerRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/customers/register [post]
func (h *AuthHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}

	customer, err := h.authUsecase.RegisterCustomer(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Customer registered successfully", customer)
}

// RegisterAdmin is open until the first admin exists, then admin-only.
// @Summary Register an admin
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterAdminRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/admins/register [post]
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAdminRequest
	if !h.decode(w, r, &req) {
		return
	}

	admin, err := h.authUsecase.RegisterAdmin(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, "Admin registered successfully", admin)
}

// Login handles login for one of the three roles
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param role path string true "admins, customers or employees"
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/{role}/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	role, ok := loginRoles[mux.Vars(r)["role"]]
	if !ok {
		response.NotFound(w, "Unknown role")
		return
	}

	var req dto.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), role, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !h.decode(w, r, &req) {
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Token refreshed successfully", tokens)
}

// Logout handles user logout
// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// The refresh token in the body is optional.
	var req dto.LogoutRequest
	json.NewDecoder(r.Body).Decode(&req)

	if err := h.authUsecase.Logout(r.Context(), tokenID, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// Me returns the profile of the authenticated actor
// @Summary Get current account
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	me, err := h.authUsecase.Me(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Account retrieved successfully", me)
}
