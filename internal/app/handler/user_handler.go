package handler

import (
	"net/http"

	"custody/internal/app/dto"
	"custody/internal/app/role"
	"custody/internal/app/service"

	"github.com/gin-gonic/gin"
)

// ============ Users (admin) ============

// GetUsers
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse
// @Router /api/users [get]
func (h *APIHandler) GetUsers(c *gin.Context) {
	users, err := h.Service.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, dto.UserListResponse{Users: out, Total: len(out)})
}

// GetUser
// @Summary User detail
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id} [get]
func (h *APIHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.Service.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// CreateUser
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserRequest true "Account"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/users [post]
func (h *APIHandler) CreateUser(c *gin.Context) {
	in, ok := bindUserRequest(c)
	if !ok {
		return
	}

	user, err := h.Service.CreateUser(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// UpdateUser
// @Summary Update a user
// @Description An empty password keeps the current one
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UserRequest true "Account"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/users/{id} [put]
func (h *APIHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	in, ok := bindUserRequest(c)
	if !ok {
		return
	}

	user, err := h.Service.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUserProfile
// @Summary Update own contact data
// @Description Name, e-mail and address of the authenticated user. CPF and RG are recorded when signing.
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContactRequest true "Contact data"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *APIHandler) UpdateUserProfile(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	user, err := h.Service.UpdateContact(c.Request.Context(), actor, service.ContactInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func bindUserRequest(c *gin.Context) (service.UserInput, bool) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return service.UserInput{}, false
	}

	r := role.Employee
	if req.Role != "" {
		r, _ = role.Parse(req.Role)
	}
	in := service.UserInput{
		Login:     req.Login,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      r,
	}
	if req.Profile != nil {
		in.Profile = fromProfileDTO(*req.Profile)
	}
	return in, true
}
