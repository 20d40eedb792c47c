package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
	"comlab/internal/pagination"
	"comlab/internal/patch"
	"comlab/internal/services"
)

const (
	usersPagePath  = "/computer_users/"
	displayLayout  = "January 02, 2006 at 03:04 PM"
	neverLoggedIn  = "Never"
	stationMissing = "Not Assigned"
)

// UserHandler handles lab user requests.
type UserHandler struct {
	userService services.ComputerUserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.ComputerUserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents the request payload for registering a user.
// Required fields are checked by the service so the first missing one is named.
type CreateUserRequest struct {
	StudentID     string             `json:"student_id"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Email         string             `json:"email" binding:"omitempty,email"`
	ContactNumber string             `json:"contact_number"`
	Course        string             `json:"course"`
	Address       string             `json:"address"`
	AccessLevel   models.AccessLevel `json:"access_level" binding:"omitempty,access_level"`
	Status        models.UserStatus  `json:"status" binding:"omitempty,user_status"`
}

// UpdateStatusRequest represents the request payload for a status change.
type UpdateStatusRequest struct {
	Status *models.UserStatus `json:"status"`
}

// UserListResponse is a page of users.
type UserListResponse struct {
	Success    bool                  `json:"success"`
	Users      []models.ComputerUser `json:"users"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// UserDetails is the user view with human-readable dates.
type UserDetails struct {
	ID              uint               `json:"id"`
	StudentID       string             `json:"student_id"`
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	FullName        string             `json:"full_name"`
	Email           string             `json:"email"`
	ContactNumber   string             `json:"contact_number"`
	Course          string             `json:"course"`
	Address         string             `json:"address"`
	AccessLevel     models.AccessLevel `json:"access_level"`
	Status          models.UserStatus  `json:"status"`
	ComputerStation string             `json:"computer_station"`
	LastLogin       string             `json:"last_login"`
	CreatedAt       string             `json:"created_at"`
}

func newUserDetails(u *models.ComputerUser) UserDetails {
	d := UserDetails{
		ID:              u.ID,
		StudentID:       u.StudentID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		ContactNumber:   u.ContactNumber,
		Course:          u.Course,
		Address:         u.Address,
		AccessLevel:     u.AccessLevel,
		Status:          u.Status,
		ComputerStation: u.ComputerStation,
		LastLogin:       neverLoggedIn,
		CreatedAt:       u.CreatedAt.Format(displayLayout),
	}
	if u.Email != nil {
		d.Email = *u.Email
	}
	if d.ComputerStation == "" {
		d.ComputerStation = stationMissing
	}
	if u.LastLogin != nil {
		d.LastLogin = u.LastLogin.Format(displayLayout)
	}
	return d
}

// ListUsers handles listing and searching users.
// @Summary     List users
// @Description Page through registered users, newest first, optionally filtered by a case-insensitive search
// @Tags        users
// @Produce     json
// @Param       search query string false "Matches first/last name, student ID, email or course"
// @Param       page   query int    false "Page number (default 1, clamped to the last page)"
// @Success     200 {object} UserListResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := pagination.FromQuery(c.Query("page"), pagination.UsersPageSize)

	result, err := h.userService.ListUsers(c.Query("search"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserListResponse{
		Success:    true,
		Users:      result.Data,
		Total:      result.TotalItems,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// CreateUser handles registering a user.
// @Summary     Create a user
// @Description Register a lab user. Access level defaults to student and status to active.
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} map[string]interface{} "User created"
// @Failure     400 {object} ErrorResponse "Missing or invalid field"
// @Failure     409 {object} ErrorResponse "Student ID already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	})
}

// GetUser handles fetching one user.
// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]interface{} "User"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateUser handles a partial update. Keys absent from the body are left
// unchanged; null clears email and computer_station.
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id      path int                true "User ID"
// @Param       request body services.UserPatch true "Fields to change"
// @Success     200 {object} map[string]interface{} "User updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var p services.UserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(id, p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteUser handles removing a user.
// @Summary     Delete a user
// @Description Activity log rows for the user are kept with their link cleared
// @Tags        users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.DeleteUser(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "User " + user.FullName() + " deleted successfully",
	})
}

// UpdateUserStatus handles a direct status change.
// @Summary     Update a user's status
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id      path int                 true "User ID"
// @Param       request body UpdateStatusRequest true "New status"
// @Success     200 {object} map[string]interface{} "Status updated"
// @Failure     400 {object} ErrorResponse "Missing or invalid status"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/status [post]
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Status == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Status is required"))
		return
	}

	user, err := h.userService.UpdateUserStatus(id, *req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User status updated to " + string(user.Status),
		"status":  user.Status,
	})
}

// UsersPage returns the users screen context: one page of users, the
// header counts, and any pending flash.
func (h *UserHandler) UsersPage(c *gin.Context) {
	page := pagination.FromQuery(c.Query("page"), pagination.UsersPageSize)

	result, err := h.userService.ListUsers("", page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	counts, err := h.userService.CountUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"current_page": "computer_users",
		"users":        result,
		"total_users":  counts.Total,
		"active_users": counts.Active,
		"flash":        popFlash(c),
	})
}

// AddUserForm handles the add-user form and redirects back to the users page.
func (h *UserHandler) AddUserForm(c *gin.Context) {
	input := services.CreateUserInput{
		StudentID:     formValue(c, "student_id"),
		FirstName:     formValue(c, "firstName"),
		LastName:      formValue(c, "lastName"),
		Email:         formValue(c, "email"),
		ContactNumber: formValue(c, "contactNumber"),
		Course:        formValue(c, "course"),
		Address:       formValue(c, "address"),
	}

	for _, v := range []string{input.StudentID, input.FirstName, input.LastName, input.ContactNumber, input.Course, input.Address} {
		if v == "" {
			redirectWithFlash(c, usersPagePath, FlashError, "All required fields must be filled.")
			return
		}
	}

	user, err := h.userService.CreateUser(input)
	switch {
	case apperrors.HasCode(err, apperrors.ErrDuplicateStudentID):
		redirectWithFlash(c, usersPagePath, FlashError, "Student ID already exists.")
	case err != nil:
		redirectWithFlash(c, usersPagePath, FlashError, "Error adding user: "+errorMessage(err))
	default:
		redirectWithFlash(c, usersPagePath, FlashSuccess, "User "+user.FullName()+" added successfully!")
	}
}

// EditUserForm handles the edit-user form. Empty inputs leave the field
// unchanged, except email and computer station which are cleared.
func (h *UserHandler) EditUserForm(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if _, err := h.userService.GetUserByID(id); err != nil {
		respondWithError(c, err)
		return
	}

	var p services.UserPatch
	p.FirstName = nonEmptyForm(c, "firstName")
	p.LastName = nonEmptyForm(c, "lastName")
	p.ContactNumber = nonEmptyForm(c, "contactNumber")
	p.Course = nonEmptyForm(c, "course")
	p.Address = nonEmptyForm(c, "address")
	if v, ok := c.GetPostForm("email"); ok {
		p.Email = patch.Value(v)
	}
	if v, ok := c.GetPostForm("computer_station"); ok {
		p.ComputerStation = patch.Value(v)
	}
	if v := formValue(c, "access_level"); v != "" {
		p.AccessLevel = patch.Value(models.AccessLevel(v))
	}
	if v := formValue(c, "status"); v != "" {
		p.Status = patch.Value(models.UserStatus(v))
	}

	user, err := h.userService.UpdateUser(id, p)
	if err != nil {
		redirectWithFlash(c, usersPagePath, FlashError, "Error updating user: "+errorMessage(err))
		return
	}
	redirectWithFlash(c, usersPagePath, FlashSuccess, "User "+user.FullName()+" updated successfully!")
}

// ViewUserDetails returns a user with display-formatted dates.
func (h *UserHandler) ViewUserDetails(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": newUserDetails(user)})
}

func nonEmptyForm(c *gin.Context, key string) patch.Field[string] {
	if v := formValue(c, key); v != "" {
		return patch.Value(v)
	}
	return patch.Field[string]{}
}
