package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
	"comlab/internal/pagination"
	"comlab/internal/services"
)

// --- mock user service ---

type mockComputerUserService struct {
	listUsersFn          func(search string, page pagination.PageRequest) (*pagination.PageResponse[models.ComputerUser], error)
	getUserByIDFn        func(id uint) (*models.ComputerUser, error)
	getUserByStudentIDFn func(studentID string) (*models.ComputerUser, error)
	createUserFn         func(input services.CreateUserInput) (*models.ComputerUser, error)
	updateUserFn         func(id uint, p services.UserPatch) (*models.ComputerUser, error)
	deleteUserFn         func(id uint) (*models.ComputerUser, error)
	updateUserStatusFn   func(id uint, status models.UserStatus) (*models.ComputerUser, error)
	countUsersFn         func() (*services.UserCounts, error)
}

func (m *mockComputerUserService) ListUsers(search string, page pagination.PageRequest) (*pagination.PageResponse[models.ComputerUser], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(search, page)
	}
	resp := pagination.NewPageResponse([]models.ComputerUser{}, 1, pagination.UsersPageSize, 0)
	return &resp, nil
}

func (m *mockComputerUserService) GetUserByID(id uint) (*models.ComputerUser, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.ComputerUser{Base: models.Base{ID: id}}, nil
}

func (m *mockComputerUserService) GetUserByStudentID(studentID string) (*models.ComputerUser, error) {
	if m.getUserByStudentIDFn != nil {
		return m.getUserByStudentIDFn(studentID)
	}
	return &models.ComputerUser{StudentID: studentID}, nil
}

func (m *mockComputerUserService) CreateUser(input services.CreateUserInput) (*models.ComputerUser, error) {
	if m.createUserFn != nil {
		return m.createUserFn(input)
	}
	return &models.ComputerUser{StudentID: input.StudentID, FirstName: input.FirstName, LastName: input.LastName}, nil
}

func (m *mockComputerUserService) UpdateUser(id uint, p services.UserPatch) (*models.ComputerUser, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(id, p)
	}
	return &models.ComputerUser{Base: models.Base{ID: id}}, nil
}

func (m *mockComputerUserService) DeleteUser(id uint) (*models.ComputerUser, error) {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(id)
	}
	return &models.ComputerUser{Base: models.Base{ID: id}}, nil
}

func (m *mockComputerUserService) UpdateUserStatus(id uint, status models.UserStatus) (*models.ComputerUser, error) {
	if m.updateUserStatusFn != nil {
		return m.updateUserStatusFn(id, status)
	}
	return &models.ComputerUser{Base: models.Base{ID: id}, Status: status}, nil
}

func (m *mockComputerUserService) CountUsers() (*services.UserCounts, error) {
	if m.countUsersFn != nil {
		return m.countUsersFn()
	}
	return &services.UserCounts{}, nil
}

var _ services.ComputerUserServicer = (*mockComputerUserService)(nil)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	r.GET("/users", handler.ListUsers)
	r.POST("/users", handler.CreateUser)
	r.GET("/users/:id", handler.GetUser)
	r.PUT("/users/:id", handler.UpdateUser)
	r.DELETE("/users/:id", handler.DeleteUser)
	r.POST("/users/:id/status", handler.UpdateUserStatus)
	r.GET("/computer_users/", handler.UsersPage)
	r.POST("/computer_users/add/", handler.AddUserForm)
	r.POST("/computer_users/edit/:id/", handler.EditUserForm)
	r.GET("/computer_users/view/:id/", handler.ViewUserDetails)
	return r
}

const validUserBody = `{"student_id":"S100","first_name":"Ada","last_name":"Lovelace","contact_number":"0917","course":"BSCS","address":"Manila"}`

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("passes search and page through", func(t *testing.T) {
		var gotSearch string
		var gotPage pagination.PageRequest
		svc := &mockComputerUserService{
			listUsersFn: func(search string, page pagination.PageRequest) (*pagination.PageResponse[models.ComputerUser], error) {
				gotSearch, gotPage = search, page
				resp := pagination.NewPageResponse([]models.ComputerUser{{StudentID: "S100"}}, 2, page.PageSize, 11)
				return &resp, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, http.MethodGet, "/users?search=ada&page=2", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSearch != "ada" || gotPage.Page != 2 || gotPage.PageSize != pagination.UsersPageSize {
			t.Errorf("unexpected arguments: %q %+v", gotSearch, gotPage)
		}

		result := parseJSON(t, rec)
		if result["total"] != float64(11) || result["total_pages"] != float64(2) {
			t.Errorf("unexpected paging: %v", result)
		}
		users := result["users"].([]interface{})
		if len(users) != 1 {
			t.Errorf("expected 1 user, got %d", len(users))
		}
	})

	t.Run("bad page falls back to 1", func(t *testing.T) {
		var gotPage int
		svc := &mockComputerUserService{
			listUsersFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.ComputerUser], error) {
				gotPage = page.Page
				resp := pagination.NewPageResponse([]models.ComputerUser{}, 1, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))
		doRequest(r, http.MethodGet, "/users?page=abc", "")
		if gotPage != 1 {
			t.Errorf("expected page 1, got %d", gotPage)
		}
	})
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.CreateUserInput
		svc := &mockComputerUserService{
			createUserFn: func(input services.CreateUserInput) (*models.ComputerUser, error) {
				got = input
				return &models.ComputerUser{Base: models.Base{ID: 1}, StudentID: input.StudentID}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, http.MethodPost, "/users", validUserBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.StudentID != "S100" || got.Course != "BSCS" {
			t.Errorf("input not forwarded: %+v", got)
		}
		result := parseJSON(t, rec)
		if result["success"] != true || result["message"] != "User created successfully" {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("returns 409 for a duplicate student ID", func(t *testing.T) {
		svc := &mockComputerUserService{
			createUserFn: func(services.CreateUserInput) (*models.ComputerUser, error) {
				return nil, apperrors.ErrDuplicateStudentID
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, http.MethodPost, "/users", validUserBody)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_STUDENT_ID")
	})

	t.Run("returns 400 for an unknown access level", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockComputerUserService{}))
		body := `{"student_id":"S1","first_name":"A","last_name":"B","contact_number":"1","course":"C","address":"D","access_level":"root"}`

		rec := doRequest(r, http.MethodPost, "/users", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockComputerUserService{}))
		rec := doRequest(r, http.MethodPost, "/users", `{"student_id":`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockComputerUserService{
			getUserByIDFn: func(uint) (*models.ComputerUser, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, http.MethodGet, "/users/9", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})

	t.Run("returns 400 for a bad id", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockComputerUserService{}))
		rec := doRequest(r, http.MethodGet, "/users/abc", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	t.Run("distinguishes absent, null and value", func(t *testing.T) {
		var got services.UserPatch
		svc := &mockComputerUserService{
			updateUserFn: func(id uint, p services.UserPatch) (*models.ComputerUser, error) {
				got = p
				return &models.ComputerUser{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, http.MethodPut, "/users/3", `{"first_name":"Grace","email":null}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.FirstName.Present() || got.FirstName.Value != "Grace" {
			t.Errorf("expected first_name set, got %+v", got.FirstName)
		}
		if !got.Email.Set || !got.Email.Null {
			t.Errorf("expected email null, got %+v", got.Email)
		}
		if got.Course.Set {
			t.Errorf("expected course absent, got %+v", got.Course)
		}
	})

	t.Run("propagates validation errors", func(t *testing.T) {
		svc := &mockComputerUserService{
			updateUserFn: func(uint, services.UserPatch) (*models.ComputerUser, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "First Name cannot be empty")
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, http.MethodPut, "/users/3", `{"first_name":""}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if parseJSON(t, rec)["error"] != "First Name cannot be empty" {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	svc := &mockComputerUserService{
		deleteUserFn: func(id uint) (*models.ComputerUser, error) {
			return &models.ComputerUser{Base: models.Base{ID: id}, FirstName: "Ada", LastName: "Lovelace"}, nil
		},
	}
	r := setupUserRouter(NewUserHandler(svc))

	rec := doRequest(r, http.MethodDelete, "/users/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := parseJSON(t, rec)["message"]; msg != "User Ada Lovelace deleted successfully" {
		t.Errorf("unexpected message: %v", msg)
	}
}

func TestUserHandler_UpdateUserStatus(t *testing.T) {
	t.Run("requires a status", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockComputerUserService{}))
		rec := doRequest(r, http.MethodPost, "/users/5/status", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if parseJSON(t, rec)["error"] != "Status is required" {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("reports the new status", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockComputerUserService{}))
		rec := doRequest(r, http.MethodPost, "/users/5/status", `{"status":"suspended"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["message"] != "User status updated to suspended" || result["status"] != "suspended" {
			t.Errorf("unexpected body: %v", result)
		}
	})
}

func TestUserHandler_UsersPage(t *testing.T) {
	svc := &mockComputerUserService{
		countUsersFn: func() (*services.UserCounts, error) {
			return &services.UserCounts{Total: 12, Active: 9}, nil
		},
	}
	r := setupUserRouter(NewUserHandler(svc))

	rec := doRequest(r, http.MethodGet, "/computer_users/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["total_users"] != float64(12) || result["active_users"] != float64(9) {
		t.Errorf("unexpected counts: %v", result)
	}
	if result["current_page"] != "computer_users" {
		t.Errorf("unexpected current_page: %v", result["current_page"])
	}
}

func TestUserHandler_AddUserForm(t *testing.T) {
	validForm := func() url.Values {
		return url.Values{
			"student_id":    {"S100"},
			"firstName":     {"Ada"},
			"lastName":      {"Lovelace"},
			"contactNumber": {"0917"},
			"course":        {"BSCS"},
			"address":       {"Manila"},
		}
	}

	t.Run("redirects with success flash", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockComputerUserService{}))
		rec := doForm(r, "/computer_users/add/", validForm(), false)
		assertRedirectFlash(t, rec, "/computer_users/", FlashSuccess, "User Ada Lovelace added successfully!")
	})

	t.Run("missing field never reaches the service", func(t *testing.T) {
		called := false
		svc := &mockComputerUserService{
			createUserFn: func(services.CreateUserInput) (*models.ComputerUser, error) {
				called = true
				return nil, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		form := validForm()
		form.Set("course", "  ")
		rec := doForm(r, "/computer_users/add/", form, false)
		assertRedirectFlash(t, rec, "/computer_users/", FlashError, "All required fields must be filled.")
		if called {
			t.Error("service should not be called")
		}
	})

	t.Run("duplicate student ID", func(t *testing.T) {
		svc := &mockComputerUserService{
			createUserFn: func(services.CreateUserInput) (*models.ComputerUser, error) {
				return nil, apperrors.ErrDuplicateStudentID
			},
		}
		r := setupUserRouter(NewUserHandler(svc))
		rec := doForm(r, "/computer_users/add/", validForm(), false)
		assertRedirectFlash(t, rec, "/computer_users/", FlashError, "Student ID already exists.")
	})
}

func TestUserHandler_EditUserForm(t *testing.T) {
	t.Run("empty inputs are left unchanged", func(t *testing.T) {
		var got services.UserPatch
		svc := &mockComputerUserService{
			updateUserFn: func(id uint, p services.UserPatch) (*models.ComputerUser, error) {
				got = p
				return &models.ComputerUser{Base: models.Base{ID: id}, FirstName: "Grace", LastName: "Hopper"}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		form := url.Values{"firstName": {"Grace"}, "lastName": {""}, "email": {""}}
		rec := doForm(r, "/computer_users/edit/4/", form, false)
		assertRedirectFlash(t, rec, "/computer_users/", FlashSuccess, "User Grace Hopper updated successfully!")

		if !got.FirstName.Present() {
			t.Error("expected first name to be set")
		}
		if got.LastName.Set {
			t.Error("expected empty last name to be absent")
		}
		if !got.Email.Set || got.Email.Value != "" {
			t.Errorf("expected email to be cleared, got %+v", got.Email)
		}
		if got.ComputerStation.Set {
			t.Error("expected computer station absent when not posted")
		}
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		svc := &mockComputerUserService{
			getUserByIDFn: func(uint) (*models.ComputerUser, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupUserRouter(NewUserHandler(svc))
		rec := doForm(r, "/computer_users/edit/4/", url.Values{"firstName": {"X"}}, false)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("service error becomes an error flash", func(t *testing.T) {
		svc := &mockComputerUserService{
			updateUserFn: func(uint, services.UserPatch) (*models.ComputerUser, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
			},
		}
		r := setupUserRouter(NewUserHandler(svc))
		rec := doForm(r, "/computer_users/edit/4/", url.Values{"status": {"gone"}}, false)
		assertRedirectFlash(t, rec, "/computer_users/", FlashError, "Error updating user: Invalid status")
	})
}

func TestUserHandler_ViewUserDetails(t *testing.T) {
	t.Run("formats dates and placeholders", func(t *testing.T) {
		created := time.Date(2025, 3, 4, 9, 15, 0, 0, time.UTC)
		svc := &mockComputerUserService{
			getUserByIDFn: func(id uint) (*models.ComputerUser, error) {
				return &models.ComputerUser{
					Base:      models.Base{ID: id, CreatedAt: created},
					StudentID: "S100",
					FirstName: "Ada",
					LastName:  "Lovelace",
				}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, http.MethodGet, "/computer_users/view/1/", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["last_login"] != "Never" {
			t.Errorf("expected Never, got %v", user["last_login"])
		}
		if user["computer_station"] != "Not Assigned" {
			t.Errorf("expected Not Assigned, got %v", user["computer_station"])
		}
		if user["created_at"] != "March 04, 2025 at 09:15 AM" {
			t.Errorf("unexpected created_at: %v", user["created_at"])
		}
		if user["full_name"] != "Ada Lovelace" {
			t.Errorf("unexpected full_name: %v", user["full_name"])
		}
	})
}
