package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "comlab/internal/errors"
	"comlab/internal/models"
	"comlab/internal/pagination"
	"comlab/internal/patch"
	"comlab/internal/sanitize"
)

var userSearchColumns = []string{"first_name", "last_name", "student_id", "email", "course"}

// computerUserService handles lab user records.
type computerUserService struct {
	db *gorm.DB
}

// NewComputerUserService creates a new ComputerUserServicer.
func NewComputerUserService(db *gorm.DB) ComputerUserServicer {
	return &computerUserService{db: db}
}

// ListUsers returns one page of users, newest first, optionally filtered by a
// case-insensitive substring across name, student ID, email and course.
func (s *computerUserService) ListUsers(search string, page pagination.PageRequest) (*pagination.PageResponse[models.ComputerUser], error) {
	page.Defaults(pagination.UsersPageSize)

	base := s.db.Model(&models.ComputerUser{})
	if q := strings.TrimSpace(search); q != "" {
		base = base.Where(searchClause(userSearchColumns...), repeatArg(containsPattern(q), len(userSearchColumns))...)
	}

	var totalItems int64
	if err := base.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	page.Clamp(totalItems)

	var users []models.ComputerUser
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(users, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetUserByID retrieves a user by primary key.
func (s *computerUserService) GetUserByID(id uint) (*models.ComputerUser, error) {
	var user models.ComputerUser
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByStudentID retrieves a user by their external student ID.
func (s *computerUserService) GetUserByStudentID(studentID string) (*models.ComputerUser, error) {
	var user models.ComputerUser
	if err := s.db.Where("student_id = ?", studentID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// CreateUser registers a new lab user.
func (s *computerUserService) CreateUser(input CreateUserInput) (*models.ComputerUser, error) {
	input = cleanCreateInput(input)

	required := []struct{ name, value string }{
		{"student_id", input.StudentID},
		{"first_name", input.FirstName},
		{"last_name", input.LastName},
		{"contact_number", input.ContactNumber},
		{"course", input.Course},
		{"address", input.Address},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fieldTitle(f.name)+" is required")
		}
	}

	if input.AccessLevel == "" {
		input.AccessLevel = models.AccessLevelStudent
	}
	if !input.AccessLevel.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid access level")
	}
	if input.Status == "" {
		input.Status = models.UserStatusActive
	}
	if !input.Status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
	}

	var count int64
	if err := s.db.Model(&models.ComputerUser{}).Where("student_id = ?", input.StudentID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateStudentID
	}

	user := &models.ComputerUser{
		StudentID:     input.StudentID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         optionalString(input.Email),
		ContactNumber: input.ContactNumber,
		Course:        input.Course,
		Address:       input.Address,
		AccessLevel:   input.AccessLevel,
		Status:        input.Status,
	}
	if err := s.db.Create(user).Error; err != nil {
		// a concurrent create can slip past the count check
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateStudentID
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// UpdateUser applies a partial update. Only fields present in p change.
func (s *computerUserService) UpdateUser(id uint, p UserPatch) (*models.ComputerUser, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	requiredText := []struct {
		column string
		field  patch.Field[string]
	}{
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
		{"contact_number", p.ContactNumber},
		{"course", p.Course},
		{"address", p.Address},
	}
	for _, f := range requiredText {
		if !f.field.Set {
			continue
		}
		v := sanitize.Text(f.field.Value)
		if f.field.Null || v == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fieldTitle(f.column)+" cannot be empty")
		}
		updates[f.column] = v
	}

	if p.Email.Set {
		if email := sanitize.Text(p.Email.Value); email != "" {
			updates["email"] = email
		} else {
			updates["email"] = nil
		}
	}
	if p.ComputerStation.Set {
		updates["computer_station"] = strings.TrimSpace(p.ComputerStation.Value)
	}
	if p.AccessLevel.Set {
		if !p.AccessLevel.Value.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid access level")
		}
		updates["access_level"] = p.AccessLevel.Value
	}
	if p.Status.Set {
		if !p.Status.Value.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
		}
		updates["status"] = p.Status.Value
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetUserByID(id)
}

// DeleteUser removes a user. Their activity log rows keep the denormalized
// student ID and name but lose the link.
func (s *computerUserService) DeleteUser(id uint) (*models.ComputerUser, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ActivityLog{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ComputerUser{}, id).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// UpdateUserStatus sets a user's account status directly.
func (s *computerUserService) UpdateUserStatus(id uint, status models.UserStatus) (*models.ComputerUser, error) {
	if status == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Status is required")
	}
	if !status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid status")
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.Status = status
	return user, nil
}

// CountUsers returns the total and active user counts.
func (s *computerUserService) CountUsers() (*UserCounts, error) {
	var counts UserCounts
	if err := s.db.Model(&models.ComputerUser{}).Count(&counts.Total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.ComputerUser{}).
		Where("status = ?", models.UserStatusActive).
		Count(&counts.Active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &counts, nil
}

func cleanCreateInput(in CreateUserInput) CreateUserInput {
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.FirstName = sanitize.Text(in.FirstName)
	in.LastName = sanitize.Text(in.LastName)
	in.Email = sanitize.Text(in.Email)
	in.ContactNumber = sanitize.Text(in.ContactNumber)
	in.Course = sanitize.Text(in.Course)
	in.Address = sanitize.Text(in.Address)
	return in
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// fieldTitle turns a column name into the label used in validation messages,
// e.g. contact_number -> "Contact Number".
func fieldTitle(column string) string {
	words := strings.Split(column, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
