package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "comlab/internal/errors"
	"comlab/internal/logger"
	"comlab/internal/models"
	"comlab/internal/pagination"
)

const logSheetName = "Activity Log"

var (
	logSearchColumns = []string{"student_id", "full_name", "computer_station", "notes"}
	logExportHeaders = []interface{}{"Timestamp", "Action", "Student ID", "Full Name", "Computer Station", "Notes"}
)

// activityLogService reads and appends the kiosk activity log. Rows are never
// updated or deleted.
type activityLogService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewActivityLogService creates a new ActivityLogServicer.
func NewActivityLogService(db *gorm.DB) ActivityLogServicer {
	return &activityLogService{db: db, now: time.Now}
}

// Append writes entry using tx so it commits together with the state change
// it records.
func (s *activityLogService) Append(tx *gorm.DB, entry *models.ActivityLog) error {
	if !entry.Action.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid log action")
	}
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListLogs returns one page of the log, most recent first.
func (s *activityLogService) ListLogs(filter LogFilter, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error) {
	page.Defaults(pagination.LogsPageSize)

	base, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}

	var totalItems int64
	if err := base.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	page.Clamp(totalItems)

	var logs []models.ActivityLog
	if err := base.Session(&gorm.Session{}).
		Order("timestamp DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CountLogs returns the number of log rows.
func (s *activityLogService) CountLogs() (int64, error) {
	var n int64
	if err := s.db.Model(&models.ActivityLog{}).Count(&n).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return n, nil
}

// ExportLogs renders the filtered log as an xlsx workbook and suggests a
// download filename.
func (s *activityLogService) ExportLogs(filter LogFilter) (*bytes.Buffer, string, error) {
	base, err := s.filtered(filter)
	if err != nil {
		return nil, "", err
	}

	var logs []models.ActivityLog
	if err := base.Order("timestamp DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", logSheetName); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	_ = f.SetSheetRow(logSheetName, "A1", &logExportHeaders)
	_ = f.SetCellStyle(logSheetName, "A1", "F1", headerStyle)
	_ = f.SetColWidth(logSheetName, "A", "A", 22)
	_ = f.SetColWidth(logSheetName, "B", "C", 12)
	_ = f.SetColWidth(logSheetName, "D", "E", 24)
	_ = f.SetColWidth(logSheetName, "F", "F", 60)

	for i, entry := range logs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			string(entry.Action),
			entry.StudentID,
			entry.FullName,
			entry.ComputerStation,
			entry.Notes,
		}
		if err := f.SetSheetRow(logSheetName, cell, &row); err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		logger.Get().Errorw("failed to write activity log workbook", "error", err)
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filename := fmt.Sprintf("activity_log_%s.xlsx", s.now().Format("20060102_150405"))
	return buf, filename, nil
}

func (s *activityLogService) filtered(filter LogFilter) (*gorm.DB, error) {
	q := s.db.Model(&models.ActivityLog{})
	if filter.Action != "" {
		if !filter.Action.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid log action")
		}
		q = q.Where("action = ?", filter.Action)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		q = q.Where(searchClause(logSearchColumns...), repeatArg(containsPattern(search), len(logSearchColumns))...)
	}
	return q, nil
}
