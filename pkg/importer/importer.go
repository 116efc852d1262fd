package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/herbertjm76/bare-resource-horizon/pkg/allocation"
	"github.com/herbertjm76/bare-resource-horizon/pkg/resource"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ColumnMapping names the spreadsheet columns carrying each allocation
// field. Columns are addressed by their first-row header, matched case
// insensitively.
type ColumnMapping struct {
	ProjectId    string `json:"projectId"`
	ResourceId   string `json:"resourceId"`
	ResourceKind string `json:"resourceKind"`
	Date         string `json:"date"`
	Hours        string `json:"hours"`
}

func (m ColumnMapping) validate() error {
	if m.ProjectId == "" || m.ResourceId == "" || m.Date == "" || m.Hours == "" {
		return errors.New("mapping must name projectId, resourceId, date and hours columns")
	}
	return nil
}

// RowError records why a single spreadsheet row was skipped.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result summarizes an import run. Rows that fail to parse or save are
// skipped and reported; they do not abort the remaining rows.
type Result struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

type Service interface {
	// ImportAllocations reads an xlsx workbook's first sheet and saves one
	// allocation per data row through the allocation service, which
	// normalizes each row's date to its week bucket.
	ImportAllocations(ctx context.Context, file io.Reader, mapping ColumnMapping) (Result, error)
}

type ServiceImpl struct {
	allocations allocation.Service
}

func NewService(allocations allocation.Service) *ServiceImpl {
	return &ServiceImpl{allocations: allocations}
}

func (s *ServiceImpl) ImportAllocations(ctx context.Context, file io.Reader, mapping ColumnMapping) (Result, error) {
	if err := mapping.validate(); err != nil {
		return Result{}, err
	}
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	sheetName := workbook.GetSheetName(0)
	if sheetName == "" {
		return Result{}, errors.New("no worksheet found")
	}
	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(rows) < 2 {
		return Result{}, errors.New("worksheet has no data rows")
	}

	columns, err := resolveColumns(rows[0], mapping)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for i, row := range rows[1:] {
		rowNumber := i + 2
		if isBlank(row) {
			continue
		}
		if err := s.importRow(ctx, row, columns); err != nil {
			log.Debugf("import row %d skipped: %v", rowNumber, err)
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Row: rowNumber, Reason: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

type columnIndexes struct {
	projectId    int
	resourceId   int
	resourceKind int
	date         int
	hours        int
}

func resolveColumns(header []string, mapping ColumnMapping) (columnIndexes, error) {
	find := func(name string) int {
		for i, cell := range header {
			if strings.EqualFold(strings.TrimSpace(cell), name) {
				return i
			}
		}
		return -1
	}
	columns := columnIndexes{
		projectId:    find(mapping.ProjectId),
		resourceId:   find(mapping.ResourceId),
		resourceKind: -1,
		date:         find(mapping.Date),
		hours:        find(mapping.Hours),
	}
	if mapping.ResourceKind != "" {
		columns.resourceKind = find(mapping.ResourceKind)
	}
	for name, index := range map[string]int{
		mapping.ProjectId:  columns.projectId,
		mapping.ResourceId: columns.resourceId,
		mapping.Date:       columns.date,
		mapping.Hours:      columns.hours,
	} {
		if index < 0 {
			return columnIndexes{}, fmt.Errorf("column %q not found in header row", name)
		}
	}
	return columns, nil
}

func (s *ServiceImpl) importRow(ctx context.Context, row []string, columns columnIndexes) error {
	projectId, err := strconv.Atoi(cell(row, columns.projectId))
	if err != nil {
		return fmt.Errorf("invalid project id %q", cell(row, columns.projectId))
	}
	resourceId, err := strconv.Atoi(cell(row, columns.resourceId))
	if err != nil {
		return fmt.Errorf("invalid resource id %q", cell(row, columns.resourceId))
	}
	kind := resource.KindActive
	if columns.resourceKind >= 0 && cell(row, columns.resourceKind) != "" {
		kind, err = resource.ParseKind(cell(row, columns.resourceKind))
		if err != nil {
			return err
		}
	}
	hours, err := strconv.ParseFloat(cell(row, columns.hours), 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q", cell(row, columns.hours))
	}
	date, err := normalizeCellDate(cell(row, columns.date))
	if err != nil {
		return err
	}
	if _, err := s.allocations.Save(ctx, projectId, resourceId, kind, date, hours); err != nil {
		return err
	}
	return nil
}

// normalizeCellDate accepts either a textual date or an Excel serial
// number, which is what exported workbooks usually carry.
func normalizeCellDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("empty date cell")
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", fmt.Errorf("invalid date serial %q", value)
		}
		return parsed.Format("2006-01-02"), nil
	}
	return value, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
