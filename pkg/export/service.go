package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/metrics"
	"github.com/jordanlanch/listingpro/pkg/models"
)

// Service writes listing views to downloadable files.
type Service struct {
	storagePath string
	metrics     *metrics.Metrics
}

// NewService creates an export service writing into storagePath.
func NewService(storagePath string, m *metrics.Metrics) *Service {
	os.MkdirAll(storagePath, 0755)
	return &Service{storagePath: storagePath, metrics: m}
}

// Export writes the listings to a CSV or Excel file and returns its path.
func (s *Service) Export(listings []models.Listing, format string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")

	var path string
	var err error
	switch format {
	case "csv":
		path = filepath.Join(s.storagePath, fmt.Sprintf("listings-%s.csv", timestamp))
		err = s.generateCSV(path, listings)
	case "excel":
		path = filepath.Join(s.storagePath, fmt.Sprintf("listings-%s.xlsx", timestamp))
		err = s.generateExcel(path, listings)
	default:
		return "", domain.NewBadRequestError(fmt.Sprintf("invalid format %q: must be csv or excel", format))
	}
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.RecordExportCreated()
	}
	return path, nil
}

var exportHeader = []string{
	"ID", "Address", "City", "State", "Zip", "Price", "Bedrooms", "Bathrooms",
	"Sqft", "Property Type", "Lead Type", "Days On Market", "Expiration Date",
	"Favorite", "Lead Score", "Estimated Value", "Tags", "Notes",
}

func exportRow(l models.Listing) []string {
	score := ""
	if l.AILeadScore != nil {
		score = string(l.AILeadScore.Score)
	}
	estimated := ""
	if l.AIValuation != nil {
		estimated = fmt.Sprintf("%.0f", l.AIValuation.EstimatedValue)
	}
	return []string{
		l.ID,
		l.Address,
		l.City,
		l.State,
		l.Zip,
		fmt.Sprintf("%.0f", l.Price),
		strconv.Itoa(l.Bedrooms),
		fmt.Sprintf("%.1f", l.Bathrooms),
		strconv.Itoa(l.Sqft),
		l.PropertyType,
		string(l.LeadType),
		strconv.Itoa(l.DaysOnMarketPreviously),
		l.ExpirationDate,
		strconv.FormatBool(l.IsFavorite),
		score,
		estimated,
		strings.Join(l.Tags, "; "),
		l.Notes,
	}
}

func (s *Service) generateCSV(path string, listings []models.Listing) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, l := range listings {
		if err := writer.Write(exportRow(l)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func (s *Service) generateExcel(path string, listings []models.Listing) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Listings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed naming header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, l := range listings {
		for colIdx, value := range exportRow(l) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed naming cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed naming column: %w", err)
		}
		f.SetColWidth(sheetName, col, col, 15)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}
