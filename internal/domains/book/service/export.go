package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"book-catalog/internal/domains/book/model"
)

const exportSheetName = "Books"

var exportHeaders = []string{"ID", "Title", "Author", "Published Year", "Created At", "Updated At"}

// ExportBooksToExcel builds a workbook with one row per book, in listing order.
// The caller owns the returned file and must Close it.
func (s *BookService) ExportBooksToExcel(ctx context.Context) (*excelize.File, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildBooksExcelFile(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		f.Close()
		return nil, err
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheetName, "A1", lastHeader, headerStyle)
	}

	for i, b := range books {
		row := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, row)
			return name
		}

		f.SetCellValue(exportSheetName, cell(1), b.ID)
		f.SetCellValue(exportSheetName, cell(2), b.Title)
		f.SetCellValue(exportSheetName, cell(3), b.Author)
		f.SetCellValue(exportSheetName, cell(4), b.PublishedYear)
		f.SetCellValue(exportSheetName, cell(5), b.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(exportSheetName, cell(6), b.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	_ = f.SetColWidth(exportSheetName, "A", "A", 38)
	_ = f.SetColWidth(exportSheetName, "B", "F", 22)

	return f, nil
}
