package productcontroller

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

// Bulk upload columns: name, description, price, stock, category_id, image.
// name, price and category_id are required; the rest default to empty / zero.
type bulkRow struct {
	name        string
	description string
	price       string
	stock       string
	categoryID  string
	image       string
}

// ImportProductsFromExcel bulk-creates products from an .xlsx upload.
// Rows are validated independently; valid rows are committed even when
// others fail, and per-row errors are reported back.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file has no sheets"})
			return
		}

		sheet := xlFile.Sheets[0]
		if len(sheet.Rows) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel sheet has no data rows"})
			return
		}

		colIndex, err := headerIndex(cellValues(sheet.Rows[0]))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rows []bulkRow
		for _, r := range sheet.Rows[1:] {
			rows = append(rows, rowFromValues(cellValues(r), colIndex))
		}

		respondBulkResult(c, importRows(db, rows))
	}
}

// ImportProductsFromCSV bulk-creates products from a .csv upload using the
// same column contract as the Excel import.
func ImportProductsFromCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		csvFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
			return
		}

		file, err := csvFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open CSV file"})
			return
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV file"})
			return
		}
		colIndex, err := headerIndex(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rows []bulkRow
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV file"})
				return
			}
			rows = append(rows, rowFromValues(record, colIndex))
		}

		respondBulkResult(c, importRows(db, rows))
	}
}

// DownloadSampleCSV returns a template file for the bulk upload.
func DownloadSampleCSV(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		exampleID := uint(1)
		if err := db.Order("id asc").First(&category).Error; err == nil {
			exampleID = category.ID
		}

		csvData := fmt.Sprintf(`name,description,price,stock,category_id,image
Fresh Milk,Organic cow milk 1 liter,55,100,%d,https://images.unsplash.com/photo-1550583724-b2692b85b150
Whole Wheat Bread,Fresh baked whole wheat bread 400g,45,80,%d,https://images.unsplash.com/photo-1509440159596-0249088772ff
Basmati Rice,Premium quality basmati rice 5kg,350,50,%d,https://images.unsplash.com/photo-1586201375761-83865001e31c
`, exampleID, exampleID, exampleID)

		c.Header("Content-Disposition", "attachment; filename=sample_products.csv")
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvData))
	}
}

type bulkResult struct {
	created int
	failed  int
	errors  []string
}

func importRows(db *gorm.DB, rows []bulkRow) bulkResult {
	var result bulkResult

	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header row

		product, err := productFromRow(db, row)
		if err != nil {
			result.errors = append(result.errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			result.failed++
			continue
		}
		if err := db.Create(product).Error; err != nil {
			result.errors = append(result.errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			result.failed++
			continue
		}
		result.created++
	}
	return result
}

func productFromRow(db *gorm.DB, row bulkRow) (*models.Product, error) {
	name := strings.TrimSpace(row.name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row.price), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price %q", row.price)
	}

	categoryID, err := strconv.ParseUint(strings.TrimSpace(row.categoryID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid category_id %q", row.categoryID)
	}
	var category models.Category
	if err := db.First(&category, uint(categoryID)).Error; err != nil {
		return nil, fmt.Errorf("category ID %d does not exist", categoryID)
	}

	stock := 0
	if s := strings.TrimSpace(row.stock); s != "" {
		stock, err = strconv.Atoi(s)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("invalid stock %q", row.stock)
		}
	}

	return &models.Product{
		Name:        name,
		Description: strings.TrimSpace(row.description),
		Price:       price,
		Stock:       stock,
		CategoryID:  uint(categoryID),
		Image:       strings.TrimSpace(row.image),
		IsActive:    true,
	}, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price", "category_id"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("file must have these columns: name, price, category_id")
		}
	}
	return index, nil
}

func rowFromValues(values []string, colIndex map[string]int) bulkRow {
	get := func(col string) string {
		i, ok := colIndex[col]
		if !ok || i >= len(values) {
			return ""
		}
		return values[i]
	}
	return bulkRow{
		name:        get("name"),
		description: get("description"),
		price:       get("price"),
		stock:       get("stock"),
		categoryID:  get("category_id"),
		image:       get("image"),
	}
}

func cellValues(row *xlsx.Row) []string {
	values := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		values[i] = cell.String()
	}
	return values
}

func respondBulkResult(c *gin.Context, result bulkResult) {
	status := http.StatusOK
	if result.created == 0 && result.failed > 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"created": result.created,
		"failed":  result.failed,
		"errors":  result.errors,
	})
}
