package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
	"github.com/Jeevankiran1503/Prodigy-FS-03/services"
)

// Spreadsheet columns shared by import and export.
var sheetHeaders = []string{
	"ID", "Name", "Description", "Price", "Category", "Sizes", "Colors",
	"ImageURL", "InStock", "CreatedAt", "UpdatedAt",
}

// POST /api/products/import (multipart "file")
//
// Rows whose ID matches an existing product update it with the same rules as
// PUT; other rows create a product and must carry every required column.
func ImportProductsFromExcel(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Excel file is empty or missing header row"})
			return
		}

		ctx := c.Request.Context()
		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < len(sheet.Rows); i++ {
			row := sheet.Rows[i]
			get := func(index int) string {
				if row != nil && index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			id := get(0)
			input := services.ProductInput{
				Name:        get(1),
				Description: get(2),
				Price:       get(3),
				Category:    get(4),
				Sizes:       []string{get(5)},
				Colors:      []string{get(6)},
				ImageURL:    get(7),
			}
			if id == "" && input.Name == "" {
				skippedCount++
				continue
			}
			if raw := get(8); raw != "" {
				if inStock, err := strconv.ParseBool(raw); err == nil {
					input.InStock = &inStock
				}
			}

			_, created, err := svc.Upsert(ctx, id, input)
			switch {
			case err != nil:
				logging.Ctx(ctx).Debug().Err(err).Int("row", i+1).Msg("import row skipped")
				skippedCount++
			case created:
				createdCount++
			default:
				updatedCount++
			}
		}

		logging.Ctx(ctx).Info().
			Int("created", createdCount).
			Int("updated", updatedCount).
			Int("skipped", skippedCount).
			Msg("product import finished")

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
