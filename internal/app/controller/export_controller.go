package controller

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-api/internal/catalogio"
	"github.com/ikkim/marketplace-api/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	services catalogio.Services
}

func NewExportController(services catalogio.Services) *ExportController {
	return &ExportController{services: services}
}

// ExportCatalog downloads the catalog as a workbook
// GET /export.xlsx
func (ctrl *ExportController) ExportCatalog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cat, err := catalogio.Export(ctrl.services)
	if err != nil {
		respondServiceError(c, err, "export catalog", nil)
		return
	}

	// buffered so a failed encode can still answer with an error status
	var buf bytes.Buffer
	if err := catalogio.Write(&buf, cat); err != nil {
		respondServiceError(c, err, "export catalog", nil)
		return
	}

	log.Info("Catalog exported", map[string]interface{}{
		"stores":   len(cat.Stores),
		"products": len(cat.Products),
		"tags":     len(cat.Tags),
		"bytes":    buf.Len(),
	})

	filename := "catalog-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
