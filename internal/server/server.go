package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/salesclean/internal/catalog"
	"github.com/matthieukhl/salesclean/internal/clean"
	"github.com/matthieukhl/salesclean/internal/config"
	"github.com/matthieukhl/salesclean/internal/export"
	"github.com/matthieukhl/salesclean/internal/ingest"
	"github.com/matthieukhl/salesclean/internal/metrics"
	"github.com/matthieukhl/salesclean/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	metrics *metrics.Registry

	// one cleaning run at a time
	mu sync.Mutex
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, reg *metrics.Registry) *Server {
	router := gin.Default()
	if cfg.Server.MaxUploadMB > 0 {
		router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	}

	server := &Server{
		router:  router,
		cfg:     cfg,
		metrics: reg,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.GET("/marketplaces", s.listMarketplaces)
		api.POST("/clean", s.cleanUpload)
		api.POST("/preview", s.previewUpload)
	}
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "salesclean",
		"version": "0.1.0",
	})
}

func (s *Server) listMarketplaces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"marketplaces": clean.Supported()})
}

// cleanUpload runs a full clean and returns the workbook as a download
func (s *Server) cleanUpload(c *gin.Context) {
	res, ok := s.runUpload(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, res.Table); err != nil {
		log.Printf("run %s: failed to write workbook: %v", res.RunID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "run_id": res.RunID})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", res.Marketplace.OutputName()))
	c.Header("X-Run-Id", res.RunID)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// previewUpload runs a clean and returns the first rows as JSON
func (s *Server) previewUpload(c *gin.Context) {
	res, ok := s.runUpload(c)
	if !ok {
		return
	}

	limit := s.cfg.Server.PreviewRows
	if v := c.Query("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rows must be a non-negative integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":      res.RunID,
		"marketplace": res.Marketplace,
		"columns":     res.Table.Header(),
		"rows":        previewRows(res.Table, limit),
		"stats":       res.Table.Stats,
		"fill":        res.Fill,
	})
}

// previewRows renders up to limit records as text cells keyed by column label
func previewRows(table *models.Table, limit int) []map[string]string {
	if limit > table.Len() {
		limit = table.Len()
	}
	rows := make([]map[string]string, limit)
	for i := 0; i < limit; i++ {
		row := make(map[string]string, len(table.Columns))
		for _, col := range table.Columns {
			row[col.Label] = table.Records[i].Text(col.Field)
		}
		rows[i] = row
	}
	return rows
}

// runUpload handles the shared part of clean and preview. It writes the error
// response itself and reports false when the caller has nothing left to do.
func (s *Server) runUpload(c *gin.Context) (*clean.Result, bool) {
	// The limit must wrap the body before anything parses the form.
	if s.cfg.Server.MaxUploadMB > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxUploadMB<<20)
	}
	if err := c.Request.ParseMultipartForm(s.router.MaxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("upload exceeds %d MB", s.cfg.Server.MaxUploadMB),
			})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a multipart form upload"})
		return nil, false
	}
	defer c.Request.MultipartForm.RemoveAll()

	m, err := models.ParseMarketplace(c.PostForm("marketplace"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please upload a .csv, .xlsx or .xls file as 'file'"})
		return nil, false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ingest.FormatCSV && ext != ingest.FormatXLSX && ext != ingest.FormatXLS {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file type %q", ext)})
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.saveUpload(file, ext)
	if err != nil {
		log.Printf("failed to store upload %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return nil, false
	}
	defer os.Remove(path)

	ctx := c.Request.Context()
	if s.cfg.Server.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Server.RunTimeout)
		defer cancel()
	}

	cat, err := catalog.Open(ctx, s.cfg.Catalog.Path, s.cfg.Catalog.Required)
	if err != nil {
		log.Printf("catalog unavailable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if cat.Missing() {
		log.Printf("warning: catalog %s not found, lookup-fill disabled", s.cfg.Catalog.Path)
	}

	res := clean.Run(ctx, m, path, cat)
	res.Source = header.Filename
	if s.metrics != nil {
		s.metrics.Observe(res)
	}

	switch res.State {
	case clean.StateNotImplemented:
		if !errors.Is(res.Err, clean.ErrNotImplemented) {
			log.Printf("run %s: %s %s: %v", res.RunID, m, header.Filename, res.Err)
		}
		c.JSON(http.StatusNotImplemented, gin.H{
			"run_id":  res.RunID,
			"message": fmt.Sprintf("%s cleaning not implemented yet.", m),
		})
		return nil, false
	case clean.StateFailed:
		log.Printf("run %s: %s %s: %v", res.RunID, m, header.Filename, res.Err)
		c.JSON(statusFor(res.Err), gin.H{
			"run_id": res.RunID,
			"error":  res.Err.Error(),
			"stage":  res.Stage(),
		})
		return nil, false
	}

	log.Printf("run %s: %s %s -> %d rows in %s", res.RunID, m, header.Filename, res.Table.Len(), res.Duration)
	return res, true
}

// saveUpload copies the upload to a temp file so every format is read from disk
func (s *Server) saveUpload(src io.Reader, ext string) (string, error) {
	tmp, err := os.CreateTemp(s.cfg.Server.UploadTempDir, "salesclean-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// statusFor maps a run failure onto an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, clean.ErrUnknownMarketplace):
		return http.StatusBadRequest
	case errors.Is(err, clean.ErrIngestion),
		errors.Is(err, clean.ErrSchemaMismatch),
		errors.Is(err, clean.ErrDateParse),
		errors.Is(err, clean.ErrMalformedValue):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
