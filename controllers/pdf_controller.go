package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/nccabhyas/ncc-training-backend/models"
	"github.com/nccabhyas/ncc-training-backend/services"
	"github.com/nccabhyas/ncc-training-backend/utils"
	"github.com/nccabhyas/ncc-training-backend/ws"
)

const maxPDFSize = 20 * 1024 * 1024

// UploadPDF stores a study material in Supabase, extracts its text for search
// and chat, and pushes status transitions over the ws channel so the upload
// page can follow along.
func UploadPDF(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file attached"})
		return
	}
	if file.Size > maxPDFSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds 20MB"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are accepted"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	docID := uuid.New()
	objectName := slug.Make(title) + "-" + docID.String()[:8]

	publicURL, objectPath, err := utils.UploadPDFToSupabase(file, objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not upload file"})
		return
	}

	doc := models.PDFDocument{
		ID:           docID,
		Title:        title,
		OriginalName: file.Filename,
		FileURL:      publicURL,
		ObjectPath:   objectPath,
		FileSize:     file.Size,
		Status:       models.PDFStatusUploaded,
		UploadedBy:   userID,
	}
	if err := db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save document"})
		return
	}

	ws.SendStatusUpdate(docID.String(), models.PDFStatusUploaded, 0.3, "")
	ws.BroadcastPDFListChanged()

	if err := db.Model(&doc).Update("status", models.PDFStatusExtracting).Error; err != nil {
		ws.SendStatusUpdate(docID.String(), models.PDFStatusFailed, 1, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update document"})
		return
	}
	ws.SendStatusUpdate(docID.String(), models.PDFStatusExtracting, 0.6, "")

	text, err := services.ExtractTextFromUpload(file, ext)
	if err != nil {
		if uerr := db.Model(&doc).Update("status", models.PDFStatusFailed).Error; uerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update document"})
			return
		}
		ws.SendStatusUpdate(docID.String(), models.PDFStatusFailed, 1, err.Error())
		ws.BroadcastPDFListChanged()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not extract text"})
		return
	}

	if err := db.Model(&doc).Updates(map[string]interface{}{
		"status":         models.PDFStatusReady,
		"extracted_text": text,
	}).Error; err != nil {
		ws.SendStatusUpdate(docID.String(), models.PDFStatusFailed, 1, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update document"})
		return
	}
	ws.SendStatusUpdate(docID.String(), models.PDFStatusReady, 1, "")
	ws.BroadcastPDFListChanged()

	doc.Status = models.PDFStatusReady
	c.JSON(http.StatusCreated, gin.H{
		"message": "Document uploaded",
		"pdf":     doc,
	})
}

func GetPDFs(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var docs []models.PDFDocument
	if err := db.Order("created_at DESC").Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pdfs": docs, "total": len(docs)})
}

// SearchPDFs matches the query against titles and extracted text.
func SearchPDFs(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	pattern := "%" + query + "%"
	var docs []models.PDFDocument
	if err := db.Where("title LIKE ? OR extracted_text LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pdfs": docs, "total": len(docs), "query": query})
}

func GetPDFDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	var doc models.PDFDocument
	if err := db.First(&doc, "id = ?", docID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func DownloadPDF(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	var doc models.PDFDocument
	if err := db.First(&doc, "id = ?", docID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	downloadURL := doc.FileURL
	if downloadURL == "" && doc.ObjectPath != "" {
		downloadURL = utils.PublicObjectURL(doc.ObjectPath)
	}

	c.JSON(http.StatusOK, gin.H{
		"download_url": downloadURL,
		"file_name":    doc.OriginalName,
	})
}
