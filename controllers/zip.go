package controllers

import (
	"net/http"

	"journal-submission-api/services"

	"github.com/gin-gonic/gin"
)

type CreateZipRequest struct {
	Files []services.ArchiveEntry `json:"files" binding:"required,min=1,dive"`
}

// CreateZip bundles the named attachments into a downloadable archive. The
// archive is fully written before the filename is returned, and it expires
// after the packager's grace period whether downloaded or not.
func CreateZip(c *gin.Context) {
	var req CreateZipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	filename, err := Archive.Create(req.Files)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Zip file creation failed", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Zip file created successfully", "filename": filename})
}

// DownloadZip streams an archive and deletes it once the response has been
// served. A failed serve leaves the archive for a retry within the grace
// period; a second download or the expiry timer finds nothing to delete.
func DownloadZip(c *gin.Context) {
	filename := c.Param("filename")

	path, err := Archive.Path(filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Zip file download failed", "error": err.Error()})
		return
	}

	c.FileAttachment(path, filename)
	if c.Writer.Status() == http.StatusOK {
		_ = Archive.Consume(filename)
	}
}
