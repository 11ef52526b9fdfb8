package handlers

import (
	"database/sql"
	"net/http"

	"reviews-server/services"

	"github.com/gin-gonic/gin"
)

// uploadImage stores a multipart image on Cloudinary and saves the
// returned URL on the record.
func uploadImage(c *gin.Context, table, folder, label string) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": label + " not found"})
		return
	}

	var existingID int64
	if err := DB.QueryRow(`SELECT id FROM `+table+` WHERE id = $1`, id).Scan(&existingID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": label + " not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch record"})
		}
		return
	}

	if services.Cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": map[string][]string{"image": {"An image file is required."}}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": map[string][]string{"image": {"Could not read the uploaded file."}}})
		return
	}
	defer file.Close()

	result, err := services.Cloudinary.UploadImage(file, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if _, err := DB.Exec(`UPDATE `+table+` SET image = $1, updated_at = now() WHERE id = $2`, result.SecureURL, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "image": result.SecureURL})
}

func UploadUserImage(c *gin.Context) {
	uploadImage(c, "users", "avatars", "User")
}

func UploadCompanyImage(c *gin.Context) {
	uploadImage(c, "companies", "logos", "Company")
}
