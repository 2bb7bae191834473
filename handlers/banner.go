package handlers

import (
	"log"
	"net/http"

	"shopdb-backend/models"
	"shopdb-backend/storage"
	"shopdb-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BannerHandler struct {
	DB      *gorm.DB
	Storage storage.Client
}

func validBannerPlacement(placement string) bool {
	switch placement {
	case models.BannerPlacementMain, models.BannerPlacementSidebar, models.BannerPlacementFooter:
		return true
	}
	return false
}

// GetBanners lists active banners, optionally filtered by placement.
func (h *BannerHandler) GetBanners(c *gin.Context) {
	query := h.DB.Where("is_active = ?", true)

	if placement := c.Query("placement"); placement != "" {
		if !validBannerPlacement(placement) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "placement must be one of: main, sidebar, footer",
				"placement": placement,
			})
			return
		}
		query = query.Where("placement = ?", placement)
	}

	var banners []models.Banner
	if err := query.Order("created_at desc").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}

	c.JSON(http.StatusOK, banners)
}

// CreateBanner uploads the banner image to storage and persists its URL.
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	placement := c.PostForm("placement")
	if !validBannerPlacement(placement) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "placement must be one of: main, sidebar, footer",
			"placement": placement,
		})
		return
	}

	position := c.PostForm("position")
	if position == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position is required"})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if err := utils.ValidateFileUpload(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadBannerImage(file, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded image"})
		return
	}

	alt := c.PostForm("alt")
	if alt == "" {
		alt = "Banner"
	}

	banner := models.Banner{
		ID:        uuid.New(),
		ImageURL:  url,
		Alt:       alt,
		Placement: placement,
		Position:  position,
		IsActive:  true,
	}

	if err := h.DB.Create(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, banner)
}

// UpdateBanner merges the supplied fields; the image itself is immutable,
// replace the banner to change it.
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id := c.Param("id")

	var banner models.Banner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	var req struct {
		Alt       *string `json:"alt"`
		Placement *string `json:"placement"`
		Position  *string `json:"position"`
		IsActive  *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Placement != nil {
		if !validBannerPlacement(*req.Placement) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "placement must be one of: main, sidebar, footer",
				"placement": *req.Placement,
			})
			return
		}
		banner.Placement = *req.Placement
	}
	if req.Alt != nil {
		banner.Alt = *req.Alt
	}
	if req.Position != nil {
		banner.Position = *req.Position
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}

	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id := c.Param("id")

	var banner models.Banner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	if err := h.DB.Delete(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}

	// Best effort: a leftover file is harmless, a failed delete should not
	// fail the request.
	if err := h.Storage.DeleteFile(banner.ImageURL); err != nil {
		log.Printf("Warning: could not remove banner image %s: %v", banner.ImageURL, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Banner deleted successfully",
		"deleted_banner": banner,
	})
}
