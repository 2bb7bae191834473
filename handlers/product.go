package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shopdb-backend/models"
	"shopdb-backend/storage"
	"shopdb-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB      *gorm.DB
	Storage storage.Client
}

// CountActiveProducts is the aggregate the category tree relies on: the
// number of active, non-deleted products whose category path equals
// pathPrefix or sits anywhere below it. The boundary check (exact match or
// prefix followed by "/") keeps "laptops" from matching "laptops-gaming".
func CountActiveProducts(db *gorm.DB, pathPrefix string) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.deleted_at IS NULL").
		Where("products.is_active = ?", true).
		Where("categories.full_slug = ? OR categories.full_slug LIKE ?", pathPrefix, pathPrefix+"/%").
		Count(&count).Error
	return count, err
}

// GetProducts lists active products, optionally restricted to one category
// (resolved by id, slug or full slug via the ?category= query).
func (h *ProductHandler) GetProducts(c *gin.Context) {
	query := h.DB.Where("is_active = ?", true).Preload("Category").Preload("Images")

	if identifier := c.Query("category"); identifier != "" {
		category, err := findCategoryByIdentifier(h.DB, identifier)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":                "Category not found",
				"requested_identifier": identifier,
			})
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}

	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Preload("Category").Preload("Images").Preload("PriceHistory").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product from a multipart form. Uploaded images go
// to blob storage and only their URLs are persisted; the first image becomes
// the main one.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	slug := utils.Slugify(name)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Product name must contain at least one letter or digit",
			"name":  name,
		})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
		return
	}

	stock := 0
	if s := c.PostForm("stock"); s != "" {
		stock, err = strconv.Atoi(s)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be a non-negative integer"})
			return
		}
	}

	categoryIdentifier := c.PostForm("category")
	if categoryIdentifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	category, err := findCategoryByIdentifier(h.DB, categoryIdentifier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                "Category not found",
			"requested_identifier": categoryIdentifier,
		})
		return
	}

	var specifications datatypes.JSONMap
	if raw := c.PostForm("specifications"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &specifications); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "specifications must be a JSON object"})
			return
		}
	}

	var taken int64
	if err := h.DB.Model(&models.Product{}).Where("slug = ?", slug).Count(&taken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug uniqueness"})
		return
	}
	if taken > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error": "A product with this slug already exists",
			"slug":  slug,
		})
		return
	}

	product := models.Product{
		ID:              uuid.New(),
		Name:            name,
		Slug:            slug,
		Description:     c.PostForm("description"),
		Price:           price,
		Stock:           stock,
		CategoryID:      category.ID,
		Specifications:  specifications,
		MetaTitle:       c.PostForm("meta_title"),
		MetaDescription: c.PostForm("meta_description"),
		IsActive:        true,
	}

	form, _ := c.MultipartForm()
	if form != nil {
		for i, fh := range form.File["images"] {
			if err := utils.ValidateFileUpload(fh); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			file, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
				return
			}
			url, err := h.Storage.UploadProductImage(file, fh.Filename, fh.Header.Get("Content-Type"))
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded image"})
				return
			}

			product.Images = append(product.Images, models.ProductImage{
				ID:       uuid.New(),
				ImageURL: url,
				Alt:      name,
				IsMain:   i == 0,
			})
		}
	}

	product.PriceHistory = []models.PriceHistory{{ID: uuid.New(), Price: price}}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	if err := h.DB.Preload("Category").Preload("Images").First(&product, "id = ?", product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct merges the supplied fields into an existing product. The id
// and slug are never taken from the request; renaming regenerates the slug
// and a price change appends to the price history.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req struct {
		Name            *string                `json:"name"`
		Description     *string                `json:"description"`
		Price           *float64               `json:"price"`
		Stock           *int                   `json:"stock"`
		CategoryID      *uuid.UUID             `json:"category_id"`
		Specifications  map[string]interface{} `json:"specifications"`
		MetaTitle       *string                `json:"meta_title"`
		MetaDescription *string                `json:"meta_description"`
		IsActive        *bool                  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		newSlug := utils.Slugify(*req.Name)
		if newSlug == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Product name must contain at least one letter or digit",
				"name":  *req.Name,
			})
			return
		}
		if newSlug != product.Slug {
			var taken int64
			if err := h.DB.Model(&models.Product{}).Where("slug = ? AND id <> ?", newSlug, product.ID).Count(&taken).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug uniqueness"})
				return
			}
			if taken > 0 {
				c.JSON(http.StatusConflict, gin.H{
					"error": "A product with this slug already exists",
					"slug":  newSlug,
				})
				return
			}
		}
		product.Name = *req.Name
		product.Slug = newSlug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := h.DB.Where("id = ?", *req.CategoryID).First(&category).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "Category not found",
				"category_id": req.CategoryID,
			})
			return
		}
		product.CategoryID = category.ID
	}
	if req.Specifications != nil {
		product.Specifications = datatypes.JSONMap(req.Specifications)
	}
	if req.MetaTitle != nil {
		product.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		product.MetaDescription = *req.MetaDescription
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	priceChanged := req.Price != nil && *req.Price != product.Price
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
			return
		}
		product.Price = *req.Price
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	if priceChanged {
		entry := models.PriceHistory{ID: uuid.New(), ProductID: product.ID, Price: product.Price}
		if err := h.DB.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record price history"})
			return
		}
	}

	if err := h.DB.Preload("Category").Preload("Images").First(&product, "id = ?", product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes by default, taking the product offline but
// keeping the record restorable. ?permanent=true removes it for good.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	permanent := c.Query("permanent") == "true"

	var product models.Product
	if err := h.DB.Unscoped().Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if permanent {
		if err := h.DB.Unscoped().Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product images"})
			return
		}
		if err := h.DB.Unscoped().Where("product_id = ?", product.ID).Delete(&models.PriceHistory{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete price history"})
			return
		}
		if err := h.DB.Unscoped().Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":         "Product permanently deleted",
			"deleted_product": product,
		})
		return
	}

	if product.DeletedAt.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product is already deleted"})
		return
	}

	if err := h.DB.Model(&product).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if err := h.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Product deactivated",
		"deleted_product": product,
	})
}

// RestoreProduct brings a soft-deleted product back online.
func (h *ProductHandler) RestoreProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Unscoped().Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if !product.DeletedAt.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not deleted"})
		return
	}

	updates := map[string]interface{}{"deleted_at": nil, "is_active": true}
	if err := h.DB.Unscoped().Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore product"})
		return
	}

	if err := h.DB.Preload("Category").Preload("Images").First(&product, "id = ?", product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restored product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Product restored successfully",
		"restored_product": product,
	})
}

// GetDeletedProducts lists soft-deleted products for the admin recycle bin.
func (h *ProductHandler) GetDeletedProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.Unscoped().Where("deleted_at IS NOT NULL").Preload("Category").Order("deleted_at desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deleted products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"products": products,
	})
}
