package handlers

import (
	"errors"
	"net/http"
	"strings"

	"shopdb-backend/dtos"
	"shopdb-backend/models"
	"shopdb-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

type categoryRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// findCategoryByIdentifier resolves a category by id, full slug or slug, in
// that order: a valid UUID is treated as an id, anything containing a path
// separator as a full slug, everything else as a plain slug.
func findCategoryByIdentifier(db *gorm.DB, identifier string) (models.Category, error) {
	var category models.Category
	var err error

	if _, parseErr := uuid.Parse(identifier); parseErr == nil {
		err = db.Where("id = ?", identifier).First(&category).Error
	} else if strings.Contains(identifier, "/") {
		err = db.Where("full_slug = ?", identifier).First(&category).Error
	} else {
		err = db.Where("slug = ?", identifier).First(&category).Error
	}

	return category, err
}

// categoryIdentifier extracts the identifier from a catch-all route param,
// which always arrives with a leading slash.
func categoryIdentifier(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("identifier"), "/")
}

// slugInUse reports whether another category already uses the slug or full
// slug. Both are globally unique, not just among siblings.
func slugInUse(db *gorm.DB, slug, fullSlug string, excludeID *uuid.UUID) (bool, error) {
	query := db.Model(&models.Category{}).Where("slug = ? OR full_slug = ?", slug, fullSlug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// wouldCreateCycle reports whether placing target under proposedParent would
// make target its own ancestor. Walks the parent chain upward; the visited
// set stops the walk if the stored chain already loops.
func wouldCreateCycle(db *gorm.DB, proposedParent models.Category, targetID uuid.UUID) (bool, error) {
	visited := make(map[uuid.UUID]bool)
	current := proposedParent

	for {
		if current.ID == targetID {
			return true, nil
		}
		if current.ParentID == nil || visited[current.ID] {
			return false, nil
		}
		visited[current.ID] = true

		var next models.Category
		if err := db.Where("id = ?", *current.ParentID).First(&next).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		current = next
	}
}

// repairDescendants recomputes full_slug and level for every node below root
// after a rename or re-parent. Runs as an explicit queue, parent before
// children, so each child is derived from its parent's already-repaired
// values and deep trees cannot exhaust the stack. Rows are written one by
// one; a store failure part-way leaves the earlier writes in place.
func repairDescendants(db *gorm.DB, root models.Category) error {
	queue := []models.Category{root}
	visited := map[uuid.UUID]bool{root.ID: true}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		var children []models.Category
		if err := db.Where("parent_id = ?", parent.ID).Find(&children).Error; err != nil {
			return err
		}

		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true

			child.FullSlug = parent.FullSlug + "/" + child.Slug
			child.Level = parent.Level + 1
			if err := db.Save(&child).Error; err != nil {
				return err
			}
			queue = append(queue, child)
		}
	}

	return nil
}

// collectSubtree returns every transitive descendant of categoryID flattened
// into one list: direct children first, then each child's own subtree. The
// visited set guards against a corrupted parent chain.
func collectSubtree(db *gorm.DB, categoryID uuid.UUID, visited map[uuid.UUID]bool) ([]models.Category, error) {
	if visited == nil {
		visited = make(map[uuid.UUID]bool)
	}

	var children []models.Category
	if err := db.Where("parent_id = ?", categoryID).Order("created_at").Find(&children).Error; err != nil {
		return nil, err
	}

	all := make([]models.Category, 0, len(children))
	all = append(all, children...)

	for _, child := range children {
		if visited[child.ID] {
			continue
		}
		visited[child.ID] = true

		sub, err := collectSubtree(db, child.ID, visited)
		if err != nil {
			return nil, err
		}
		all = append(all, sub...)
	}

	return all, nil
}

// buildTree expands a category into its full recursive subtree, resolving the
// aggregate product count for every node.
func (h *CategoryHandler) buildTree(category models.Category, visited map[uuid.UUID]bool) (dtos.CategoryTree, error) {
	visited[category.ID] = true

	count, err := CountActiveProducts(h.DB, category.FullSlug)
	if err != nil {
		return dtos.CategoryTree{}, err
	}
	node := dtos.NewCategoryTree(category, count)

	var children []models.Category
	if err := h.DB.Where("parent_id = ?", category.ID).Order("created_at").Find(&children).Error; err != nil {
		return dtos.CategoryTree{}, err
	}

	for _, child := range children {
		if visited[child.ID] {
			continue
		}
		subtree, err := h.buildTree(child, visited)
		if err != nil {
			return dtos.CategoryTree{}, err
		}
		node.Subcategories = append(node.Subcategories, subtree)
	}

	return node, nil
}

// GetCategories lists all root categories, each expanded to its full subtree
// with per-node aggregate product counts.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var roots []models.Category
	if err := h.DB.Where("parent_id IS NULL").Order("created_at").Find(&roots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	trees := make([]dtos.CategoryTree, 0, len(roots))
	visited := make(map[uuid.UUID]bool)
	for _, root := range roots {
		tree, err := h.buildTree(root, visited)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		trees = append(trees, tree)
	}

	c.JSON(http.StatusOK, trees)
}

// GetCategory returns one category with its parent and one level of children.
// Unlike GetCategories, children are not expanded recursively.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	identifier := categoryIdentifier(c)

	category, err := findCategoryByIdentifier(h.DB, identifier)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":                "Category not found",
			"requested_identifier": identifier,
		})
		return
	}

	if category.ParentID != nil {
		var parent models.Category
		if err := h.DB.Where("id = ?", *category.ParentID).First(&parent).Error; err == nil {
			category.Parent = &parent
		}
	}

	var children []models.Category
	if err := h.DB.Where("parent_id = ?", category.ID).Order("created_at").Find(&children).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
		return
	}
	category.Subcategories = children

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Category name must contain at least one letter or digit",
			"name":  req.Name,
		})
		return
	}

	fullSlug := slug
	level := 0
	if req.ParentID != nil {
		var parent models.Category
		if err := h.DB.Where("id = ?", *req.ParentID).First(&parent).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Parent category not found",
				"parent_id": req.ParentID,
			})
			return
		}
		fullSlug = parent.FullSlug + "/" + slug
		level = parent.Level + 1
	}

	inUse, err := slugInUse(h.DB, slug, fullSlug, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug uniqueness"})
		return
	}
	if inUse {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "A category with this slug already exists",
			"slug":      slug,
			"full_slug": fullSlug,
		})
		return
	}

	category := models.Category{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		FullSlug:    fullSlug,
		Description: req.Description,
		ParentID:    req.ParentID,
		Level:       level,
		IsActive:    true,
	}

	if err := h.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames and/or re-parents a category, then repairs the
// full_slug and level of every transitive descendant. The repair is a
// sequence of single-row writes, not a transaction: concurrent structural
// updates on overlapping subtrees may interleave, and a store failure
// mid-repair leaves already-repaired rows in place.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	identifier := categoryIdentifier(c)

	category, err := findCategoryByIdentifier(h.DB, identifier)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":                "Category not found",
			"requested_identifier": identifier,
		})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	newSlug := utils.Slugify(req.Name)
	if newSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Category name must contain at least one letter or digit",
			"name":  req.Name,
		})
		return
	}

	// A new parent is applied only when supplied; omitting parent_id keeps
	// the current position.
	var parent *models.Category
	if req.ParentID != nil {
		var proposed models.Category
		if err := h.DB.Where("id = ?", *req.ParentID).First(&proposed).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Parent category not found",
				"parent_id": req.ParentID,
			})
			return
		}

		cycle, err := wouldCreateCycle(h.DB, proposed, category.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category ancestry"})
			return
		}
		if cycle {
			c.JSON(http.StatusConflict, gin.H{
				"error":       "Cannot move a category under itself or one of its descendants",
				"category_id": category.ID,
				"parent_id":   req.ParentID,
			})
			return
		}

		category.ParentID = req.ParentID
		parent = &proposed
	} else if category.ParentID != nil {
		var current models.Category
		if err := h.DB.Where("id = ?", *category.ParentID).First(&current).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parent category"})
			return
		}
		parent = &current
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = req.Description
	category.Slug = newSlug
	if parent != nil {
		category.FullSlug = parent.FullSlug + "/" + newSlug
		category.Level = parent.Level + 1
	} else {
		category.FullSlug = newSlug
		category.Level = 0
	}

	inUse, err := slugInUse(h.DB, category.Slug, category.FullSlug, &category.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug uniqueness"})
		return
	}
	if inUse {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "A category with this slug already exists",
			"slug":      category.Slug,
			"full_slug": category.FullSlug,
		})
		return
	}

	if err := h.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	if err := repairDescendants(h.DB, category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subcategory paths"})
		return
	}

	descendants, err := collectSubtree(h.DB, category.ID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
		return
	}

	c.JSON(http.StatusOK, dtos.CategoryWithSubtree{
		Category:      category,
		Subcategories: descendants,
	})
}

// DeleteCategory removes a category that has no children. Deletion never
// cascades; subcategories must be deleted or moved first. The row is removed
// outright rather than soft-deleted: slug and full_slug are globally unique,
// and a tombstone would keep blocking those slugs for new categories.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	identifier := categoryIdentifier(c)

	category, err := findCategoryByIdentifier(h.DB, identifier)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":                "Category not found",
			"requested_identifier": identifier,
		})
		return
	}

	var childCount int64
	if err := h.DB.Model(&models.Category{}).Where("parent_id = ?", category.ID).Count(&childCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category dependencies"})
		return
	}
	if childCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "Cannot delete category with subcategories",
			"message":           "Please delete or move subcategories first",
			"category_id":       category.ID,
			"category_name":     category.Name,
			"category_slug":     category.Slug,
			"subcategory_count": childCount,
		})
		return
	}

	if err := h.DB.Unscoped().Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Category deleted successfully",
		"deleted_category": category,
	})
}
