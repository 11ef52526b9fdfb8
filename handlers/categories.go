package handlers

import (
	"database/sql"
	"net/http"

	"reviews-server/models"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// loadCompanySummaries returns the reduced {id, name} views grouped by
// category.
func loadCompanySummaries() (map[int64][]gin.H, error) {
	rows, err := DB.Query(`SELECT id, name, category_id FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCategory := make(map[int64][]gin.H)
	for rows.Next() {
		var id, categoryID int64
		var name string
		if err := rows.Scan(&id, &name, &categoryID); err != nil {
			return nil, err
		}
		byCategory[categoryID] = append(byCategory[categoryID], reducedCompany(id, name))
	}
	return byCategory, rows.Err()
}

func GetCategories(c *gin.Context) {
	rows, err := DB.Query(`SELECT id, name, created_at, updated_at FROM categories ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	categories := make([]models.Category, 0, 16)
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		categories = append(categories, cat)
	}

	byCategory, err := loadCompanySummaries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
		return
	}

	out := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		companies := byCategory[cat.ID]
		if companies == nil {
			companies = []gin.H{}
		}
		out = append(out, categoryResponse(cat, companies))
	}

	c.JSON(http.StatusOK, out)
}

func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	var id int64
	if err := DB.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, req.Name).Scan(&id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "id": id})
}

func GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	var cat models.Category
	err := DB.QueryRow(`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&cat.ID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		}
		return
	}

	companies := make([]gin.H, 0, 8)
	rows, err := DB.Query(`SELECT id, name FROM companies WHERE category_id = $1 ORDER BY name`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
		return
	}
	defer rows.Close()
	for rows.Next() {
		var companyID int64
		var name string
		if err := rows.Scan(&companyID, &name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
			return
		}
		companies = append(companies, reducedCompany(companyID, name))
	}

	c.JSON(http.StatusOK, categoryResponse(cat, companies))
}

func UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	var existingID int64
	if err := DB.QueryRow(`SELECT id FROM categories WHERE id = $1`, id).Scan(&existingID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		}
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	if _, err := DB.Exec(`UPDATE categories SET name = $1, updated_at = now() WHERE id = $2`, req.Name, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory cascades: companies under the category and reviews under
// those companies are removed by the schema's ON DELETE CASCADE chain.
func DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	result, err := DB.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
