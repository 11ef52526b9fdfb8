package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReviewRequest struct {
	Description string `json:"description" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	UserID      int64  `json:"user_id" binding:"required"`
	CompanyID   int64  `json:"company_id" binding:"required"`
}

func scanReviewRows(rows *sql.Rows) ([]reviewDetail, error) {
	defer rows.Close()

	reviews := make([]reviewDetail, 0, 16)
	for rows.Next() {
		var r reviewDetail
		if err := rows.Scan(&r.ID, &r.Description, &r.Rating, &r.UserID, &r.CompanyID,
			&r.CreatedAt, &r.UpdatedAt, &r.UserName, &r.UserImage, &r.CompanyName); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func loadAllReviews() ([]reviewDetail, error) {
	query := `SELECT r.id, r.description, r.rating, r.user_id, r.company_id, r.created_at, r.updated_at,
	                 u.name, u.image, c.name
	          FROM reviews r
	          JOIN users u ON u.id = r.user_id
	          JOIN companies c ON c.id = r.company_id
	          ORDER BY r.created_at DESC`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, err
	}
	return scanReviewRows(rows)
}

func loadReviewsForUser(userID int64) ([]reviewDetail, error) {
	query := `SELECT r.id, r.description, r.rating, r.user_id, r.company_id, r.created_at, r.updated_at,
	                 u.name, u.image, c.name
	          FROM reviews r
	          JOIN users u ON u.id = r.user_id
	          JOIN companies c ON c.id = r.company_id
	          WHERE r.user_id = $1
	          ORDER BY r.created_at DESC`

	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	return scanReviewRows(rows)
}

func loadReviewsForCompany(companyID int64) ([]reviewDetail, error) {
	query := `SELECT r.id, r.description, r.rating, r.user_id, r.company_id, r.created_at, r.updated_at,
	                 u.name, u.image, c.name
	          FROM reviews r
	          JOIN users u ON u.id = r.user_id
	          JOIN companies c ON c.id = r.company_id
	          WHERE r.company_id = $1
	          ORDER BY r.created_at DESC`

	rows, err := DB.Query(query, companyID)
	if err != nil {
		return nil, err
	}
	return scanReviewRows(rows)
}

func GetReviews(c *gin.Context) {
	reviews, err := loadAllReviews()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviewResponses(reviews))
}

// CreateReview resolves the author and the company before inserting; a
// dangling reference is reported as not found, not as a validation error.
func CreateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	var userID int64
	if err := DB.QueryRow(`SELECT id FROM users WHERE id = $1`, req.UserID).Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	var companyID int64
	if err := DB.QueryRow(`SELECT id FROM companies WHERE id = $1`, req.CompanyID).Scan(&companyID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company"})
		}
		return
	}

	var id int64
	insertQuery := `INSERT INTO reviews (description, rating, user_id, company_id)
	                VALUES ($1, $2, $3, $4) RETURNING id`
	if err := DB.QueryRow(insertQuery, req.Description, req.Rating, req.UserID, req.CompanyID).Scan(&id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review created", "id": id})
}

func GetReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	var r reviewDetail
	query := `SELECT r.id, r.description, r.rating, r.user_id, r.company_id, r.created_at, r.updated_at,
	                 u.name, u.image, c.name
	          FROM reviews r
	          JOIN users u ON u.id = r.user_id
	          JOIN companies c ON c.id = r.company_id
	          WHERE r.id = $1`
	err := DB.QueryRow(query, id).Scan(&r.ID, &r.Description, &r.Rating, &r.UserID, &r.CompanyID,
		&r.CreatedAt, &r.UpdatedAt, &r.UserName, &r.UserImage, &r.CompanyName)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		}
		return
	}

	c.JSON(http.StatusOK, reviewResponse(r))
}

// UpdateReview replaces the review's own fields. The author and company
// references are immutable once written; new ids in the payload are
// ignored.
func UpdateReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	var existingID int64
	if err := DB.QueryRow(`SELECT id FROM reviews WHERE id = $1`, id).Scan(&existingID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		}
		return
	}

	var req struct {
		Description string `json:"description" binding:"required"`
		Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	updateQuery := `UPDATE reviews SET description = $1, rating = $2, updated_at = now() WHERE id = $3`
	if _, err := DB.Exec(updateQuery, req.Description, req.Rating, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review updated"})
}

func DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	result, err := DB.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
