package handlers

import (
	"database/sql"
	"net/http"

	"reviews-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	UID      string `json:"uid"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"required,email"`
	Image    string `json:"image"`
	Password string `json:"password" binding:"required"`
	Category int64  `json:"category" binding:"required"`
}

// loadCompanyListings fetches every company annotated with its category
// name and review aggregates. Filtering happens afterwards in memory so
// the rating filter can match the rounded average.
func loadCompanyListings() ([]companyListing, error) {
	query := `SELECT c.id, c.name, c.uid, c.address, c.phone, c.email, c.image, c.category_id,
	                 c.created_at, c.updated_at, cat.name,
	                 COALESCE(SUM(r.rating), 0), COUNT(r.id)
	          FROM companies c
	          JOIN categories cat ON cat.id = c.category_id
	          LEFT JOIN reviews r ON r.company_id = c.id
	          GROUP BY c.id, cat.name
	          ORDER BY c.created_at DESC`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]companyListing, 0, 16)
	for rows.Next() {
		var l companyListing
		if err := rows.Scan(&l.Company.ID, &l.Company.Name, &l.Company.UID, &l.Company.Address,
			&l.Company.Phone, &l.Company.Email, &l.Company.Image, &l.Company.CategoryID,
			&l.Company.CreatedAt, &l.Company.UpdatedAt, &l.CategoryName,
			&l.RatingSum, &l.ReviewsCount); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// GetCompanies lists companies through the filter engine. An empty result
// set is a 404, never a 200 with an empty list.
func GetCompanies(c *gin.Context) {
	filters, ferrs := parseCompanyFilters(c)
	if ferrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ferrs})
		return
	}

	listings, err := loadCompanyListings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
		return
	}

	matched := filterCompanies(listings, filters)
	if len(matched) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No companies match the given filters"})
		return
	}

	reviews, err := loadAllReviews()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	byCompany := make(map[int64][]reviewDetail, len(matched))
	for _, r := range reviews {
		byCompany[r.CompanyID] = append(byCompany[r.CompanyID], r)
	}

	companies := make([]gin.H, 0, len(matched))
	for _, l := range matched {
		companies = append(companies, companyResponse(l, byCompany[l.Company.ID]))
	}

	c.JSON(http.StatusOK, companies)
}

// CreateCompany resolves the supplied category before inserting.
func CreateCompany(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	var categoryID int64
	if err := DB.QueryRow(`SELECT id FROM categories WHERE id = $1`, req.Category).Scan(&categoryID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		}
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if req.UID == "" {
		req.UID = uuid.New().String()
	}
	if req.Image == "" {
		req.Image = utils.GenerateAvatarWithInitials(utils.GetInitialsFromName(req.Name))
	}

	var id int64
	insertQuery := `INSERT INTO companies (name, uid, address, phone, email, image, password_hash, category_id)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err = DB.QueryRow(insertQuery, req.Name, req.UID, req.Address, req.Phone,
		req.Email, req.Image, string(hashed), req.Category).Scan(&id)
	if err != nil {
		if field, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": uniqueViolationResponse(field)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Company created", "id": id})
}

// GetCompany returns the company with its nested reviews and derived
// metrics, computed fresh from the live review set.
func GetCompany(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
		return
	}

	var l companyListing
	query := `SELECT c.id, c.name, c.uid, c.address, c.phone, c.email, c.image, c.category_id,
	                 c.created_at, c.updated_at, cat.name
	          FROM companies c
	          JOIN categories cat ON cat.id = c.category_id
	          WHERE c.id = $1`
	err := DB.QueryRow(query, id).Scan(&l.Company.ID, &l.Company.Name, &l.Company.UID,
		&l.Company.Address, &l.Company.Phone, &l.Company.Email, &l.Company.Image,
		&l.Company.CategoryID, &l.Company.CreatedAt, &l.Company.UpdatedAt, &l.CategoryName)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company"})
		}
		return
	}

	reviews, err := loadReviewsForCompany(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	for _, r := range reviews {
		l.RatingSum += r.Rating
	}
	l.ReviewsCount = len(reviews)

	c.JSON(http.StatusOK, companyResponse(l, reviews))
}

// UpdateCompany replaces the company's own fields. The category reference
// is immutable once set; a new category id in the payload is ignored.
func UpdateCompany(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
		return
	}

	var existingID int64
	if err := DB.QueryRow(`SELECT id FROM companies WHERE id = $1`, id).Scan(&existingID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch company"})
		}
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		UID      string `json:"uid" binding:"required"`
		Address  string `json:"address"`
		Phone    string `json:"phone"`
		Email    string `json:"email" binding:"required,email"`
		Image    string `json:"image"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	query := `UPDATE companies SET name = $1, uid = $2, address = $3, phone = $4, email = $5, image = $6, updated_at = now()`
	args := []interface{}{req.Name, req.UID, req.Address, req.Phone, req.Email, req.Image}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		query += `, password_hash = $7 WHERE id = $8`
		args = append(args, string(hashed), id)
	} else {
		query += ` WHERE id = $7`
		args = append(args, id)
	}

	if _, err := DB.Exec(query, args...); err != nil {
		if field, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": uniqueViolationResponse(field)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company updated"})
}

// DeleteCompany removes the company and, through the cascade on
// reviews.company_id, every review written about it.
func DeleteCompany(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
		return
	}

	result, err := DB.Exec(`DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Company not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}
