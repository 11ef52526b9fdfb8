package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"reviews-server/models"
	"reviews-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRequest struct {
	Name     string `json:"name" binding:"required"`
	UID      string `json:"uid"`
	Image    string `json:"image"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// parseID reads the numeric id path parameter. A non-numeric id can never
// resolve to a record, so callers treat false as not found.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func GetUsers(c *gin.Context) {
	query := `SELECT id, name, uid, image, email, created_at, updated_at
	          FROM users ORDER BY created_at DESC`

	rows, err := DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer rows.Close()

	users := make([]gin.H, 0, 16)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.UID, &user.Image,
			&user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		users = append(users, userResponse(user))
	}

	c.JSON(http.StatusOK, users)
}

func CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
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
	insertQuery := `INSERT INTO users (name, uid, image, email, password_hash)
	                VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = DB.QueryRow(insertQuery, req.Name, req.UID, req.Image, req.Email, string(hashed)).Scan(&id)
	if err != nil {
		if field, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": uniqueViolationResponse(field)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created", "id": id})
}

// GetUser returns the user together with every review they have written.
func GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var user models.User
	query := `SELECT id, name, uid, image, email, created_at, updated_at
	          FROM users WHERE id = $1`
	err := DB.QueryRow(query, id).Scan(&user.ID, &user.Name, &user.UID,
		&user.Image, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	reviews, err := loadReviewsForUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    userResponse(user),
		"reviews": reviewResponses(reviews),
	})
}

func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var existingID int64
	if err := DB.QueryRow(`SELECT id FROM users WHERE id = $1`, id).Scan(&existingID); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		UID      string `json:"uid" binding:"required"`
		Image    string `json:"image"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	query := `UPDATE users SET name = $1, uid = $2, image = $3, email = $4, updated_at = now()`
	args := []interface{}{req.Name, req.UID, req.Image, req.Email}

	// A supplied password is re-hashed before storage, never stored raw.
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		query += `, password_hash = $5 WHERE id = $6`
		args = append(args, string(hashed), id)
	} else {
		query += ` WHERE id = $5`
		args = append(args, id)
	}

	if _, err := DB.Exec(query, args...); err != nil {
		if field, ok := uniqueViolation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": uniqueViolationResponse(field)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// DeleteUser removes the user; their reviews go with them through the
// ON DELETE CASCADE on reviews.user_id.
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	result, err := DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
