package handlers

import (
	"reviews-server/models"

	"github.com/gin-gonic/gin"
)

// reviewDetail is a review row joined with the display fields of its
// author and company.
type reviewDetail struct {
	models.Review
	UserName    string
	UserImage   string
	CompanyName string
}

// userResponse serializes a user. The password hash is write-only and
// never leaves the server.
func userResponse(u models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"uid":        u.UID,
		"image":      u.Image,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// reviewResponse embeds reduced views of the author and the company.
func reviewResponse(r reviewDetail) gin.H {
	return gin.H{
		"id":          r.ID,
		"description": r.Description,
		"rating":      r.Rating,
		"user": gin.H{
			"id":       r.UserID,
			"username": r.UserName,
			"image":    r.UserImage,
		},
		"company": gin.H{
			"id":   r.CompanyID,
			"name": r.CompanyName,
		},
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}

func reviewResponses(reviews []reviewDetail) []gin.H {
	out := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, reviewResponse(r))
	}
	return out
}

// companyResponse carries the full record minus the password hash, a
// reduced category view, the nested reviews, and both derived metrics.
func companyResponse(l companyListing, reviews []reviewDetail) gin.H {
	return gin.H{
		"id":      l.Company.ID,
		"name":    l.Company.Name,
		"uid":     l.Company.UID,
		"address": l.Company.Address,
		"phone":   l.Company.Phone,
		"email":   l.Company.Email,
		"image":   l.Company.Image,
		"category": gin.H{
			"id":   l.Company.CategoryID,
			"name": l.CategoryName,
		},
		"reviews":        reviewResponses(reviews),
		"average_rating": l.AverageRating(),
		"reviews_count":  l.ReviewsCount,
		"created_at":     l.Company.CreatedAt,
		"updated_at":     l.Company.UpdatedAt,
	}
}

func categoryResponse(cat models.Category, companies []gin.H) gin.H {
	return gin.H{
		"id":         cat.ID,
		"name":       cat.Name,
		"companies":  companies,
		"created_at": cat.CreatedAt,
		"updated_at": cat.UpdatedAt,
	}
}

func reducedCompany(id int64, name string) gin.H {
	return gin.H{"id": id, "name": name}
}
