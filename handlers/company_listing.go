package handlers

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"reviews-server/models"

	"github.com/gin-gonic/gin"
)

// companyListing is a company row annotated with its category name and
// review aggregates.
type companyListing struct {
	Company      models.Company
	CategoryName string
	RatingSum    int
	ReviewsCount int
}

// AverageRating is the rounded mean of the company's review ratings, or 0
// when it has none. Rounding is half-away-from-zero, so 4.5 rounds to 5.
func (l companyListing) AverageRating() int {
	return roundedAverage(l.RatingSum, l.ReviewsCount)
}

func roundedAverage(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// companyFilters are the optional listing criteria. All of them combine
// as AND when present.
type companyFilters struct {
	CategoryID *int64
	Rating     *int
	Name       string
	OrderBy    string
}

const (
	orderByReviewsDesc = "1"
	orderByReviewsAsc  = "2"
)

// parseCompanyFilters reads the listing criteria from the query string.
func parseCompanyFilters(c *gin.Context) (companyFilters, map[string][]string) {
	var filters companyFilters

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, map[string][]string{"category_id": {"Enter a valid integer."}}
		}
		filters.CategoryID = &id
	}

	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return filters, map[string][]string{"rating": {"Enter a valid integer."}}
		}
		filters.Rating = &rating
	}

	filters.Name = c.Query("name")
	filters.OrderBy = c.Query("order_by")
	return filters, nil
}

// filterCompanies applies the conjunctive filters and the review-count
// ordering. The rating filter matches the rounded average, not the raw
// review ratings, so a company with no reviews only matches rating=0.
// Any order_by value other than "1" or "2" keeps the input order.
func filterCompanies(listings []companyListing, filters companyFilters) []companyListing {
	matched := make([]companyListing, 0, len(listings))
	for _, l := range listings {
		if filters.CategoryID != nil && l.Company.CategoryID != *filters.CategoryID {
			continue
		}
		if filters.Rating != nil && l.AverageRating() != *filters.Rating {
			continue
		}
		if filters.Name != "" && !strings.Contains(strings.ToLower(l.Company.Name), strings.ToLower(filters.Name)) {
			continue
		}
		matched = append(matched, l)
	}

	switch filters.OrderBy {
	case orderByReviewsDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ReviewsCount > matched[j].ReviewsCount
		})
	case orderByReviewsAsc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ReviewsCount < matched[j].ReviewsCount
		})
	}

	return matched
}
