package handlers

import (
	"testing"

	"reviews-server/models"

	"github.com/stretchr/testify/assert"
)

func listing(id, categoryID int64, name string, ratingSum, reviewsCount int) companyListing {
	return companyListing{
		Company:      models.Company{ID: id, Name: name, CategoryID: categoryID},
		RatingSum:    ratingSum,
		ReviewsCount: reviewsCount,
	}
}

func TestRoundedAverage(t *testing.T) {
	tests := []struct {
		name  string
		sum   int
		count int
		want  int
	}{
		{"no reviews", 0, 0, 0},
		{"single review", 4, 1, 4},
		{"exact mean", 8, 2, 4},
		{"half rounds away from zero", 9, 2, 5}, // 4.5 -> 5
		{"below half rounds down", 10, 3, 3},    // 3.33 -> 3
		{"above half rounds up", 11, 3, 4},      // 3.66 -> 4
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundedAverage(tt.sum, tt.count))
		})
	}
}

func TestFilterCompaniesByCategory(t *testing.T) {
	listings := []companyListing{
		listing(1, 10, "Cafe A", 9, 2),
		listing(2, 20, "Hotel B", 4, 1),
		listing(3, 10, "Cafe C", 0, 0),
	}

	categoryID := int64(10)
	matched := filterCompanies(listings, companyFilters{CategoryID: &categoryID})

	assert.Len(t, matched, 2)
	assert.Equal(t, int64(1), matched[0].Company.ID)
	assert.Equal(t, int64(3), matched[1].Company.ID)
}

func TestFilterCompaniesByRating(t *testing.T) {
	listings := []companyListing{
		listing(1, 10, "Cafe A", 9, 2),  // avg 4.5 -> 5
		listing(2, 10, "Hotel B", 4, 1), // avg 4
		listing(3, 10, "Cafe C", 0, 0),  // avg 0
	}

	five := 5
	matched := filterCompanies(listings, companyFilters{Rating: &five})
	assert.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].Company.ID)

	// A company with zero reviews only matches rating=0.
	zero := 0
	matched = filterCompanies(listings, companyFilters{Rating: &zero})
	assert.Len(t, matched, 1)
	assert.Equal(t, int64(3), matched[0].Company.ID)
}

func TestFilterCompaniesByNameSubstring(t *testing.T) {
	listings := []companyListing{
		listing(1, 10, "Cafe Aurora", 0, 0),
		listing(2, 10, "Hotel Miramar", 0, 0),
		listing(3, 10, "AURORA Tech", 0, 0),
	}

	matched := filterCompanies(listings, companyFilters{Name: "aurora"})

	assert.Len(t, matched, 2)
	assert.Equal(t, "Cafe Aurora", matched[0].Company.Name)
	assert.Equal(t, "AURORA Tech", matched[1].Company.Name)
}

func TestFilterCompaniesConjunctive(t *testing.T) {
	listings := []companyListing{
		listing(1, 10, "Cafe A", 8, 2),  // category 10, avg 4
		listing(2, 10, "Cafe B", 10, 2), // category 10, avg 5
		listing(3, 20, "Cafe C", 8, 2),  // category 20, avg 4
	}

	categoryID := int64(10)
	four := 4
	matched := filterCompanies(listings, companyFilters{CategoryID: &categoryID, Rating: &four, Name: "cafe"})

	assert.Len(t, matched, 1)
	assert.Equal(t, int64(1), matched[0].Company.ID)
}

func TestFilterCompaniesOrdering(t *testing.T) {
	listings := []companyListing{
		listing(1, 10, "A", 5, 1),
		listing(2, 10, "B", 15, 3),
		listing(3, 10, "C", 8, 2),
	}

	desc := filterCompanies(listings, companyFilters{OrderBy: orderByReviewsDesc})
	counts := []int{desc[0].ReviewsCount, desc[1].ReviewsCount, desc[2].ReviewsCount}
	assert.Equal(t, []int{3, 2, 1}, counts)

	asc := filterCompanies(listings, companyFilters{OrderBy: orderByReviewsAsc})
	counts = []int{asc[0].ReviewsCount, asc[1].ReviewsCount, asc[2].ReviewsCount}
	assert.Equal(t, []int{1, 2, 3}, counts)

	// Any other token keeps the input order.
	unordered := filterCompanies(listings, companyFilters{OrderBy: "popularity"})
	assert.Equal(t, int64(1), unordered[0].Company.ID)
	assert.Equal(t, int64(2), unordered[1].Company.ID)
	assert.Equal(t, int64(3), unordered[2].Company.ID)
}

func TestAverageRatingOnListing(t *testing.T) {
	l := listing(1, 10, "Cafe A", 9, 2)
	assert.Equal(t, 5, l.AverageRating())

	empty := listing(2, 10, "Cafe B", 0, 0)
	assert.Equal(t, 0, empty.AverageRating())
}
