// internal/services/review_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartloop/dropship-backend/internal/database"
	"github.com/kartloop/dropship-backend/internal/models"
	"github.com/kartloop/dropship-backend/internal/utils"
)

// ReviewService keeps a product's cached rating/review_count consistent with
// its child reviews: the insert and the recomputed aggregate commit in the
// same transaction, so no reader ever sees them disagree.
type ReviewService struct {
	db *gorm.DB
}

type SubmitReviewInput struct {
	AuthorName string `json:"author_name" validate:"required,min=2,max=120"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,min=10"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// SubmitReview inserts the review, re-reads the product's full review set and
// rewrites the aggregate. The full rescan is deliberate: always consistent,
// linear in review count. If volume ever makes this hot, a running sum +
// count keeps the same invariant without the rescan.
func (s *ReviewService) SubmitReview(ctx context.Context, productID uuid.UUID, input *SubmitReviewInput) (*models.Review, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	review := &models.Review{
		ProductID:  productID,
		AuthorName: input.AuthorName,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return notFoundOr(err, "failed to load product")
		}

		review.ID = uuid.Nil
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var ratings []int
		if err := tx.Model(&models.Review{}).
			Where("product_id = ?", productID).
			Pluck("rating", &ratings).Error; err != nil {
			return fmt.Errorf("failed to read reviews: %w", err)
		}

		var sum int
		for _, r := range ratings {
			sum += r
		}
		count := int64(len(ratings))
		average := float64(sum) / float64(count)

		// Guarded by the aggregate this transaction read; a concurrent submit
		// that committed first makes this write miss, and the retry rescans.
		result := tx.Model(&models.Product{}).
			Where("id = ? AND review_count = ?", productID, product.ReviewCount).
			Updates(map[string]interface{}{
				"rating":       average,
				"review_count": count,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update review aggregate: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrTransactionConflict
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID uuid.UUID, params utils.PaginationParams) ([]models.Review, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "rating"})
	query = utils.ApplyPagination(query, params)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}
