package review

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/review"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReviewWriter renders reviews into a downloadable document
type ReviewWriter interface {
	WriteReviews(w io.Writer, reviews []review.Review) error
}

// ReviewService handles storefront reviews and their moderation
type ReviewService struct {
	reviewRepo  review.ReviewRepository
	productRepo catalog.ProductRepository
	writer      ReviewWriter
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo review.ReviewRepository,
	productRepo catalog.ProductRepository,
	writer ReviewWriter,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		writer:      writer,
		publisher:   publisher,
		logger:      logger,
	}
}

// Post adds a review to an approved product
func (s *ReviewService) Post(ctx context.Context, productID uuid.UUID, input PostReviewInput) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "post",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID))
	defer span.End()

	product, err := s.approvedProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	r, err := review.NewReview(review.NewReviewInput{
		ProductID:     product.ID,
		ProductName:   product.Name,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Rating:        input.Rating,
		Comment:       input.Comment,
	})
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, r); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	events := r.PullEvents()
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish review events", zap.Error(err))
	}

	resp := ToReviewResponse(r)
	return &resp, nil
}

// ListForProduct pages through the reviews of an approved product
func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID, query ReviewListQuery) (shared.Paginated[PublicReviewResponse], error) {
	if _, err := s.approvedProduct(ctx, productID); err != nil {
		return shared.Paginated[PublicReviewResponse]{}, err
	}
	filter := shared.DefaultFilter()
	filter.Page, filter.PageSize = query.Page, query.PageSize
	filter.Filters["product_id"] = productID
	filter = filter.Normalize()

	reviews, total, err := s.reviewRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[PublicReviewResponse]{}, err
	}
	return shared.NewPaginated(toPublicReviewResponses(reviews), total, filter.Page, filter.PageSize), nil
}

// List pages through all reviews for the admin panel
func (s *ReviewService) List(ctx context.Context, query ReviewListQuery) (shared.Paginated[ReviewResponse], error) {
	filter := shared.DefaultFilter()
	filter.Page, filter.PageSize, filter.Search = query.Page, query.PageSize, query.Search
	filter = filter.Normalize()
	reviews, total, err := s.reviewRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ReviewResponse]{}, err
	}
	return shared.NewPaginated(ToReviewResponses(reviews), total, filter.Page, filter.PageSize), nil
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

// Export writes every review matching search to w and returns the count
func (s *ReviewService) Export(ctx context.Context, w io.Writer, search string) (int, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "export")
	defer span.End()

	reviews, err := s.reviewRepo.FindAllForExport(ctx, search)
	if err != nil {
		return 0, err
	}
	if err := s.writer.WriteReviews(w, reviews); err != nil {
		telemetry.RecordError(span, err)
		return 0, shared.WrapDomainError("EXPORT_FAILED", "Failed to build review export", err)
	}
	telemetry.SetAttributes(span, "export.rows", len(reviews))
	return len(reviews), nil
}

func (s *ReviewService) approvedProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ApprovalStatus != catalog.ApprovalApproved {
		return nil, shared.ErrNotFound
	}
	return product, nil
}
