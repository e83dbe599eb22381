package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boardpulse/internal/domain/contract"
	"boardpulse/internal/domain/entity"
)

// NoticeRepository is the MongoDB implementation of the notice repository.
type NoticeRepository struct {
	collection *mongo.Collection
}

// NewNoticeRepository creates and returns a new NoticeRepository instance.
func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{collection: db.Collection("notices")}
}

var _ contract.INoticeRepository = (*NoticeRepository)(nil)

// CreateNotice inserts a new notice.
func (r *NoticeRepository) CreateNotice(ctx context.Context, notice *entity.Notice) error {
	if _, err := r.collection.InsertOne(ctx, notice); err != nil {
		return fmt.Errorf("failed to create notice: %w", err)
	}
	return nil
}

// GetNoticeByID retrieves a single notice by its ID.
func (r *NoticeRepository) GetNoticeByID(ctx context.Context, noticeID int64) (*entity.Notice, error) {
	filter := bson.M{"_id": noticeID, "is_deleted": false}
	var notice entity.Notice
	if err := r.collection.FindOne(ctx, filter).Decode(&notice); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve notice: %w", err)
	}
	return &notice, nil
}

// ListNotices retrieves a page of notices, newest first.
func (r *NoticeRepository) ListNotices(ctx context.Context, opts *contract.ContentFilterOptions) ([]entity.Notice, int64, error) {
	filter := listFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notices: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, listFindOptions(opts))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notices: %w", err)
	}
	defer cursor.Close(ctx)

	var notices []entity.Notice
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notices: %w", err)
	}
	return notices, total, nil
}

// DeleteNotice soft-deletes a notice.
func (r *NoticeRepository) DeleteNotice(ctx context.Context, noticeID int64) error {
	filter := bson.M{"_id": noticeID, "is_deleted": false}
	update := bson.M{"$set": bson.M{"is_deleted": true}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	if res.ModifiedCount == 0 {
		return contract.ErrContentNotFound
	}
	return nil
}

// IncrementViewCountBy adds delta to the durable view count in a single
// atomic $inc, as required by the reconciliation drain.
func (r *NoticeRepository) IncrementViewCountBy(ctx context.Context, noticeID int64, delta int64) error {
	filter := bson.M{"_id": noticeID, "is_deleted": false}
	update := bson.M{"$inc": bson.M{"view_count": delta}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrContentNotFound
	}
	return nil
}

// GetViewCount returns the durable view count for one notice.
func (r *NoticeRepository) GetViewCount(ctx context.Context, noticeID int64) (int64, error) {
	filter := bson.M{"_id": noticeID, "is_deleted": false}
	opts := options.FindOne().SetProjection(bson.M{"view_count": 1})

	var doc struct {
		ViewCount int64 `bson:"view_count"`
	}
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, contract.ErrContentNotFound
		}
		return 0, fmt.Errorf("failed to retrieve view count: %w", err)
	}
	return doc.ViewCount, nil
}

// listFilter builds the shared listing filter for board content.
func listFilter(opts *contract.ContentFilterOptions) bson.M {
	filter := bson.M{"is_deleted": false}
	if opts == nil {
		return filter
	}
	dateFilter := bson.M{}
	if opts.DateFrom != nil {
		dateFilter["$gte"] = opts.DateFrom
	}
	if opts.DateTo != nil {
		dateFilter["$lte"] = opts.DateTo
	}
	if len(dateFilter) > 0 {
		filter["created_at"] = dateFilter
	}
	return filter
}

// listFindOptions builds pagination and sort options for board content.
func listFindOptions(opts *contract.ContentFilterOptions) *options.FindOptions {
	page, pageSize := 1, 20
	if opts != nil {
		if opts.Page > 0 {
			page = opts.Page
		}
		if opts.PageSize > 0 {
			pageSize = opts.PageSize
		}
	}
	return options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
}
