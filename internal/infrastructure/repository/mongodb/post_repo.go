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

// PostRepository is the MongoDB implementation of the community post repository.
type PostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository creates and returns a new PostRepository instance.
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{collection: db.Collection("posts")}
}

var _ contract.IPostRepository = (*PostRepository)(nil)

// CreatePost inserts a new community post.
func (r *PostRepository) CreatePost(ctx context.Context, post *entity.CommunityPost) error {
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetPostByID retrieves a single post by its ID.
func (r *PostRepository) GetPostByID(ctx context.Context, postID int64) (*entity.CommunityPost, error) {
	filter := bson.M{"_id": postID, "is_deleted": false}
	var post entity.CommunityPost
	if err := r.collection.FindOne(ctx, filter).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	return &post, nil
}

// ListPosts retrieves a page of posts, newest first.
func (r *PostRepository) ListPosts(ctx context.Context, opts *contract.ContentFilterOptions) ([]entity.CommunityPost, int64, error) {
	filter := listFilter(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, listFindOptions(opts))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []entity.CommunityPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, total, nil
}

// DeletePost soft-deletes a post.
func (r *PostRepository) DeletePost(ctx context.Context, postID int64) error {
	filter := bson.M{"_id": postID, "is_deleted": false}
	update := bson.M{"$set": bson.M{"is_deleted": true}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.ModifiedCount == 0 {
		return contract.ErrContentNotFound
	}
	return nil
}

// IncrementViewCountBy adds delta to the durable view count in a single
// atomic $inc.
func (r *PostRepository) IncrementViewCountBy(ctx context.Context, postID int64, delta int64) error {
	filter := bson.M{"_id": postID, "is_deleted": false}
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

// GetViewCount returns the durable view count for one post.
func (r *PostRepository) GetViewCount(ctx context.Context, postID int64) (int64, error) {
	filter := bson.M{"_id": postID, "is_deleted": false}
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
