package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/folio/portfolio-api/internal/core/domain"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"published": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := make([]*domain.Post, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindPublishedBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Post
	err := r.col.FindOne(ctx, bson.M{"slug": slug, "published": true}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.col.FindOne(ctx, bson.M{"slug": slug}, opts).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	default:
		return false, fmt.Errorf("slug lookup: %w", err)
	}
}

// Create relies on the unique slug index for concurrent inserts.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *p
	doc.ID = uuid.NewString()
	doc.CreatedAt = now()
	doc.UpdatedAt = nil

	res, err := r.col.InsertOne(ctx, &doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugConflict
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	if res.InsertedID == nil {
		return nil, domain.ErrPostCreateFailed
	}
	return &doc, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Slug != nil {
		set["slug"] = *patch.Slug
	}
	if patch.Excerpt != nil {
		set["excerpt"] = *patch.Excerpt
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.CoverURL != nil {
		set["cover_url"] = *patch.CoverURL
	}
	if patch.Published != nil {
		set["published"] = *patch.Published
	}
	if len(set) == 0 {
		return nil, domain.ErrEmptyUpdate
	}
	set["updated_at"] = now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugConflict
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
