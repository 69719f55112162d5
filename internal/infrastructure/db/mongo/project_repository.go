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
	"github.com/folio/portfolio-api/internal/core/ports"
)

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) List(ctx context.Context, q ports.ProjectQuery) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.Featured != nil {
		filter["featured"] = *q.Featured
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := make([]*domain.Project, 0)
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

// Create assigns a UUID id and the creation time before inserting.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *p
	doc.ID = uuid.NewString()
	doc.CreatedAt = now()
	doc.UpdatedAt = nil

	res, err := r.col.InsertOne(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	if res.InsertedID == nil {
		return nil, domain.ErrProjectCreateFailed
	}
	return &doc, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}
	if patch.LiveURL != nil {
		set["live_url"] = *patch.LiveURL
	}
	if patch.GithubURL != nil {
		set["github_url"] = *patch.GithubURL
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	if len(set) == 0 {
		return nil, domain.ErrEmptyUpdate
	}
	set["updated_at"] = now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Project
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
