package domain

import "time"

// Project is a portfolio entry. Order is the display sort key, lower first.
type Project struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Tags        []string   `json:"tags" bson:"tags"`
	ImageURL    *string    `json:"image_url" bson:"image_url,omitempty"`
	LiveURL     *string    `json:"live_url" bson:"live_url,omitempty"`
	GithubURL   *string    `json:"github_url" bson:"github_url,omitempty"`
	Featured    bool       `json:"featured" bson:"featured"`
	Order       int        `json:"order" bson:"order"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

// HasTag reports whether tag is one of the project's tags.
func (p *Project) HasTag(tag string) bool {
	return containsTag(p.Tags, tag)
}

// ProjectPatch carries a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	Tags        *[]string
	ImageURL    *string
	LiveURL     *string
	GithubURL   *string
	Featured    *bool
	Order       *int
}

// IsEmpty reports whether the patch sets no field at all.
func (p ProjectPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Tags == nil &&
		p.ImageURL == nil &&
		p.LiveURL == nil &&
		p.GithubURL == nil &&
		p.Featured == nil &&
		p.Order == nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
