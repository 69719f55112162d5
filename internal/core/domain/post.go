package domain

import "time"

// Post is a blog post. Drafts (Published == false) are never served publicly.
type Post struct {
	ID        string     `json:"id" bson:"_id"`
	Title     string     `json:"title" bson:"title"`
	Slug      string     `json:"slug" bson:"slug"`
	Excerpt   string     `json:"excerpt" bson:"excerpt"`
	Content   string     `json:"content" bson:"content"`
	Tags      []string   `json:"tags" bson:"tags"`
	CoverURL  *string    `json:"cover_url" bson:"cover_url,omitempty"`
	Published bool       `json:"published" bson:"published"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

// HasTag reports whether tag is one of the post's tags.
func (p *Post) HasTag(tag string) bool {
	return containsTag(p.Tags, tag)
}

// PostPatch carries a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title     *string
	Slug      *string
	Excerpt   *string
	Content   *string
	Tags      *[]string
	CoverURL  *string
	Published *bool
}

// IsEmpty reports whether the patch sets no field at all.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Slug == nil &&
		p.Excerpt == nil &&
		p.Content == nil &&
		p.Tags == nil &&
		p.CoverURL == nil &&
		p.Published == nil
}
