package handler

import "time"

// --- Auth ---

type loginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type meResponse struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type hashRequest struct {
	Password string `query:"password" validate:"required"`
}

type hashResponse struct {
	Hash string `json:"hash"`
}

// --- Projects ---

type createProjectRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
	ImageURL    *string  `json:"image_url"`
	LiveURL     *string  `json:"live_url"`
	GithubURL   *string  `json:"github_url"`
	Featured    bool     `json:"featured"`
	Order       int      `json:"order"`
}

// updateProjectRequest fields left out of the body (or sent as null) are
// not touched.
type updateProjectRequest struct {
	Title       *string   `json:"title"       validate:"omitnil,min=1"`
	Description *string   `json:"description" validate:"omitnil,min=1"`
	Tags        *[]string `json:"tags"`
	ImageURL    *string   `json:"image_url"`
	LiveURL     *string   `json:"live_url"`
	GithubURL   *string   `json:"github_url"`
	Featured    *bool     `json:"featured"`
	Order       *int      `json:"order"`
}

// --- Blog ---

type createPostRequest struct {
	Title     string   `json:"title"     validate:"required"`
	Slug      string   `json:"slug"      validate:"required,slug"`
	Excerpt   string   `json:"excerpt"   validate:"required"`
	Content   string   `json:"content"   validate:"required"`
	Tags      []string `json:"tags"`
	CoverURL  *string  `json:"cover_url"`
	Published bool     `json:"published"`
}

type updatePostRequest struct {
	Title     *string   `json:"title"     validate:"omitnil,min=1"`
	Slug      *string   `json:"slug"      validate:"omitnil,slug"`
	Excerpt   *string   `json:"excerpt"   validate:"omitnil,min=1"`
	Content   *string   `json:"content"   validate:"omitnil,min=1"`
	Tags      *[]string `json:"tags"`
	CoverURL  *string   `json:"cover_url"`
	Published *bool     `json:"published"`
}

// --- Misc ---

type rootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
	CheckedAt    time.Time                   `json:"checked_at"`
}
