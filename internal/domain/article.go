package domain

import "time"

// Article represents an article entity in the system. The slug is the
// external handle used for lookups; the ID stays internal. AuthorID is set
// once at creation from the authenticated caller's profile and never changes.
type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Body        string    `json:"body"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ArticleCreate carries the client-supplied fields for a new article. The
// author never comes from this payload; it is taken from the authenticated
// caller's profile.
type ArticleCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// ArticlePatch carries a partial update. Only non-nil fields are applied,
// so an absent field can never null out stored content. Author and slug are
// not patchable.
type ArticlePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

// IsEmpty reports whether the patch carries no changes at all.
func (p ArticlePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Body == nil
}

// Apply copies the patch's present fields onto the article.
func (p ArticlePatch) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = p.Description
	}
	if p.Body != nil {
		a.Body = *p.Body
	}
}

// CanMutate is the single authorization rule for article mutation: only the
// profile that authored an article may update or delete it. Update and delete
// both go through this function so the check cannot drift between the two paths.
func CanMutate(a *Article, requester *Profile) bool {
	if a == nil || requester == nil {
		return false
	}
	return a.AuthorID == requester.ID
}
