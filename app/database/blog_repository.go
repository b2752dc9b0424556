package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BlogRepo handles database operations for blog posts and comments
type BlogRepo struct {
	db *DB
}

var _ BlogRepository = (*BlogRepo)(nil)

func NewBlogRepository(db *DB) *BlogRepo {
	return &BlogRepo{db: db}
}

const postColumns = `id, slug, title, COALESCE(excerpt, ''), COALESCE(content, ''),
	       COALESCE(tags, '[]'), is_published, likes_count, published_at,
	       created_at, updated_at`

func scanPost(scan func(dest ...any) error) (BlogPost, error) {
	var p BlogPost
	var tags string
	err := scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content,
		&tags, &p.IsPublished, &p.LikesCount, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, fmt.Errorf("failed to scan blog post row: %w", err)
	}

	if p.Tags, err = decodeStrings(tags); err != nil {
		return p, err
	}
	return p, nil
}

func (r *BlogRepo) queryPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog post rows: %w", err)
	}

	return posts, nil
}

// GetPublishedPosts returns published posts, newest first
func (r *BlogRepo) GetPublishedPosts() ([]BlogPost, error) {
	posts, err := r.queryPosts(`
		SELECT ` + postColumns + `
		FROM blog_posts
		WHERE is_published = 1
		ORDER BY COALESCE(published_at, created_at) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get published posts: %w", err)
	}
	return posts, nil
}

// GetAllPosts returns every post including drafts, newest first
func (r *BlogRepo) GetAllPosts() ([]BlogPost, error) {
	posts, err := r.queryPosts(`
		SELECT ` + postColumns + `
		FROM blog_posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	return posts, nil
}

// GetPostBySlug retrieves a post by its slug
func (r *BlogRepo) GetPostBySlug(slug string) (*BlogPost, error) {
	posts, err := r.queryPosts(`
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE slug = ?
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// GetPostByID retrieves a post by its id
func (r *BlogRepo) GetPostByID(id string) (*BlogPost, error) {
	posts, err := r.queryPosts(`
		SELECT `+postColumns+`
		FROM blog_posts
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// CreatePost inserts a new post and returns its id
func (r *BlogRepo) CreatePost(post BlogPost) (string, error) {
	tags, err := encodeStrings(post.Tags)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = r.db.Exec(`
		INSERT INTO blog_posts (id, slug, title, excerpt, content, tags,
			is_published, likes_count, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
	`, id, post.Slug, post.Title, post.Excerpt, post.Content, tags,
		post.IsPublished, post.PublishedAt, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert post: %w", err)
	}

	return id, nil
}

// UpdatePost rewrites a post. Returns ErrNoRowsAffected if no row matched.
func (r *BlogRepo) UpdatePost(id string, post BlogPost) error {
	tags, err := encodeStrings(post.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(`
		UPDATE blog_posts
		SET slug = ?, title = ?, excerpt = ?, content = ?, tags = ?,
		    is_published = ?, published_at = ?, updated_at = ?
		WHERE id = ?
	`, post.Slug, post.Title, post.Excerpt, post.Content, tags,
		post.IsPublished, post.PublishedAt, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("blog post %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

// DeletePost removes a post and its comments. Returns ErrNoRowsAffected if
// no row matched.
func (r *BlogRepo) DeletePost(id string) error {
	result, err := r.db.Exec("DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("blog post %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

// IncrementLikes adds one like to a post. Returns ErrNoRowsAffected if no
// row matched.
func (r *BlogRepo) IncrementLikes(id string) error {
	result, err := r.db.Exec(`
		UPDATE blog_posts
		SET likes_count = likes_count + 1
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to increment likes: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("blog post %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

func scanComment(scan func(dest ...any) error) (BlogComment, error) {
	var c BlogComment
	var parent sql.NullString
	err := scan(&c.ID, &c.BlogPostID, &parent, &c.AuthorName, &c.Content, &c.IsApproved, &c.CreatedAt)
	if err != nil {
		return c, fmt.Errorf("failed to scan comment row: %w", err)
	}
	if parent.Valid {
		c.ParentCommentID = &parent.String
	}
	return c, nil
}

func (r *BlogRepo) queryComments(query string, args ...any) ([]BlogComment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []BlogComment
	for rows.Next() {
		comment, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// GetApprovedComments returns approved comments for a post, oldest first.
// The ascending order is what the threading pass relies on.
func (r *BlogRepo) GetApprovedComments(postID string) ([]BlogComment, error) {
	comments, err := r.queryComments(`
		SELECT id, blog_post_id, parent_comment_id, author_name, content, is_approved, created_at
		FROM blog_comments
		WHERE blog_post_id = ?
		  AND is_approved = 1
		ORDER BY created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved comments: %w", err)
	}
	return comments, nil
}

// GetPendingComments returns unapproved comments across all posts
func (r *BlogRepo) GetPendingComments() ([]BlogComment, error) {
	comments, err := r.queryComments(`
		SELECT id, blog_post_id, parent_comment_id, author_name, content, is_approved, created_at
		FROM blog_comments
		WHERE is_approved = 0
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending comments: %w", err)
	}
	return comments, nil
}

// CreateComment inserts a new comment and returns its id
func (r *BlogRepo) CreateComment(comment BlogComment) (string, error) {
	id := uuid.NewString()

	var parent any
	if comment.ParentCommentID != nil {
		parent = *comment.ParentCommentID
	}

	_, err := r.db.Exec(`
		INSERT INTO blog_comments (id, blog_post_id, parent_comment_id,
			author_name, content, is_approved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, comment.BlogPostID, parent, comment.AuthorName, comment.Content,
		comment.IsApproved, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert comment: %w", err)
	}

	return id, nil
}

// ApproveComment marks a comment approved. Returns ErrNoRowsAffected if no
// row matched.
func (r *BlogRepo) ApproveComment(id string) error {
	result, err := r.db.Exec(`
		UPDATE blog_comments
		SET is_approved = 1
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to approve comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("comment %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}

// DeleteComment removes a comment. Returns ErrNoRowsAffected if no row matched.
func (r *BlogRepo) DeleteComment(id string) error {
	result, err := r.db.Exec("DELETE FROM blog_comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("comment %s: %w", id, ErrNoRowsAffected)
	}

	return nil
}
