package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/blog"
	"github.com/folio-dev/folio/app/database"
)

func (h *Handler) GetBlogPosts(c *gin.Context) {
	posts, err := h.blogRepo.GetPublishedPosts()
	if err != nil {
		slog.Error("Database error", "operation", "get_published_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	responses := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toPostResponse(post, false))
	}

	c.JSON(http.StatusOK, gin.H{"posts": responses, "total": len(responses)})
}

// publishedPostBySlug resolves a slug to a published post, writing the
// error response itself when that fails.
func (h *Handler) publishedPostBySlug(c *gin.Context) (*database.BlogPost, bool) {
	slug := c.Param("slug")

	post, err := h.blogRepo.GetPostBySlug(slug)
	if err != nil {
		slog.Error("Database error", "operation", "get_post_by_slug", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	if post == nil || !post.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	return post, true
}

func (h *Handler) GetBlogPost(c *gin.Context) {
	post, ok := h.publishedPostBySlug(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": toPostResponse(*post, true)})
}

// LikeBlogPost increments the like counter and returns the fresh count.
func (h *Handler) LikeBlogPost(c *gin.Context) {
	post, ok := h.publishedPostBySlug(c)
	if !ok {
		return
	}

	if err := h.blogRepo.IncrementLikes(post.ID); err != nil {
		mutationFailed(c, "increment_likes", err)
		return
	}

	updated, err := h.blogRepo.GetPostByID(post.ID)
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "refetch_post", "id", post.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes_count": updated.LikesCount})
}

func (h *Handler) GetBlogComments(c *gin.Context) {
	post, ok := h.publishedPostBySlug(c)
	if !ok {
		return
	}

	comments, err := h.blogRepo.GetApprovedComments(post.ID)
	if err != nil {
		slog.Error("Database error", "operation", "get_approved_comments", "post_id", post.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	threads := blog.Thread(comments)
	responses := make([]threadedCommentResponse, 0, len(threads))
	for _, thread := range threads {
		replies := make([]commentResponse, 0, len(thread.Replies))
		for _, reply := range thread.Replies {
			replies = append(replies, toCommentResponse(reply))
		}
		responses = append(responses, threadedCommentResponse{
			commentResponse: toCommentResponse(thread.BlogComment),
			Replies:         replies,
		})
	}

	c.JSON(http.StatusOK, gin.H{"comments": responses, "total": len(comments)})
}

// CreateBlogComment stores a comment awaiting moderation. Replies must point
// at a top-level comment on the same post.
func (h *Handler) CreateBlogComment(c *gin.Context) {
	post, ok := h.publishedPostBySlug(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	comment := database.BlogComment{
		BlogPostID:      post.ID,
		ParentCommentID: req.ParentCommentID,
		AuthorName:      req.AuthorName,
		Content:         req.Content,
		IsApproved:      false,
	}

	id, err := h.blogRepo.CreateComment(comment)
	if err != nil {
		mutationFailed(c, "create_comment", err)
		return
	}

	slog.Info("Comment submitted for moderation", "id", id, "post_id", post.ID)
	c.JSON(http.StatusCreated, gin.H{"id": id, "status": "pending"})
}

func (h *Handler) AdminGetBlogPosts(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	posts, err := h.blogRepo.GetAllPosts()
	if err != nil {
		slog.Error("Database error", "operation", "get_all_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	responses := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toPostResponse(post, true))
	}

	c.JSON(http.StatusOK, gin.H{"posts": responses, "total": len(responses)})
}

func (h *Handler) postFromRequest(c *gin.Context) (database.BlogPost, bool) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return database.BlogPost{}, false
	}

	publishedAt, err := parseDate(req.PublishedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid published_at", "details": err.Error()})
		return database.BlogPost{}, false
	}

	slug := req.Slug
	if slug == "" {
		slug = blog.Slugify(req.Title)
	}

	post := database.BlogPost{
		Slug:        slug,
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
		PublishedAt: publishedAt,
	}
	if post.IsPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	return post, true
}

func (h *Handler) AdminCreateBlogPost(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	post, ok := h.postFromRequest(c)
	if !ok {
		return
	}

	id, err := h.blogRepo.CreatePost(post)
	if err != nil {
		mutationFailed(c, "create_post", err)
		return
	}

	created, err := h.blogRepo.GetPostByID(id)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "refetch_post", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": toPostResponse(*created, true)})
}

func (h *Handler) AdminUpdateBlogPost(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id := c.Param("id")

	post, ok := h.postFromRequest(c)
	if !ok {
		return
	}

	if err := h.blogRepo.UpdatePost(id, post); err != nil {
		mutationFailed(c, "update_post", err)
		return
	}

	updated, err := h.blogRepo.GetPostByID(id)
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "refetch_post", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": toPostResponse(*updated, true)})
}

func (h *Handler) AdminDeleteBlogPost(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.blogRepo.DeletePost(c.Param("id")); err != nil {
		mutationFailed(c, "delete_post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) AdminGetPendingComments(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	comments, err := h.blogRepo.GetPendingComments()
	if err != nil {
		slog.Error("Database error", "operation", "get_pending_comments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	responses := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, toCommentResponse(comment))
	}

	c.JSON(http.StatusOK, gin.H{"comments": responses, "total": len(responses)})
}

func (h *Handler) AdminApproveComment(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.blogRepo.ApproveComment(c.Param("id")); err != nil {
		mutationFailed(c, "approve_comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

func (h *Handler) AdminDeleteComment(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.blogRepo.DeleteComment(c.Param("id")); err != nil {
		mutationFailed(c, "delete_comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
