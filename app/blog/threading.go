package blog

import (
	"github.com/folio-dev/folio/app/database"
)

// ThreadedComment is a top-level comment with its directly attached replies.
type ThreadedComment struct {
	database.BlogComment
	Replies []database.BlogComment
}

// Thread turns a flat, ascending-by-created_at comment list into a two-level
// tree. A comment whose parent_comment_id points at a reply (rather than a
// top-level comment) is dropped from the tree; one level of nesting is all
// the model supports.
func Thread(comments []database.BlogComment) []ThreadedComment {
	threads := make([]ThreadedComment, 0, len(comments))
	index := make(map[string]int, len(comments))

	for _, comment := range comments {
		if comment.ParentCommentID != nil {
			continue
		}
		index[comment.ID] = len(threads)
		threads = append(threads, ThreadedComment{
			BlogComment: comment,
			Replies:     []database.BlogComment{},
		})
	}

	for _, comment := range comments {
		if comment.ParentCommentID == nil {
			continue
		}
		pos, ok := index[*comment.ParentCommentID]
		if !ok {
			continue
		}
		threads[pos].Replies = append(threads[pos].Replies, comment)
	}

	return threads
}
