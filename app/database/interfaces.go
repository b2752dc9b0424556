package database

import (
	"time"
)

type ProfileRepository interface {
	GetSiteProfile() (*Profile, error)
	GetByToken(token string) (*Profile, error)
	GetAdminFlag(id string) (bool, error)
	UpsertSiteProfile(profile Profile) (string, error)
}

type TimelineRepository interface {
	GetAll() ([]TimelineEvent, error)
	GetByID(id string) (*TimelineEvent, error)
	Create(event TimelineEvent) (string, error)
	Update(id string, event TimelineEvent) error
	Delete(id string) error
}

type ScheduleRepository interface {
	GetAll() ([]Schedule, error)
	GetByID(id string) (*Schedule, error)
	Create(schedule Schedule) (string, error)
	Update(id string, schedule Schedule) error
	Delete(id string) error

	GetUpcoming(from, until time.Time) ([]Schedule, error)
	GetRecurringEnded(before time.Time) ([]Schedule, error)
	MarkReminded(id string, at time.Time) error
}

type TaskRepository interface {
	GetAll() ([]Task, error)
	GetByID(id string) (*Task, error)
	Create(task Task) (string, error)
	Update(id string, task Task) error
	Delete(id string) error
}

type ContactRepository interface {
	GetAll() ([]ContactMessage, error)
	GetByID(id string) (*ContactMessage, error)
	Create(message ContactMessage) (string, error)
	UpdateStatus(id string, status string) error
	Delete(id string) error
}

type BlogRepository interface {
	GetPublishedPosts() ([]BlogPost, error)
	GetAllPosts() ([]BlogPost, error)
	GetPostBySlug(slug string) (*BlogPost, error)
	GetPostByID(id string) (*BlogPost, error)
	CreatePost(post BlogPost) (string, error)
	UpdatePost(id string, post BlogPost) error
	DeletePost(id string) error
	IncrementLikes(id string) error

	GetApprovedComments(postID string) ([]BlogComment, error)
	GetPendingComments() ([]BlogComment, error)
	CreateComment(comment BlogComment) (string, error)
	ApproveComment(id string) error
	DeleteComment(id string) error
}
