package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-dev/folio/app/auth"
	"github.com/folio-dev/folio/app/cfg"
	"github.com/folio-dev/folio/app/database"
	"github.com/folio-dev/folio/app/taskreq"
)

const adminToken = "test-admin-token"

func setupTestConfig() {
	cfg.SetForTesting(&cfg.Cfg{
		Port:      "8080",
		BaseUrl:   "http://localhost",
		SiteTitle: "Test Site",
		Version:   "test",
	})
}

// In-memory repository fakes. IDs are assigned sequentially per store.

type fakeProfileRepo struct {
	profile *database.Profile
}

func (f *fakeProfileRepo) GetSiteProfile() (*database.Profile, error) {
	return f.profile, nil
}

func (f *fakeProfileRepo) GetByToken(token string) (*database.Profile, error) {
	if f.profile != nil && f.profile.APIToken == token {
		return f.profile, nil
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetAdminFlag(id string) (bool, error) {
	if f.profile != nil && f.profile.ID == id {
		return f.profile.IsAdmin, nil
	}
	return false, nil
}

func (f *fakeProfileRepo) UpsertSiteProfile(profile database.Profile) (string, error) {
	profile.ID = "profile-1"
	f.profile = &profile
	return profile.ID, nil
}

type fakeTimelineRepo struct {
	events []database.TimelineEvent
	nextID int
}

func (f *fakeTimelineRepo) GetAll() ([]database.TimelineEvent, error) {
	return append([]database.TimelineEvent{}, f.events...), nil
}

func (f *fakeTimelineRepo) GetByID(id string) (*database.TimelineEvent, error) {
	for _, event := range f.events {
		if event.ID == id {
			return &event, nil
		}
	}
	return nil, nil
}

func (f *fakeTimelineRepo) Create(event database.TimelineEvent) (string, error) {
	f.nextID++
	event.ID = fmt.Sprintf("event-%d", f.nextID)
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt
	f.events = append(f.events, event)
	return event.ID, nil
}

func (f *fakeTimelineRepo) Update(id string, event database.TimelineEvent) error {
	for i := range f.events {
		if f.events[i].ID == id {
			event.ID = id
			event.CreatedAt = f.events[i].CreatedAt
			event.UpdatedAt = time.Now().UTC()
			f.events[i] = event
			return nil
		}
	}
	return fmt.Errorf("failed to update timeline event %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeTimelineRepo) Delete(id string) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("failed to delete timeline event %s: %w", id, database.ErrNoRowsAffected)
}

type fakeScheduleRepo struct {
	schedules []database.Schedule
	nextID    int
}

func (f *fakeScheduleRepo) GetAll() ([]database.Schedule, error) {
	return append([]database.Schedule{}, f.schedules...), nil
}

func (f *fakeScheduleRepo) GetByID(id string) (*database.Schedule, error) {
	for _, schedule := range f.schedules {
		if schedule.ID == id {
			return &schedule, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) Create(schedule database.Schedule) (string, error) {
	f.nextID++
	schedule.ID = fmt.Sprintf("schedule-%d", f.nextID)
	f.schedules = append(f.schedules, schedule)
	return schedule.ID, nil
}

func (f *fakeScheduleRepo) Update(id string, schedule database.Schedule) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			schedule.ID = id
			f.schedules[i] = schedule
			return nil
		}
	}
	return fmt.Errorf("failed to update schedule %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeScheduleRepo) Delete(id string) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("failed to delete schedule %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeScheduleRepo) GetUpcoming(from, until time.Time) ([]database.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) GetRecurringEnded(before time.Time) ([]database.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) MarkReminded(id string, at time.Time) error {
	return nil
}

type fakeTaskRepo struct {
	taskRows []database.Task
	nextID   int
}

func (f *fakeTaskRepo) GetAll() ([]database.Task, error) {
	return append([]database.Task{}, f.taskRows...), nil
}

func (f *fakeTaskRepo) GetByID(id string) (*database.Task, error) {
	for _, task := range f.taskRows {
		if task.ID == id {
			return &task, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskRepo) Create(task database.Task) (string, error) {
	f.nextID++
	task.ID = fmt.Sprintf("task-%d", f.nextID)
	f.taskRows = append(f.taskRows, task)
	return task.ID, nil
}

func (f *fakeTaskRepo) Update(id string, task database.Task) error {
	for i := range f.taskRows {
		if f.taskRows[i].ID == id {
			task.ID = id
			f.taskRows[i] = task
			return nil
		}
	}
	return fmt.Errorf("failed to update task %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeTaskRepo) Delete(id string) error {
	for i := range f.taskRows {
		if f.taskRows[i].ID == id {
			f.taskRows = append(f.taskRows[:i], f.taskRows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("failed to delete task %s: %w", id, database.ErrNoRowsAffected)
}

type fakeContactRepo struct {
	messages []database.ContactMessage
	nextID   int
}

func (f *fakeContactRepo) GetAll() ([]database.ContactMessage, error) {
	return append([]database.ContactMessage{}, f.messages...), nil
}

func (f *fakeContactRepo) GetByID(id string) (*database.ContactMessage, error) {
	for _, message := range f.messages {
		if message.ID == id {
			return &message, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) Create(message database.ContactMessage) (string, error) {
	f.nextID++
	message.ID = fmt.Sprintf("message-%d", f.nextID)
	message.CreatedAt = time.Now().UTC()
	f.messages = append(f.messages, message)
	return message.ID, nil
}

func (f *fakeContactRepo) UpdateStatus(id string, status string) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("failed to update contact message %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeContactRepo) Delete(id string) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("failed to delete contact message %s: %w", id, database.ErrNoRowsAffected)
}

type fakeBlogRepo struct {
	posts    []database.BlogPost
	comments []database.BlogComment
	nextID   int
}

func (f *fakeBlogRepo) GetPublishedPosts() ([]database.BlogPost, error) {
	var published []database.BlogPost
	for _, post := range f.posts {
		if post.IsPublished {
			published = append(published, post)
		}
	}
	return published, nil
}

func (f *fakeBlogRepo) GetAllPosts() ([]database.BlogPost, error) {
	return append([]database.BlogPost{}, f.posts...), nil
}

func (f *fakeBlogRepo) GetPostBySlug(slug string) (*database.BlogPost, error) {
	for _, post := range f.posts {
		if post.Slug == slug {
			return &post, nil
		}
	}
	return nil, nil
}

func (f *fakeBlogRepo) GetPostByID(id string) (*database.BlogPost, error) {
	for _, post := range f.posts {
		if post.ID == id {
			return &post, nil
		}
	}
	return nil, nil
}

func (f *fakeBlogRepo) CreatePost(post database.BlogPost) (string, error) {
	f.nextID++
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	f.posts = append(f.posts, post)
	return post.ID, nil
}

func (f *fakeBlogRepo) UpdatePost(id string, post database.BlogPost) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			post.ID = id
			post.LikesCount = f.posts[i].LikesCount
			f.posts[i] = post
			return nil
		}
	}
	return fmt.Errorf("failed to update post %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeBlogRepo) DeletePost(id string) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("failed to delete post %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeBlogRepo) IncrementLikes(id string) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].LikesCount++
			return nil
		}
	}
	return fmt.Errorf("failed to like post %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeBlogRepo) GetApprovedComments(postID string) ([]database.BlogComment, error) {
	var approved []database.BlogComment
	for _, comment := range f.comments {
		if comment.BlogPostID == postID && comment.IsApproved {
			approved = append(approved, comment)
		}
	}
	return approved, nil
}

func (f *fakeBlogRepo) GetPendingComments() ([]database.BlogComment, error) {
	var pending []database.BlogComment
	for _, comment := range f.comments {
		if !comment.IsApproved {
			pending = append(pending, comment)
		}
	}
	return pending, nil
}

func (f *fakeBlogRepo) CreateComment(comment database.BlogComment) (string, error) {
	f.nextID++
	comment.ID = fmt.Sprintf("comment-%d", f.nextID)
	f.comments = append(f.comments, comment)
	return comment.ID, nil
}

func (f *fakeBlogRepo) ApproveComment(id string) error {
	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments[i].IsApproved = true
			return nil
		}
	}
	return fmt.Errorf("failed to approve comment %s: %w", id, database.ErrNoRowsAffected)
}

func (f *fakeBlogRepo) DeleteComment(id string) error {
	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("failed to delete comment %s: %w", id, database.ErrNoRowsAffected)
}

type testEnv struct {
	router   *gin.Engine
	profile  *fakeProfileRepo
	timeline *fakeTimelineRepo
	schedule *fakeScheduleRepo
	task     *fakeTaskRepo
	contact  *fakeContactRepo
	blog     *fakeBlogRepo
}

func setupTestEnv() *testEnv {
	setupTestConfig()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		profile: &fakeProfileRepo{
			profile: &database.Profile{
				ID:       "profile-1",
				Name:     "Site Owner",
				IsAdmin:  true,
				APIToken: adminToken,
			},
		},
		timeline: &fakeTimelineRepo{},
		schedule: &fakeScheduleRepo{},
		task:     &fakeTaskRepo{},
		contact:  &fakeContactRepo{},
		blog:     &fakeBlogRepo{},
	}

	handler := NewHandler(env.profile, env.timeline, env.schedule, env.task,
		env.contact, env.blog, auth.NewService(env.profile))

	router := gin.New()
	setupRoutes(router, handler)
	env.router = router
	return env
}

func (env *testEnv) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-API-Key", token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func TestAdminMutation_NoToken(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/api/timeline", "", map[string]interface{}{
		"type": "project", "title": "New project",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestAdminMutation_NonAdminToken(t *testing.T) {
	env := setupTestEnv()
	env.profile.profile.IsAdmin = false

	w := env.request("POST", "/api/timeline", adminToken, map[string]interface{}{
		"type": "project", "title": "New project",
	})

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}
}

func TestAdminMutation_BearerToken(t *testing.T) {
	env := setupTestEnv()

	encoded, _ := json.Marshal(map[string]interface{}{"type": "project", "title": "Bearer"})
	req := httptest.NewRequest("POST", "/api/timeline", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateTimelineEvent_ReturnsRefetchedCollection(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/api/timeline", adminToken, map[string]interface{}{
		"type":  "achievement",
		"title": "Shipped v1",
		"date":  "2026-08-01",
		"tags":  []string{"release"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	event, ok := body["event"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected event object in response")
	}
	if event["title"] != "Shipped v1" {
		t.Errorf("Expected refetched title, got %v", event["title"])
	}
	events, ok := body["events"].([]interface{})
	if !ok || len(events) != 1 {
		t.Errorf("Expected refetched collection with one event, got %v", body["events"])
	}
}

func TestCreateTimelineEvent_RejectsUnknownType(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/api/timeline", adminToken, map[string]interface{}{
		"type": "milestone", "title": "Bad type",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown event type, got %d", w.Code)
	}
}

func TestUpdateTimelineEvent_MissingRow(t *testing.T) {
	env := setupTestEnv()

	w := env.request("PUT", "/api/timeline/nope", adminToken, map[string]interface{}{
		"type": "project", "title": "Ghost",
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for zero rows affected, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "No rows affected" {
		t.Errorf("Expected distinct no-rows error, got %v", body["error"])
	}
}

func TestGetTimeline_Public(t *testing.T) {
	env := setupTestEnv()
	env.timeline.Create(database.TimelineEvent{Type: "commit", Title: "Initial commit"})

	w := env.request("GET", "/timeline", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total"] != float64(1) {
		t.Errorf("Expected total 1, got %v", body["total"])
	}
}

func TestSubmitContactMessage(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/contact", "", map[string]interface{}{
		"name":    "Alice",
		"email":   "alice@example.com",
		"subject": "Hello",
		"message": "Just saying hi",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.contact.messages) != 1 {
		t.Fatalf("Expected one stored message, got %d", len(env.contact.messages))
	}
	if env.contact.messages[0].Status != database.ContactStatusUnread {
		t.Errorf("Expected unread status, got %s", env.contact.messages[0].Status)
	}
}

func TestSubmitContactMessage_InvalidEmail(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/contact", "", map[string]interface{}{
		"name": "Alice", "email": "not-an-email", "message": "hi",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid email, got %d", w.Code)
	}
}

func TestSubmitTaskRequest_StoresConventionalFormat(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/contact/task-request", "", map[string]interface{}{
		"name":     "Bob",
		"email":    "bob@example.com",
		"title":    "Build a landing page",
		"priority": "high",
		"due_date": "2026-09-15",
		"notes":    "Mobile first",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	stored := env.contact.messages[0]
	if stored.Subject != "Task Request: Build a landing page" {
		t.Errorf("Unexpected subject: %s", stored.Subject)
	}
	if !taskreq.IsTaskRequest(stored.Subject, stored.Message) {
		t.Error("Expected stored message to classify as a task request")
	}
}

func TestConvertContactToTask(t *testing.T) {
	env := setupTestEnv()

	env.request("POST", "/contact/task-request", "", map[string]interface{}{
		"name":     "Bob",
		"email":    "bob@example.com",
		"title":    "Build a landing page",
		"priority": "high",
		"notes":    "Mobile first",
	})

	id := env.contact.messages[0].ID
	w := env.request("POST", "/api/contact/messages/"+id+"/convert-task", adminToken, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(env.task.taskRows) != 1 {
		t.Fatalf("Expected one task, got %d", len(env.task.taskRows))
	}
	task := env.task.taskRows[0]
	if task.Title != "Build a landing page" {
		t.Errorf("Unexpected task title: %s", task.Title)
	}
	if task.Priority != "high" {
		t.Errorf("Expected priority high, got %s", task.Priority)
	}
	if !strings.Contains(task.Description, "Notes: Mobile first") {
		t.Errorf("Expected notes appended to description, got %q", task.Description)
	}
	if env.contact.messages[0].Status != database.ContactStatusReplied {
		t.Errorf("Expected converted message marked replied, got %s", env.contact.messages[0].Status)
	}
}

func TestConvertContactToTask_PlainMessageRejected(t *testing.T) {
	env := setupTestEnv()

	env.request("POST", "/contact", "", map[string]interface{}{
		"name": "Alice", "email": "alice@example.com", "message": "hi",
	})

	id := env.contact.messages[0].ID
	w := env.request("POST", "/api/contact/messages/"+id+"/convert-task", adminToken, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for plain message, got %d", w.Code)
	}
}

func TestConvertContactToSchedule(t *testing.T) {
	env := setupTestEnv()

	env.request("POST", "/contact", "", map[string]interface{}{
		"name": "Alice", "email": "alice@example.com", "subject": "Coffee?", "message": "Let's meet",
	})

	id := env.contact.messages[0].ID
	w := env.request("POST", "/api/contact/messages/"+id+"/convert-schedule", adminToken, map[string]interface{}{
		"start_time": "2026-09-10 14:00",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(env.schedule.schedules) != 1 {
		t.Fatalf("Expected one schedule, got %d", len(env.schedule.schedules))
	}
	schedule := env.schedule.schedules[0]
	if schedule.Type != "meeting" {
		t.Errorf("Expected meeting type, got %s", schedule.Type)
	}
	if len(schedule.Attendees) != 1 || schedule.Attendees[0] != "Alice" {
		t.Errorf("Expected sender as attendee, got %v", schedule.Attendees)
	}
	if schedule.EndTime.Sub(*schedule.StartTime) != time.Hour {
		t.Error("Expected default one-hour duration")
	}
}

func TestConvertTaskToSchedule(t *testing.T) {
	env := setupTestEnv()
	env.task.Create(database.Task{Title: "Write docs", Category: "project", Tags: []string{"docs"}})

	w := env.request("POST", "/api/tasks/task-1/convert-schedule", adminToken, map[string]interface{}{
		"start_time": "2026-09-10 09:00",
		"end_time":   "2026-09-10 11:00",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	schedule := env.schedule.schedules[0]
	if schedule.Title != "Write docs" {
		t.Errorf("Expected task title copied, got %s", schedule.Title)
	}
	if schedule.Type != "task" {
		t.Errorf("Expected task type, got %s", schedule.Type)
	}
	if schedule.EndTime.Sub(*schedule.StartTime) != 2*time.Hour {
		t.Error("Expected explicit end time honored")
	}
}

func TestCreateTask_Defaults(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/api/tasks", adminToken, map[string]interface{}{
		"title": "Untriaged",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	task := env.task.taskRows[0]
	if task.Status != database.TaskStatusTodo {
		t.Errorf("Expected default status todo, got %s", task.Status)
	}
	if task.Priority != database.TaskPriorityMedium {
		t.Errorf("Expected default priority medium, got %s", task.Priority)
	}
}

func TestCreateTask_RejectsUnknownPriority(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/api/tasks", adminToken, map[string]interface{}{
		"title": "Bad", "priority": "urgent",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown priority, got %d", w.Code)
	}
}

func TestGetBlogPosts_PublishedOnly(t *testing.T) {
	env := setupTestEnv()
	env.blog.CreatePost(database.BlogPost{Slug: "live", Title: "Live", IsPublished: true})
	env.blog.CreatePost(database.BlogPost{Slug: "draft", Title: "Draft"})

	w := env.request("GET", "/blog/posts", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total"] != float64(1) {
		t.Errorf("Expected only the published post, got %v", body["total"])
	}
}

func TestGetBlogPost_DraftHidden(t *testing.T) {
	env := setupTestEnv()
	env.blog.CreatePost(database.BlogPost{Slug: "draft", Title: "Draft"})

	w := env.request("GET", "/blog/posts/draft", "", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for draft post, got %d", w.Code)
	}
}

func TestLikeBlogPost(t *testing.T) {
	env := setupTestEnv()
	env.blog.CreatePost(database.BlogPost{Slug: "live", Title: "Live", IsPublished: true})

	w := env.request("POST", "/blog/posts/live/like", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["likes_count"] != float64(1) {
		t.Errorf("Expected fresh likes count 1, got %v", body["likes_count"])
	}

	w = env.request("POST", "/blog/posts/live/like", "", nil)
	body = decodeBody(t, w)
	if body["likes_count"] != float64(2) {
		t.Errorf("Expected fresh likes count 2, got %v", body["likes_count"])
	}
}

func TestBlogComments_ThreadedAndModerated(t *testing.T) {
	env := setupTestEnv()
	env.blog.CreatePost(database.BlogPost{Slug: "live", Title: "Live", IsPublished: true})

	w := env.request("POST", "/blog/posts/live/comments", "", map[string]interface{}{
		"author_name": "Carol", "content": "First!",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Pending comments are invisible on the public surface.
	w = env.request("GET", "/blog/posts/live/comments", "", nil)
	body := decodeBody(t, w)
	if body["total"] != float64(0) {
		t.Errorf("Expected no visible comments before approval, got %v", body["total"])
	}

	parentID := env.blog.comments[0].ID
	if w := env.request("POST", "/api/blog/comments/"+parentID+"/approve", adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("Expected approval to succeed, got %d", w.Code)
	}

	env.request("POST", "/blog/posts/live/comments", "", map[string]interface{}{
		"author_name": "Dave", "content": "Reply", "parent_comment_id": parentID,
	})
	replyID := env.blog.comments[1].ID
	env.request("POST", "/api/blog/comments/"+replyID+"/approve", adminToken, nil)

	w = env.request("GET", "/blog/posts/live/comments", "", nil)
	body = decodeBody(t, w)
	comments, ok := body["comments"].([]interface{})
	if !ok || len(comments) != 1 {
		t.Fatalf("Expected one thread, got %v", body["comments"])
	}
	thread := comments[0].(map[string]interface{})
	replies, ok := thread["replies"].([]interface{})
	if !ok || len(replies) != 1 {
		t.Errorf("Expected one reply in thread, got %v", thread["replies"])
	}
}

func TestAdminCreateBlogPost_SlugDefaulted(t *testing.T) {
	env := setupTestEnv()

	w := env.request("POST", "/api/blog/posts", adminToken, map[string]interface{}{
		"title":        "Héllo, Wörld!",
		"content":      "body",
		"is_published": true,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	post := env.blog.posts[0]
	if post.Slug != "hello-world" {
		t.Errorf("Expected generated slug hello-world, got %s", post.Slug)
	}
	if post.PublishedAt == nil {
		t.Error("Expected published_at defaulted on publish")
	}
}

func TestAdminTokenRevocationTakesEffect(t *testing.T) {
	env := setupTestEnv()

	if w := env.request("GET", "/api/tasks", adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("Expected initial admin access, got %d", w.Code)
	}

	env.profile.profile.IsAdmin = false

	if w := env.request("GET", "/api/tasks", adminToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("Expected revoked admin to be denied, got %d", w.Code)
	}
}

func TestGetActivity_ShapeStable(t *testing.T) {
	env := setupTestEnv()
	env.timeline.Create(database.TimelineEvent{Type: "commit", Title: "c1"})

	w := env.request("GET", "/activity", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	recent, ok := body["recentActivity"].([]interface{})
	if !ok {
		t.Fatal("Expected recentActivity array")
	}
	if len(recent) != 365 {
		t.Errorf("Expected 365 grid days, got %d", len(recent))
	}
	if body["totalEvents"] != float64(1) {
		t.Errorf("Expected totalEvents 1, got %v", body["totalEvents"])
	}
}
