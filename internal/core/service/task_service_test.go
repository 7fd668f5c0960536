package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/evotodo/todo-backend/internal/core/domain"
	"github.com/evotodo/todo-backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type taskKey struct {
	tenantID string
	id       int64
}

type stubTaskRepo struct {
	tasks     map[taskKey]*domain.Task
	nextID    int64
	createErr error // if set, Create returns this error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[taskKey]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	t.ID = r.nextID
	clone := *t
	r.tasks[taskKey{t.UserID, t.ID}] = &clone
	return nil
}

// lookup mirrors the real Mongo repository: the keyed access requires both
// the tenant and the id, so a cross-tenant probe and a nonexistent id are the
// same miss.
func (r *stubTaskRepo) lookup(tenantID string, id int64) (*domain.Task, bool) {
	t, ok := r.tasks[taskKey{tenantID, id}]
	return t, ok
}

func (r *stubTaskRepo) FindByID(_ context.Context, tenantID string, id int64) (*domain.Task, error) {
	t, ok := r.lookup(tenantID, id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, tenantID string) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0)
	for k, t := range r.tasks {
		if k.tenantID == tenantID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Replace(_ context.Context, tenantID string, id int64, upd ports.TaskUpdate, now time.Time) (*domain.Task, error) {
	t, ok := r.lookup(tenantID, id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Title = upd.Title
	t.Description = upd.Description
	t.DueDate = upd.DueDate
	t.DueDateEnd = upd.DueDateEnd
	t.Priority = upd.Priority
	t.Category = upd.Category
	t.UpdatedAt = now
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) SetCompleted(_ context.Context, tenantID string, id int64, completed bool, now time.Time) (*domain.Task, error) {
	t, ok := r.lookup(tenantID, id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Completed = completed
	t.UpdatedAt = now
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, tenantID string, id int64) (bool, error) {
	if _, ok := r.lookup(tenantID, id); !ok {
		return false, nil
	}
	delete(r.tasks, taskKey{tenantID, id})
	return true, nil
}

func (r *stubTaskRepo) Stats(_ context.Context, tenantID string) (*domain.TaskStats, error) {
	stats := &domain.TaskStats{}
	for k, t := range r.tasks {
		if k.tenantID != tenantID {
			continue
		}
		stats.Total++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if t.Priority == domain.PriorityHigh {
				stats.HighPriorityPending++
			}
		}
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Stub cache and recorder
// ---------------------------------------------------------------------------

type stubStatsCache struct {
	cached      map[string]*domain.TaskStats
	invalidated []string
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{cached: make(map[string]*domain.TaskStats)}
}

func (c *stubStatsCache) Get(_ context.Context, tenantID string) (*domain.TaskStats, error) {
	return c.cached[tenantID], nil
}

func (c *stubStatsCache) Set(_ context.Context, tenantID string, stats *domain.TaskStats) error {
	c.cached[tenantID] = stats
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context, tenantID string) error {
	delete(c.cached, tenantID)
	c.invalidated = append(c.invalidated, tenantID)
	return nil
}

type stubRecorder struct {
	events []domain.ActivityEvent
}

func (r *stubRecorder) Record(e domain.ActivityEvent) {
	r.events = append(r.events, e)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newTestService() (*TaskService, *stubTaskRepo, *stubStatsCache, *stubRecorder) {
	repo := newStubTaskRepo()
	cache := newStubStatsCache()
	recorder := &stubRecorder{}
	return NewTaskService(repo, cache, recorder, zerolog.Nop()), repo, cache, recorder
}

func TestCreate_SetsTenantFromArgument(t *testing.T) {
	svc, _, _, _ := newTestService()

	task, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.UserID != "alice" {
		t.Fatalf("user_id = %q, want alice", task.UserID)
	}
	if task.Completed {
		t.Fatalf("new task must start incomplete")
	}
	if task.ID == 0 {
		t.Fatalf("id not assigned")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}
}

func TestCreateGet_RoundTrip(t *testing.T) {
	svc, _, _, _ := newTestService()
	due := time.Now().UTC().Add(48 * time.Hour)

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:       "Buy milk",
		Description: "two litres",
		DueDate:     &due,
		Priority:    domain.PriorityHigh,
		Category:    "Shopping",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(context.Background(), "alice", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Buy milk" || got.Description != "two litres" || got.Priority != domain.PriorityHigh || got.Category != "Shopping" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.UserID != created.UserID || got.ID != created.ID {
		t.Fatalf("identity fields changed in round trip")
	}
}

func TestGet_CrossTenantIndistinguishableFromAbsent(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "secret"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, crossErr := svc.Get(context.Background(), "bob", created.ID)
	_, absentErr := svc.Get(context.Background(), "bob", 99999)

	if !errors.Is(crossErr, domain.ErrTaskNotFound) {
		t.Fatalf("cross-tenant get: got %v, want ErrTaskNotFound", crossErr)
	}
	if !errors.Is(absentErr, domain.ErrTaskNotFound) {
		t.Fatalf("absent get: got %v, want ErrTaskNotFound", absentErr)
	}
	if crossErr.Error() != absentErr.Error() {
		t.Fatalf("cross-tenant and absent errors differ: %q vs %q", crossErr, absentErr)
	}
}

func TestList_EmptyForStranger(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := svc.List(context.Background(), "bob")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil {
		t.Fatalf("list must return an empty slice, not nil")
	}
	if len(tasks) != 0 {
		t.Fatalf("bob sees %d tasks, want 0", len(tasks))
	}
}

func TestSetCompleted_RefreshesUpdatedAt(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	patched, err := svc.SetCompleted(context.Background(), "alice", created.ID, true)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !patched.Completed {
		t.Fatalf("completed not set")
	}
	if !patched.UpdatedAt.After(created.CreatedAt) {
		t.Fatalf("updated_at (%v) not after created_at (%v)", patched.UpdatedAt, created.CreatedAt)
	}
}

func TestUpdate_PreservesTenantAndCreatedAt(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), "alice", created.ID, ports.UpdateTaskInput{
		Title:    "Buy oat milk",
		Priority: domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Buy oat milk" {
		t.Fatalf("title = %q", updated.Title)
	}
	if updated.UserID != "alice" {
		t.Fatalf("tenant changed on update: %q", updated.UserID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed on update")
	}
}

func TestUpdate_CrossTenantNotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), "bob", created.ID, ports.UpdateTaskInput{Title: "hijacked"}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("cross-tenant update: got %v, want ErrTaskNotFound", err)
	}

	// The attempt must leave alice's task untouched.
	got, _ := repo.FindByID(context.Background(), "alice", created.ID)
	if got.Title != "Buy milk" {
		t.Fatalf("cross-tenant update mutated the task: %q", got.Title)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	svc, _, _, _ := newTestService()

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "alice", created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "alice", created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("second delete: got %v, want ErrTaskNotFound", err)
	}
}

func TestDelete_CrossTenantNotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "bob", created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("cross-tenant delete: got %v, want ErrTaskNotFound", err)
	}
	if _, err := repo.FindByID(context.Background(), "alice", created.ID); err != nil {
		t.Fatalf("alice's task was removed by bob's delete attempt")
	}
}

func TestStats_CacheHitSkipsRepository(t *testing.T) {
	svc, repo, cache, _ := newTestService()
	cache.cached["alice"] = &domain.TaskStats{Total: 7, Completed: 3, Pending: 4}

	// Poison the repository so any read through it fails the test.
	repo.createErr = errors.New("unused")

	stats, err := svc.Stats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 7 || stats.Pending != 4 {
		t.Fatalf("stats = %+v, want cached values", stats)
	}
}

func TestStats_MissPopulatesCache(t *testing.T) {
	svc, _, cache, _ := newTestService()

	if _, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "a", Priority: domain.PriorityHigh}); err != nil {
		t.Fatalf("create: %v", err)
	}

	stats, err := svc.Stats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 1 || stats.HighPriorityPending != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if cache.cached["alice"] == nil {
		t.Fatalf("cache not populated on miss")
	}
}

func TestMutations_InvalidateCacheAndRecordActivity(t *testing.T) {
	svc, _, cache, recorder := newTestService()

	created, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetCompleted(context.Background(), "alice", created.ID, true); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if err := svc.Delete(context.Background(), "alice", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(cache.invalidated) != 3 {
		t.Fatalf("invalidations = %d, want 3", len(cache.invalidated))
	}

	want := []domain.ActivityAction{domain.ActionCreated, domain.ActionCompleted, domain.ActionDeleted}
	if len(recorder.events) != len(want) {
		t.Fatalf("events = %d, want %d", len(recorder.events), len(want))
	}
	for i, action := range want {
		if recorder.events[i].Action != action {
			t.Fatalf("event[%d].Action = %q, want %q", i, recorder.events[i].Action, action)
		}
		if recorder.events[i].UserID != "alice" {
			t.Fatalf("event[%d] tenant = %q", i, recorder.events[i].UserID)
		}
	}
}

func TestCreate_RepositoryErrorPropagates(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.createErr = errors.New("store unavailable")

	if _, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "x"}); err == nil {
		t.Fatalf("expected error")
	}
}
