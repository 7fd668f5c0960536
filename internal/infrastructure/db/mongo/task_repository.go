package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evotodo/todo-backend/internal/core/domain"
	"github.com/evotodo/todo-backend/internal/core/ports"
)

const (
	collectionTasks    = "tasks"
	collectionCounters = "counters"
	taskSequenceName   = "task_id"
)

// TaskRepository implements ports.TaskRepository on MongoDB. Every by-id
// operation filters on {_id, user_id} in a single query — existence and
// ownership are decided atomically by the store, never by comparing fields
// after a fetch.
type TaskRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		col:      db.Collection(collectionTasks),
		counters: db.Collection(collectionCounters),
	}
}

// ownerFilter is the composite predicate used by every by-id operation. It
// cannot be constructed without both the id and the tenant.
func ownerFilter(tenantID string, id int64) bson.M {
	return bson.M{"_id": id, "user_id": tenantID}
}

// nextID atomically increments and returns the task id sequence. Sequence
// values are monotonically increasing and never reused, including after
// deletes.
func (r *TaskRepository) nextID(ctx context.Context) (int64, error) {
	res := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": taskSequenceName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("task id sequence: %w", err)
	}
	return doc.Seq, nil
}

// Create assigns a fresh id and inserts the task document.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	t.ID = id

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// FindByID returns domain.ErrTaskNotFound both for ids that do not exist and
// for ids owned by another tenant.
func (r *TaskRepository) FindByID(ctx context.Context, tenantID string, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOne(ctx, ownerFilter(tenantID, id)).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

// List returns all tasks owned by the tenant.
func (r *TaskRepository) List(ctx context.Context, tenantID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": tenantID})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := make([]*domain.Task, 0)
	for cur.Next(ctx) {
		var t domain.Task
		if err := cur.Decode(&t); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Replace overwrites all mutable content fields in one FindOneAndUpdate
// against the composite owner filter. user_id and created_at are not part of
// the update document.
func (r *TaskRepository) Replace(ctx context.Context, tenantID string, id int64, upd ports.TaskUpdate, now time.Time) (*domain.Task, error) {
	update := bson.M{"$set": bson.M{
		"title":        upd.Title,
		"description":  upd.Description,
		"due_date":     upd.DueDate,
		"due_date_end": upd.DueDateEnd,
		"priority":     upd.Priority,
		"category":     upd.Category,
		"updated_at":   now,
	}}
	return r.findOneAndUpdate(ctx, tenantID, id, update)
}

// SetCompleted flips the completion flag, atomically with the ownership check.
func (r *TaskRepository) SetCompleted(ctx context.Context, tenantID string, id int64, completed bool, now time.Time) (*domain.Task, error) {
	update := bson.M{"$set": bson.M{
		"completed":  completed,
		"updated_at": now,
	}}
	return r.findOneAndUpdate(ctx, tenantID, id, update)
}

func (r *TaskRepository) findOneAndUpdate(ctx context.Context, tenantID string, id int64, update bson.M) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOneAndUpdate(ctx, ownerFilter(tenantID, id), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &t, nil
}

// Delete removes the task matching both id and tenant. DeletedCount carries
// the only distinction the caller is allowed to see.
func (r *TaskRepository) Delete(ctx context.Context, tenantID string, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownerFilter(tenantID, id))
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount == 1, nil
}

// Stats aggregates the tenant's task counters server-side.
func (r *TaskRepository) Stats(ctx context.Context, tenantID string) (*domain.TaskStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": tenantID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{"$completed", 1, 0}}},
			"high_priority_pending": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$priority", string(domain.PriorityHigh)}},
					bson.M{"$eq": bson.A{"$completed", false}},
				}},
				1, 0,
			}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate task stats: %w", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Total               int64 `bson:"total"`
		Completed           int64 `bson:"completed"`
		HighPriorityPending int64 `bson:"high_priority_pending"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode task stats: %w", err)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("aggregate task stats: %w", err)
	}

	return &domain.TaskStats{
		Total:               row.Total,
		Completed:           row.Completed,
		Pending:             row.Total - row.Completed,
		HighPriorityPending: row.HighPriorityPending,
	}, nil
}

// EnsureIndexes creates the indexes every tenant-scoped query relies on.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "completed", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
