package Store

import (
	"Compass/Models"
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	tasksCollection  = "tasks"
	eventsCollection = "events"
	memosCollection  = "memos"
)

// FirestoreStore is the real document store.
type FirestoreStore struct {
	Client *firestore.Client
}

// Connect initializes Firestore from FIREBASE_CREDENTIALS (inline JSON),
// FIREBASE_CREDENTIALS_PATH, or application default credentials. A missing
// configuration is an error the caller handles by running in demo mode, not
// a startup failure.
func Connect(ctx context.Context) (*FirestoreStore, error) {
	var opts []option.ClientOption
	switch {
	case os.Getenv("FIREBASE_CREDENTIALS") != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(os.Getenv("FIREBASE_CREDENTIALS"))))
	case os.Getenv("FIREBASE_CREDENTIALS_PATH") != "":
		opts = append(opts, option.WithCredentialsFile(os.Getenv("FIREBASE_CREDENTIALS_PATH")))
	case os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "":
		// firebase picks these up on its own
	default:
		return nil, errors.New("no firestore credentials configured")
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}
	log.Println("Firestore connected")
	return &FirestoreStore{Client: client}, nil
}

func collectTasks(iter *firestore.DocumentIterator) ([]Models.Task, error) {
	defer iter.Stop()
	var tasks []Models.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var t Models.Task
		if err := doc.DataTo(&t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func collectEvents(iter *firestore.DocumentIterator) ([]Models.Event, error) {
	defer iter.Stop()
	var events []Models.Event
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var ev Models.Event
		if err := doc.DataTo(&ev); err != nil {
			return nil, err
		}
		if ev.ID == "" {
			ev.ID = doc.Ref.ID
		}
		events = append(events, ev)
	}
	return events, nil
}

func (s *FirestoreStore) GetTasks(ctx context.Context, uid string) ([]Models.Task, error) {
	iter := s.Client.Collection(tasksCollection).
		Where("uid", "==", uid).
		Where("is_deleted", "==", false).
		Documents(ctx)
	return collectTasks(iter)
}

func (s *FirestoreStore) GetOpenTasks(ctx context.Context, uid string) ([]Models.Task, error) {
	iter := s.Client.Collection(tasksCollection).
		Where("uid", "==", uid).
		Where("is_deleted", "==", false).
		Where("is_completed", "==", false).
		Documents(ctx)
	return collectTasks(iter)
}

func (s *FirestoreStore) CreateTask(ctx context.Context, task Models.Task) error {
	_, err := s.Client.Collection(tasksCollection).Doc(task.ID).Set(ctx, task)
	return err
}

func (s *FirestoreStore) UpdateTask(ctx context.Context, id string, updates map[string]interface{}) error {
	fields := make([]firestore.Update, 0, len(updates))
	for field, value := range updates {
		fields = append(fields, firestore.Update{Path: field, Value: value})
	}
	_, err := s.Client.Collection(tasksCollection).Doc(id).Update(ctx, fields)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *FirestoreStore) GetEvents(ctx context.Context) ([]Models.Event, error) {
	return collectEvents(s.Client.Collection(eventsCollection).Documents(ctx))
}

func (s *FirestoreStore) GetEventsFrom(ctx context.Context, date string) ([]Models.Event, error) {
	// String range comparison works for canonical YYYY-MM-DD dates.
	iter := s.Client.Collection(eventsCollection).
		Where("date", ">=", date).
		Documents(ctx)
	return collectEvents(iter)
}

// SaveEvents writes the batch with generated document IDs and echoes each ID
// back into the stored payload, so later deletes can match on either.
func (s *FirestoreStore) SaveEvents(ctx context.Context, events []Models.Event) ([]Models.Event, error) {
	batch := s.Client.Batch()
	col := s.Client.Collection(eventsCollection)
	saved := make([]Models.Event, 0, len(events))
	for _, ev := range events {
		ref := col.NewDoc()
		ev.ID = ref.ID
		batch.Set(ref, ev)
		saved = append(saved, ev)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *FirestoreStore) DeleteEvent(ctx context.Context, id string) error {
	_, err := s.Client.Collection(eventsCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) GetMemos(ctx context.Context, uid string) ([]Models.MemoItem, error) {
	doc, err := s.Client.Collection(memosCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []Models.MemoItem{}, nil
		}
		return nil, err
	}
	var list Models.MemoList
	if err := doc.DataTo(&list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (s *FirestoreStore) SaveMemos(ctx context.Context, uid string, items []Models.MemoItem) error {
	_, err := s.Client.Collection(memosCollection).Doc(uid).Set(ctx, Models.MemoList{Items: items})
	return err
}
