package emiascache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/segmentio/kafka-go"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakeCache struct {
	entries map[string]string
	saveErr error
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Save(ctx context.Context, key, value string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.entries[key], nil
}

func TestHandleMessageCachesRawBytes(t *testing.T) {
	cache := newFakeCache()
	listener := NewListener(cache)

	raw := `{"id":"id-1","patientId":100,"doctorId":200,"isConfirmed":false,"analysisTime":"2024-01-15T09:00:00","results":{"hb":"12.5"}}`
	err := listener.HandleMessage(context.Background(), kafka.Message{Value: []byte(raw)})
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	stored, ok := cache.entries["analysis:id-1"]
	if !ok {
		t.Fatal("expected entry under the analysis: prefix")
	}
	if stored != raw {
		t.Fatalf("expected the raw message bytes cached verbatim, got %q", stored)
	}
}

func TestHandleMessageDropsUnparseablePayload(t *testing.T) {
	cache := newFakeCache()
	listener := NewListener(cache)

	err := listener.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	if err != nil {
		t.Fatalf("unparseable payloads are dropped, not errors: %v", err)
	}
	if len(cache.entries) != 0 {
		t.Fatal("nothing may be cached for a bad payload")
	}
}

func TestHandleMessageDropsMissingID(t *testing.T) {
	cache := newFakeCache()
	listener := NewListener(cache)

	err := listener.HandleMessage(context.Background(), kafka.Message{Value: []byte(`{"patientId":100}`)})
	if err != nil {
		t.Fatalf("payloads without id are dropped, not errors: %v", err)
	}
	if len(cache.entries) != 0 {
		t.Fatal("nothing may be cached without an id")
	}
}

func TestHandleMessageSurfacesCacheFailure(t *testing.T) {
	cache := newFakeCache()
	cache.saveErr = errors.New("redis down")
	listener := NewListener(cache)

	err := listener.HandleMessage(context.Background(), kafka.Message{Value: []byte(`{"id":"id-1"}`)})
	if err == nil {
		t.Fatal("a failing cache write must surface")
	}
}

func TestGetByIDHit(t *testing.T) {
	cache := newFakeCache()
	cache.entries["analysis:id-1"] = `{"id":"id-1","patientId":100,"results":{"hb":"12.5"}}`

	svc := NewService(cache)
	result, err := svc.GetByID(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if result == nil || result.PatientID != 100 || result.Results["hb"] != "12.5" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestGetByIDMissReturnsNil(t *testing.T) {
	svc := NewService(newFakeCache())

	result, err := svc.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("a miss must not be an error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil on miss, got %+v", result)
	}
}

func TestGetByIDCorruptEntryTreatedAsMiss(t *testing.T) {
	cache := newFakeCache()
	cache.entries["analysis:id-1"] = "{broken"

	svc := NewService(cache)
	result, err := svc.GetByID(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("corrupt entries are a miss, not an error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil for a corrupt entry, got %+v", result)
	}
}

func TestGetByIDDriverErrorSurfaces(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")

	svc := NewService(cache)
	if _, err := svc.GetByID(context.Background(), "id-1"); err == nil {
		t.Fatal("a driver error must surface")
	}
}

func TestCacheKeyPrefix(t *testing.T) {
	if CacheKey("abc") != "analysis:abc" {
		t.Fatalf("unexpected key: %s", CacheKey("abc"))
	}
}
