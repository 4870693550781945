package avatar

import (
	"context"
	"fmt"
	"testing"
)

type fakeFetcher struct {
	calls int
	data  []byte
	ctype string
	fail  bool
}

func (f *fakeFetcher) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	f.calls++
	if f.fail {
		return nil, "", fmt.Errorf("image fetch returned status 500")
	}
	return f.data, f.ctype, nil
}

func TestCache_WriteOnce(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte{1, 2, 3}, ctype: "image/png"}
	cache := NewCache(fetcher, nil, 16)

	first := cache.Resolve(context.Background(), "w-1", "https://img.test/u-1.jpg")
	second := cache.Resolve(context.Background(), "w-1", "https://img.test/u-1.jpg")

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if first != second {
		t.Errorf("second Resolve() = %q, want first result %q", second, first)
	}
	if first != DataURI("image/png", []byte{1, 2, 3}) {
		t.Errorf("Resolve() = %q, want data URI", first)
	}
}

func TestCache_NegativeResultCached(t *testing.T) {
	fetcher := &fakeFetcher{fail: true}
	cache := NewCache(fetcher, nil, 16)

	first := cache.Resolve(context.Background(), "w-1", "https://img.test/u-1.jpg")
	second := cache.Resolve(context.Background(), "w-1", "https://img.test/u-1.jpg")

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times after failure, want 1", fetcher.calls)
	}
	if first != "" || second != "" {
		t.Errorf("failed Resolve() = (%q, %q), want empty entries", first, second)
	}

	if data, ok := cache.Get("w-1"); !ok || data != "" {
		t.Errorf("Get() after failed fetch = (%q, %v), want (\"\", true)", data, ok)
	}
}

func TestCache_DistinctIDs(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte{7}, ctype: "image/jpeg"}
	cache := NewCache(fetcher, nil, 16)

	for i := 0; i < 3; i++ {
		cache.Resolve(context.Background(), fmt.Sprintf("w-%d", i), "https://img.test/u.jpg")
	}

	if fetcher.calls != 3 {
		t.Errorf("fetcher called %d times for 3 distinct ids, want 3", fetcher.calls)
	}
	if cache.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cache.Len())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte{7}, ctype: "image/jpeg"}
	cache := NewCache(fetcher, nil, 2)

	cache.Resolve(context.Background(), "w-0", "https://img.test/u.jpg")
	cache.Resolve(context.Background(), "w-1", "https://img.test/u.jpg")
	cache.Resolve(context.Background(), "w-2", "https://img.test/u.jpg")

	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after eviction", cache.Len())
	}
	if _, ok := cache.Get("w-0"); ok {
		t.Error("oldest entry w-0 should have been evicted")
	}
	if _, ok := cache.Get("w-2"); !ok {
		t.Error("newest entry w-2 should be present")
	}
}

func TestDataURI(t *testing.T) {
	got := DataURI("image/png", []byte("abc"))
	want := "data:image/png;base64,YWJj"
	if got != want {
		t.Errorf("DataURI() = %q, want %q", got, want)
	}
}
