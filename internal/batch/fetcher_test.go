package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// fakeSource serves a collection of n numbered records per content type.
type fakeSource struct {
	n         int
	calls     atomic.Int32
	typeCalls atomic.Int32
	mu        sync.Mutex
	pages     []int
	fail      map[int]error
}

func (s *fakeSource) ListContentTypes(ctx context.Context) ([]record.ContentType, error) {
	s.typeCalls.Add(1)
	return []record.ContentType{
		{Key: "post", Name: "Posts", RestBase: "posts", Taxonomies: []string{"category", "post_tag"}},
		{Key: "product", Name: "Products", RestBase: "products"},
	}, nil
}

func (s *fakeSource) ListTaxonomies(ctx context.Context) ([]record.Taxonomy, error) {
	return []record.Taxonomy{
		{Key: "category", RestBase: "categories"},
		{Key: "post_tag", RestBase: "tags"},
		{Key: "product_cat", RestBase: "product_cat"},
	}, nil
}

func (s *fakeSource) ListRecords(ctx context.Context, restBase string, opts *client.ListOptions) (*client.RecordPage, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.pages = append(s.pages, opts.Page)
	s.mu.Unlock()
	if err := s.fail[opts.Page]; err != nil {
		return nil, err
	}

	start := (opts.Page - 1) * opts.PerPage
	var records []record.Record
	for i := start; i < min(start+opts.PerPage, s.n); i++ {
		records = append(records, record.New(record.F("id", i+1), record.F("slug", fmt.Sprintf("%s-%d", restBase, i+1))))
	}
	return &client.RecordPage{
		Records:    records,
		Page:       opts.Page,
		Total:      s.n,
		TotalPages: (s.n + opts.PerPage - 1) / opts.PerPage,
	}, nil
}

func newFetcher(src Source) *Fetcher {
	return New(src, Config{Workers: 3, PerPage: 10, MaxRecords: 500, Timeout: time.Second, CacheMaxItems: 8, CacheTTL: time.Minute})
}

func ids(b *Batch) []string {
	out := make([]string, len(b.Records))
	for i, r := range b.Records {
		out[i], _ = r.String("id")
	}
	return out
}

func TestFetch_SinglePage(t *testing.T) {
	src := &fakeSource{n: 25}
	b, err := newFetcher(src).Fetch(context.Background(), Request{ContentType: "post"})
	require.NoError(t, err)

	assert.Equal(t, "post", b.ContentType.Key)
	assert.Len(t, b.Records, 10)
	assert.Equal(t, 25, b.Total)
	assert.True(t, b.Truncated)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestFetch_FansOutPagesInOrder(t *testing.T) {
	src := &fakeSource{n: 250}
	b, err := newFetcher(src).Fetch(context.Background(), Request{ContentType: "posts", Limit: 230})
	require.NoError(t, err)

	require.Len(t, b.Records, 230)
	assert.Equal(t, 3, b.Pages)
	assert.Equal(t, int32(3), src.calls.Load())

	got := ids(b)
	assert.Equal(t, "1", got[0])
	assert.Equal(t, "101", got[100])
	assert.Equal(t, "230", got[229])
}

func TestFetch_StopsAtLastPage(t *testing.T) {
	src := &fakeSource{n: 120}
	b, err := newFetcher(src).Fetch(context.Background(), Request{ContentType: "post", Limit: 400})
	require.NoError(t, err)

	assert.Len(t, b.Records, 120)
	assert.Equal(t, 2, b.Pages)
	assert.False(t, b.Truncated)
}

func TestFetch_CapsAtMaxRecords(t *testing.T) {
	src := &fakeSource{n: 5000}
	b, err := newFetcher(src).Fetch(context.Background(), Request{ContentType: "post", Limit: 10000})
	require.NoError(t, err)
	assert.Len(t, b.Records, 500)
}

func TestFetch_Cached(t *testing.T) {
	src := &fakeSource{n: 5}
	f := newFetcher(src)

	_, err := f.Fetch(context.Background(), Request{ContentType: "post"})
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), Request{ContentType: "post"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, int32(1), src.typeCalls.Load())

	_, err = f.Fetch(context.Background(), Request{ContentType: "post", Fresh: true})
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())

	_, err = f.Fetch(context.Background(), Request{ContentType: "post", Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), src.calls.Load())
}

func TestFetch_EmptyCollection(t *testing.T) {
	b, err := newFetcher(&fakeSource{}).Fetch(context.Background(), Request{ContentType: "product"})
	require.NoError(t, err)
	assert.Empty(t, b.Records)
	assert.False(t, b.Truncated)
}

func TestFetch_PageError(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{n: 300, fail: map[int]error{2: boom}}
	_, err := newFetcher(src).Fetch(context.Background(), Request{ContentType: "post", Limit: 300})
	assert.ErrorIs(t, err, boom)
}

func TestResolveContentType(t *testing.T) {
	f := newFetcher(&fakeSource{})

	ct, err := f.ResolveContentType(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, "product", ct.Key)

	_, err = f.ResolveContentType(context.Background(), "widgets")
	assert.ErrorIs(t, err, ErrUnknownContentType)
}

func TestTaxonomyBases(t *testing.T) {
	f := newFetcher(&fakeSource{})
	ct, err := f.ResolveContentType(context.Background(), "post")
	require.NoError(t, err)

	bases, err := f.TaxonomyBases(context.Background(), ct)
	require.NoError(t, err)
	assert.Equal(t, []string{"categories", "tags"}, bases)
}

func TestCacheKey_FilterOrderIndependent(t *testing.T) {
	ct := record.ContentType{Key: "post", RestBase: "posts"}
	a := cacheKey(ct, 10, Request{Filters: map[string]string{"a": "1", "b": "2"}})
	b := cacheKey(ct, 10, Request{Filters: map[string]string{"b": "2", "a": "1"}})
	assert.Equal(t, a, b)
}

func TestCacheKey_EscapesSeparators(t *testing.T) {
	ct := record.ContentType{Key: "post", RestBase: "posts"}
	a := cacheKey(ct, 10, Request{Status: "publish", Search: "a|b"})
	b := cacheKey(ct, 10, Request{Status: "publish|a", Search: "b"})
	assert.NotEqual(t, a, b)

	c := cacheKey(ct, 10, Request{Filters: map[string]string{"author": "1&status=draft"}})
	d := cacheKey(ct, 10, Request{Status: "draft", Filters: map[string]string{"author": "1"}})
	assert.NotEqual(t, c, d)
}

// gatedSource blocks record listing until release is closed.
type gatedSource struct {
	fakeSource
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gatedSource) ListRecords(ctx context.Context, restBase string, opts *client.ListOptions) (*client.RecordPage, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
	}
	return s.fakeSource.ListRecords(ctx, restBase, opts)
}

func TestFetch_SharedFetchSurvivesFirstCallerCancel(t *testing.T) {
	src := &gatedSource{fakeSource: fakeSource{n: 5}, started: make(chan struct{}), release: make(chan struct{})}
	f := newFetcher(src)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := f.Fetch(ctxA, Request{ContentType: "post"})
		errA <- err
	}()
	<-src.started

	type result struct {
		b   *Batch
		err error
	}
	resB := make(chan result, 1)
	go func() {
		b, err := f.Fetch(context.Background(), Request{ContentType: "post"})
		resB <- result{b, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(src.release)
	got := <-resB
	require.NoError(t, got.err)
	assert.Len(t, got.b.Records, 5)
	assert.Equal(t, int32(1), src.calls.Load(), "second caller joins the in-flight fetch")
}
