package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/go-cmp/cmp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/fastygo/todoview/api/transport"
	"github.com/fastygo/todoview/domain"
	appLogger "github.com/fastygo/todoview/pkg/logger"
	"github.com/fastygo/todoview/repository"
)

// fakeAPI mimics the todo API: it assigns ids and echoes stored records.
type fakeAPI struct {
	mu         sync.Mutex
	listBody   string
	stored     map[int]transport.TodoRequest
	nextID     int
	requestIDs []string
	failWith   int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{stored: make(map[int]transport.TodoRequest), nextID: 1}
}

func (f *fakeAPI) handler() fasthttp.RequestHandler {
	r := router.New()
	r.GET("/api/todos", f.list)
	r.POST("/api/todos", f.create)
	r.PUT("/api/todos/{id}", f.update)
	r.DELETE("/api/todos/{id}", f.delete)

	return func(ctx *fasthttp.RequestCtx) {
		f.mu.Lock()
		f.requestIDs = append(f.requestIDs, string(ctx.Request.Header.Peek("X-Request-ID")))
		fail := f.failWith
		f.mu.Unlock()
		if fail != 0 {
			ctx.SetStatusCode(fail)
			return
		}
		r.Handler(ctx)
	}
}

func (f *fakeAPI) list(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetBodyString(f.listBody)
}

func (f *fakeAPI) create(ctx *fasthttp.RequestCtx) {
	var req transport.TodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ID != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	req.ID = &id
	f.stored[id] = req
	f.mu.Unlock()
	f.respond(ctx, fasthttp.StatusCreated, req)
}

func (f *fakeAPI) update(ctx *fasthttp.RequestCtx) {
	id, _ := strconv.Atoi(ctx.UserValue("id").(string))
	var req transport.TodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stored[id]; !ok {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	req.ID = &id
	f.stored[id] = req
	f.respond(ctx, fasthttp.StatusOK, req)
}

func (f *fakeAPI) delete(ctx *fasthttp.RequestCtx) {
	id, _ := strconv.Atoi(ctx.UserValue("id").(string))
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stored[id]; !ok {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	delete(f.stored, id)
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (f *fakeAPI) respond(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	payload, _ := json.Marshal(body)
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(payload)
}

func (f *fakeAPI) seenRequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

func serve(t *testing.T, api *fakeAPI) repository.TodoRepository {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: api.handler()}
	go srv.Serve(ln)
	t.Cleanup(func() { ln.Close() })

	client := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) { return ln.Dial() },
	}
	return NewTodoRepository(client, "http://todos.test", time.Second, nil)
}

func TestList_DecodesMixedDateFields(t *testing.T) {
	api := newFakeAPI()
	api.listBody = `[
		{"id": 1, "title": "rent", "day": "01", "month": "4", "year": "2024", "completed": false},
		{"id": 2, "title": "taxes", "day": null, "month": 5, "year": 2024, "completed": true, "description": "file early"},
		{"id": 3, "title": "someday", "month": "", "year": 0, "completed": false}
	]`
	repo := serve(t, api)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	want := []domain.Record{
		{ID: domain.IntPtr(1), Title: "rent", Day: "01", Month: "4", Year: "2024"},
		{ID: domain.IntPtr(2), Title: "taxes", Month: "5", Year: "2024", Completed: true, Description: "file early"},
		{ID: domain.IntPtr(3), Title: "someday"},
	}
	if !cmp.Equal(want, got) {
		t.Fatalf("List() returned wrong records\n%s", cmp.Diff(want, got))
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	api := newFakeAPI()
	repo := serve(t, api)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Record{ID: domain.IntPtr(99), Title: "walk dog", Month: "6", Year: "2025"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.ID == nil || *created.ID != 1 {
		t.Fatalf("Create() should return the API assigned id 1; got %v", created.ID)
	}
	if created.Month != "6" || created.Year != "2025" {
		t.Errorf("Create() returned date %s/%s", created.Month, created.Year)
	}

	rec := created
	rec.Completed = true
	updated, err := repo.Update(ctx, 1, rec)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if !updated.Completed {
		t.Errorf("Update() should return the completed record")
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := repo.Delete(ctx, 1); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("second Delete() should fail with ErrTodoNotFound; got %v", err)
	}
	if _, err := repo.Update(ctx, 1, rec); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("Update() of a deleted todo should fail with ErrTodoNotFound; got %v", err)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	api := newFakeAPI()
	api.listBody = `[]`
	repo := serve(t, api)

	ctx := appLogger.ContextWithRequestID(context.Background(), "req-123")
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	ids := api.seenRequestIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 requests; got %d", len(ids))
	}
	if ids[0] != "req-123" {
		t.Errorf("request id from context should be sent; got %q", ids[0])
	}
	if ids[1] == "" {
		t.Errorf("a fresh request id should be generated when the context has none")
	}
}

func TestServerErrorIsInternal(t *testing.T) {
	api := newFakeAPI()
	api.failWith = fasthttp.StatusServiceUnavailable
	repo := serve(t, api)

	_, err := repo.List(context.Background())
	if !domain.IsDomainError(err, domain.ErrCodeInternal) {
		t.Fatalf("List() should fail with an INTERNAL error; got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	repo := serve(t, newFakeAPI())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("List() with a canceled context should return context.Canceled; got %v", err)
	}
}
