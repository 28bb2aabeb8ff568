package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todoview/api/transport"
	"github.com/fastygo/todoview/domain"
	appLogger "github.com/fastygo/todoview/pkg/logger"
	"github.com/fastygo/todoview/repository"
)

const todosPath = "/api/todos"

type todoRepository struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewTodoRepository returns a TodoRepository talking to the REST todo API at baseURL.
func NewTodoRepository(client *fasthttp.Client, baseURL string, timeout time.Duration, logger *zap.Logger) repository.TodoRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &todoRepository{
		client:  client,
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	if err := r.do(ctx, fasthttp.MethodGet, todosPath, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *todoRepository) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	body := transport.NewTodoRequest(rec)
	body.ID = nil

	var created domain.Record
	if err := r.do(ctx, fasthttp.MethodPost, todosPath, body, &created); err != nil {
		return domain.Record{}, err
	}
	return created, nil
}

func (r *todoRepository) Update(ctx context.Context, id int, rec domain.Record) (domain.Record, error) {
	var updated domain.Record
	if err := r.do(ctx, fasthttp.MethodPut, todoPath(id), transport.NewTodoRequest(rec), &updated); err != nil {
		return domain.Record{}, err
	}
	return updated, nil
}

func (r *todoRepository) Delete(ctx context.Context, id int) error {
	return r.do(ctx, fasthttp.MethodDelete, todoPath(id), nil, nil)
}

func (r *todoRepository) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	reqID := appLogger.RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	log := r.logger.With(zap.String("request_id", reqID), zap.String("method", method), zap.String("path", path))

	req.Header.SetMethod(method)
	req.SetRequestURI(r.baseURL + path)
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(r.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := r.client.DoDeadline(req, resp, deadline); err != nil {
		log.Warn("todo api request failed", zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "todo api unreachable", err)
	}

	status := resp.StatusCode()
	log.Debug("todo api response", zap.Int("status", status))
	switch {
	case status == http.StatusNotFound:
		return domain.ErrTodoNotFound
	case status < 200 || status > 299:
		return domain.NewError(domain.ErrCodeInternal, fmt.Sprintf("todo api returned %d", status))
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		log.Warn("todo api sent malformed body", zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "decode todo api response", err)
	}
	return nil
}

func todoPath(id int) string {
	return todosPath + "/" + strconv.Itoa(id)
}
