package repository

import (
	"context"

	"github.com/fastygo/todoview/domain"
)

// TodoRepository is the persistence collaborator. It owns id assignment;
// every record it returns carries the id the store will key on.
type TodoRepository interface {
	List(ctx context.Context) ([]domain.Record, error)
	Create(ctx context.Context, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, id int, rec domain.Record) (domain.Record, error)
	Delete(ctx context.Context, id int) error
}
