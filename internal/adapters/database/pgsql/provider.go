// Package pgsql implements the repository ports on PostgreSQL via pgx.
package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemberRepo:      NewMemberRepository(db),
		BusinessRepo:    NewBusinessRepository(db),
		BookRepo:        NewBookRepository(db),
		TransactionRepo: NewTransactionRepository(db),
		ActivityRepo:    NewActivityRepository(db),
	}
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
