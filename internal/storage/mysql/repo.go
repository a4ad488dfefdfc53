package mysql

import (
	"context"
	"database/sql"
	"strings"

	"review_analyzer/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertReviews writes rs in one multi-row statement. Rows whose review_id
// already exists are overwritten.
func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*4) // 4 params per row
	for _, rv := range rs {
		values = append(values, "(?,?,?,?)")
		args = append(args,
			rv.ID,              // review_id
			rv.Body,            // body
			rv.Location,        // location
			rv.Timestamp.UTC(), // created_at
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListReviews returns every stored review, oldest first. Batches may be
// imported concurrently, so seq only breaks timestamp ties.
// It satisfies domain.ReviewSource.
func (r *Repo) ListReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.Body, &rv.Location, &rv.Timestamp); err != nil {
			return nil, err
		}
		rv.Timestamp = rv.Timestamp.UTC()
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countReviewsSQL).Scan(&n)
	return n, err
}
