package mysql

import (
	"context"
	"database/sql"

	"coffee_finder/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, s domain.Store) (domain.Store, bool, error) {
	// score on the input is deliberately ignored; the insert always writes 0
	res, err := r.db.ExecContext(ctx, createStoreSQL,
		s.ID,
		s.Name,
		s.Address,
		s.Neighborhood,
		s.ImgURL,
	)
	if err != nil {
		return domain.Store{}, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Store{}, false, err
	}
	created := n == 1

	// read back the canonical row: on a duplicate this is the original record,
	// untouched by the attempted create
	out, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return domain.Store{}, false, err
	}
	return out, created, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (domain.Store, error) {
	row := r.db.QueryRowContext(ctx, getStoreSQL, id)

	var st domain.Store
	var address, neighborhood sql.NullString
	if err := row.Scan(&st.ID, &st.Name, &address, &neighborhood, &st.ImgURL, &st.Score); err != nil {
		if err == sql.ErrNoRows {
			return domain.Store{}, domain.ErrNotFound
		}
		return domain.Store{}, err
	}
	st.Address = address.String
	st.Neighborhood = neighborhood.String
	return st, nil
}

func (r *Repo) IncrementScore(ctx context.Context, id string) (domain.Store, error) {
	res, err := r.db.ExecContext(ctx, incrementScoreSQL, id)
	if err != nil {
		return domain.Store{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Store{}, err
	}
	if n == 0 {
		return domain.Store{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
