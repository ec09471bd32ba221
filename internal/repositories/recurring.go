package repositories

import (
	"context"

	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"sayplan.app/pkg/eventstore"
)

type RecurringEventRepository struct {
	db postgres.DB
}

func (repo *RecurringEventRepository) Create(
	ctx context.Context,
	rule eventstore.RecurringRule,
	userID string,
) (*eventstore.RecurringRule, error) {
	query := `
		INSERT INTO sayplan.recurring_events (id, user_id, rule,
		start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := repo.db.QueryRow(
		ctx,
		query,
		rule.ID,
		userID,
		rule.Rule,
		rule.StartDate,
		rule.EndDate,
	).Scan(&rule.ID)

	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return &rule, nil
}

func (repo *RecurringEventRepository) GetByID(
	ctx context.Context,
	id string,
	userID string,
) (*eventstore.RecurringRule, error) {
	query := `
		SELECT rule, start_date, end_date
		FROM sayplan.recurring_events
		WHERE id = $1 AND user_id = $2
	`

	//nolint:exhaustruct //other fields are assigned by Scan
	rule := eventstore.RecurringRule{
		ID: id,
	}
	err := repo.db.QueryRow(ctx, query, id, userID).Scan(
		&rule.Rule,
		&rule.StartDate,
		&rule.EndDate,
	)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return &rule, nil
}

func (repo *RecurringEventRepository) GetAll(
	ctx context.Context,
	userID string,
) ([]eventstore.RecurringRule, error) {
	query := `
		SELECT id, rule, start_date, end_date
		FROM sayplan.recurring_events
		WHERE user_id = $1
		ORDER BY start_date asc
	`

	rows, err := repo.db.Query(ctx, query, userID)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	rules := []eventstore.RecurringRule{}
	for rows.Next() {
		//nolint:exhaustruct //other fields are assigned by Scan
		rule := eventstore.RecurringRule{}

		err = rows.Scan(
			&rule.ID,
			&rule.Rule,
			&rule.StartDate,
			&rule.EndDate,
		)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return rules, nil
}

// ListAll returns every rule of every user paired with its owner. The
// nightly horizon job walks this list.
func (repo *RecurringEventRepository) ListAll(
	ctx context.Context,
) ([]OwnedRule, error) {
	query := `
		SELECT id, user_id, rule, start_date, end_date
		FROM sayplan.recurring_events
		ORDER BY user_id asc, start_date asc
	`

	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	rules := []OwnedRule{}
	for rows.Next() {
		//nolint:exhaustruct //other fields are assigned by Scan
		owned := OwnedRule{}

		err = rows.Scan(
			&owned.Rule.ID,
			&owned.UserID,
			&owned.Rule.Rule,
			&owned.Rule.StartDate,
			&owned.Rule.EndDate,
		)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		rules = append(rules, owned)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return rules, nil
}

type OwnedRule struct {
	UserID string
	Rule   eventstore.RecurringRule
}

func (repo *RecurringEventRepository) Delete(
	ctx context.Context,
	id string,
	userID string,
) error {
	query := `
		DELETE FROM sayplan.recurring_events
		WHERE id = $1 AND user_id = $2
	`

	result, err := repo.db.Exec(ctx, query, id, userID)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}
