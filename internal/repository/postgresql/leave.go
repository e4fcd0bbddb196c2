package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dopust-hr/leave-backend-go/internal/domain/leave"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveListing, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, r.id, u.first_name, u.last_name, lt.label,
			   to_char(l.start_date, 'YYYY-MM-DD'), to_char(l.end_date, 'YYYY-MM-DD'),
			   l.reason, r.status
		FROM leaves l
		INNER JOIN requests r ON r.id = l.request_id
		INNER JOIN users u ON u.id = r.user_id
		INNER JOIN leave_types lt ON lt.id = l.leave_type_id
		ORDER BY l.start_date DESC, l.id DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	listings := make([]leave.LeaveListing, 0)
	for rows.Next() {
		var l leave.LeaveListing
		err := rows.Scan(
			&l.LeaveID,
			&l.RequestID,
			&l.FirstName,
			&l.LastName,
			&l.LeaveType,
			&l.StartDate,
			&l.EndDate,
			&l.Reason,
			&l.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaves: %w", err)
	}

	return listings, nil
}

// GetOwner implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetOwner(ctx context.Context, id int64) (leave.LeaveOwner, error) {
	q := GetQuerier(ctx, r.db)

	owner := leave.LeaveOwner{LeaveID: id}
	err := q.QueryRow(ctx, `
		SELECT r.id, r.user_id
		FROM leaves l
		INNER JOIN requests r ON r.id = l.request_id
		WHERE l.id = $1
	`, id).Scan(&owner.RequestID, &owner.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveOwner{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveOwner{}, fmt.Errorf("get leave owner: %w", err)
	}
	return owner, nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
