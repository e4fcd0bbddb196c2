package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dopust-hr/leave-backend-go/internal/domain/leave"
	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) leave.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

// Create implements leave.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	created := request
	created.Leaves = make([]leave.Leave, 0, len(request.Leaves))

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)
		q := GetQuerier(txCtx, r.db)

		status := request.Status
		if status == "" {
			status = leave.RequestStatusInProgress
		}

		err := q.QueryRow(txCtx, `
			INSERT INTO requests (user_id, status, comment)
			VALUES ($1, $2, $3)
			RETURNING id, submitted_on, status, created_at, updated_at
		`, request.UserID, status, request.Comment).Scan(
			&created.ID,
			&created.SubmittedOn,
			&created.Status,
			&created.CreatedAt,
			&created.UpdatedAt,
		)
		if err != nil {
			if hasPgCode(err, pgForeignKeyViolation) {
				return fmt.Errorf("request owner %d: %w", request.UserID, user.ErrUserNotFound)
			}
			return fmt.Errorf("insert request: %w", err)
		}

		for i, l := range request.Leaves {
			l.RequestID = created.ID
			err := q.QueryRow(txCtx, `
				INSERT INTO leaves (start_date, end_date, reason, leave_type_id, request_id)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, l.StartDate, l.EndDate, l.Reason, l.LeaveTypeID, l.RequestID).Scan(&l.ID)
			if err != nil {
				if hasPgCode(err, pgForeignKeyViolation) {
					return fmt.Errorf("leave %d type %d: %w", i, l.LeaveTypeID, leave.ErrLeaveTypeNotFound)
				}
				return fmt.Errorf("insert leave %d: %w", i, err)
			}
			created.Leaves = append(created.Leaves, l)
		}

		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	return created, nil
}

// ListByUserID implements leave.RequestRepository.
func (r *requestRepositoryImpl) ListByUserID(ctx context.Context, userID int64) ([]leave.RequestWithLeaves, error) {
	return r.list(ctx, &userID)
}

// ListAll implements leave.RequestRepository.
func (r *requestRepositoryImpl) ListAll(ctx context.Context) ([]leave.RequestWithLeaves, error) {
	return r.list(ctx, nil)
}

func (r *requestRepositoryImpl) list(ctx context.Context, userID *int64) ([]leave.RequestWithLeaves, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.user_id, u.email, u.first_name, u.last_name,
			   to_char(r.submitted_on, 'YYYY-MM-DD'), r.status, r.comment,
			   COALESCE(
				   JSON_AGG(
					   JSON_BUILD_OBJECT(
						   'id', l.id,
						   'start_date', to_char(l.start_date, 'YYYY-MM-DD'),
						   'end_date', to_char(l.end_date, 'YYYY-MM-DD'),
						   'reason', l.reason,
						   'leave_type', lt.label
					   ) ORDER BY l.start_date, l.id
				   ) FILTER (WHERE l.id IS NOT NULL),
				   '[]'
			   ) AS leaves
		FROM requests r
		INNER JOIN users u ON u.id = r.user_id
		LEFT JOIN leaves l ON l.request_id = r.id
		LEFT JOIN leave_types lt ON lt.id = l.leave_type_id
		WHERE ($1::bigint IS NULL OR r.user_id = $1::bigint)
		GROUP BY r.id, u.id
		ORDER BY r.submitted_on DESC, r.id DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.RequestWithLeaves, 0)
	for rows.Next() {
		var req leave.RequestWithLeaves
		var leavesJSON []byte
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.Email,
			&req.FirstName,
			&req.LastName,
			&req.SubmittedOn,
			&req.Status,
			&req.Comment,
			&leavesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		if err := json.Unmarshal(leavesJSON, &req.Leaves); err != nil {
			return nil, fmt.Errorf("decode leaves of request %d: %w", req.ID, err)
		}
		if req.Leaves == nil {
			req.Leaves = []leave.LeaveItem{}
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return requests, nil
}

// UpdateStatus implements leave.RequestRepository.
func (r *requestRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status leave.RequestStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

// Stats implements leave.RequestRepository.
func (r *requestRepositoryImpl) Stats(ctx context.Context, filter leave.StatsFilter) ([]leave.UserLeaveStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.first_name, u.last_name,
			   SUM(l.end_date - l.start_date + 1)::int AS approved_days,
			   LEAST(SUM(l.end_date - l.start_date + 1), $1::int)::int AS counted_days
		FROM users u
		INNER JOIN requests r ON r.user_id = u.id
		INNER JOIN leaves l ON l.request_id = r.id
		WHERE r.status = $2
		  AND ($3::int IS NULL OR EXTRACT(YEAR FROM l.start_date) = $3::int)
		GROUP BY u.id
		ORDER BY u.id
	`

	rows, err := q.Query(ctx, query, filter.AnnualCap, leave.RequestStatusAccepted, filter.Year)
	if err != nil {
		return nil, fmt.Errorf("leave stats: %w", err)
	}
	defer rows.Close()

	stats := make([]leave.UserLeaveStats, 0)
	for rows.Next() {
		var s leave.UserLeaveStats
		if err := rows.Scan(&s.UserID, &s.FirstName, &s.LastName, &s.ApprovedDays, &s.CountedDays); err != nil {
			return nil, fmt.Errorf("scan leave stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave stats: %w", err)
	}

	return stats, nil
}
