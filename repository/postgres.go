package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/Irina-Gavrilina/shareit/models/item_models"
	"github.com/Irina-Gavrilina/shareit/models/user_models"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dialectPostgres = "postgres"

	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

var bookingColumns = []any{
	goqu.I("b.id"), goqu.I("b.start_time"), goqu.I("b.end_time"), goqu.I("b.item_id"),
	goqu.I("b.booker_id"), goqu.I("b.status"), goqu.I("b.created_at"), goqu.I("b.updated_at"),
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *user_models.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID: %w", err)
		}
		user.ID = id
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.CreatedAt); err != nil {
		err = userInsertError(err)
		if !errors.Is(err, ErrDuplicate) {
			logger.ErrorLogger.Errorf("Failed to insert user %s: %v", user.ID, err)
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id uuid.UUID) (*user_models.User, error) {
	user := &user_models.User{}
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) ListUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*user_models.User, error) {
	users := make([]*user_models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, name, email, created_at FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u := &user_models.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *item_models.Item) error {
	if item.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID: %w", err)
		}
		item.ID = id
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO items (id, name, description, available, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Available, item.OwnerID, item.CreatedAt,
	); err != nil {
		logger.ErrorLogger.Errorf("Failed to insert item %s: %v", item.ID, err)
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, id uuid.UUID) (*item_models.Item, error) {
	item := &item_models.Item{}
	query := `SELECT id, name, description, available, owner_id, created_at FROM items WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching item: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) ListItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*item_models.Item, error) {
	if len(ids) == 0 {
		return []*item_models.Item{}, nil
	}
	return r.queryItems(ctx, `
		SELECT id, name, description, available, owner_id, created_at
		FROM items WHERE id = ANY($1)`, ids)
}

func (r *PostgresRepository) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*item_models.Item, error) {
	return r.queryItems(ctx, `
		SELECT id, name, description, available, owner_id, created_at
		FROM items WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (r *PostgresRepository) queryItems(ctx context.Context, query string, args ...any) ([]*item_models.Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	defer rows.Close()

	items := make([]*item_models.Item, 0)
	for rows.Next() {
		it := &item_models.Item{}
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) CreateBooking(ctx context.Context, booking *booking_models.Booking) error {
	if booking.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID: %w", err)
		}
		booking.ID = id
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query := `
		INSERT INTO bookings (id, start_time, end_time, item_id, booker_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.Interval.Start, booking.Interval.End, booking.ItemID,
		booking.BookerID, string(booking.Status), booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		err = bookingInsertError(err)
		if errors.Is(err, ErrOverlap) {
			logger.WarnLogger.Warnf("Exclusion constraint rejected booking for item %s", booking.ItemID)
		} else {
			logger.ErrorLogger.Errorf("Failed to insert booking for item %s: %v", booking.ItemID, err)
		}
		return err
	}
	return nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// userInsertError maps a unique violation on users to ErrDuplicate.
func userInsertError(err error) error {
	if pgErrorCode(err) == pgUniqueViolation {
		return ErrDuplicate
	}
	return fmt.Errorf("failed to create user: %w", err)
}

// bookingInsertError maps a bookings_no_overlap violation to ErrOverlap.
func bookingInsertError(err error) error {
	if pgErrorCode(err) == pgExclusionViolation {
		return ErrOverlap
	}
	return fmt.Errorf("failed to create booking: %w", err)
}

func (r *PostgresRepository) GetBooking(ctx context.Context, id uuid.UUID) (*booking_models.Booking, error) {
	query, args, err := bookingSelect().Where(bookingIDCondition(id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build booking query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}
	return booking, nil
}

func (r *PostgresRepository) ListBookingsByItem(ctx context.Context, itemID uuid.UUID) ([]*booking_models.Booking, error) {
	return r.ListBookingsByItemIDs(ctx, []uuid.UUID{itemID})
}

func (r *PostgresRepository) ListBookingsByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*booking_models.Booking, error) {
	if len(itemIDs) == 0 {
		return []*booking_models.Booking{}, nil
	}
	return r.queryBookings(ctx, bookingsByItemsQuery(itemIDs))
}

func (r *PostgresRepository) ListBookings(ctx context.Context, filter BookingFilter) ([]*booking_models.Booking, error) {
	ds, err := bookingListQuery(filter)
	if err != nil {
		return nil, err
	}
	return r.queryBookings(ctx, ds)
}

// errEmptyFilter is returned when a BookingFilter names neither booker nor owner.
var errEmptyFilter = errors.New("booking filter needs a booker or an owner")

func bookingListQuery(filter BookingFilter) (*goqu.SelectDataset, error) {
	ds := bookingSelect()

	switch {
	case filter.BookerID != uuid.Nil:
		ds = ds.Where(goqu.I("b.booker_id").Eq(filter.BookerID.String()))
	case filter.OwnerID != uuid.Nil:
		ds = ds.Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
			Where(goqu.I("i.owner_id").Eq(filter.OwnerID.String()))
	default:
		return nil, errEmptyFilter
	}

	if cond := stateCondition(filter.State, filter.Now); cond != nil {
		ds = ds.Where(cond)
	}

	return ds.Order(goqu.I("b.start_time").Desc(), goqu.I("b.id").Desc()), nil
}

// stateCondition mirrors booking_models.State.Matches in SQL.
func stateCondition(state booking_models.State, now time.Time) exp.Expression {
	switch state {
	case booking_models.StateCurrent:
		return goqu.And(goqu.I("b.start_time").Lte(now), goqu.I("b.end_time").Gte(now))
	case booking_models.StatePast:
		return goqu.I("b.end_time").Lte(now)
	case booking_models.StateFuture:
		return goqu.I("b.start_time").Gte(now)
	case booking_models.StateWaiting:
		return goqu.I("b.status").Eq(string(booking_models.StatusWaiting))
	case booking_models.StateRejected:
		return goqu.I("b.status").Eq(string(booking_models.StatusRejected))
	}
	return nil
}

// updateBookingStatusSQL only matches while the booking is still in status $2.
const updateBookingStatusSQL = `
		UPDATE bookings
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`

func (r *PostgresRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, from, to booking_models.Status) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, updateBookingStatusSQL, id, string(from), string(to), time.Now())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", id, err)
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func bookingIDCondition(id uuid.UUID) exp.Expression {
	return goqu.I("b.id").Eq(id.String())
}

func bookingsByItemsQuery(itemIDs []uuid.UUID) *goqu.SelectDataset {
	return bookingSelect().
		Where(goqu.I("b.item_id").In(uuidStrings(itemIDs))).
		Order(goqu.I("b.start_time").Desc(), goqu.I("b.id").Desc())
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func bookingSelect() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(goqu.T("bookings").As("b")).
		Select(bookingColumns...).
		Prepared(true)
}

func (r *PostgresRepository) queryBookings(ctx context.Context, ds *goqu.SelectDataset) ([]*booking_models.Booking, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build booking query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings: %v", err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*booking_models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*booking_models.Booking, error) {
	var (
		b      booking_models.Booking
		status string
	)
	err := row.Scan(
		&b.ID, &b.Interval.Start, &b.Interval.End, &b.ItemID,
		&b.BookerID, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = booking_models.Status(status)
	return &b, nil
}
