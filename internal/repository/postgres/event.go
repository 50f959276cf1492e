package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/eventopia-server/internal/model"
)

var _ model.EventStore = (*EventRepository)(nil)

const eventColumns = `id, title, type, date, description, image, price, venue,
		       organizer_name, organizer_email, organizer_photo`

type EventRepository struct {
	db *Connection
}

func NewEventRepository(db *Connection) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

func (r *EventRepository) Insert(ctx context.Context, event model.Event) (string, error) {
	query := `INSERT INTO events (` + eventColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	id := uuid.New()
	_, err := r.db.Exec(ctx, query,
		id, event.Title, event.Type, event.Date, event.Description, event.Image, event.Price, event.Venue,
		event.Organizer.Name, event.Organizer.Email, event.Organizer.Photo,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	return id.String(), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY seq`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return collectEvents(rows)
}

func (r *EventRepository) FindByOrganizerEmail(ctx context.Context, email string) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_email = $1 ORDER BY seq`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by organizer: %w", err)
	}
	return collectEvents(rows)
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (model.Event, error) {
	eventID, err := parseID(id)
	if err != nil {
		return model.Event{}, err
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, model.ErrNotFound
		}
		return model.Event{}, fmt.Errorf("failed to get event by id: %w", err)
	}
	return event, nil
}

func (r *EventRepository) UpdateFields(ctx context.Context, id string, update model.EventUpdate) (model.UpdateResult, error) {
	eventID, err := parseID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	query, args := buildUpdateQuery(eventID, update)

	var result model.UpdateResult
	if err := r.db.QueryRow(ctx, query, args...).Scan(&result.MatchedCount, &result.ModifiedCount); err != nil {
		return model.UpdateResult{}, fmt.Errorf("failed to update event: %w", err)
	}
	return result, nil
}

func (r *EventRepository) DeleteByID(ctx context.Context, id string) (model.DeleteResult, error) {
	eventID, err := parseID(id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("failed to delete event: %w", err)
	}
	return model.DeleteResult{DeletedCount: tag.RowsAffected()}, nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", model.ErrInvalidID, id)
	}
	return parsed, nil
}

// buildUpdateQuery returns a statement yielding the matched and modified row
// counts. A row counts as modified only when one of the named columns changes.
func buildUpdateQuery(id uuid.UUID, update model.EventUpdate) (string, []any) {
	if update.IsEmpty() {
		return `SELECT count(*), 0::bigint FROM events WHERE id = $1`, []any{id}
	}

	args := []any{id}
	var sets, diffs []string

	add := func(column string, value any) {
		args = append(args, value)
		placeholder := fmt.Sprintf("$%d", len(args))
		sets = append(sets, column+" = "+placeholder)
		diffs = append(diffs, column+" IS DISTINCT FROM "+placeholder)
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Type != nil {
		add("type", *update.Type)
	}
	if update.Date != nil {
		add("date", *update.Date)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Image != nil {
		add("image", *update.Image)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Venue != nil {
		add("venue", *update.Venue)
	}
	if update.Organizer != nil {
		add("organizer_name", update.Organizer.Name)
		add("organizer_email", update.Organizer.Email)
		add("organizer_photo", update.Organizer.Photo)
	}

	query := `WITH target AS (
			SELECT id FROM events WHERE id = $1
		), upd AS (
			UPDATE events SET ` + strings.Join(sets, ", ") + `
			WHERE id = $1 AND (` + strings.Join(diffs, " OR ") + `)
			RETURNING id
		)
		SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM upd)`

	return query, args
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var (
		event model.Event
		id    uuid.UUID
	)
	err := row.Scan(
		&id, &event.Title, &event.Type, &event.Date, &event.Description, &event.Image, &event.Price, &event.Venue,
		&event.Organizer.Name, &event.Organizer.Email, &event.Organizer.Photo,
	)
	if err != nil {
		return model.Event{}, err
	}
	event.ID = id.String()
	return event, nil
}
