// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/survey-places/cliparse"
	"github.com/danielhkuo/survey-places/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrSurveyFull = errors.New("survey has no available places")
)

// Store persists surveys and survey responses
type Store struct {
	conn   *sql.DB
	dbType string
}

func NewStore(conn *sql.DB, dbType string) *Store {
	return &Store{conn: conn, dbType: dbType}
}

func (s *Store) q(query string) string {
	return rebind(s.dbType, query)
}

// InsertSurvey creates a survey and returns it with its new id
func (s *Store) InsertSurvey(ctx context.Context, name string, places, userID int64) (models.Survey, error) {
	survey := models.Survey{
		SurveyName:      name,
		AvailablePlaces: places,
		UserID:          userID,
	}

	err := s.conn.QueryRowContext(ctx, s.q(`
		INSERT INTO survey (survey_name, available_places, user_id)
		VALUES (?, ?, ?)
		RETURNING id
	`), name, places, userID).Scan(&survey.ID)
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to insert survey: %w", err)
	}

	return survey, nil
}

// GetSurvey returns ErrNotFound when no survey has the id
func (s *Store) GetSurvey(ctx context.Context, id int64) (models.Survey, error) {
	var survey models.Survey
	err := s.conn.QueryRowContext(ctx, s.q(`
		SELECT id, survey_name, available_places, user_id
		FROM survey
		WHERE id = ?
	`), id).Scan(&survey.ID, &survey.SurveyName, &survey.AvailablePlaces, &survey.UserID)

	if err == sql.ErrNoRows {
		return models.Survey{}, ErrNotFound
	}
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to get survey: %w", err)
	}

	return survey, nil
}

// ListSurveys returns surveys in creation order
func (s *Store) ListSurveys(ctx context.Context, filter models.SurveyFilter) ([]models.Survey, error) {
	query := `SELECT id, survey_name, available_places, user_id FROM survey`
	var args []any
	if filter.UserID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *filter.UserID)
	}
	query += ` ORDER BY id`

	rows, err := s.conn.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	surveys := []models.Survey{}
	for rows.Next() {
		var survey models.Survey
		if err := rows.Scan(&survey.ID, &survey.SurveyName, &survey.AvailablePlaces, &survey.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, survey)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate surveys: %w", err)
	}

	return surveys, nil
}

// ListResponses returns responses in creation order
func (s *Store) ListResponses(ctx context.Context, filter models.ResponseFilter) ([]models.SurveyResponse, error) {
	var where []string
	var args []any
	if filter.SurveyID != nil {
		where = append(where, "survey_id = ?")
		args = append(args, *filter.SurveyID)
	}
	if filter.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *filter.UserID)
	}

	query := `SELECT id, survey_id, user_id, created_at FROM survey_response`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := s.conn.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list survey responses: %w", err)
	}
	defer rows.Close()

	responses := []models.SurveyResponse{}
	for rows.Next() {
		var resp models.SurveyResponse
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.UserID, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey response: %w", err)
		}
		resp.CreatedAt = resp.CreatedAt.UTC()
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate survey responses: %w", err)
	}

	return responses, nil
}

func (s *Store) CountResponses(ctx context.Context, surveyID int64) (int64, error) {
	var count int64
	err := s.conn.QueryRowContext(ctx, s.q(`
		SELECT COUNT(*) FROM survey_response WHERE survey_id = ?
	`), surveyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count survey responses: %w", err)
	}
	return count, nil
}

// InsertResponse records a response if the survey still has a free place.
// The capacity check and the insert run in one transaction; on postgres the
// survey row is locked so concurrent inserts for one survey queue up.
// Returns ErrNotFound or ErrSurveyFull without writing anything.
func (s *Store) InsertResponse(ctx context.Context, surveyID, userID int64) (models.SurveyResponse, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.SurveyResponse{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	lock := ""
	if s.dbType == cliparse.DatabasePostgres {
		lock = " FOR UPDATE"
	}

	var places int64
	err = tx.QueryRowContext(ctx, s.q(`SELECT available_places FROM survey WHERE id = ?`+lock), surveyID).Scan(&places)
	if err == sql.ErrNoRows {
		return models.SurveyResponse{}, ErrNotFound
	}
	if err != nil {
		return models.SurveyResponse{}, fmt.Errorf("failed to read survey capacity: %w", err)
	}

	var count int64
	err = tx.QueryRowContext(ctx, s.q(`SELECT COUNT(*) FROM survey_response WHERE survey_id = ?`), surveyID).Scan(&count)
	if err != nil {
		return models.SurveyResponse{}, fmt.Errorf("failed to count survey responses: %w", err)
	}
	if count >= places {
		return models.SurveyResponse{}, ErrSurveyFull
	}

	resp := models.SurveyResponse{
		SurveyID:  surveyID,
		UserID:    userID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO survey_response (survey_id, user_id, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`), surveyID, userID, resp.CreatedAt).Scan(&resp.ID)
	if err != nil {
		return models.SurveyResponse{}, fmt.Errorf("failed to insert survey response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.SurveyResponse{}, fmt.Errorf("failed to commit tx: %w", err)
	}

	return resp, nil
}
