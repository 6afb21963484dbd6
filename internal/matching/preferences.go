package matching

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/logger"
	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/store"
)

// SaveSeekerPreferences replaces the stored preferences of a seeker.
// The record is bound to userID regardless of what the caller put in it.
func (s *Service) SaveSeekerPreferences(ctx context.Context, userID string, prefs *marketplace.JobSeekerPreferences) (*marketplace.JobSeekerPreferences, error) {
	if prefs == nil {
		return nil, fmt.Errorf("%w: preferences are required", marketplace.ErrInvalid)
	}

	record := prefs.Clone()
	record.UserID = userID
	record.Normalize()
	if err := record.Validate(); err != nil {
		return nil, err
	}
	record.Touch(s.now())

	if err := s.store.UpsertSeekerPreferences(ctx, record); err != nil {
		return nil, fmt.Errorf("saving preferences: %w", err)
	}

	logger.WithFields(s.logger, logger.SeekerFields(userID)...).
		Info("saved seeker preferences", zap.Bool("completed", record.Completed))

	return record, nil
}

// SeekerPreferences reports the stored preferences of a seeker, if any.
func (s *Service) SeekerPreferences(ctx context.Context, userID string) (*marketplace.JobSeekerPreferences, bool, error) {
	prefs, err := s.store.SeekerPreferences(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("loading preferences: %w", err)
	}
	return prefs, true, nil
}

// SaveJobPreferences replaces the hiring preferences of a job posted by ownerID.
func (s *Service) SaveJobPreferences(ctx context.Context, ownerID, jobID string, prefs *marketplace.StartupJobPreferences) (*marketplace.StartupJobPreferences, error) {
	if prefs == nil {
		return nil, fmt.Errorf("%w: preferences are required", marketplace.ErrInvalid)
	}

	if _, err := s.ownedJob(ctx, ownerID, jobID); err != nil {
		return nil, err
	}

	record := prefs.Clone()
	record.JobID = jobID
	record.Normalize()
	if err := record.Validate(); err != nil {
		return nil, err
	}
	record.Touch(s.now())

	if err := s.store.UpsertJobPreferences(ctx, record); err != nil {
		return nil, fmt.Errorf("saving job preferences: %w", err)
	}

	logger.WithFields(s.logger, logger.JobFields(jobID, ownerID)...).Info("saved job preferences")

	return record, nil
}

// JobPreferences reports the hiring preferences of a job, if any.
func (s *Service) JobPreferences(ctx context.Context, jobID string) (*marketplace.StartupJobPreferences, bool, error) {
	prefs, err := s.store.JobPreferences(ctx, jobID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("loading job preferences: %w", err)
	}
	return prefs, true, nil
}
