package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/modules/matching"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// matchConcurrency bounds the per-party fan-out of one response.
const matchConcurrency = 8

// RecomputeResponse classifies a response and rebuilds every match derived
// from it. The classification itself never fails the pipeline; it degrades to
// neutral when inference is down.
func (s *Service) RecomputeResponse(ctx context.Context, resp *models.UserResponseModel, statement *models.StatementModel) error {
	classification, err := s.classifier.Classify(ctx, statement.ID, statement.Text, resp.Opinion)
	if err != nil {
		return err
	}

	if err := s.db.Model(resp).Updates(map[string]interface{}{
		"label":            classification.Label,
		"label_confidence": classification.Confidence,
		"label_source":     classification.Source,
		"classified_label": classification.Label,
	}).Error; err != nil {
		return err
	}
	resp.Label = classification.Label
	resp.LabelConfidence = classification.Confidence
	resp.LabelSource = classification.Source
	resp.ClassifiedLabel = classification.Label

	return s.computeMatches(ctx, resp)
}

// computeMatches scores the response against every party position on its
// statement, then refreshes the affected party aggregates. The user's
// dimension vector is scored once and shared across parties.
func (s *Service) computeMatches(ctx context.Context, resp *models.UserResponseModel) error {
	var positions []models.PartyPositionModel
	if err := s.db.
		Where("statement_id = ?", resp.StatementID).
		Find(&positions).Error; err != nil {
		return err
	}
	if len(positions) == 0 {
		return nil
	}

	userVec, err := s.dims.Score(ctx, resp.Opinion)
	if err != nil {
		if errors.Is(err, matching.ErrInvalidInput) {
			return err
		}
		// No vector means no modifier; base scores still stand.
		s.logger.Warn("dimension scoring unavailable, matching without modifier",
			zap.String("response_id", resp.ID),
			zap.Error(err))
		userVec = models.DimensionVector{}
	}

	now := time.Now()
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(matchConcurrency)
	for i := range positions {
		pos := positions[i]
		g.Go(func() error {
			score, err := matching.ScoreStatement(
				resp.Label, pos.Stance,
				userVec, pos.Dimensions,
				resp.ConfidenceRating, resp.ImportanceRating,
			)
			if err != nil {
				return err
			}
			return s.upsertStatementMatch(resp, &pos, score, now)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range positions {
		if err := s.recomputePartyMatch(resp.ProfileID, positions[i].PartyID, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) upsertStatementMatch(resp *models.UserResponseModel, pos *models.PartyPositionModel, score matching.StatementScore, now time.Time) error {
	match := models.StatementMatchModel{
		ProfileID:   resp.ProfileID,
		StatementID: resp.StatementID,
		PartyID:     pos.PartyID,
	}
	return s.db.
		Where("profile_id = ? AND statement_id = ? AND party_id = ?", resp.ProfileID, resp.StatementID, pos.PartyID).
		Assign(map[string]interface{}{
			"response_id":         resp.ID,
			"party_stance":        pos.Stance,
			"party_explanation":   pos.Explanation,
			"base_score":          score.Base,
			"dimension_modifier":  score.Modifier,
			"final_score":         score.Final,
			"confidence_weighted": score.ConfidenceWeighted,
			"importance_weighted": score.ImportanceWeighted,
			"calculated_at":       now,
		}).
		FirstOrCreate(&match).Error
}

// recomputePartyMatch rebuilds one party aggregate from its statement match
// rows. An empty set removes the aggregate entirely; a stale cached
// explanation is cleared whenever the numbers change.
func (s *Service) recomputePartyMatch(profileID, partyID string, now time.Time) error {
	var rows []models.StatementMatchModel
	if err := s.db.
		Where("profile_id = ? AND party_id = ?", profileID, partyID).
		Find(&rows).Error; err != nil {
		return err
	}

	agg, err := matching.AggregateParty(rows)
	if errors.Is(err, matching.ErrAggregationUndefined) {
		return s.db.
			Where("profile_id = ? AND party_id = ?", profileID, partyID).
			Delete(&models.PartyMatchModel{}).Error
	}
	if err != nil {
		return err
	}

	pm := models.PartyMatchModel{ProfileID: profileID, PartyID: partyID}
	return s.db.
		Where("profile_id = ? AND party_id = ?", profileID, partyID).
		Assign(map[string]interface{}{
			"match_percentage":    agg.MatchPercentage,
			"confidence_weighted": agg.ConfidenceWeighted,
			"importance_weighted": agg.ImportanceWeighted,
			"total_statements":    agg.TotalStatements,
			"matching_statements": agg.MatchingStatements,
			"explanation":         nil,
			"calculated_at":       now,
		}).
		FirstOrCreate(&pm).Error
}
