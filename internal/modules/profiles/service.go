package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/modules/matching"
	aisvc "github.com/politiekmatcher/core/internal/modules/processing/ai"
	"github.com/politiekmatcher/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errProfileNotFound   = errors.New("profile not found")
	errStatementNotFound = errors.New("statement not found")
	errResponseNotFound  = errors.New("response not found")
)

// Service owns anonymous profiles, their opinions and the derived match
// results. Submitting or relabeling an opinion triggers the classify-and-match
// pipeline for that response.
type Service struct {
	db         *gorm.DB
	classifier *matching.Classifier
	dims       *matching.DimensionScorer
	ai         *aisvc.Service
	taskSvc    *taskqueue.Service
	logger     *zap.Logger
}

func NewService(db *gorm.DB, classifier *matching.Classifier, dims *matching.DimensionScorer, ai *aisvc.Service, taskSvc *taskqueue.Service, logger *zap.Logger) *Service {
	return &Service{db: db, classifier: classifier, dims: dims, ai: ai, taskSvc: taskSvc, logger: logger}
}

// EnsureProfile returns the profile for sessionKey, creating one when absent.
// An empty session key always creates a fresh anonymous profile.
func (s *Service) EnsureProfile(sessionKey string) (*models.UserProfileModel, error) {
	now := time.Now()

	if sessionKey != "" {
		var p models.UserProfileModel
		err := s.db.Where("session_key = ?", sessionKey).First(&p).Error
		if err == nil {
			if err := s.db.Model(&p).Update("last_active", now).Error; err != nil {
				return nil, err
			}
			p.LastActive = &now
			return &p, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	p := models.UserProfileModel{SessionKey: sessionKey, LastActive: &now}
	return &p, s.db.Create(&p).Error
}

func (s *Service) GetProfile(id string) (*models.UserProfileModel, error) {
	var p models.UserProfileModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) CountResponses(profileID string) (int64, error) {
	var n int64
	err := s.db.Model(&models.UserResponseModel{}).Where("profile_id = ?", profileID).Count(&n).Error
	return n, err
}

func (s *Service) ListResponses(profileID string) ([]models.UserResponseModel, error) {
	var items []models.UserResponseModel
	err := s.db.
		Preload("Statement").
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// SubmitResponse stores an opinion and runs the classify-and-match pipeline
// for it. Resubmitting for the same statement overwrites the earlier opinion
// and recomputes everything derived from it.
func (s *Service) SubmitResponse(ctx context.Context, profileID string, dto submitResponseDTO) (*models.UserResponseModel, error) {
	if strings.TrimSpace(dto.Opinion) == "" {
		return nil, fmt.Errorf("%w: empty opinion", matching.ErrInvalidInput)
	}
	if dto.ConfidenceRating < 1 || dto.ConfidenceRating > 5 {
		return nil, fmt.Errorf("%w: confidence rating %d outside 1-5", matching.ErrInvalidInput, dto.ConfidenceRating)
	}
	if dto.ImportanceRating < 1 || dto.ImportanceRating > 5 {
		return nil, fmt.Errorf("%w: importance rating %d outside 1-5", matching.ErrInvalidInput, dto.ImportanceRating)
	}

	profile, err := s.GetProfile(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errProfileNotFound
	}

	var statement models.StatementModel
	if err := s.db.First(&statement, "id = ?", dto.StatementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errStatementNotFound
		}
		return nil, err
	}

	resp := models.UserResponseModel{ProfileID: profileID, StatementID: statement.ID}
	if err := s.db.
		Where("profile_id = ? AND statement_id = ?", profileID, statement.ID).
		FirstOrCreate(&resp).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&resp).Updates(map[string]interface{}{
		"opinion":           dto.Opinion,
		"confidence_rating": dto.ConfidenceRating,
		"importance_rating": dto.ImportanceRating,
	}).Error; err != nil {
		return nil, err
	}
	resp.Opinion = dto.Opinion
	resp.ConfidenceRating = dto.ConfidenceRating
	resp.ImportanceRating = dto.ImportanceRating

	if dto.Async {
		if _, err := s.EnqueueClassify(ctx, resp.ID); err != nil {
			return nil, err
		}
	} else {
		if err := s.RecomputeResponse(ctx, &resp, &statement); err != nil {
			return nil, err
		}
	}

	if err := s.refreshCompletion(profileID); err != nil {
		s.logger.Warn("profile completion refresh failed",
			zap.String("profile_id", profileID),
			zap.Error(err))
	}
	return &resp, nil
}

// CorrectLabel lets a user override the automatic stance label of their own
// response. The original automatic label stays on the row for audit; matches
// are recomputed against the corrected label.
func (s *Service) CorrectLabel(ctx context.Context, responseID string, label models.Stance) (*models.UserResponseModel, error) {
	if !label.Valid() {
		return nil, fmt.Errorf("%w: label %q", matching.ErrInvalidInput, label)
	}

	var resp models.UserResponseModel
	if err := s.db.First(&resp, "id = ?", responseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errResponseNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&resp).Updates(map[string]interface{}{
		"label":            label,
		"label_confidence": 1.0,
		"label_source":     models.LabelSourceUser,
	}).Error; err != nil {
		return nil, err
	}
	resp.Label = label
	resp.LabelConfidence = 1.0
	resp.LabelSource = models.LabelSourceUser

	if err := s.computeMatches(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PartyMatches lists the profile's party aggregates, best match first.
func (s *Service) PartyMatches(profileID string) ([]models.PartyMatchModel, error) {
	var items []models.PartyMatchModel
	err := s.db.
		Preload("Party").
		Where("profile_id = ?", profileID).
		Order("match_percentage DESC").
		Find(&items).Error
	return items, err
}

// PartyExplanation returns the explanation for one party match, generating
// and persisting it on first request. A missing aggregate is
// ErrAggregationUndefined: there is nothing to explain without data.
func (s *Service) PartyExplanation(ctx context.Context, profileID, partyID string) (string, error) {
	var pm models.PartyMatchModel
	err := s.db.
		Preload("Party").
		Where("profile_id = ? AND party_id = ?", profileID, partyID).
		First(&pm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", matching.ErrAggregationUndefined
	}
	if err != nil {
		return "", err
	}
	if pm.Explanation != nil && *pm.Explanation != "" {
		return *pm.Explanation, nil
	}

	input, err := s.explanationInput(&pm)
	if err != nil {
		return "", err
	}

	text := s.ai.PartyExplanation(ctx, input)
	if err := s.db.Model(&pm).Update("explanation", text).Error; err != nil {
		s.logger.Warn("persisting party explanation failed",
			zap.String("profile_id", profileID),
			zap.String("party_id", partyID),
			zap.Error(err))
	}
	return text, nil
}

func (s *Service) explanationInput(pm *models.PartyMatchModel) (aisvc.ExplanationInput, error) {
	var matches []models.StatementMatchModel
	if err := s.db.
		Where("profile_id = ? AND party_id = ?", pm.ProfileID, pm.PartyID).
		Order("final_score DESC").
		Find(&matches).Error; err != nil {
		return aisvc.ExplanationInput{}, err
	}

	statementIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		statementIDs = append(statementIDs, m.StatementID)
	}

	var statements []models.StatementModel
	if err := s.db.Where("id IN ?", statementIDs).Find(&statements).Error; err != nil {
		return aisvc.ExplanationInput{}, err
	}
	textByID := make(map[string]string, len(statements))
	for _, st := range statements {
		textByID[st.ID] = st.Text
	}

	var responses []models.UserResponseModel
	if err := s.db.
		Where("profile_id = ? AND statement_id IN ?", pm.ProfileID, statementIDs).
		Find(&responses).Error; err != nil {
		return aisvc.ExplanationInput{}, err
	}
	labelByStatement := make(map[string]models.Stance, len(responses))
	for _, r := range responses {
		labelByStatement[r.StatementID] = r.Label
	}

	input := aisvc.ExplanationInput{
		PartyName:       pm.PartyID,
		MatchPercentage: pm.MatchPercentage,
	}
	if pm.Party != nil {
		input.PartyName = pm.Party.Name
	}
	for _, m := range matches {
		input.Statements = append(input.Statements, aisvc.ExplanationStatement{
			Statement:   textByID[m.StatementID],
			UserStance:  labelByStatement[m.StatementID],
			PartyStance: m.PartyStance,
			FinalScore:  m.FinalScore,
		})
	}
	return input, nil
}

// refreshCompletion marks the profile completed once every statement has a
// response.
func (s *Service) refreshCompletion(profileID string) error {
	var total, answered int64
	if err := s.db.Model(&models.StatementModel{}).Count(&total).Error; err != nil {
		return err
	}
	if err := s.db.Model(&models.UserResponseModel{}).Where("profile_id = ?", profileID).Count(&answered).Error; err != nil {
		return err
	}
	completed := total > 0 && answered >= total
	return s.db.Model(&models.UserProfileModel{}).
		Where("id = ?", profileID).
		Update("is_completed", completed).Error
}
