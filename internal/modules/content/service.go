package content

import (
	"errors"

	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/pkg/pagination"
	"github.com/politiekmatcher/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service is the read surface over the statement catalog: statements, parties
// and party positions. Catalog writes happen through imports, not this API.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(q pagination.Query, theme, topic string) ([]models.StatementModel, response.Pagination, error) {
	tx := s.db.Model(&models.StatementModel{}).Order("created_at ASC")
	if theme != "" {
		tx = tx.Where("theme = ?", theme)
	}
	if topic != "" {
		tx = tx.Where("topic = ?", topic)
	}
	var items []models.StatementModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.StatementModel, error) {
	var st models.StatementModel
	if err := s.db.First(&st, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// Positions returns every party position on a statement, party preloaded.
func (s *Service) Positions(statementID string) ([]models.PartyPositionModel, error) {
	var items []models.PartyPositionModel
	err := s.db.
		Preload("Party").
		Where("statement_id = ?", statementID).
		Find(&items).Error
	return items, err
}

// Themes lists the distinct statement themes, for filtering.
func (s *Service) Themes() ([]string, error) {
	var themes []string
	err := s.db.Model(&models.StatementModel{}).
		Distinct("theme").
		Where("theme <> ''").
		Order("theme ASC").
		Pluck("theme", &themes).Error
	return themes, err
}

func (s *Service) ListParties() ([]models.PartyModel, error) {
	var items []models.PartyModel
	err := s.db.Order("name ASC").Find(&items).Error
	return items, err
}

func (s *Service) GetParty(id string) (*models.PartyModel, error) {
	var p models.PartyModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
