package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantService struct {
	db *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{db: db}
}

// Provision creates a participant with a freshly minted token and seeds one
// unredeemed row per meal slot in the same transaction, so a participant the
// redemption core knows about always has a full set of records.
func (s *ParticipantService) Provision(name string, teamID *uint) (*models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("participant name is required")
	}

	if teamID != nil {
		var team models.Team
		if err := s.db.First(&team, *teamID).Error; err != nil {
			return nil, errors.New("team not found")
		}
	}

	participant := models.Participant{
		Token:     uuid.NewString(),
		Name:      name,
		TeamID:    teamID,
		CreatedAt: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}
		for _, slot := range models.AllMealSlots {
			rec := models.MealRedemption{
				ParticipantID: participant.ID,
				Slot:          slot,
				Redeemed:      false,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &participant, nil
}

// ImportCSV provisions one participant per row. Expected columns:
// name[,team]. A team column creates the team on first sight. The whole
// import runs in one transaction: a bad row rolls every earlier row back
// and the error names where it stopped, so a re-upload never half-duplicates
// the roster.
func (s *ParticipantService) ImportCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	count := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txSvc := &ParticipantService{db: tx}
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("row %d: %w", count+1, err)
			}
			if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
				continue
			}

			var teamID *uint
			if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
				team, err := txSvc.getOrCreateTeam(strings.TrimSpace(record[1]))
				if err != nil {
					return err
				}
				teamID = &team.ID
			}

			if _, err := txSvc.Provision(record[0], teamID); err != nil {
				return fmt.Errorf("row %d: %w", count+1, err)
			}
			count++
		}
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *ParticipantService) getOrCreateTeam(name string) (*models.Team, error) {
	var team models.Team
	err := s.db.Where("name = ?", name).First(&team).Error
	if err == nil {
		return &team, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	team = models.Team{Name: name, CreatedAt: time.Now()}
	if err := s.db.Create(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *ParticipantService) List() ([]models.Participant, error) {
	var participants []models.Participant
	if err := s.db.Preload("Team").Order("id ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (s *ParticipantService) GetByToken(token string) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.Preload("Team").Where("token = ?", token).First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("participant not found")
		}
		return nil, err
	}
	return &participant, nil
}
