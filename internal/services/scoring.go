package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoringService struct {
	db *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{db: db}
}

const maxRubricPoints = 10

// SubmitScore upserts one judge's rubric for one team; resubmission
// overwrites the previous values rather than stacking rows.
func (s *ScoringService) SubmitScore(judgeID, teamID uint, innovation, execution, design, presentation int) (*models.Score, error) {
	for _, v := range []int{innovation, execution, design, presentation} {
		if v < 0 || v > maxRubricPoints {
			return nil, fmt.Errorf("rubric values must be between 0 and %d", maxRubricPoints)
		}
	}

	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, errors.New("team not found")
	}

	score := models.Score{
		TeamID:       teamID,
		JudgeID:      judgeID,
		Innovation:   innovation,
		Execution:    execution,
		Design:       design,
		Presentation: presentation,
		UpdatedAt:    time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "judge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"innovation", "execution", "design", "presentation", "updated_at"}),
	}).Create(&score).Error
	if err != nil {
		return nil, err
	}

	return &score, nil
}

func (s *ScoringService) ListScores() ([]models.Score, error) {
	var scores []models.Score
	if err := s.db.Order("team_id ASC, judge_id ASC").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

type TeamStanding struct {
	TeamID   uint    `json:"team_id"`
	TeamName string  `json:"team_name"`
	Judges   int     `json:"judges"`
	Total    int     `json:"total"`
	Average  float64 `json:"average"`
}

// Leaderboard ranks teams by average total across judges, so a team scored
// by fewer judges is not penalized.
func (s *ScoringService) Leaderboard() ([]TeamStanding, error) {
	teams, err := s.ListTeams()
	if err != nil {
		return nil, err
	}
	scores, err := s.ListScores()
	if err != nil {
		return nil, err
	}

	byTeam := make(map[uint]*TeamStanding, len(teams))
	var standings []*TeamStanding
	for _, team := range teams {
		st := &TeamStanding{TeamID: team.ID, TeamName: team.Name}
		byTeam[team.ID] = st
		standings = append(standings, st)
	}

	for _, score := range scores {
		st, ok := byTeam[score.TeamID]
		if !ok {
			continue
		}
		st.Judges++
		st.Total += score.Total()
	}
	for _, st := range standings {
		if st.Judges > 0 {
			st.Average = float64(st.Total) / float64(st.Judges)
		}
	}

	sort.Slice(standings, func(a, b int) bool {
		if standings[a].Average != standings[b].Average {
			return standings[a].Average > standings[b].Average
		}
		return standings[a].TeamName < standings[b].TeamName
	})

	result := make([]TeamStanding, len(standings))
	for i, st := range standings {
		result[i] = *st
	}
	return result, nil
}

// ExportCSV writes one row per (team, judge) score plus the rubric columns.
func (s *ScoringService) ExportCSV(w io.Writer) error {
	scores, err := s.ListScores()
	if err != nil {
		return err
	}

	teams, err := s.ListTeams()
	if err != nil {
		return err
	}
	teamNames := make(map[uint]string, len(teams))
	for _, team := range teams {
		teamNames[team.ID] = team.Name
	}

	var judges []models.Staff
	if err := s.db.Where("role = ?", models.RoleJudge).Find(&judges).Error; err != nil {
		return err
	}
	judgeNames := make(map[uint]string, len(judges))
	for _, judge := range judges {
		judgeNames[judge.ID] = judge.Username
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"team", "judge", "innovation", "execution", "design", "presentation", "total"}); err != nil {
		return err
	}
	for _, score := range scores {
		row := []string{
			teamNames[score.TeamID],
			judgeNames[score.JudgeID],
			strconv.Itoa(score.Innovation),
			strconv.Itoa(score.Execution),
			strconv.Itoa(score.Design),
			strconv.Itoa(score.Presentation),
			strconv.Itoa(score.Total()),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (s *ScoringService) CreateTeam(name string) (*models.Team, error) {
	var existing models.Team
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, errors.New("team name already taken")
	}

	team := models.Team{Name: name, CreatedAt: time.Now()}
	if err := s.db.Create(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *ScoringService) ListTeams() ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.Order("id ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
