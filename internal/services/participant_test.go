package services

import (
	"strings"
	"testing"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"
)

func TestProvisionSeedsAllSlots(t *testing.T) {
	db := testDB(t)
	svc := NewParticipantService(db)

	participant, err := svc.Provision("Ada Lovelace", nil)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if participant.Token == "" {
		t.Fatal("expected a minted token")
	}

	var records []models.MealRedemption
	if err := db.Where("participant_id = ?", participant.ID).Find(&records).Error; err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(records) != len(models.AllMealSlots) {
		t.Fatalf("expected %d seeded rows, got %d", len(models.AllMealSlots), len(records))
	}
	for _, rec := range records {
		if rec.Redeemed {
			t.Fatalf("slot %s seeded as redeemed", rec.Slot)
		}
	}
}

func TestProvisionRejectsBlankName(t *testing.T) {
	svc := NewParticipantService(testDB(t))

	if _, err := svc.Provision("   ", nil); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestProvisionRejectsUnknownTeam(t *testing.T) {
	svc := NewParticipantService(testDB(t))

	missing := uint(99)
	if _, err := svc.Provision("Ada", &missing); err == nil {
		t.Fatal("expected error for unknown team")
	}
}

func TestImportCSV(t *testing.T) {
	db := testDB(t)
	svc := NewParticipantService(db)

	csv := strings.Join([]string{
		"Ada Lovelace,Null Pointers",
		"Grace Hopper,Null Pointers",
		"Alan Turing",
		"",
	}, "\n")

	count, err := svc.ImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 imported, got %d", count)
	}

	var teams []models.Team
	if err := db.Find(&teams).Error; err != nil {
		t.Fatalf("load teams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected the shared team created once, got %d teams", len(teams))
	}

	participants, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(participants))
	}
}

func TestImportCSVRollsBackOnBadRow(t *testing.T) {
	db := testDB(t)
	svc := NewParticipantService(db)

	// The bare quote on the last row is a CSV parse error; the two valid
	// rows before it must not survive.
	csv := "Ada Lovelace,Alpha\nGrace Hopper,Alpha\n\"broken\n"

	if _, err := svc.ImportCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected import error")
	}

	var participants, teams, records int64
	if err := db.Model(&models.Participant{}).Count(&participants).Error; err != nil {
		t.Fatalf("count participants: %v", err)
	}
	if err := db.Model(&models.Team{}).Count(&teams).Error; err != nil {
		t.Fatalf("count teams: %v", err)
	}
	if err := db.Model(&models.MealRedemption{}).Count(&records).Error; err != nil {
		t.Fatalf("count redemption rows: %v", err)
	}
	if participants != 0 || teams != 0 || records != 0 {
		t.Fatalf("failed import must leave nothing behind: participants=%d teams=%d records=%d", participants, teams, records)
	}
}

func TestGetByTokenUnknown(t *testing.T) {
	svc := NewParticipantService(testDB(t))

	if _, err := svc.GetByToken("nope"); err == nil {
		t.Fatal("expected error for unknown token")
	}
}
