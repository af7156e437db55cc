package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedProfiles are the demo members shipped with the app.
var seedProfiles = []Profile{
	{
		ID:       "a1b2c3d4-e5f6-7890-1234-567890abcdef",
		Name:     "Alex Cybersmith",
		Email:    "alex@synapse.io",
		Bio:      "Full-stack developer specializing in decentralized systems and neural interfaces. Looking for collaborators on a new AI-driven art project.",
		Skills:   []string{"React", "Cloudflare Workers", "Rust", "AI", "Durable Objects"},
		ImageURL: "https://i.pravatar.cc/150?u=alex",
	},
	{
		ID:       "b2c3d4e5-f6a7-8901-2345-67890abcdef0",
		Name:     "Jasmine 'Jax' Lee",
		Email:    "jax@synapse.io",
		Bio:      "Cybersecurity expert and network architect. Passionate about building secure and resilient systems for the new web.",
		Skills:   []string{"Cybersecurity", "Networking", "Go", "Cloudflare"},
		ImageURL: "https://i.pravatar.cc/150?u=jax",
	},
	{
		ID:       "c3d4e5f6-a7b8-9012-3456-7890abcdef01",
		Name:     "Kenji 'Glitch' Tanaka",
		Email:    "glitch@synapse.io",
		Bio:      "Hardware engineer and IoT specialist. I make smart devices smarter and more secure. Let's build the future together.",
		Skills:   []string{"IoT", "Hardware", "C++", "Embedded Systems"},
		ImageURL: "https://i.pravatar.cc/150?u=glitch",
	},
}

// SeedTestData resets the store and loads the demo dataset: the three demo
// profiles, one accepted and one pending connection, and a handful of
// endorsements so the leaderboards are non-empty out of the box.
func SeedTestData(gdb *gorm.DB) error {
	if err := gdb.Exec("DELETE FROM endorsements").Error; err != nil {
		return fmt.Errorf("failed to clear endorsements: %w", err)
	}
	if err := gdb.Exec("DELETE FROM connections").Error; err != nil {
		return fmt.Errorf("failed to clear connections: %w", err)
	}
	if err := gdb.Exec("DELETE FROM profiles").Error; err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}

	for i := range seedProfiles {
		if err := gdb.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&seedProfiles[i]).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
	}

	alex, jax, glitch := seedProfiles[0].ID, seedProfiles[1].ID, seedProfiles[2].ID

	connections := []Connection{
		{
			ID:         alex + ":" + jax,
			FromUserID: alex,
			ToUserID:   jax,
			Status:     StatusAccepted,
		},
		{
			ID:         glitch + ":" + alex,
			FromUserID: glitch,
			ToUserID:   alex,
			Status:     StatusPending,
		},
	}
	for i := range connections {
		if err := gdb.Create(&connections[i]).Error; err != nil {
			return fmt.Errorf("failed to seed connection: %w", err)
		}
	}

	endorsements := []Endorsement{
		{ID: "seed-endorsement-1", EndorsedUserID: jax, EndorsedByUserID: alex, Skill: "Go"},
		{ID: "seed-endorsement-2", EndorsedUserID: jax, EndorsedByUserID: glitch, Skill: "Go"},
		{ID: "seed-endorsement-3", EndorsedUserID: alex, EndorsedByUserID: jax, Skill: "AI"},
		{ID: "seed-endorsement-4", EndorsedUserID: glitch, EndorsedByUserID: alex, Skill: "IoT"},
	}
	for i := range endorsements {
		if err := gdb.Create(&endorsements[i]).Error; err != nil {
			return fmt.Errorf("failed to seed endorsement: %w", err)
		}
	}

	return nil
}
