package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
)

var sampleProjects = []project.CreateRequest{
	{
		Title:        "E-Commerce Platform",
		Description:  "A full-stack e-commerce platform with AI-powered product recommendations and seamless payment integration.",
		ImageURL:     "/images/project1.jpg",
		ProjectURL:   "https://example-ecommerce.com",
		GithubURL:    "https://github.com/username/ecommerce-platform",
		Technologies: "Next.js, TypeScript, Stripe, PostgreSQL",
		Status:       project.StatusCompleted,
	},
	{
		Title:        "Music Streaming App",
		Description:  "A modern music streaming application with real-time collaboration features and AI-generated playlists.",
		ImageURL:     "/images/project2.jpg",
		ProjectURL:   "https://example-music.com",
		GithubURL:    "https://github.com/username/music-app",
		Technologies: "React, Node.js, WebRTC, MongoDB",
		Status:       project.StatusInProgress,
	},
	{
		Title:        "Portfolio Website",
		Description:  "A responsive portfolio website showcasing creative work with smooth animations and modern design.",
		ImageURL:     "/images/project3.jpg",
		ProjectURL:   "https://example-portfolio.com",
		GithubURL:    "https://github.com/username/portfolio",
		Technologies: "Next.js, Tailwind CSS, Framer Motion",
		Status:       project.StatusCompleted,
	},
}

var sampleBeats = []beat.CreateRequest{
	{
		Title:         "Midnight Vibes",
		Description:   "A smooth hip-hop beat for late-night sessions and introspective lyrics.",
		AudioURL:      "/storage/uploads/audio/midnight-vibes.mp3",
		CoverImageURL: "/images/beat1.jpg",
		Genre:         "hip-hop",
		Duration:      intPtr(180),
	},
	{
		Title:         "Digital Dreams",
		Description:   "An electronic ambient track that blends synthetic sounds with organic elements.",
		AudioURL:      "/storage/uploads/audio/digital-dreams.mp3",
		CoverImageURL: "/images/beat2.jpg",
		Genre:         "electronic",
		Duration:      intPtr(240),
	},
	{
		Title:         "Urban Trap",
		Description:   "Hard-hitting trap beat with heavy 808s and atmospheric melodies.",
		AudioURL:      "/storage/uploads/audio/urban-trap.mp3",
		CoverImageURL: "/images/beat3.jpg",
		Genre:         "trap",
		Duration:      intPtr(200),
	},
}

// seedSampleData inserts sample content into empty tables and fills in
// missing settings with their defaults. Existing rows are never touched.
// Every read happens before the first write, straight from the repositories,
// so a store failure aborts the seed instead of looking like an empty table.
func seedSampleData(ctx context.Context, a *app, logger *slog.Logger) error {
	projects, err := a.projectRepo.List(ctx, 1)
	if err != nil {
		return fmt.Errorf("checking projects: %w", err)
	}
	beats, err := a.beatRepo.List(ctx, 1)
	if err != nil {
		return fmt.Errorf("checking beats: %w", err)
	}
	stored, err := a.settingRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("checking settings: %w", err)
	}

	missing := setting.Defaults()
	for _, row := range stored {
		delete(missing, row.Key)
	}

	if len(projects) == 0 {
		for _, req := range sampleProjects {
			if _, err := a.projects.Create(ctx, req); err != nil {
				return fmt.Errorf("seed project %q: %w", req.Title, err)
			}
		}
		logger.Info("seeded projects", "count", len(sampleProjects))
	}

	if len(beats) == 0 {
		for _, req := range sampleBeats {
			if _, err := a.beats.Create(ctx, req); err != nil {
				return fmt.Errorf("seed beat %q: %w", req.Title, err)
			}
		}
		logger.Info("seeded beats", "count", len(sampleBeats))
	}

	if len(missing) > 0 {
		if err := a.settings.Update(ctx, missing); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		logger.Info("seeded settings", "count", len(missing))
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
