package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/repository"
)

func TestMemoryFindings(t *testing.T) {
	ctx := context.Background()

	t.Run("put and get finding", func(t *testing.T) {
		repo := repository.NewMemory()
		finding := model.NewFinding("Open S3 bucket", "high")
		gt.NoError(t, repo.PutFinding(ctx, finding))

		retrieved, err := repo.GetFinding(ctx, finding.ID)
		gt.NoError(t, err)
		gt.Equal(t, finding.Title, retrieved.Title)
		gt.Equal(t, finding.Severity, retrieved.Severity)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		repo := repository.NewMemory()
		finding := model.NewFinding("Open S3 bucket", "high")
		gt.NoError(t, repo.PutFinding(ctx, finding))

		first, err := repo.GetFinding(ctx, finding.ID)
		gt.NoError(t, err)
		first.Title = "modified"

		second, err := repo.GetFinding(ctx, finding.ID)
		gt.NoError(t, err)
		gt.Equal(t, "Open S3 bucket", second.Title)
	})

	t.Run("error when finding is nil", func(t *testing.T) {
		repo := repository.NewMemory()
		gt.Error(t, repo.PutFinding(ctx, nil))
	})

	t.Run("error when finding is invalid", func(t *testing.T) {
		repo := repository.NewMemory()
		gt.Error(t, repo.PutFinding(ctx, &model.Finding{}))
	})

	t.Run("error when finding does not exist", func(t *testing.T) {
		repo := repository.NewMemory()
		_, err := repo.GetFinding(ctx, "finding-missing")
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("finding not found")
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		repo := repository.NewMemory()
		first := model.NewFinding("first", "medium")
		second := model.NewFinding("second", "critical")
		third := model.NewFinding("third", "info")
		gt.NoError(t, repo.PutFinding(ctx, first))
		gt.NoError(t, repo.PutFinding(ctx, second))
		gt.NoError(t, repo.PutFinding(ctx, third))

		findings, err := repo.ListFindings(ctx)
		gt.NoError(t, err)
		gt.Equal(t, 3, len(findings))
		gt.Equal(t, first.ID, findings[0].ID)
		gt.Equal(t, second.ID, findings[1].ID)
		gt.Equal(t, third.ID, findings[2].ID)
	})

	t.Run("replacing a finding keeps its position", func(t *testing.T) {
		repo := repository.NewMemory()
		first := model.NewFinding("first", "medium")
		second := model.NewFinding("second", "critical")
		gt.NoError(t, repo.PutFinding(ctx, first))
		gt.NoError(t, repo.PutFinding(ctx, second))

		first.Title = "first updated"
		gt.NoError(t, repo.PutFinding(ctx, first))

		findings, err := repo.ListFindings(ctx)
		gt.NoError(t, err)
		gt.Equal(t, 2, len(findings))
		gt.Equal(t, "first updated", findings[0].Title)
	})
}
