package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/repository"
	"github.com/secmon-lab/panoptes/pkg/service/inspector"
	"github.com/secmon-lab/panoptes/pkg/usecase"
)

func TestInspect(t *testing.T) {
	ctx := context.Background()

	t.Run("create for stored finding", func(t *testing.T) {
		repo := repository.NewMemory()
		finding := model.NewFinding("Exposed key", "critical")
		finding.Data = map[string]any{"path": "config/prod.env"}
		gt.NoError(t, repo.PutFinding(ctx, finding))

		uc := usecase.NewInspect(repo, inspector.NewRegistry())
		defer uc.Close()

		x, err := uc.CreateForFinding(ctx, finding.ID)
		gt.NoError(t, err)

		text, err := inspector.Serialize(x.Value())
		gt.NoError(t, err)
		gt.S(t, text).Contains("config/prod.env")
	})

	t.Run("error for unknown finding", func(t *testing.T) {
		uc := usecase.NewInspect(repository.NewMemory(), inspector.NewRegistry())
		defer uc.Close()

		_, err := uc.CreateForFinding(ctx, "finding-missing")
		gt.Error(t, err)
	})

	t.Run("create for raw value and fetch it back", func(t *testing.T) {
		uc := usecase.NewInspect(repository.NewMemory(), inspector.NewRegistry())
		defer uc.Close()

		x, err := uc.CreateForValue(ctx, map[string]int{"a": 1})
		gt.NoError(t, err)

		found, err := uc.Get(ctx, x.ID())
		gt.NoError(t, err)
		gt.Equal(t, x.ID(), found.ID())
	})

	t.Run("defaults apply to created instances", func(t *testing.T) {
		uc := usecase.NewInspect(repository.NewMemory(), inspector.NewRegistry(),
			inspector.WithDefaultExpanded(true), inspector.WithMaxHeight(120))
		defer uc.Close()

		x, err := uc.CreateForValue(ctx, nil)
		gt.NoError(t, err)
		gt.True(t, x.Expanded())
		gt.Equal(t, 120, x.MaxHeight())
	})

	t.Run("per-call options override defaults", func(t *testing.T) {
		uc := usecase.NewInspect(repository.NewMemory(), inspector.NewRegistry(),
			inspector.WithDefaultExpanded(true))
		defer uc.Close()

		x, err := uc.CreateForValue(ctx, nil, inspector.WithDefaultExpanded(false))
		gt.NoError(t, err)
		gt.True(t, !x.Expanded())
	})

	t.Run("remove closes the instance", func(t *testing.T) {
		uc := usecase.NewInspect(repository.NewMemory(), inspector.NewRegistry())
		defer uc.Close()

		x, err := uc.CreateForValue(ctx, nil)
		gt.NoError(t, err)
		gt.NoError(t, uc.Remove(ctx, x.ID()))

		_, err = uc.Get(ctx, x.ID())
		gt.Error(t, err)
	})
}
