package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
)

func TestFindingValidate(t *testing.T) {
	t.Run("valid finding", func(t *testing.T) {
		finding := model.NewFinding("Exposed credential in repo", "critical")
		gt.NoError(t, finding.Validate())
		gt.True(t, !finding.DetectedAt.IsZero())
	})

	t.Run("error when title is empty", func(t *testing.T) {
		finding := model.NewFinding("", "high")
		gt.Error(t, finding.Validate())
	})

	t.Run("error when severity is empty", func(t *testing.T) {
		finding := model.NewFinding("Suspicious login", "")
		gt.Error(t, finding.Validate())
	})

	t.Run("error when ID is empty", func(t *testing.T) {
		finding := &model.Finding{Title: "Suspicious login", Severity: "low"}
		gt.Error(t, finding.Validate())
	})
}
