package types_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
)

func TestFindingID(t *testing.T) {
	t.Run("new IDs are unique and prefixed", func(t *testing.T) {
		id1 := types.NewFindingID()
		id2 := types.NewFindingID()
		gt.NotEqual(t, id1, id2)
		gt.True(t, strings.HasPrefix(id1.String(), "finding-"))
		gt.NoError(t, id1.Validate())
	})

	t.Run("empty ID is invalid", func(t *testing.T) {
		gt.Error(t, types.FindingID("").Validate())
	})
}

func TestInspectorID(t *testing.T) {
	t.Run("new IDs are unique", func(t *testing.T) {
		gt.NotEqual(t, types.NewInspectorID(), types.NewInspectorID())
	})

	t.Run("empty ID is invalid", func(t *testing.T) {
		gt.Error(t, types.InspectorID("").Validate())
	})
}

func TestSeverityID(t *testing.T) {
	t.Run("non-empty is valid", func(t *testing.T) {
		gt.NoError(t, types.SeverityID("critical").Validate())
	})

	t.Run("empty is invalid", func(t *testing.T) {
		gt.Error(t, types.SeverityID("").Validate())
	})
}
