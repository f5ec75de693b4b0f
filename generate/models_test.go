package generate

import (
	"testing"

	"github.com/randalmurphal/llmkit/model"
)

func TestSelectModel(t *testing.T) {
	tests := []struct {
		task Task
		want model.ModelName
	}{
		{Research, model.ModelHaiku},
		{Write, model.ModelSonnet},
		{Task("unknown"), model.ModelSonnet},
	}
	for _, tt := range tests {
		if got := SelectModel(tt.task); got != tt.want {
			t.Errorf("SelectModel(%s) = %s, want %s", tt.task, got, tt.want)
		}
	}
}

func TestTierForTask(t *testing.T) {
	if TierForTask(Research) != model.TierFast {
		t.Error("research uses the fast tier")
	}
	if TierForTask(Write) != model.TierDefault {
		t.Error("writing uses the default tier")
	}
}
