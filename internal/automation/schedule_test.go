package automation

import (
	"errors"
	"testing"
	"time"
)

func TestCronSpec(t *testing.T) {
	tests := []struct {
		name    string
		time    string
		days    []string
		want    string
		wantErr bool
	}{
		{name: "every day", time: "07:30", want: "30 7 * * *"},
		{name: "weekdays mixed case", time: "18:05", days: []string{"Mon", "TUE", "fri"}, want: "5 18 * * 1,2,5"},
		{name: "duplicates collapse", time: "00:00", days: []string{"sun", "Sun"}, want: "0 0 * * 0"},
		{name: "bad time", time: "7:3x", wantErr: true},
		{name: "hour out of range", time: "25:00", wantErr: true},
		{name: "bad day", time: "07:00", days: []string{"Funday"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CronSpec(&Automation{Time: tt.time, Days: tt.days})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSchedule) {
					t.Fatalf("CronSpec() error = %v, want ErrInvalidSchedule", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CronSpec() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CronSpec() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	// Wednesday 2026-01-07 12:00 UTC
	now := time.Date(2026, time.January, 7, 12, 0, 0, 0, loc)

	t.Run("later today", func(t *testing.T) {
		a := &Automation{Time: "18:30", Active: true}
		got, ok := NextRun(a, now)
		want := time.Date(2026, time.January, 7, 18, 30, 0, 0, loc)
		if !ok || !got.Equal(want) {
			t.Errorf("NextRun() = %v, %v; want %v", got, ok, want)
		}
	})

	t.Run("next matching weekday", func(t *testing.T) {
		a := &Automation{Time: "07:00", Days: []string{"Mon"}, Active: true}
		got, ok := NextRun(a, now)
		want := time.Date(2026, time.January, 12, 7, 0, 0, 0, loc)
		if !ok || !got.Equal(want) {
			t.Errorf("NextRun() = %v, %v; want %v", got, ok, want)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		if _, ok := NextRun(&Automation{Time: "07:00"}, now); ok {
			t.Error("NextRun() ok for inactive automation")
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		if _, ok := NextRun(&Automation{Time: "soon", Active: true}, now); ok {
			t.Error("NextRun() ok for bad time")
		}
	})
}

func TestValidateAutomation(t *testing.T) {
	valid := &Automation{
		Name: "Morning",
		Time: "07:00",
		Days: []string{"Mon"},
		Actions: []AutomationAction{
			{Type: AutomationActionScene, TargetID: "scene-evening", Action: "activate"},
		},
	}
	if err := ValidateAutomation(valid); err != nil {
		t.Errorf("ValidateAutomation(valid) = %v", err)
	}

	badType := valid.DeepCopy()
	badType.Actions[0].Type = "WEBHOOK"
	if err := ValidateAutomation(badType); !errors.Is(err, ErrInvalidAutomationAction) {
		t.Errorf("ValidateAutomation(bad type) = %v, want ErrInvalidAutomationAction", err)
	}

	badTime := valid.DeepCopy()
	badTime.Time = "noon"
	if err := ValidateAutomation(badTime); !errors.Is(err, ErrInvalidSchedule) {
		t.Errorf("ValidateAutomation(bad time) = %v, want ErrInvalidSchedule", err)
	}
}

func TestValidateScene(t *testing.T) {
	tests := []struct {
		name    string
		scene   *Scene
		wantErr error
	}{
		{
			name:  "valid",
			scene: NewScene("s", "Evening", SceneAction{DeviceID: "light-1", ActionType: ActionTurnOn}),
		},
		{
			name:    "empty name",
			scene:   NewScene("s", ""),
			wantErr: ErrInvalidName,
		},
		{
			name:    "unknown action",
			scene:   NewScene("s", "S", SceneAction{DeviceID: "light-1", ActionType: "DIM"}),
			wantErr: ErrInvalidAction,
		},
		{
			name:    "set temp without value",
			scene:   NewScene("s", "S", SceneAction{DeviceID: "t", ActionType: ActionSetTemp}),
			wantErr: ErrInvalidAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScene(tt.scene)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateScene() = %v, want nil", err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateScene() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
