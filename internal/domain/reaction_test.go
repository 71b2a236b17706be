package domain

import "testing"

func TestReaction_AddClaps(t *testing.T) {
	tests := []struct {
		name     string
		starting int
		add      int
		wantErr  error
		want     int
	}{
		{"first clap", 0, 1, nil, 1},
		{"bulk clap", 0, 10, nil, 10},
		{"exactly at cap", 45, 5, nil, 50},
		{"over cap fails without clamping", 45, 10, ErrClapLimitExceeded, 45},
		{"full counter rejects one more", 50, 1, ErrClapLimitExceeded, 50},
		{"zero is invalid", 5, 0, ErrInvalidClapCount, 5},
		{"negative is invalid", 5, -3, ErrInvalidClapCount, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReaction("article-1", "user-1")
			if tt.starting > 0 {
				if err := r.AddClaps(tt.starting); err != nil {
					t.Fatalf("setup AddClaps(%d) error = %v", tt.starting, err)
				}
				r.ClearEvents()
			}
			versionBefore := r.Version

			err := r.AddClaps(tt.add)
			if err != tt.wantErr {
				t.Fatalf("AddClaps(%d) error = %v, want %v", tt.add, err, tt.wantErr)
			}
			if r.ClapCount != tt.want {
				t.Errorf("clap count = %d, want %d", r.ClapCount, tt.want)
			}

			if tt.wantErr != nil {
				if r.Version != versionBefore {
					t.Error("failed AddClaps bumped the version")
				}
				if len(r.PendingEvents()) != 0 {
					t.Error("failed AddClaps queued an event")
				}
				return
			}

			if r.Version != versionBefore+1 {
				t.Errorf("version = %d, want %d", r.Version, versionBefore+1)
			}
			events := r.PendingEvents()
			if len(events) != 1 || events[0].Name != EventClapsAdded {
				t.Fatalf("events = %v, want one claps_added", events)
			}
			payload := events[0].Payload.(ClapsAddedPayload)
			if payload.Added != tt.add || payload.Total != tt.want {
				t.Errorf("payload = %+v, want added=%d total=%d", payload, tt.add, tt.want)
			}
		})
	}
}

func TestReaction_LastClappedAtRefreshes(t *testing.T) {
	r := NewReaction("article-1", "user-1")
	created := r.LastClappedAt

	if err := r.AddClaps(3); err != nil {
		t.Fatalf("AddClaps() error = %v", err)
	}
	if r.LastClappedAt.Before(created) {
		t.Error("LastClappedAt went backwards")
	}
}
