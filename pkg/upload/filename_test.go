package upload

import (
	"strings"
	"testing"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"meeting.wav", true},
		{"Standup.MP3", true},
		{"clip.final.mp4", true},
		{"voice.m4a", true},
		{"notes.txt", false},
		{"wav", false},
		{"archive.wav.zip", false},
		{"trailingdot.", false},
		{".wav", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Allowed(tt.filename); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"meeting.wav", "meeting.wav"},
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{"i contain cool \xfcml\xe4uts.txt", "i_contain_cool_mluts.txt"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"  team   sync\t2024.mp3 ", "team_sync_2024.mp3"},
		{"__hidden__.wav", "hidden__.wav"},
		{"会议.mp3", "mp3"},
		{"ｆｕｌｌｗｉｄｔｈ.wav", "fullwidth.wav"},
		{"...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SecureFilename(tt.in); got != tt.want {
				t.Errorf("SecureFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStoredNameFallback(t *testing.T) {
	got := StoredName("会议")
	if !strings.HasPrefix(got, "upload-") || strings.Contains(got, ".") {
		t.Errorf("StoredName() = %q, want upload-<uuid>", got)
	}
	if StoredName("会议") == got {
		t.Errorf("generated names should be unique")
	}
	if StoredName("meeting.wav") != "meeting.wav" {
		t.Errorf("clean names should pass through")
	}
}
