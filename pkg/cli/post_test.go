package cli

import (
	"testing"

	"github.com/UniversalLevi/InstagramAutomation/pkg/queue"
)

func TestInferMediaType(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  queue.MediaType
	}{
		{"photo", []string{"a.jpg"}, queue.MediaPhoto},
		{"png photo", []string{"shot.PNG"}, queue.MediaPhoto},
		{"video", []string{"clip.mp4"}, queue.MediaVideo},
		{"mov video", []string{"clip.MOV"}, queue.MediaVideo},
		{"carousel", []string{"a.jpg", "b.jpg"}, queue.MediaCarousel},
		{"mixed carousel", []string{"a.jpg", "b.mp4"}, queue.MediaCarousel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferMediaType(tt.files); got != tt.want {
				t.Errorf("inferMediaType(%v) = %s, want %s", tt.files, got, tt.want)
			}
		})
	}
}
