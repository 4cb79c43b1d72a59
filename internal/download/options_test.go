package download

import (
	"errors"
	"testing"

	"github.com/tubefetch/tube-downloader/internal/model"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		err  error
	}{
		{"valid", Options{URL: "https://example.com/v", Tier: model.TierVideo1080p}, nil},
		{"valid audio", Options{URL: "https://example.com/v", Tier: model.TierAudio}, nil},
		{"empty url", Options{URL: "", Tier: model.TierVideo1080p}, ErrEmptyURL},
		{"blank url", Options{URL: "   ", Tier: model.TierVideo1080p}, ErrEmptyURL},
		{"no tier", Options{URL: "https://example.com/v", Tier: model.TierNone}, ErrNoSelection},
	}

	for _, test := range tests {
		err := test.opts.Validate()
		if !errors.Is(err, test.err) {
			t.Errorf("%s: Validate() = %v, expected %v", test.name, err, test.err)
		}
	}
}

func TestOutputTemplate(t *testing.T) {
	tests := []struct {
		opts     Options
		expected string
	}{
		{Options{}, "%(title)s.%(ext)s"},
		{Options{Dir: "/downloads"}, "/downloads/%(title)s.%(ext)s"},
		{Options{OutputTemplate: "%(id)s.%(ext)s"}, "%(id)s.%(ext)s"},
		{Options{Dir: "/d", OutputTemplate: "%(id)s.%(ext)s"}, "/d/%(id)s.%(ext)s"},
	}

	for _, test := range tests {
		if got := test.opts.outputTemplate(); got != test.expected {
			t.Errorf("outputTemplate() = %q, expected %q", got, test.expected)
		}
	}
}
