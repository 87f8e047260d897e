package models

import "testing"

func TestUnwrapCDNURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "wrapped with url parameter",
			in:   "https://example.com/x/cdn/img?url=https%3A%2F%2Fbucket.s3.amazonaws.com%2Fphoto.jpg",
			want: "https://bucket.s3.amazonaws.com/photo.jpg",
		},
		{
			name: "wrapped with bare query target",
			in:   "https://example.com/x/cdn/img?https://bucket.s3.amazonaws.com/photo.jpg",
			want: "https://bucket.s3.amazonaws.com/photo.jpg",
		},
		{
			name: "plain absolute url untouched",
			in:   "https://bucket.s3.amazonaws.com/photo.jpg",
			want: "https://bucket.s3.amazonaws.com/photo.jpg",
		},
		{
			name: "site-relative url untouched",
			in:   "/images/photo.jpg",
			want: "/images/photo.jpg",
		},
		{
			name: "cdn path without target untouched",
			in:   "https://example.com/x/cdn/img",
			want: "https://example.com/x/cdn/img",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnwrapCDNURL(tt.in); got != tt.want {
				t.Errorf("UnwrapCDNURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntakeStatusValid(t *testing.T) {
	for _, s := range []IntakeStatus{IntakeStatusNew, IntakeStatusInProgress, IntakeStatusDone} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if IntakeStatus("SPAM").Valid() {
		t.Error("expected unknown intake status to be invalid")
	}
}
