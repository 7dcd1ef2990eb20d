package market

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestThreadID_ParticipantOrderIndependent(t *testing.T) {
	pairs := [][2]string{
		{"u1", "u2"},
		{"alice", "bob"},
		{"zz", "aa"},
		{"u10", "u2"},
	}
	for _, pair := range pairs {
		a := ThreadID("p1", pair[0], pair[1])
		b := ThreadID("p1", pair[1], pair[0])
		if a != b {
			t.Fatalf("ThreadID(%q,%q) = %q, reversed = %q, want equal", pair[0], pair[1], a, b)
		}
	}
}

func TestThreadID_Format(t *testing.T) {
	got := ThreadID("p1", "u2", "u1")
	if got != "p1-u1-u2" {
		t.Fatalf("ThreadID = %q, want p1-u1-u2", got)
	}
}

func TestNewThread_SortsParticipantsAndSnapshotsTitle(t *testing.T) {
	p := Product{ID: "p1", Title: "Bike", SellerID: "u2"}
	thread := NewThread(p, "u1")

	if thread.ID != "p1-u1-u2" {
		t.Fatalf("thread id = %q, want p1-u1-u2", thread.ID)
	}
	if thread.Participants != [2]string{"u1", "u2"} {
		t.Fatalf("participants = %v, want sorted pair", thread.Participants)
	}
	if thread.ProductTitle != "Bike" {
		t.Fatalf("product title = %q, want Bike", thread.ProductTitle)
	}
	if len(thread.Messages) != 0 {
		t.Fatalf("new thread has %d messages, want 0", len(thread.Messages))
	}
}

func TestNormalizeImages_WireShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["a.jpg","b.jpg"]`, []string{"a.jpg", "b.jpg"}},
		{"encoded array in string", `"[\"a.jpg\",\"b.jpg\"]"`, []string{"a.jpg", "b.jpg"}},
		{"bare url string", `"https://cdn.example/x.jpg"`, []string{"https://cdn.example/x.jpg"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}
	for _, tc := range cases {
		got := normalizeImages(json.RawMessage(tc.raw))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: normalizeImages(%s) = %#v, want %#v", tc.name, tc.raw, got, tc.want)
		}
	}

	if got := normalizeImages(nil); got != nil {
		t.Fatalf("normalizeImages(nil) = %#v, want nil", got)
	}
}

func TestDisplayDate(t *testing.T) {
	d := DisplayDate(time.Date(2025, time.September, 4, 12, 0, 0, 0, time.UTC))
	if d != "Sep 4" {
		t.Fatalf("DisplayDate = %q, want Sep 4", d)
	}
}
