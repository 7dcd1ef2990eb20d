package views

import (
	"reflect"
	"testing"

	"github.com/auwalms/kasuwa/internal/market"
)

var testProducts = []market.Product{
	{ID: "p1", Title: "Mountain Bike", Description: "barely used", Category: "Vehicles", SellerID: "u1"},
	{ID: "p2", Title: "Radio", Description: "classic FM receiver", Category: "Electronics", SellerID: "u2"},
	{ID: "p3", Title: "Bike Helmet", Description: "fits all", Category: "Fashion", SellerID: "u2"},
}

func TestFilterProducts_OwnCategoryAlwaysIncluded(t *testing.T) {
	for _, p := range testProducts {
		got := FilterProducts(testProducts, p.Category, "")
		found := false
		for _, g := range got {
			if g.ID == p.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("FilterProducts(category=%q) misses %q", p.Category, p.ID)
		}
	}
}

func TestFilterProducts_AllAndQuery(t *testing.T) {
	got := FilterProducts(testProducts, market.CategoryAll, "")
	if len(got) != len(testProducts) {
		t.Fatalf("All/empty query = %d products, want %d", len(got), len(testProducts))
	}

	got = FilterProducts(testProducts, market.CategoryAll, "BIKE")
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("query BIKE = %#v, want p1 and p3 (case-insensitive title match)", got)
	}

	// Description matches too.
	got = FilterProducts(testProducts, market.CategoryAll, "receiver")
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("query receiver = %#v, want p2", got)
	}

	// Category and query combine.
	got = FilterProducts(testProducts, "Vehicles", "helmet")
	if len(got) != 0 {
		t.Fatalf("Vehicles+helmet = %#v, want none", got)
	}
}

func TestFilterProducts_DoesNotMutateInput(t *testing.T) {
	before := make([]market.Product, len(testProducts))
	copy(before, testProducts)
	_ = FilterProducts(testProducts, "Electronics", "radio")
	if !reflect.DeepEqual(before, testProducts) {
		t.Fatalf("FilterProducts mutated its input")
	}
}

func TestSavedProducts(t *testing.T) {
	saved := map[string]struct{}{"p3": {}, "p1": {}}
	got := SavedProducts(testProducts, saved)
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("SavedProducts = %#v, want p1,p3 in product order", got)
	}

	if got := SavedProducts(testProducts, nil); got != nil {
		t.Fatalf("SavedProducts(nil set) = %#v, want nil", got)
	}
}

func TestOwnedProducts(t *testing.T) {
	got := OwnedProducts(testProducts, "u2")
	if len(got) != 2 {
		t.Fatalf("OwnedProducts(u2) = %#v, want 2", got)
	}
	if got := OwnedProducts(testProducts, ""); got != nil {
		t.Fatalf("OwnedProducts(no user) = %#v, want nil", got)
	}
}

func TestActiveThread(t *testing.T) {
	threads := []market.MessageThread{{ID: "t1"}, {ID: "t2"}}

	if th, ok := ActiveThread(threads, "t2"); !ok || th.ID != "t2" {
		t.Fatalf("ActiveThread(t2) = %#v/%v, want t2", th, ok)
	}
	if _, ok := ActiveThread(threads, ""); ok {
		t.Fatalf("ActiveThread(\"\") = true, want absent")
	}
	if _, ok := ActiveThread(threads, "t9"); ok {
		t.Fatalf("ActiveThread(t9) = true, want absent")
	}
}

func TestSortThreads_NewestFirstWithoutMutating(t *testing.T) {
	threads := []market.MessageThread{
		{ID: "old", LastMessageTimestamp: 10},
		{ID: "new", LastMessageTimestamp: 30},
		{ID: "mid", LastMessageTimestamp: 20},
	}
	got := SortThreads(threads)
	if got[0].ID != "new" || got[1].ID != "mid" || got[2].ID != "old" {
		t.Fatalf("SortThreads order = %v, want new,mid,old", []string{got[0].ID, got[1].ID, got[2].ID})
	}
	if threads[0].ID != "old" {
		t.Fatalf("SortThreads mutated its input")
	}
}

func TestUserThreadsAndOtherParticipant(t *testing.T) {
	threads := []market.MessageThread{
		{ID: "t1", Participants: [2]string{"u1", "u2"}},
		{ID: "t2", Participants: [2]string{"u2", "u3"}},
	}

	got := UserThreads(threads, "u1")
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("UserThreads(u1) = %#v, want t1 only", got)
	}

	other, ok := OtherParticipant(threads[0], "u1")
	if !ok || other != "u2" {
		t.Fatalf("OtherParticipant = %q/%v, want u2", other, ok)
	}
	if _, ok := OtherParticipant(threads[0], "u9"); ok {
		t.Fatalf("OtherParticipant for non-member = true, want false")
	}
}
