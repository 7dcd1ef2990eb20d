package market

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_NormalizesAndRejectsEmpty(t *testing.T) {
	if _, err := parseBaseURL(""); err == nil {
		t.Fatalf("parseBaseURL(\"\") returned nil error, want error")
	}

	u, err := parseBaseURL("127.0.0.1:9000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:9000" {
		t.Fatalf("url = %q, want http://127.0.0.1:9000", u.String())
	}

	u, err = parseBaseURL("https://example.com/base?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_ListProductsNormalizesImages(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id":"p1","title":"Bike","price":120,"category":"Vehicles","image":["a.jpg","b.jpg"],"seller_id":"u2"},
			{"id":"p2","title":"Radio","price":15,"category":"Electronics","image":"legacy.jpg","seller_id":"u1"}
		]`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("ListProducts returned %d products, want 2", len(products))
	}
	if !reflect.DeepEqual(products[0].Images, []string{"a.jpg", "b.jpg"}) {
		t.Fatalf("products[0].Images = %#v, want array preserved", products[0].Images)
	}
	if !reflect.DeepEqual(products[1].Images, []string{"legacy.jpg"}) {
		t.Fatalf("products[1].Images = %#v, want single legacy value wrapped", products[1].Images)
	}
}

func TestClient_CreateMessageAndThreadPaths(t *testing.T) {
	t.Parallel()

	var gotThreadBody threadWire
	var gotMessagePath string
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/api/threads" && r.Method == http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&gotThreadBody)
			_ = json.NewEncoder(w).Encode(gotThreadBody)
		case strings.HasSuffix(r.URL.Path, "/messages") && r.Method == http.MethodPost:
			gotMessagePath = r.URL.Path
			var m messageWire
			_ = json.NewDecoder(r.Body).Decode(&m)
			m.ID = "m1"
			m.Timestamp = 1700000000000
			_ = json.NewEncoder(w).Encode(m)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx := context.Background()
	thread := NewThread(Product{ID: "p1", Title: "Bike", SellerID: "u2"}, "u1")
	created, err := c.CreateThread(ctx, thread)
	if err != nil {
		t.Fatalf("CreateThread returned error: %v", err)
	}
	if created.ID != "p1-u1-u2" {
		t.Fatalf("created thread id = %q, want p1-u1-u2", created.ID)
	}
	if gotThreadBody.Participant1ID != "u1" || gotThreadBody.Participant2ID != "u2" {
		t.Fatalf("thread body participants = %q/%q, want u1/u2", gotThreadBody.Participant1ID, gotThreadBody.Participant2ID)
	}

	msg, err := c.CreateMessage(ctx, thread.ID, "u1", "Is it available?")
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}
	if msg.ID != "m1" || msg.Timestamp != 1700000000000 {
		t.Fatalf("message = %#v, want server-assigned id and timestamp", msg)
	}
	if gotMessagePath != "/api/threads/p1-u1-u2/messages" {
		t.Fatalf("message path = %q, want /api/threads/p1-u1-u2/messages", gotMessagePath)
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "kasuwa/") {
		t.Fatalf("User-Agent = %q, want kasuwa/*", gotUserAgent)
	}
}

func TestClient_SavedSetMembership(t *testing.T) {
	t.Parallel()

	var gotMethods []string
	var gotPaths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method)
		gotPaths = append(gotPaths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `[{"product_id":"p1"},{"product_id":"p3"}]`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	ids, err := c.ListSavedProductIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("ListSavedProductIDs returned error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("saved ids = %v, want 2 entries", ids)
	}
	if _, ok := ids["p3"]; !ok {
		t.Fatalf("saved ids = %v, want p3 present", ids)
	}

	if err := c.SaveProduct(ctx, "u1", "p2"); err != nil {
		t.Fatalf("SaveProduct returned error: %v", err)
	}
	if err := c.UnsaveProduct(ctx, "u1", "p2"); err != nil {
		t.Fatalf("UnsaveProduct returned error: %v", err)
	}

	want := []string{"/api/users/u1/saved", "/api/users/u1/saved/p2", "/api/users/u1/saved/p2"}
	if !reflect.DeepEqual(gotPaths, want) {
		t.Fatalf("paths = %v, want %v", gotPaths, want)
	}
	if gotMethods[1] != http.MethodPut || gotMethods[2] != http.MethodDelete {
		t.Fatalf("methods = %v, want GET/PUT/DELETE", gotMethods)
	}

	ids, err = c.ListSavedProductIDs(ctx, "")
	if err != nil {
		t.Fatalf("ListSavedProductIDs(\"\") returned error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("saved ids for empty user = %v, want empty", ids)
	}
}

func TestClient_UploadReturnsURLAndKeepsExtension(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/uploads" {
			http.NotFound(w, r)
			return
		}
		gotName = r.URL.Query().Get("name")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(uploadResponse{URL: "https://cdn.example/" + gotName})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	got, err := c.Upload(context.Background(), "photo.png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if !strings.HasSuffix(gotName, ".png") {
		t.Fatalf("upload name = %q, want .png extension", gotName)
	}
	if gotName == "photo.png" {
		t.Fatalf("upload name = %q, want a generated name", gotName)
	}
	if len(gotBody) != 3 {
		t.Fatalf("upload body = %v, want 3 bytes", gotBody)
	}
	if _, err := url.Parse(got); err != nil || !strings.HasPrefix(got, "https://cdn.example/") {
		t.Fatalf("upload url = %q, want cdn url", got)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, "{not-json")
		case "/api/users":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListProducts(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListProducts error = %v, want decode response error", err)
	}

	_, err = c.ListUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("ListUsers error = %v, want status 500 error", err)
	}
}
