package actions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/auwalms/kasuwa/internal/avatar"
	"github.com/auwalms/kasuwa/internal/market"
	"github.com/auwalms/kasuwa/internal/session"
	"github.com/auwalms/kasuwa/internal/state"
)

// Validation sentinels. Each is raised before any remote call is made.
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username taken")
	ErrSelfMessage         = errors.New("cannot message yourself")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBackendUnconfigured = errors.New("backend not configured")
)

// Notifier receives user-visible notifications. The TUI shows them as
// toasts.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }

// Coordinator is the sole path through which state-changing operations reach
// the persistence layer. Every mutation follows the same shape: validate
// preconditions locally, issue exactly one remote call per step, and either
// commit the authoritative result or leave local state untouched and report
// the failure. No operation is retried and no error escapes as a panic or
// an unnotified failure.
type Coordinator struct {
	api        market.API
	store      *state.Store
	session    *session.Session
	notifier   Notifier
	configured bool
}

// New builds a Coordinator. configured reports whether a backend URL is set;
// registration is refused without one.
func New(api market.API, store *state.Store, sess *session.Session, notifier Notifier, configured bool) *Coordinator {
	return &Coordinator{
		api:        api,
		store:      store,
		session:    sess,
		notifier:   notifier,
		configured: configured,
	}
}

func (c *Coordinator) notify(message string) {
	if c.notifier != nil {
		c.notifier.Notify(message)
	}
}

// LoadInitial fetches products, users, and threads concurrently and installs
// them in the entity store, then loads the saved set when a user is
// authenticated. On failure the store is left untouched.
func (c *Coordinator) LoadInitial(ctx context.Context) error {
	var (
		products []market.Product
		users    []market.User
		threads  []market.MessageThread
		errP     error
		errU     error
		errT     error
	)

	done := make(chan struct{}, 3)
	go func() { products, errP = c.api.ListProducts(ctx); done <- struct{}{} }()
	go func() { users, errU = c.api.ListUsers(ctx); done <- struct{}{} }()
	go func() { threads, errT = c.api.ListThreads(ctx); done <- struct{}{} }()
	for i := 0; i < 3; i++ {
		<-done
	}

	if err := errors.Join(errP, errU, errT); err != nil {
		c.notify("Error loading data. Please try again.")
		return fmt.Errorf("initial load: %w", err)
	}
	c.store.ReplaceAll(products, users, threads)

	if user, ok := c.session.User(); ok {
		saved, err := c.api.ListSavedProductIDs(ctx, user.ID)
		if err != nil {
			log.Printf("load saved products: %v", err)
			return nil
		}
		c.session.ReplaceSaved(saved)
	}
	return nil
}

// Login authenticates by username against the loaded user set. No remote
// call is needed beyond fetching the saved set.
func (c *Coordinator) Login(ctx context.Context, username string) (market.User, error) {
	user, ok := c.store.Snapshot().UserByUsername(username)
	if !ok {
		c.notify("User not found. Try registering.")
		return market.User{}, ErrUserNotFound
	}

	c.session.Authenticate(user)
	saved, err := c.api.ListSavedProductIDs(ctx, user.ID)
	if err != nil {
		log.Printf("load saved products: %v", err)
	} else {
		c.session.ReplaceSaved(saved)
	}
	c.notify(fmt.Sprintf("Welcome back, %s!", user.Name))
	return user, nil
}

// Register creates an account. The username must be unique among loaded
// users; the check runs before any remote call. An empty profile picture is
// replaced with a generated avatar.
func (c *Coordinator) Register(ctx context.Context, name, username, profilePicture string) (market.User, error) {
	if !c.configured {
		c.notify("Backend is not configured. Set api_url and restart.")
		return market.User{}, ErrBackendUnconfigured
	}
	if name == "" || username == "" {
		c.notify("Name and username are required.")
		return market.User{}, ErrInvalidInput
	}
	if _, taken := c.store.Snapshot().UserByUsername(username); taken {
		c.notify("This username is already taken.")
		return market.User{}, ErrUsernameTaken
	}

	if profilePicture == "" {
		profilePicture = avatar.Generate(name)
	}
	created, err := c.api.CreateUser(ctx, market.User{Name: name, Username: username, ProfilePicture: profilePicture})
	if err != nil {
		log.Printf("create user: %v", err)
		c.notify("Error creating account. Please try again.")
		return market.User{}, err
	}

	c.store.PrependUser(created)
	c.session.Authenticate(created)
	c.notify(fmt.Sprintf("Welcome, %s! Your account has been created.", created.Name))
	return created, nil
}

// Logout clears the session. The theme preference survives.
func (c *Coordinator) Logout() {
	c.session.Deauthenticate()
	c.notify("You have been logged out.")
}

// UpdateProfile changes the current user's display name and username. The
// uniqueness check excludes the user's own record.
func (c *Coordinator) UpdateProfile(ctx context.Context, name, username string) error {
	user, ok := c.session.User()
	if !ok {
		c.notify("You must be logged in.")
		return ErrNotAuthenticated
	}
	if name == "" || username == "" {
		c.notify("Name and username are required.")
		return ErrInvalidInput
	}
	if other, taken := c.store.Snapshot().UserByUsername(username); taken && other.ID != user.ID {
		c.notify("This username is already taken.")
		return ErrUsernameTaken
	}

	updated := user
	updated.Name = name
	updated.Username = username
	if err := c.api.UpdateUser(ctx, updated); err != nil {
		log.Printf("update profile: %v", err)
		c.notify("Error updating profile.")
		return err
	}

	c.session.Update(updated)
	c.store.PutUser(updated)
	c.notify("Profile updated successfully!")
	return nil
}

// UpdateProfilePicture replaces the current user's picture.
func (c *Coordinator) UpdateProfilePicture(ctx context.Context, pictureURL string) error {
	user, ok := c.session.User()
	if !ok {
		c.notify("You must be logged in.")
		return ErrNotAuthenticated
	}

	updated := user
	updated.ProfilePicture = pictureURL
	if err := c.api.UpdateUser(ctx, updated); err != nil {
		log.Printf("update profile picture: %v", err)
		c.notify("Error updating profile picture.")
		return err
	}

	c.session.Update(updated)
	c.store.PutUser(updated)
	c.notify("Profile picture updated!")
	return nil
}

// ProductDraft is the user-entered portion of a new listing. Location, date,
// and seller are filled in at creation time.
type ProductDraft struct {
	Title       string
	Price       float64
	Category    string
	Images      []string
	Description string
}

func (d ProductDraft) validate() (string, bool) {
	if d.Title == "" {
		return "Title is required.", false
	}
	if d.Price < 0 {
		return "Price cannot be negative.", false
	}
	if len(d.Images) == 0 {
		return "At least one photo is required.", false
	}
	valid := false
	for _, cat := range market.Categories {
		if cat == d.Category {
			valid = true
		}
	}
	if !valid {
		return "Choose a category.", false
	}
	return "", true
}

// CreateProduct posts a new ad for the current user.
func (c *Coordinator) CreateProduct(ctx context.Context, draft ProductDraft) (market.Product, error) {
	user, ok := c.session.User()
	if !ok {
		c.notify("You must be logged in to post an ad.")
		return market.Product{}, ErrNotAuthenticated
	}
	if msg, ok := draft.validate(); !ok {
		c.notify(msg)
		return market.Product{}, ErrInvalidInput
	}

	created, err := c.api.CreateProduct(ctx, market.Product{
		Title:       draft.Title,
		Price:       draft.Price,
		Category:    draft.Category,
		Images:      draft.Images,
		Location:    market.DefaultLocation,
		Date:        market.DisplayDate(time.Now()),
		Description: draft.Description,
		SellerID:    user.ID,
	})
	if err != nil {
		log.Printf("create product: %v", err)
		c.notify("Error posting ad. Please try again.")
		return market.Product{}, err
	}

	c.store.PrependProduct(created)
	c.notify("Your ad has been posted successfully!")
	return created, nil
}

// UpdateProduct replaces a listing's mutable fields. Ownership is gated by
// the UI; the remote service rejects edits by non-owners.
func (c *Coordinator) UpdateProduct(ctx context.Context, p market.Product) error {
	if _, ok := c.session.User(); !ok {
		c.notify("You must be logged in.")
		return ErrNotAuthenticated
	}

	if err := c.api.UpdateProduct(ctx, p); err != nil {
		log.Printf("update product: %v", err)
		c.notify("Error updating ad.")
		return err
	}

	c.store.PutProduct(p)
	c.notify("Your ad has been updated.")
	return nil
}

// DeleteProduct removes a listing permanently.
func (c *Coordinator) DeleteProduct(ctx context.Context, productID string) error {
	if _, ok := c.session.User(); !ok {
		c.notify("You must be logged in.")
		return ErrNotAuthenticated
	}

	if err := c.api.DeleteProduct(ctx, productID); err != nil {
		log.Printf("delete product: %v", err)
		c.notify("Error deleting ad.")
		return err
	}

	c.store.RemoveProduct(productID)
	c.notify("Ad deleted successfully.")
	return nil
}

// ToggleSave flips a product's membership in the current user's saved set.
// It returns the resulting membership.
func (c *Coordinator) ToggleSave(ctx context.Context, productID string) (bool, error) {
	user, ok := c.session.User()
	if !ok {
		c.notify("Please log in to save products.")
		return false, ErrNotAuthenticated
	}

	if c.session.IsSaved(productID) {
		if err := c.api.UnsaveProduct(ctx, user.ID, productID); err != nil {
			log.Printf("unsave product: %v", err)
			c.notify("Error updating saved products.")
			return true, err
		}
		c.session.MarkSaved(productID, false)
		c.notify("Product unsaved.")
		return false, nil
	}

	if err := c.api.SaveProduct(ctx, user.ID, productID); err != nil {
		log.Printf("save product: %v", err)
		c.notify("Error updating saved products.")
		return false, err
	}
	c.session.MarkSaved(productID, true)
	c.notify("Product saved!")
	return true, nil
}

// MessageSeller starts or continues the conversation about a product. The
// canonical thread id is resolved first; an existing thread gets the message
// appended, otherwise the thread is created and the first message posted.
// When thread creation succeeds but the first post fails, the empty thread
// remains — a known limitation carried over from the stored data model.
func (c *Coordinator) MessageSeller(ctx context.Context, product market.Product, text string) (string, error) {
	user, ok := c.session.User()
	if !ok {
		c.notify("Please log in to message sellers.")
		return "", ErrNotAuthenticated
	}
	if user.ID == product.SellerID {
		c.notify("You cannot message yourself.")
		return "", ErrSelfMessage
	}
	if text == "" {
		c.notify("Message text is required.")
		return "", ErrInvalidInput
	}

	threadID := market.ThreadID(product.ID, user.ID, product.SellerID)
	if _, exists := c.store.Snapshot().Thread(threadID); !exists {
		created, err := c.api.CreateThread(ctx, market.NewThread(product, user.ID))
		if err != nil {
			log.Printf("create thread: %v", err)
			c.notify("Error sending message.")
			return "", err
		}
		c.store.AppendThread(created)
	}

	msg, err := c.api.CreateMessage(ctx, threadID, user.ID, text)
	if err != nil {
		log.Printf("create message: %v", err)
		c.notify("Error sending message.")
		return "", err
	}
	c.store.AppendMessage(threadID, msg)
	c.notify("Message sent!")
	return threadID, nil
}

// SendMessage appends to an existing thread from the chat view.
func (c *Coordinator) SendMessage(ctx context.Context, threadID, text string) error {
	user, ok := c.session.User()
	if !ok {
		return ErrNotAuthenticated
	}
	if text == "" {
		return ErrInvalidInput
	}

	msg, err := c.api.CreateMessage(ctx, threadID, user.ID, text)
	if err != nil {
		log.Printf("create message: %v", err)
		c.notify("Error sending message.")
		return err
	}
	c.store.AppendMessage(threadID, msg)
	return nil
}

// UploadImage stores image bytes remotely and returns the retrievable URL.
func (c *Coordinator) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	url, err := c.api.Upload(ctx, filename, data)
	if err != nil {
		log.Printf("upload image: %v", err)
		c.notify("Error uploading image.")
		return "", err
	}
	return url, nil
}
