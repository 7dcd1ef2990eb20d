package market

import "encoding/json"

// Wire structs mirror the persistence service's JSON payloads, which keep the
// snake_case column names of the backing schema.

type productWire struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Category    string          `json:"category"`
	Image       json.RawMessage `json:"image"`
	Location    string          `json:"location"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	SellerID    string          `json:"seller_id"`
}

func (w productWire) toProduct() Product {
	return Product{
		ID:          w.ID,
		Title:       w.Title,
		Price:       w.Price,
		Category:    w.Category,
		Images:      normalizeImages(w.Image),
		Location:    w.Location,
		Date:        w.Date,
		Description: w.Description,
		SellerID:    w.SellerID,
	}
}

// imagePayload serializes an image list back to the single-column wire form.
func imagePayload(images []string) json.RawMessage {
	encoded, err := json.Marshal(images)
	if err != nil {
		return nil
	}
	return encoded
}

type userWire struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

func (w userWire) toUser() User {
	return User{ID: w.ID, Name: w.Name, Username: w.Username, ProfilePicture: w.ProfilePicture}
}

type messageWire struct {
	ID        string `json:"id"`
	SenderID  string `json:"sender_id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

func (w messageWire) toMessage() Message {
	return Message{ID: w.ID, SenderID: w.SenderID, Text: w.Text, Timestamp: w.Timestamp}
}

type threadWire struct {
	ID                   string        `json:"id"`
	ProductID            string        `json:"product_id"`
	ProductTitle         string        `json:"product_title"`
	Participant1ID       string        `json:"participant1_id"`
	Participant2ID       string        `json:"participant2_id"`
	Messages             []messageWire `json:"messages"`
	LastMessageTimestamp int64         `json:"last_message_timestamp"`
}

func (w threadWire) toThread() MessageThread {
	t := MessageThread{
		ID:                   w.ID,
		ProductID:            w.ProductID,
		ProductTitle:         w.ProductTitle,
		Participants:         [2]string{w.Participant1ID, w.Participant2ID},
		LastMessageTimestamp: w.LastMessageTimestamp,
	}
	for _, m := range w.Messages {
		t.Messages = append(t.Messages, m.toMessage())
	}
	return t
}
