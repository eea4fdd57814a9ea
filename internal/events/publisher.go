package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"blog-service/internal/model"
)

// EventPublisher broadcasts post mutations to live listeners. Delivery is
// best-effort: callers invoke it off the request path and ignore errors.
type EventPublisher interface {
	PublishPostCreated(post *model.Post, creatorName string) error
	PublishPostUpdated(post *model.Post, creatorName string) error
	PublishPostDeleted(postID uuid.UUID) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type PostPayload struct {
	PostID      uuid.UUID `json:"post_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatorName string    `json:"creator_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PostEvent struct {
	EventType string      `json:"event_type"`
	Post      PostPayload `json:"post"`
}

type PostDeletedEvent struct {
	EventType string    `json:"event_type"`
	PostID    uuid.UUID `json:"post_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (p *NatsPublisher) PublishPostCreated(post *model.Post, creatorName string) error {
	return p.publishPost("posts.created", post, creatorName)
}

func (p *NatsPublisher) PublishPostUpdated(post *model.Post, creatorName string) error {
	return p.publishPost("posts.updated", post, creatorName)
}

func (p *NatsPublisher) publishPost(subject string, post *model.Post, creatorName string) error {
	event := PostEvent{
		EventType: subject,
		Post: PostPayload{
			PostID:      post.ID,
			Title:       post.Title,
			Content:     post.Content,
			ImageURL:    post.ImageURL,
			CreatorID:   post.CreatorID,
			CreatorName: creatorName,
			CreatedAt:   post.CreatedAt,
			UpdatedAt:   post.UpdatedAt,
		},
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	return nil
}

func (p *NatsPublisher) PublishPostDeleted(postID uuid.UUID) error {
	event := PostDeletedEvent{
		EventType: "posts.deleted",
		PostID:    postID,
		DeletedAt: time.Now(),
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		return err
	}

	err = p.conn.Publish("posts.deleted", eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	return nil
}
