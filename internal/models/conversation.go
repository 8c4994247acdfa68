package models

import "time"

// ConversationStatus is the inbox state of a conversation
type ConversationStatus string

const (
	StatusOpen    ConversationStatus = "open"
	StatusWaiting ConversationStatus = "waiting"
	StatusClosed  ConversationStatus = "closed"
)

// DeliveryStatus tracks an agent reply
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryRead      DeliveryStatus = "read"
)

// Customer is the person on the other side of a conversation
type Customer struct {
	Name   string
	Email  string
	Source string // integration the conversation came from, e.g. "GitHub"
}

// Conversation is one inbox entry
type Conversation struct {
	ID           string
	Customer     Customer
	Preview      string
	Status       ConversationStatus
	Unread       int
	LastActivity time.Time
	Assignee     string
	Team         string
}

// Message is one entry in a customer conversation transcript
type Message struct {
	ID           string
	Text         string
	FromCustomer bool
	Timestamp    time.Time
	Status       DeliveryStatus
}
