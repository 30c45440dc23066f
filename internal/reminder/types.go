package reminder

import (
	"errors"
	"time"
)

// TargetKind tells the delivery transport whether the target id is a
// private chat or a group chat.
type TargetKind string

const (
	TargetPerson TargetKind = "person"
	TargetGroup  TargetKind = "group"
)

// Recurrence values. The Chinese strings are what the bot accepts from
// users and what ends up in the data file, so they stay as-is.
type Recurrence string

const (
	RepeatNone    Recurrence = "不重复"
	RepeatDaily   Recurrence = "每天"
	RepeatWeekly  Recurrence = "每周"
	RepeatMonthly Recurrence = "每月"
)

// Record is one persisted reminder. JSON keys match the reminders.json
// layout of earlier releases so existing data files keep loading.
type Record struct {
	ID         string     `json:"id"`
	Owner      string     `json:"sender_id"`
	Target     string     `json:"target_id"`
	TargetKind TargetKind `json:"target_type"`
	Content    string     `json:"content"`
	DueAt      time.Time  `json:"target_time"`
	Recurrence Recurrence `json:"repeat_type"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
}

var (
	// ErrTimeUnresolvable means no parsing strategy understood the phrase.
	ErrTimeUnresolvable = errors.New("time phrase not understood")
	// ErrTimeInPast means the phrase resolved to a non-future moment.
	ErrTimeInPast = errors.New("resolved time is not in the future")
	// ErrNotFound means no reminder exists with the given id.
	ErrNotFound = errors.New("reminder not found")
	// ErrForbidden means the requester does not own the reminder.
	ErrForbidden = errors.New("not the owner of this reminder")
)

// Deliverer is the transport that actually sends a reminder message.
// Delivery is fire-and-forget from the service's point of view; any
// retry policy belongs to the implementation.
type Deliverer interface {
	Deliver(target string, kind TargetKind, text string) error
}
