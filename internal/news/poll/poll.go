// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package poll implements reader opinion polls.

Publishing staff create and close polls; voting is open to everyone,
including anonymous visitors, with one vote per client address enforced
through a volatile voter registry.
*/
package poll

import "time"

// Poll is a reader opinion poll with a fixed option set.
type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	IsActive  bool      `json:"is_active"`
	Options   []*Option `json:"options"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Option is a single answer within a poll.
type Option struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Votes    int64  `json:"votes"`
	Position int    `json:"position"`
}

// HasOption reports whether the option with the given ID belongs to the poll.
func (poll *Poll) HasOption(optionID string) bool {
	for _, option := range poll.Options {
		if option.ID == optionID {
			return true
		}
	}
	return false
}

// TotalVotes sums the votes across all options.
func (poll *Poll) TotalVotes() int64 {
	var total int64
	for _, option := range poll.Options {
		total += option.Votes
	}
	return total
}

// OptionResult is one option with its share of the total vote.
type OptionResult struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// Results is the tallied outcome of a poll.
type Results struct {
	PollID     string         `json:"poll_id"`
	Question   string         `json:"question"`
	IsActive   bool           `json:"is_active"`
	TotalVotes int64          `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

// # Field Identifiers

const (
	FieldQuestion = "question"
	FieldOptions  = "options"
	FieldOptionID = "option_id"
)

// # Content Constraints

const (
	MaxQuestionLength = 300
	MaxOptionLength   = 120
	MinOptionCount    = 2
	MaxOptionCount    = 10
)
