package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// MaxTitleLength bounds transaction titles, matching the input form limit.
const MaxTitleLength = 50

type (
	// Type partitions transactions into money coming in and money going out.
	// The sign of an amount is encoded here and never via a negative Money.
	Type string

	// Transaction is the sole persisted entity. Once created it is immutable
	// except for deletion; there is no in-place edit.
	Transaction struct {
		ID       string   `json:"id"`
		Type     Type     `json:"type"`
		Amount   Money    `json:"amount"`
		Title    string   `json:"title"`
		Category Category `json:"category"`
		Date     Date     `json:"date"`
	}
)

var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyTitle      = errors.New("empty title")
	ErrTitleTooLong    = errors.New("title too long (max 50 characters)")
	ErrUnknownCategory = errors.New("unknown category")
)

// ParseType maps a stored or submitted tag to a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Income, Expense:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) Validate() error {
	_, err := ParseType(string(t))
	return err
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len([]rune(t.Title)) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if !t.Category.BelongsTo(t.Type) {
		return ErrUnknownCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Date is a calendar day. Time-of-day and zone are normalized away so that
// two dates compare equal whenever they name the same day.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// SameDay reports whether both dates name the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Time.Equal(other.Time)
}

const dateLayout = "2006-01-02"

// String renders the canonical ISO-8601 form used on disk and on the wire.
func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
