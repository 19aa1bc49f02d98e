// Package id issues ULID request identifiers that are unique and sortable
// by creation time.
package id

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mutex   sync.Mutex
	entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

type ID struct {
	value ulid.ULID
}

// NewFromTime mints an ID whose timestamp component is taken from t.
func NewFromTime(t time.Time) (*ID, error) {
	mutex.Lock()
	defer mutex.Unlock()

	id, err := ulid.New(uint64(t.UnixMilli()), entropy)
	if err != nil {
		return nil, err
	}

	return &ID{id}, nil
}

func NewStringFromTime(t time.Time) (string, error) {
	id, err := NewFromTime(t)
	if err != nil {
		return "", err
	}

	return id.value.String(), nil
}

// NewString mints an ID for the current time and returns its string form.
func NewString() (string, error) {
	return NewStringFromTime(time.Now())
}

func Parse(s string) (*ID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return nil, err
	}

	return &ID{id}, nil
}

func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Time reports the timestamp component of the ID.
func (id *ID) Time() time.Time {
	return ulid.Time(id.value.Time())
}
